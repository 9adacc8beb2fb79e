// Package user contains the user entity, its auth payloads and request
// payloads.
package user

// User is a user as exposed by the API. The password hash never leaves the
// repository.
type User struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

// Detail is a user with the ids of the jobs they applied to.
type Detail struct {
	User
	Jobs []int `json:"jobs"`
}

type Response struct {
	User *User `json:"user"`
}

type DetailResponse struct {
	User *Detail `json:"user"`
}

type ListResponse struct {
	Users []User `json:"users"`
}

func (r *ListResponse) Count() int {
	return len(r.Users)
}

// TokenResponse is returned by the auth endpoints.
type TokenResponse struct {
	Token string `json:"token"`
}

// CreatedResponse is returned when an admin creates a user.
type CreatedResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// AppliedResponse confirms a job application.
type AppliedResponse struct {
	Applied int `json:"applied"`
}
