package user

import (
	"github.com/deppfellow/jobly/internal/sqlclause"
	"github.com/deppfellow/jobly/internal/validation"
)

// ------------------------------------------------------------

type TokenPayload struct {
	Username string `json:"username" validate:"required,min=1,max=25" jsonschema:"required"`
	Password string `json:"password" validate:"required,min=1" jsonschema:"required"`
}

func (p *TokenPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// RegisterPayload is the self sign-up form. Registered users are never admins.
type RegisterPayload struct {
	Username  string `json:"username" validate:"required,min=1,max=25" jsonschema:"required"`
	Password  string `json:"password" validate:"required,min=5,max=20" jsonschema:"required"`
	FirstName string `json:"firstName" validate:"required,min=1,max=30" jsonschema:"required"`
	LastName  string `json:"lastName" validate:"required,min=1,max=30" jsonschema:"required"`
	Email     string `json:"email" validate:"required,email,max=60" jsonschema:"required"`
}

func (p *RegisterPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// CreateUserPayload is used by admins and may create another admin.
type CreateUserPayload struct {
	RegisterPayload
	IsAdmin bool `json:"isAdmin"`
}

func (p *CreateUserPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ListUsersPayload struct{}

func (p *ListUsersPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

type GetUserPayload struct {
	Username string `param:"username" validate:"required,max=25"`
}

func (p *GetUserPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// UpdateUserPayload is a partial update. The username and admin flag cannot
// be changed here.
type UpdateUserPayload struct {
	Username  string  `param:"username" json:"-" validate:"required,max=25"`
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=30"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=30"`
	Password  *string `json:"password" validate:"omitempty,min=5,max=20"`
	Email     *string `json:"email" validate:"omitempty,email,max=60"`
}

func (p *UpdateUserPayload) Validate() error {
	return validation.Struct(p)
}

// UpdateData lists the provided profile fields in declaration order. The
// password is not included: it must be hashed first and is appended by the
// caller.
func (p *UpdateUserPayload) UpdateData() sqlclause.UpdateData {
	var data sqlclause.UpdateData
	if p.FirstName != nil {
		data = data.Set("firstName", *p.FirstName)
	}
	if p.LastName != nil {
		data = data.Set("lastName", *p.LastName)
	}
	if p.Email != nil {
		data = data.Set("email", *p.Email)
	}
	return data
}

// ------------------------------------------------------------

type DeleteUserPayload struct {
	Username string `param:"username" validate:"required,max=25"`
}

func (p *DeleteUserPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ApplyPayload struct {
	Username string `param:"username" validate:"required,max=25"`
	JobID    int    `param:"id" validate:"required,min=1"`
}

func (p *ApplyPayload) Validate() error {
	return validation.Struct(p)
}
