package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/model/user"
	"github.com/deppfellow/jobly/internal/repository"
)

// WelcomeMailer queues the welcome email of a new user.
type WelcomeMailer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, firstName, username string) error
}

type UserService struct {
	users  *repository.UserRepository
	auth   *AuthService
	mailer WelcomeMailer
}

// NewUserService builds the user service. mailer may be nil.
func NewUserService(users *repository.UserRepository, auth *AuthService, mailer WelcomeMailer) *UserService {
	return &UserService{users: users, auth: auth, mailer: mailer}
}

func (s *UserService) create(ctx context.Context, p user.RegisterPayload, isAdmin bool) (*user.User, string, error) {
	hash, err := s.auth.HashPassword(p.Password)
	if err != nil {
		return nil, "", err
	}

	u, err := s.users.Create(ctx, repository.NewUser{
		Username:  p.Username,
		Password:  hash,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		IsAdmin:   isAdmin,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.auth.CreateToken(u)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// Register signs up a regular user and queues their welcome email. A queue
// failure is logged; the account is already created.
func (s *UserService) Register(ctx context.Context, payload *user.RegisterPayload) (*user.TokenResponse, error) {
	logger := zerolog.Ctx(ctx)

	u, token, err := s.create(ctx, *payload, false)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.EnqueueWelcomeEmail(ctx, u.Email, u.FirstName, u.Username); err != nil {
			logger.Error().Err(err).Str("username", u.Username).Msg("failed to enqueue welcome email")
		}
	}

	logger.Info().Str("username", u.Username).Msg("user registered")
	return &user.TokenResponse{Token: token}, nil
}

// Create is the admin variant of Register; the new user may be an admin.
func (s *UserService) Create(ctx context.Context, payload *user.CreateUserPayload) (*user.CreatedResponse, error) {
	u, token, err := s.create(ctx, payload.RegisterPayload, payload.IsAdmin)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("username", u.Username).Bool("is_admin", u.IsAdmin).Msg("user created")
	return &user.CreatedResponse{User: u, Token: token}, nil
}

func (s *UserService) List(ctx context.Context, _ *user.ListUsersPayload) (*user.ListResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return &user.ListResponse{Users: users}, nil
}

func (s *UserService) Get(ctx context.Context, payload *user.GetUserPayload) (*user.DetailResponse, error) {
	detail, err := s.users.Get(ctx, payload.Username)
	if err != nil {
		return nil, err
	}
	return &user.DetailResponse{User: detail}, nil
}

// Update applies a partial profile update. A new password is hashed before
// it is stored.
func (s *UserService) Update(ctx context.Context, payload *user.UpdateUserPayload) (*user.Response, error) {
	data := payload.UpdateData()
	if payload.Password != nil {
		hash, err := s.auth.HashPassword(*payload.Password)
		if err != nil {
			return nil, err
		}
		data = data.Set("password", hash)
	}

	u, err := s.users.Update(ctx, payload.Username, data)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("username", u.Username).Msg("user updated")
	return &user.Response{User: u}, nil
}

func (s *UserService) Delete(ctx context.Context, payload *user.DeleteUserPayload) (*model.DeletedResponse, error) {
	if err := s.users.Remove(ctx, payload.Username); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("username", payload.Username).Msg("user deleted")
	return &model.DeletedResponse{Deleted: payload.Username}, nil
}

func (s *UserService) Apply(ctx context.Context, payload *user.ApplyPayload) (*user.AppliedResponse, error) {
	if err := s.users.ApplyToJob(ctx, payload.Username, payload.JobID); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("username", payload.Username).Int("job_id", payload.JobID).Msg("applied to job")
	return &user.AppliedResponse{Applied: payload.JobID}, nil
}
