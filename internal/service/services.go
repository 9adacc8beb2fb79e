package service

import (
	"github.com/deppfellow/jobly/internal/repository"
	"github.com/deppfellow/jobly/internal/server"
)

type Services struct {
	Auth    *AuthService
	Company *CompanyService
	Job     *JobService
	User    *UserService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	authService := NewAuthService(s.Config.Auth, repos.User)

	var mailer WelcomeMailer
	if s.Job != nil {
		mailer = s.Job
	}

	return &Services{
		Auth:    authService,
		Company: NewCompanyService(repos.Company),
		Job:     NewJobService(repos.Job),
		User:    NewUserService(repos.User, authService, mailer),
	}
}
