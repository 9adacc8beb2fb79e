package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model/user"
	"github.com/deppfellow/jobly/internal/repository"
)

// Claims is the JWT payload: who the caller is and whether they are an admin.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

const tokenIssuer = config.ServiceName

var errInvalidCredentials = errs.NewUnauthorizedError("Invalid username/password", true)

// AuthService issues and verifies API tokens and checks passwords.
type AuthService struct {
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	users      *repository.UserRepository
}

// NewAuthService builds the auth service. When a Clerk secret key is
// configured, the Clerk SDK is initialised so Clerk session tokens are
// accepted as well.
func NewAuthService(cfg config.AuthConfig, users *repository.UserRepository) *AuthService {
	if cfg.ClerkSecretKey != "" {
		clerk.SetKey(cfg.ClerkSecretKey)
	}

	return &AuthService{
		secret:     []byte(cfg.SecretKey),
		ttl:        cfg.TokenTTL,
		bcryptCost: cfg.BcryptCost,
		users:      users,
	}
}

// CreateToken signs an HS256 token for u.
func (s *AuthService) CreateToken(u *user.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature, algorithm, issuer and expiry of token.
func (s *AuthService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// HashPassword hashes password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login checks username/password and returns a fresh token.
//
// Unknown users and wrong passwords fail with the same 401.
func (s *AuthService) Login(ctx context.Context, payload *user.TokenPayload) (*user.TokenResponse, error) {
	logger := zerolog.Ctx(ctx)

	u, hash, err := s.users.GetCredentials(ctx, payload.Username)
	if isNotFound(err) {
		logger.Warn().Str("username", payload.Username).Msg("login attempt for unknown user")
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(payload.Password)); err != nil {
		logger.Warn().Str("username", payload.Username).Msg("login attempt with wrong password")
		return nil, errInvalidCredentials
	}

	token, err := s.CreateToken(u)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("username", u.Username).Msg("user logged in")
	return &user.TokenResponse{Token: token}, nil
}
