package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	// clerkAdminRole is the Clerk organization role treated as admin.
	clerkAdminRole = "org:admin"
)

// TokenVerifier checks an API token and returns its claims.
type TokenVerifier interface {
	ParseToken(token string) (*service.Claims, error)
}

// AuthMiddleware resolves the caller from the Authorization header and
// guards routes by login, admin flag or ownership.
type AuthMiddleware struct {
	server *server.Server
	tokens TokenVerifier
}

func NewAuthMiddleware(s *server.Server, tokens TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		tokens: tokens,
	}
}

// Authenticate stores the caller's username and role in the Echo context when
// a valid bearer token is present. A missing or invalid token is not an
// error here: the request simply continues anonymously and the Require*
// guards decide.
//
// When a Clerk secret key is configured, tokens are verified by Clerk.
func (auth *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	if auth.server.Config.Auth.ClerkSecretKey != "" {
		return auth.clerkAuthenticate()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return next(c)
			}

			claims, err := auth.tokens.ParseToken(strings.TrimSpace(token))
			if err != nil {
				auth.server.Logger.Debug().
					Err(err).
					Str("function", "Authenticate").
					Str("request_id", GetRequestID(c)).
					Msg("ignoring invalid bearer token")
				return next(c)
			}

			role := RoleUser
			if claims.IsAdmin {
				role = RoleAdmin
			}
			c.Set(UserIDKey, claims.Username)
			c.Set(UserRoleKey, role)

			return next(c)
		}
	}
}

// clerkSessionClaims holds the custom claims read from a Clerk session token.
// The Clerk session token template must add {"username": "{{user.username}}"}
// for the caller to match a Jobly username.
type clerkSessionClaims struct {
	Username string `json:"username"`
}

// clerkIdentity returns the Jobly username and role for a Clerk session. Without
// a username claim the Clerk user id is used, which still counts as logged in
// but never matches a :username route parameter.
func clerkIdentity(claims *clerk.SessionClaims) (string, string) {
	userID := claims.Subject
	if custom, ok := claims.Custom.(*clerkSessionClaims); ok && custom.Username != "" {
		userID = custom.Username
	}

	role := RoleUser
	if claims.ActiveOrganizationRole == clerkAdminRole {
		role = RoleAdmin
	}
	return userID, role
}

// clerkAuthenticate verifies Clerk session tokens. Clerk rejects a malformed
// token itself, with a JSON 401 in our error format.
func (auth *AuthMiddleware) clerkAuthenticate() echo.MiddlewareFunc {
	failure := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)

		if err := json.NewEncoder(w).Encode(errs.NewUnauthorizedError("Unauthorized", false)); err != nil {
			auth.server.Logger.Error().
				Err(err).
				Str("function", "clerkAuthenticate").
				Dur("duration", time.Since(start)).
				Msg("failed to write JSON response")
			return
		}

		auth.server.Logger.Warn().
			Str("function", "clerkAuthenticate").
			Dur("duration", time.Since(start)).
			Msg("clerk rejected session token")
	})

	verify := echo.WrapMiddleware(clerkhttp.WithHeaderAuthorization(
		clerkhttp.AuthorizationFailureHandler(failure),
		clerkhttp.CustomClaimsConstructor(func(context.Context) any {
			return &clerkSessionClaims{}
		}),
	))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				return next(c)
			}

			userID, role := clerkIdentity(claims)
			if userID == claims.Subject {
				auth.server.Logger.Debug().
					Str("function", "clerkAuthenticate").
					Str("clerk_user_id", claims.Subject).
					Msg("clerk session has no username claim")
			}
			c.Set(UserIDKey, userID)
			c.Set(UserRoleKey, role)

			return next(c)
		})
	}
}

// RequireLogin rejects anonymous requests with 401.
func (auth *AuthMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if GetUserID(c) == "" {
			return errs.NewUnauthorizedError("Unauthorized", false)
		}
		return next(c)
	}
}

// RequireAdmin allows admins only: 401 when anonymous, 403 otherwise.
func (auth *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if GetUserID(c) == "" {
			return errs.NewUnauthorizedError("Unauthorized", false)
		}
		if !IsAdmin(c) {
			return errs.NewForbiddenError("Admin privileges required", true)
		}
		return next(c)
	}
}

// RequireAdminOrSelf allows admins and the user named by the path parameter.
func (auth *AuthMiddleware) RequireAdminOrSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := GetUserID(c)
			if userID == "" {
				return errs.NewUnauthorizedError("Unauthorized", false)
			}
			if !IsAdmin(c) && userID != c.Param(param) {
				return errs.NewForbiddenError("You can only access your own account", true)
			}
			return next(c)
		}
	}
}
