package middlewares

import (
	"context"
	"log/slog"

	"github.com/backendlab/httpkit/internal"
	"github.com/backendlab/httpkit/pkg/apperr"
	"github.com/backendlab/httpkit/pkg/jwt"
	"github.com/backendlab/httpkit/pkg/logger"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// UserStatus is the lifecycle state of an authenticated user.
type UserStatus string

const (
	UserStatusNotRegistered UserStatus = "NOT_REGISTERED"
	UserStatusNotVerified   UserStatus = "NOT_VERIFIED"
	UserStatusVerified      UserStatus = "VERIFIED"
	UserStatusSuspected     UserStatus = "SUSPECTED"
	UserStatusBanned        UserStatus = "BANNED"
)

// Active reports whether the status permits access to protected endpoints.
func (s UserStatus) Active() bool {
	switch s {
	case UserStatusNotVerified, UserStatusVerified, UserStatusSuspected:
		return true
	default:
		return false
	}
}

// UserClaims is the token payload describing the authenticated user.
type UserClaims struct {
	UserID string     `json:"user_id"`
	Status UserStatus `json:"status"`
	Type   TokenType  `json:"type"`
}

// authState records the outcome of token verification for the request. A
// nil state means no credential was presented at all.
type authState struct {
	claims *UserClaims
	err    error
}

type authStateKey struct{}

// AuthConfig configures the auth middleware.
type AuthConfig struct {
	Sources []internal.ExtractorSource
}

// AuthOption configures AuthConfig.
type AuthOption func(*AuthConfig)

// WithAuthSources overrides where the token is looked up. Sources are tried
// in order; the first non-empty value wins.
func WithAuthSources(sources ...internal.ExtractorSource) AuthOption {
	return func(cfg *AuthConfig) {
		cfg.Sources = sources
	}
}

// Auth returns middleware that verifies a JWT credential and stores the
// resulting claims in the request context. It never fails the request
// itself: missing or invalid tokens surface later, when a handler asks for
// the user via CurrentUser or ActiveUser.
func Auth(tokens *jwt.Service, opts ...AuthOption) internal.Middleware {
	cfg := &AuthConfig{
		Sources: []internal.ExtractorSource{internal.FromBearerToken()},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	extractor := internal.NewExtractor(cfg.Sources...)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, ok := extractor.Extract(c)
			if !ok {
				return next(c)
			}

			var claims UserClaims
			if err := tokens.Parse(token, &claims); err != nil {
				c.Set(authStateKey{}, &authState{err: err})
				return next(c)
			}

			c.Set(authStateKey{}, &authState{claims: &claims})
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user's claims, or a classified
// error: TokenNotFoundError when no credential was presented,
// InvalidTokenError when verification failed.
func CurrentUser(c internal.Context) (*UserClaims, error) {
	state, _ := c.Get(authStateKey{}).(*authState)
	if state == nil {
		return nil, apperr.TokenNotFound()
	}
	if state.err != nil {
		return nil, apperr.InvalidToken(apperr.WithDebug(state.err.Error()))
	}
	return state.claims, nil
}

// ActiveUser returns the authenticated user's claims, additionally requiring
// an active status. Inactive users get AccessForbiddenError.
func ActiveUser(c internal.Context) (*UserClaims, error) {
	claims, err := CurrentUser(c)
	if err != nil {
		return nil, err
	}
	if !claims.Status.Active() {
		return nil, apperr.AccessForbidden()
	}
	return claims, nil
}

// OptionalUser returns the authenticated user's claims, or nil when no valid
// credential was presented. It never returns an error.
func OptionalUser(c internal.Context) *UserClaims {
	state, _ := c.Get(authStateKey{}).(*authState)
	if state == nil || state.err != nil {
		return nil
	}
	return state.claims
}

// UserIDExtractor returns a logger extractor that adds the authenticated
// user's id to every log record in the request scope.
func UserIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		state, _ := ctx.Value(authStateKey{}).(*authState)
		if state == nil || state.claims == nil || state.claims.UserID == "" {
			return slog.Attr{}, false
		}
		return slog.String("user_id", state.claims.UserID), true
	}
}
