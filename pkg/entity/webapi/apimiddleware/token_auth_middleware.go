package apimiddleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/moonstream-to/entity/pkg/journal"
)

// Context keys the middleware stores the resolved credentials under.
const (
	TokenContextKey    = "Token"
	AuthTypeContextKey = "AuthType"
)

type TokenAuthConfig struct {
	Skipper middleware.Skipper
}

// TokenAuth resolves the caller's token and auth scheme from the
// Authorization header. Both plain bearer tokens and web3 signatures are
// accepted; the credentials are stored on the echo context for handlers to
// forward to the journal store.
func TokenAuth(config TokenAuthConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			auth, err := authFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return echo.ErrUnauthorized
			}

			c.Set(TokenContextKey, auth.Token)
			c.Set(AuthTypeContextKey, auth.AuthType)

			return next(c)
		}
	}
}

func authFromHeader(header string) (journal.Auth, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || token == "" {
		return journal.Auth{}, echo.ErrUnauthorized
	}

	var authType journal.AuthType
	switch strings.ToLower(scheme) {
	case "bearer":
		authType = journal.AuthTypeBearer
	case "web3":
		authType = journal.AuthTypeWeb3
	default:
		return journal.Auth{}, echo.ErrUnauthorized
	}

	return journal.Auth{Token: strings.TrimSpace(token), AuthType: authType}, nil
}

// AuthFromContext returns the credentials TokenAuth stored for this request.
func AuthFromContext(c echo.Context) (journal.Auth, bool) {
	token, ok := c.Get(TokenContextKey).(string)
	if !ok || token == "" {
		return journal.Auth{}, false
	}

	authType, ok := c.Get(AuthTypeContextKey).(journal.AuthType)
	if !ok {
		return journal.Auth{}, false
	}

	return journal.Auth{Token: token, AuthType: authType}, true
}
