package middleware

import (
	"strings"

	"github.com/dimitrije/sweetshop-api/internal/services"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const SessionKey = "session"

type TokenValidator interface {
	ValidateAccessToken(token string) (*services.Claims, error)
}

// Auth requires a valid bearer access token and stores the caller's
// session on the context.
func Auth(tokens TokenValidator) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(SessionKey, claims.Session())
		c.Next()
	}
}

// GetSession returns nil when the request is unauthenticated.
func GetSession(c *drift.Context) *services.Session {
	if v, ok := c.Get(SessionKey); ok {
		if s, ok := v.(*services.Session); ok {
			return s
		}
	}
	return nil
}

func GetUserID(c *drift.Context) uuid.UUID {
	if s := GetSession(c); s != nil {
		return s.UserID
	}
	return uuid.Nil
}
