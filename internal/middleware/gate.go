package middleware

import (
	"context"

	"github.com/dimitrije/sweetshop-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

const CapabilityKey = "capability"

type CapabilityResolver interface {
	Resolve(ctx context.Context, session *services.Session) services.Capability
}

// Capabilities resolves the caller's capability once per request. It must
// run after Auth.
func Capabilities(gate CapabilityResolver) drift.HandlerFunc {
	return func(c *drift.Context) {
		c.Set(CapabilityKey, gate.Resolve(c.Request.Context(), GetSession(c)))
		c.Next()
	}
}

func GetCapability(c *drift.Context) services.Capability {
	if v, ok := c.Get(CapabilityKey); ok {
		if capability, ok := v.(services.Capability); ok {
			return capability
		}
	}
	return services.Capability{}
}

// RequireAdmin wraps next so that non-admin callers get 403 before it runs.
func RequireAdmin(next drift.HandlerFunc) drift.HandlerFunc {
	return func(c *drift.Context) {
		if !GetCapability(c).IsAdmin {
			c.Forbidden("admin access required")
			return
		}
		next(c)
	}
}
