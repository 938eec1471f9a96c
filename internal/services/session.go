package services

import (
	"context"

	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session identifies the authenticated caller of a request.
type Session struct {
	UserID uuid.UUID
	Email  string
}

// Capability is what the caller may do. The zero value grants nothing.
type Capability struct {
	IsAdmin bool
}

type ProfileLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// Gate derives a Capability from a session and its profile. Lookup failures
// are logged and treated as a non-admin caller.
type Gate struct {
	profiles ProfileLookup
	logger   *zap.Logger
}

func NewGate(profiles ProfileLookup, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{profiles: profiles, logger: logger}
}

func (g *Gate) Resolve(ctx context.Context, session *Session) Capability {
	if session == nil || session.UserID == uuid.Nil {
		return Capability{}
	}

	profile, err := g.profiles.GetByID(ctx, session.UserID)
	if err != nil {
		g.logger.Warn("profile lookup failed, denying admin capability",
			zap.String("user_id", session.UserID.String()),
			zap.Error(err),
		)
		return Capability{}
	}
	if profile == nil {
		return Capability{}
	}

	return Capability{IsAdmin: profile.Role == models.RoleAdmin}
}
