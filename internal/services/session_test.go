package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubProfiles struct {
	profile *models.Profile
	err     error
	calls   int
}

func (s *stubProfiles) GetByID(_ context.Context, _ uuid.UUID) (*models.Profile, error) {
	s.calls++
	return s.profile, s.err
}

func TestGate_NoSession(t *testing.T) {
	profiles := &stubProfiles{profile: &models.Profile{Role: models.RoleAdmin}}
	gate := NewGate(profiles, nil)

	assert.False(t, gate.Resolve(context.Background(), nil).IsAdmin)
	assert.False(t, gate.Resolve(context.Background(), &Session{}).IsAdmin)
	assert.Zero(t, profiles.calls)
}

func TestGate_Roles(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{models.RoleUser, false},
		{models.RoleAdmin, true},
		{"superuser", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			id := uuid.New()
			gate := NewGate(&stubProfiles{profile: &models.Profile{ID: id, Role: tt.role}}, nil)

			got := gate.Resolve(context.Background(), &Session{UserID: id, Email: "a@b.co"})

			assert.Equal(t, tt.want, got.IsAdmin)
		})
	}
}

func TestGate_LookupFailureFailsClosed(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	gate := NewGate(&stubProfiles{err: errors.New("connection refused")}, zap.New(core))

	got := gate.Resolve(context.Background(), &Session{UserID: uuid.New()})

	assert.False(t, got.IsAdmin)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "profile lookup failed, denying admin capability", logs.All()[0].Message)
}

func TestGate_MissingProfile(t *testing.T) {
	gate := NewGate(&stubProfiles{err: ErrProfileNotFound}, nil)

	assert.False(t, gate.Resolve(context.Background(), &Session{UserID: uuid.New()}).IsAdmin)
}
