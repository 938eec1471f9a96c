package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dimitrije/sweetshop-api/internal/services"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	userID := uuid.New()

	app := drift.New()
	app.Use(RequestLogger(zap.New(core)))
	app.Use(withSession(&services.Session{UserID: userID}))
	app.Get("/api/v1/sweets", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, nil)
	})

	app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/sweets?search=gum", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/v1/sweets", fields["path"])
	assert.Equal(t, userID.String(), fields["user_id"])
}
