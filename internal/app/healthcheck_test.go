package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/registry"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	a := &App{
		ctx:      context.Background(),
		config:   &Config{Mode: ModeVerify},
		registry: registry.NewWithModules(coreModules...),
	}
	rec := httptest.NewRecorder()

	a.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OK mode=verify")
}

func TestCloseHealthCheckServer_NotStarted(t *testing.T) {
	a := &App{ctx: context.Background(), config: &Config{}}
	a.healthCheckServer()
	assert.Nil(t, a.httpServer)
	assert.NoError(t, a.closeHealthCheckServer())
}
