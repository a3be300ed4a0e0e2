package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"leonine/config"
	"leonine/transport/http/router"

	"github.com/stretchr/testify/assert"
)

type passThrough struct{}

func (passThrough) Tracing(next http.Handler) http.Handler { return next }
func (passThrough) Auth(next http.Handler) http.Handler    { return next }
func (passThrough) APIKey(next http.Handler) http.Handler  { return next }
func (passThrough) RBAC(next http.Handler) http.Handler    { return next }

func newTestServer() *HTTP {
	return New(&config.Config{}, router.New(router.DomainHandlers{}), passThrough{}, passThrough{})
}

func TestHealthFollowsServerState(t *testing.T) {
	server := newTestServer()

	tests := []struct {
		name     string
		state    ServerState
		wantCode int
	}{
		{name: "ready", state: ServerStateReady, wantCode: http.StatusOK},
		{name: "grace period", state: ServerStateInGracePeriod, wantCode: http.StatusServiceUnavailable},
		{name: "cleanup period", state: ServerStateInCleanupPeriod, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server.setup()
			server.setState(tt.state)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	server := newTestServer()

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
