package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"leonine/config"
	"leonine/infras/jwt"
	jwtMocks "leonine/infras/jwt/mocks"
	otelMocks "leonine/infras/otel/mocks"
	"leonine/permissions"
	"leonine/shared/principal"
	"leonine/transport/http/middleware"
	"leonine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const internalKey = "front-desk-key"

func newRouter(t *testing.T, jwtService jwt.JWT) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = internalKey

	permission := &permissions.PermissionData{Endpoints: []permissions.Permission{
		{Path: "/v1/rooms", Method: http.MethodGet, Skip: true},
		{Path: "/v1/bookings", Method: http.MethodGet, Permissions: []string{"admin"}},
		{Path: "/v1/feedbacks", Method: http.MethodPost, Permissions: []string{"user", "customer"}},
	}}

	return mount(middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), permission, cfg))
}

// echoCaller answers with the caller's role the way protected handlers resolve it.
func echoCaller(writer http.ResponseWriter, request *http.Request) {
	caller, err := principal.Require(request.Context())
	if err != nil {
		response.WithError(writer, err)

		return
	}

	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write([]byte(caller.Role))
}

func mount(auth middleware.AuthRole) http.Handler {
	router := chi.NewRouter()
	router.Use(auth.APIKey, auth.Auth, auth.RBAC)

	router.Get("/v1/rooms", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	router.Get("/v1/bookings", echoCaller)
	router.Post("/v1/feedbacks", echoCaller)

	return router
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		headers  map[string]string
		mock     func(m *jwtMocks.MockJWT)
		wantCode int
		wantBody string
	}{
		{
			name:     "public route without token",
			method:   http.MethodGet,
			path:     "/v1/rooms",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing authorization header",
			method:   http.MethodGet,
			path:     "/v1/bookings",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed authorization header",
			method:   http.MethodGet,
			path:     "/v1/bookings",
			headers:  map[string]string{"Authorization": "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			path:    "/v1/bookings",
			headers: map[string]string{"Authorization": "Bearer stale"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "stale", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "claims without subject",
			method:  http.MethodGet,
			path:    "/v1/bookings",
			headers: map[string]string{"Authorization": "Bearer hollow"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "hollow", jwt.AccessToken).Return(&jwt.Claims{Role: "admin"}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "admin reaches admin route",
			method:  http.MethodGet,
			path:    "/v1/bookings",
			headers: map[string]string{"Authorization": "Bearer good"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "7", Email: "ops@leonine.test", Role: "admin"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "admin",
		},
		{
			name:    "customer refused on admin route",
			method:  http.MethodGet,
			path:    "/v1/bookings",
			headers: map[string]string{"Authorization": "Bearer good"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "9", Email: "guest@leonine.test", Role: "customer"}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "customer leaves feedback",
			method:  http.MethodPost,
			path:    "/v1/feedbacks",
			headers: map[string]string{"Authorization": "Bearer good"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "9", Email: "guest@leonine.test", Role: "customer"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "customer",
		},
		{
			name:     "internal caller without token acts as admin",
			method:   http.MethodGet,
			path:     "/v1/bookings",
			headers:  map[string]string{"X-API-Key": internalKey},
			wantCode: http.StatusOK,
			wantBody: "admin",
		},
		{
			name:    "internal caller with admin token keeps its identity",
			method:  http.MethodGet,
			path:    "/v1/bookings",
			headers: map[string]string{"X-API-Key": internalKey, "Authorization": "Bearer good"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "7", Email: "ops@leonine.test", Role: "admin"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "admin",
		},
		{
			name:    "internal caller skips role check but not identity",
			method:  http.MethodGet,
			path:    "/v1/bookings",
			headers: map[string]string{"X-API-Key": internalKey, "Authorization": "Bearer good"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "9", Email: "guest@leonine.test", Role: "customer"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "customer",
		},
		{
			name:    "internal caller with bad token",
			method:  http.MethodGet,
			path:    "/v1/bookings",
			headers: map[string]string{"X-API-Key": internalKey, "Authorization": "Bearer stale"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "stale", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "wrong api key",
			method:   http.MethodGet,
			path:     "/v1/bookings",
			headers:  map[string]string{"X-API-Key": "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			if tt.mock != nil {
				tt.mock(jwtService)
			}

			request := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newRouter(t, jwtService).ServeHTTP(rec, request)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAuthRole_EmbeddedPermissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	jwtService.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "7", Email: "ops@leonine.test", Role: "admin"}, nil)

	cfg := &config.Config{}
	cfg.App.APIKey = internalKey

	data := permissions.Get()
	require.NotNil(t, data)

	handler := mount(middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), data, cfg))

	request := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	request.Header.Set("X-API-Key", internalKey)
	request.Header.Set("Authorization", "Bearer good")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())
}
