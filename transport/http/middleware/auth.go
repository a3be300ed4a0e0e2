package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"slices"

	"leonine/config"
	"leonine/infras/jwt"
	"leonine/infras/otel"
	"leonine/permissions"
	"leonine/shared/constant"
	"leonine/shared/failure"
	"leonine/shared/principal"
	"leonine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type trustedCallerKey struct{}

// internalCaller acts for trusted services that present the API key without a user token.
var internalCaller = principal.Principal{
	UserID: constant.ContextInternal,
	Email:  constant.ContextInternal,
	Role:   constant.RoleAdmin,
}

type Auth interface {
	// Auth resolves the bearer token into a principal. Public routes pass through.
	Auth(http.Handler) http.Handler
	// APIKey marks requests carrying the internal API key as trusted. A trusted
	// request still resolves its bearer token when it sends one.
	APIKey(http.Handler) http.Handler
}

type Role interface {
	// RBAC rejects callers whose role is not listed for the route.
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRole struct {
	jwt        jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	apiKey     string
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otl otel.Otel, permission *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRole{
		jwt:        jwtService,
		otel:       otl,
		permission: permission,
		apiKey:     cfg.App.APIKey,
	}
}

var tokenMessages = []struct {
	err     error
	message string
}{
	{jwt.ErrExpiredToken, "Token has expired"},
	{jwt.ErrInvalidToken, "Invalid token"},
	{jwt.ErrInvalidClaim, "Invalid token claims"},
}

func tokenFailure(err error) error {
	for _, tm := range tokenMessages {
		if errors.Is(err, tm.err) {
			return failure.Unauthorized(tm.message)
		}
	}

	return failure.Unauthorized("Token validation failed")
}

// route returns the permission entry for the chi pattern the request matched.
func (m *authRole) route(request *http.Request) (string, permissions.Permission) {
	pattern := request.URL.Path
	if rctx := chi.RouteContext(request.Context()); rctx != nil && rctx.Routes != nil {
		pattern = rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	}

	if m.permission == nil {
		return pattern, permissions.Permission{}
	}

	return pattern, m.permission.FindPermissions(pattern, request.Method)
}

func trusted(ctx context.Context) bool {
	ok, _ := ctx.Value(trustedCallerKey{}).(bool)

	return ok
}

func reject(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	response.WithError(writer, err)
}

func (m *authRole) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		pattern, permission := m.route(request)
		if permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       pattern,
			"http.method":     request.Method,
		})

		header := request.Header.Get(constant.RequestHeaderAuthorization)
		if header == "" {
			if trusted(ctx) {
				next.ServeHTTP(writer, request.WithContext(principal.WithContext(request.Context(), internalCaller)))

				return
			}

			reject(writer, scope, failure.Unauthorized("Missing authorization header"))

			return
		}

		token, err := jwt.ExtractTokenFromHeader(header)
		if err != nil {
			reject(writer, scope, failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwt.ValidateToken(ctx, token, jwt.AccessToken)
		if err != nil {
			reject(writer, scope, tokenFailure(err))

			return
		}

		if claims.UserID == "" || claims.Email == "" {
			log.Warn().Str("token_id", claims.TokenID).Msg("access token without subject")
			reject(writer, scope, failure.Unauthorized("Invalid token claims"))

			return
		}

		ctx = principal.WithContext(request.Context(), principal.Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authRole) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if trusted(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		_, permission := m.route(request)
		if m.permission.Skip || permission.Skip || len(permission.Permissions) == 0 {
			next.ServeHTTP(writer, request)

			return
		}

		caller, _ := principal.FromContext(ctx)
		if !slices.Contains(permission.Permissions, caller.Role) {
			scope.SetAttributes(map[string]any{
				"user_role":     caller.Role,
				"allowed_roles": permission.Permissions,
			})
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

func (m *authRole) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, trustedCallerKey{}, true)))
	})
}
