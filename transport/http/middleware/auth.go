package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"venuebook/config"
	"venuebook/infras/jwt"
	"venuebook/infras/otel"
	userModel "venuebook/internal/domains/user/model"
	userRepo "venuebook/internal/domains/user/repository"
	"venuebook/permissions"
	"venuebook/shared"
	"venuebook/shared/constant"
	"venuebook/shared/failure"
	"venuebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

// internalCaller is the principal attached to requests carrying the service API key.
var internalCaller = permissions.Principal{ID: "api-key", Username: "internal", Role: constant.RoleAdmin}

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	userRepo   userRepo.User
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

// NewAuthRoleMiddleware creates a new middleware instance
func NewAuthRoleMiddleware(jwtService jwt.JWT, userRepo userRepo.User, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		userRepo:   userRepo,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func (m *authRoleImpl) route(request *http.Request) permissions.Permission {
	if m.permission == nil {
		return permissions.Permission{}
	}

	rctx := chi.RouteContext(request.Context())
	if rctx == nil {
		return permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	return m.permission.FindPermissions(path, request.Method)
}

// Auth validates the bearer token and stores the caller in the request context.
// Public routes still accept a valid token so that handlers can tailor their
// answer, but a missing or broken token is not an error there.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		skip, _ := ctx.Value(SkipAuthKey("skip")).(bool)
		if skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		permission := m.route(request)

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       permission.Path,
			"http.method":     request.Method,
		})

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)

		if permission.Skip {
			if principal, err := m.authenticate(ctx, authHeader); err == nil {
				ctx = permissions.NewContext(ctx, principal)
			}

			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		principal, err := m.authenticate(ctx, authHeader)
		if err != nil {
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		scope.SetAttribute("user.role", principal.Role)
		scope.End()

		next.ServeHTTP(writer, request.WithContext(permissions.NewContext(ctx, principal)))
	})
}

func (m *authRoleImpl) authenticate(ctx context.Context, authHeader string) (permissions.Principal, error) {
	if authHeader == constant.Empty {
		return permissions.Principal{}, failure.Unauthorized("missing authorization header")
	}

	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return permissions.Principal{}, failure.Unauthorized("invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(ctx, tokenString, jwt.AccessToken)
	if err != nil {
		var message string

		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			message = "token has expired"
		case errors.Is(err, jwt.ErrInvalidToken):
			message = "invalid token"
		case errors.Is(err, jwt.ErrInvalidClaim):
			message = "invalid token claims"
		default:
			message = "token validation failed"
		}

		return permissions.Principal{}, failure.Unauthorized(message)
	}

	if claims.UserID == constant.Empty || claims.Role == constant.Empty {
		log.Error().Str("token_id", claims.TokenID).Msg("JWT claims: user id or role is empty")

		return permissions.Principal{}, failure.Unauthorized("invalid token claims")
	}

	return m.principal(ctx, claims.UserID)
}

// principal reads the caller from the store so that deleted or re-roled
// users stop acting with the rights their token was issued for.
func (m *authRoleImpl) principal(ctx context.Context, userID string) (permissions.Principal, error) {
	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := m.userRepo.Get(ctx, filter, userModel.FieldID, userModel.FieldUsername, userModel.FieldRole)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to load token user")

		return permissions.Principal{}, fmt.Errorf("failed to load token user: %w", err)
	}

	if user.ID == constant.Empty {
		return permissions.Principal{}, failure.Unauthorized("invalid token claims")
	}

	return permissions.Principal{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// RBAC checks the caller's role against the route's allowed roles.
// Requires prior authentication via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		skip, _ := ctx.Value(SkipAuthKey("skip")).(bool)
		if skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		permission := m.route(request)
		principal, _ := permissions.PrincipalFromContext(ctx)

		if !permission.Allows(principal.Role) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     principal.Role,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey for internal service-to-service authentication using API key.
// A matching key acts as an administrator.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == constant.Empty {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)
		ctx = permissions.NewContext(ctx, internalCaller)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
