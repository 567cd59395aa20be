package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"venuebook/config"
	"venuebook/infras/jwt"
	jwtMocks "venuebook/infras/jwt/mocks"
	"venuebook/infras/otel/mocks"
	userMocks "venuebook/internal/domains/user/mocks"
	userModel "venuebook/internal/domains/user/model"
	"venuebook/permissions"
	"venuebook/shared/constant"
	"venuebook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func adminOnlyRouter(m middleware.AuthRole, seen *permissions.Principal) http.Handler {
	r := chi.NewRouter()
	r.With(m.Auth, m.RBAC).Get("/v1/users", func(w http.ResponseWriter, r *http.Request) {
		*seen, _ = permissions.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func TestAuth_LoadsPrincipalFromStore(t *testing.T) {
	permissionData := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/users", Method: http.MethodGet, Permissions: []string{constant.RoleAdmin}},
		},
	}

	tests := []struct {
		name      string
		storeUser userModel.User
		wantCode  int
		wantSeen  permissions.Principal
	}{
		{
			name:      "current admin",
			storeUser: userModel.User{ID: "user-id", Username: "ali", Role: constant.RoleAdmin},
			wantCode:  http.StatusOK,
			wantSeen:  permissions.Principal{ID: "user-id", Username: "ali", Role: constant.RoleAdmin},
		},
		{
			name:      "deleted user",
			storeUser: userModel.User{},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:      "demoted admin",
			storeUser: userModel.User{ID: "user-id", Username: "ali", Role: constant.RoleUser},
			wantCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			jwtService := jwtMocks.NewMockJWT(ctrl)
			userRepo := userMocks.NewMockUser(ctrl)

			jwtService.EXPECT().
				ValidateToken(gomock.Any(), "signed-token", jwt.AccessToken).
				Return(&jwt.Claims{UserID: "user-id", Username: "ali", Role: constant.RoleAdmin, TokenID: "token-id"}, nil)
			userRepo.EXPECT().
				Get(gomock.Any(), gomock.Any(), userModel.FieldID, userModel.FieldUsername, userModel.FieldRole).
				Return(tt.storeUser, nil)

			m := middleware.NewAuthRoleMiddleware(jwtService, userRepo, mocks.NewOtel(), permissionData, &config.Config{})

			var seen permissions.Principal
			handler := adminOnlyRouter(m, &seen)

			req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
			req.Header.Set(constant.RequestHeaderAuthorization, "Bearer signed-token")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantSeen, seen)
		})
	}
}

func TestAuth_MissingToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	permissionData := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/users", Method: http.MethodGet, Permissions: []string{constant.RoleAdmin}},
		},
	}

	m := middleware.NewAuthRoleMiddleware(jwtMocks.NewMockJWT(ctrl), userMocks.NewMockUser(ctrl), mocks.NewOtel(), permissionData, &config.Config{})

	var seen permissions.Principal
	rec := httptest.NewRecorder()
	adminOnlyRouter(m, &seen).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
