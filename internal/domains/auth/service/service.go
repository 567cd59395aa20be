package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"venuebook/config"
	"venuebook/infras/jwt"
	"venuebook/infras/otel"
	"venuebook/internal/domains/auth/model/dto"
	userModel "venuebook/internal/domains/user/model"
	userDto "venuebook/internal/domains/user/model/dto"
	userRepo "venuebook/internal/domains/user/repository"
	"venuebook/permissions"
	"venuebook/shared"
	"venuebook/shared/cache"
	"venuebook/shared/constant"
	"venuebook/shared/failure"
	"venuebook/shared/password"

	"github.com/rs/zerolog/log"
)

const invalidCredentials = "invalid username or password"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	GetProfile(ctx context.Context) (userDto.UserResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (userDto.UserResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

func usernameTaken() error {
	return failure.Conflict("username already exists")
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.checkUsername(ctx, req.Username, constant.Empty); err != nil {
		return res, err
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if failure.GetCode(err) == http.StatusBadRequest {
			return res, usernameTaken()
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CachePrefixUser)
	}()

	return s.issue(ctx, user)
}

// Login answers an unknown username and a wrong password with the same error.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, userRepo.UsernameFilter(req.Username, constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, failure.Unauthorized(invalidCredentials)
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(invalidCredentials)
	}

	return s.issue(ctx, user)
}

// RefreshToken issues a new pair for the refresh token's user, picking up
// any role change since the token was signed.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token")
	}

	user, err := s.user(ctx, claims.UserID)
	if err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			return res, failure.Unauthorized("invalid refresh token")
		}

		return res, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) GetProfile(ctx context.Context) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAuthenticated(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	user, err := s.user(ctx, principal.ID)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateProfileRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAuthenticated(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	user, err := s.user(ctx, principal.ID)
	if err != nil {
		return res, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if err = s.checkUsername(ctx, *req.Username, user.ID); err != nil {
			return res, err
		}
	}

	if req.Password != nil {
		hashedPassword, err := password.Hash(*req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return res, fmt.Errorf("failed to hash password: %w", err)
		}

		req.Password = &hashedPassword
	}

	filter := shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)

	updatedFields := shared.TransformFields(req, principal.Username)
	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		if failure.GetCode(err) == http.StatusBadRequest {
			return res, usernameTaken()
		}

		log.Error().Err(err).Msg("failed to update profile")

		return res, fmt.Errorf("failed to update profile: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixUser)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixVenue)
	}()

	applyProfile(&user, req)
	res.FromModel(user)

	return res, nil
}

func applyProfile(user *userModel.User, req dto.UpdateProfileRequest) {
	if req.Firstname != nil {
		user.Firstname = *req.Firstname
	}

	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
}

func (s *serviceImpl) issue(ctx context.Context, user userModel.User) (res dto.AuthResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromModel(user, tokenPair)

	return res, nil
}

func (s *serviceImpl) user(ctx context.Context, id string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found")
	}

	return user, nil
}

func (s *serviceImpl) checkUsername(ctx context.Context, username, excludeID string) error {
	exist, err := s.userRepo.UsernameTaken(ctx, username, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check username")

		return fmt.Errorf("failed to check username: %w", err)
	}

	if exist {
		return usernameTaken()
	}

	return nil
}
