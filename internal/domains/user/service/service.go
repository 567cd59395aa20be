package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"venuebook/config"
	"venuebook/infras/otel"
	"venuebook/internal/domains/user/model"
	"venuebook/internal/domains/user/model/dto"
	"venuebook/internal/domains/user/repository"
	venueModel "venuebook/internal/domains/venue/model"
	venueRepo "venuebook/internal/domains/venue/repository"
	"venuebook/permissions"
	"venuebook/shared"
	"venuebook/shared/cache"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/failure"
	"venuebook/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllUser = constant.CachePrefixUser + "gets"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserDetailResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.User
	venueRepo venueRepo.Venue
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.User, venueRepo venueRepo.Venue, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func usernameTaken() error {
	return failure.Conflict("username already exists")
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAdmin(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.checkUsername(ctx, req.Username, constant.Empty); err != nil {
		return res, err
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(principal.Username, hashedPassword)

	if err = s.repo.Insert(ctx, user); err != nil {
		if failure.GetCode(err) == http.StatusBadRequest {
			return res, usernameTaken()
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAdmin(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	filter := gDto.FilterGroup{}
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

// Get returns the user together with the venues they own.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAdmin(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	user, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	order := gDto.QueryParams{
		SortBy:  venueModel.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	venues, err := s.venueRepo.GetAll(ctx, order, shared.FilterByID(id, venueModel.FieldOwnerID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user venues")

		return res, fmt.Errorf("failed to get user venues: %w", err)
	}

	res.FromModel(user, venues)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateUserRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAdmin(principal); err != nil {
		return err //nolint:wrapcheck
	}

	user, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if req.Username != nil && *req.Username != user.Username {
		if err = s.checkUsername(ctx, *req.Username, id); err != nil {
			return err
		}
	}

	if req.Password != nil {
		hashedPassword, err := password.Hash(*req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return fmt.Errorf("failed to hash password: %w", err)
		}

		req.Password = &hashedPassword
	}

	updatedFields := shared.TransformFields(req, principal.Username)
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if failure.GetCode(err) == http.StatusBadRequest {
			return usernameTaken()
		}

		log.Error().Err(err).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// Delete removes the user only. Venues and bookings they own are kept.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAdmin(principal); err != nil {
		return err //nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound("user not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
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
	exist, err := s.repo.UsernameTaken(ctx, username, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check username")

		return fmt.Errorf("failed to check username: %w", err)
	}

	if exist {
		return usernameTaken()
	}

	return nil
}

// invalidate drops user lists and venue caches, which embed owner names.
func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixUser)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixVenue)
	}()
}
