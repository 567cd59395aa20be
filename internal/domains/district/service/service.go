package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"venuebook/config"
	"venuebook/infras/otel"
	"venuebook/internal/domains/district/model"
	"venuebook/internal/domains/district/model/dto"
	"venuebook/internal/domains/district/repository"
	venueDto "venuebook/internal/domains/venue/model/dto"
	venueService "venuebook/internal/domains/venue/service"
	"venuebook/permissions"
	"venuebook/shared"
	"venuebook/shared/cache"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllDistrict = constant.CachePrefixDistrict + "gets"
)

type District interface {
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetDistrictsResponse, error)
	Get(ctx context.Context, id string) (dto.DistrictDetailResponse, error)
	GetVenues(ctx context.Context, req gDto.QueryParams, id string) (venueDto.GetVenuesResponse, error)
	Create(ctx context.Context, req dto.CreateDistrictRequest) (dto.DistrictResponse, error)
	Update(ctx context.Context, req dto.UpdateDistrictRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo   repository.District
	venues venueService.Venue
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(repo repository.District, venues venueService.Venue, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) District {
	return &serviceImpl{
		repo:   repo,
		venues: venues,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

func nameTaken() error {
	return failure.Conflict("district name already exists")
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetDistrictsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{}
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDistrict, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for districts")

		return res, nil
	}

	if req.SortBy == constant.Empty {
		req.SortBy = model.TableName + "." + model.FieldName
		req.SortDir = gDto.SortDirAsc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count districts")

		return res, fmt.Errorf("failed to count districts: %w", err)
	}

	districts, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get districts")

		return res, fmt.Errorf("failed to get districts: %w", err)
	}

	res.FromModels(districts, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save districts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DistrictDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	district, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	venues, err := s.venues.GetAll(ctx, gDto.QueryParams{}, venueDto.Filter{DistrictID: id})
	if err != nil {
		return res, fmt.Errorf("failed to get district venues: %w", err)
	}

	res.FromModel(district)
	res.Venues = venues.Venues

	if res.Venues == nil {
		res.Venues = []venueDto.VenueResponse{}
	}

	return res, nil
}

// GetVenues lists the approved venues of the district.
func (s *serviceImpl) GetVenues(ctx context.Context, req gDto.QueryParams, id string) (res venueDto.GetVenuesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetVenues")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.get(ctx, id); err != nil {
		return res, err
	}

	res, err = s.venues.GetAll(ctx, req, venueDto.Filter{DistrictID: id, Status: constant.VenueStatusApproved})
	if err != nil {
		return res, fmt.Errorf("failed to get district venues: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDistrictRequest) (res dto.DistrictResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAdmin(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.checkName(ctx, req.Name, constant.Empty); err != nil {
		return res, err
	}

	district := req.ToModel(principal.Username)

	if err = s.repo.Insert(ctx, district); err != nil {
		if failure.GetCode(err) == http.StatusBadRequest {
			return res, nameTaken()
		}

		log.Error().Err(err).Msg("failed to create district")

		return res, fmt.Errorf("failed to create district: %w", err)
	}

	res.FromModel(district)

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CachePrefixDistrict)
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateDistrictRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAdmin(principal); err != nil {
		return err //nolint:wrapcheck
	}

	if _, err = s.get(ctx, id); err != nil {
		return err
	}

	if err = s.checkName(ctx, req.Name, id); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, principal.Username)
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if failure.GetCode(err) == http.StatusBadRequest {
			return nameTaken()
		}

		log.Error().Err(err).Msg("failed to update district")

		return fmt.Errorf("failed to update district: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// Delete removes the district only. Venues that referenced it are kept.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAdmin(principal); err != nil {
		return err //nolint:wrapcheck
	}

	if _, err = s.get(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete district")

		return fmt.Errorf("failed to delete district: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.District, error) {
	district, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get district")

		return district, fmt.Errorf("failed to get district: %w", err)
	}

	if district.ID == constant.Empty {
		return district, failure.NotFound("district not found")
	}

	return district, nil
}

func (s *serviceImpl) checkName(ctx context.Context, name, excludeID string) error {
	filters := []any{
		gDto.Filter{Field: model.FieldName, Value: name, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	exist, err := s.repo.Exist(ctx, gDto.And(filters...))
	if err != nil {
		log.Error().Err(err).Msg("failed to check district name")

		return fmt.Errorf("failed to check district name: %w", err)
	}

	if exist {
		return nameTaken()
	}

	return nil
}

// invalidate drops district and venue caches; venue listings carry the
// district name.
func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixDistrict)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixVenue)
	}()
}
