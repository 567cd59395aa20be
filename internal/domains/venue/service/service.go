package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"venuebook/config"
	"venuebook/infras/otel"
	"venuebook/infras/s3"
	bookingModel "venuebook/internal/domains/booking/model"
	bookingRepo "venuebook/internal/domains/booking/repository"
	imageModel "venuebook/internal/domains/image/model"
	imageDto "venuebook/internal/domains/image/model/dto"
	imageRepo "venuebook/internal/domains/image/repository"
	"venuebook/internal/domains/image/storage"
	"venuebook/internal/domains/venue/model"
	"venuebook/internal/domains/venue/model/dto"
	"venuebook/internal/domains/venue/repository"
	"venuebook/permissions"
	"venuebook/shared"
	"venuebook/shared/cache"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllVenue = constant.CachePrefixVenue + "gets"
)

type Venue interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.Filter) (dto.GetVenuesResponse, error)
	GetByOwner(ctx context.Context, req gDto.QueryParams) (dto.GetVenuesResponse, error)
	Get(ctx context.Context, id string) (dto.VenueDetailResponse, error)
	Create(ctx context.Context, req dto.CreateVenueRequest) (dto.VenueResponse, error)
	Update(ctx context.Context, req dto.UpdateVenueRequest, id string) error
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Venue
	imageRepo   imageRepo.Image
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
}

func New(repo repository.Venue, imageRepo imageRepo.Image, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Venue {
	return &serviceImpl{
		repo:        repo,
		imageRepo:   imageRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.Filter) (res dto.GetVenuesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filterGroup := filter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVenue, req, filterGroup)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for venues")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filterGroup)
	if err != nil {
		log.Error().Err(err).Msg("failed to count venues")

		return res, fmt.Errorf("failed to count venues: %w", err)
	}

	venues, err := s.repo.GetAll(ctx, req, filterGroup)
	if err != nil {
		log.Error().Err(err).Msg("failed to get venues")

		return res, fmt.Errorf("failed to get venues: %w", err)
	}

	images, err := s.imagesOf(ctx, venues...)
	if err != nil {
		return res, err
	}

	res.FromModels(venues, images, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venues to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByOwner(ctx context.Context, req gDto.QueryParams) (res dto.GetVenuesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAuthenticated(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.GetAll(ctx, req, dto.Filter{OwnerID: principal.ID})
}

// Get is not cached because it carries the live list of upcoming bookings.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VenueDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	venue, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	images, err := s.imagesOf(ctx, venue)
	if err != nil {
		return res, err
	}

	upcoming := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldVenueID, Value: id, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Value: constant.BookingStatusUpcoming, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	order := gDto.QueryParams{
		SortBy:  bookingModel.TableName + "." + bookingModel.FieldReservationDate,
		SortDir: gDto.SortDirAsc,
	}

	bookings, err := s.bookingRepo.GetAll(ctx, order, upcoming)
	if err != nil {
		log.Error().Err(err).Msg("failed to get upcoming bookings")

		return res, fmt.Errorf("failed to get upcoming bookings: %w", err)
	}

	res.FromModel(venue, images, bookings)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVenueRequest) (res dto.VenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAuthenticated(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	venue := req.ToModel(principal.ID, principal.Username, principal.IsAdmin())

	if err = s.repo.Insert(ctx, venue); err != nil {
		log.Error().Err(err).Msg("failed to create venue")

		return res, fmt.Errorf("failed to create venue: %w", err)
	}

	images := s.attachUploads(ctx, venue.ID, req.Files, principal.Username)

	stored, err := s.repo.Get(ctx, shared.FilterByID(venue.ID, model.FieldID, model.TableName))
	if err != nil || stored.ID == constant.Empty {
		log.Warn().Err(err).Str("venueID", venue.ID).Msg("failed to reload created venue")

		stored = venue
	}

	res.FromModel(stored, images)

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CachePrefixVenue)
	}()

	return res, nil
}

// attachUploads stores each file and records an image row for it. A file that
// fails to upload is skipped and the venue is kept either way.
func (s *serviceImpl) attachUploads(ctx context.Context, venueID string, files []*multipart.FileHeader, createdBy string) []imageModel.Image {
	if len(files) == 0 {
		return nil
	}

	bucketName := s.cfg.External.S3.BucketName
	images := make([]imageModel.Image, 0, len(files))

	for _, header := range files {
		url, err := storage.Upload(ctx, s.s3, bucketName, venueID, header)
		if err != nil {
			log.Warn().Err(err).Str("file", header.Filename).Msg("failed to upload venue image")

			continue
		}

		images = append(images, imageDto.NewImage(venueID, url, createdBy))
	}

	if len(images) == 0 {
		return nil
	}

	if err := s.imageRepo.InsertBulk(ctx, images); err != nil {
		log.Error().Err(err).Str("venueID", venueID).Msg("failed to save venue images")

		return nil
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CachePrefixImage)
	}()

	return images
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateVenueRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateVenueRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	principal, _ := permissions.PrincipalFromContext(ctx)

	venue, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = permissions.RequireOwnerOrAdmin(principal, venue.OwnerID); err != nil {
		return err //nolint:wrapcheck
	}

	if !principal.IsAdmin() {
		req.Status = nil
	}

	updatedFields := shared.TransformFields(req, principal.Username)
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update venue")

		return fmt.Errorf("failed to update venue: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CachePrefixVenue)
	}()

	return nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAdmin(principal); err != nil {
		return err //nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if venue exists")

		return fmt.Errorf("failed to check if venue exists: %w", err)
	}

	if !exist {
		return failure.NotFound("venue not found")
	}

	status := constant.VenueStatusApproved
	updatedFields := shared.TransformFields(dto.UpdateVenueRequest{Status: &status}, principal.Username)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to approve venue")

		return fmt.Errorf("failed to approve venue: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CachePrefixVenue)
	}()

	return nil
}

// Delete removes the venue and its images. Bookings of the venue are kept.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)

	venue, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = permissions.RequireOwnerOrAdmin(principal, venue.OwnerID); err != nil {
		return err //nolint:wrapcheck
	}

	images, err := s.imagesOf(ctx, venue)
	if err != nil {
		return err
	}

	if len(images) > 0 {
		byVenue := shared.FilterByID(id, imageModel.FieldVenueID, imageModel.TableName)
		if err = s.imageRepo.Delete(ctx, byVenue); err != nil {
			log.Error().Err(err).Msg("failed to delete venue images")

			return fmt.Errorf("failed to delete venue images: %w", err)
		}
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete venue")

		return fmt.Errorf("failed to delete venue: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		urls := make([]string, len(images))
		for i, image := range images {
			urls[i] = image.ImageURL
		}

		storage.Remove(c, s.s3, s.cfg.External.S3.BucketName, urls...)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixVenue)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixImage)
	}()

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Venue, error) {
	venue, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return venue, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return venue, failure.NotFound("venue not found")
	}

	return venue, nil
}

func (s *serviceImpl) imagesOf(ctx context.Context, venues ...model.Venue) ([]imageModel.Image, error) {
	if len(venues) == 0 {
		return nil, nil
	}

	ids := make([]string, len(venues))
	for i, venue := range venues {
		ids[i] = venue.ID
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: imageModel.FieldVenueID, Value: ids, Operator: gDto.FilterOperatorIn, Table: imageModel.TableName},
		},
	}

	order := gDto.QueryParams{
		SortBy:  imageModel.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	images, err := s.imageRepo.GetAll(ctx, order, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue images")

		return nil, fmt.Errorf("failed to get venue images: %w", err)
	}

	return images, nil
}
