package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"venuebook/config"
	"venuebook/infras/otel"
	"venuebook/infras/s3"
	"venuebook/internal/domains/image/model"
	"venuebook/internal/domains/image/model/dto"
	"venuebook/internal/domains/image/repository"
	"venuebook/internal/domains/image/storage"
	venueModel "venuebook/internal/domains/venue/model"
	venueRepo "venuebook/internal/domains/venue/repository"
	"venuebook/permissions"
	"venuebook/shared"
	"venuebook/shared/cache"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllImage     = constant.CachePrefixImage + "gets"
	cacheGetImage        = constant.CachePrefixImage + "get"
	cacheGetVenueImages  = constant.CachePrefixImage + "venue"
	defaultImageSortBy   = model.TableName + "." + constant.FieldCreatedAt
	defaultImageSortDir  = gDto.SortDirAsc
	errVenueNotFoundText = "venue not found"
)

type Image interface {
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetImagesResponse, error)
	GetByVenue(ctx context.Context, req gDto.QueryParams, venueID string) (dto.GetImagesResponse, error)
	Get(ctx context.Context, id string) (dto.ImageResponse, error)
	Create(ctx context.Context, req dto.CreateImageRequest) (dto.ImageResponse, error)
	Upload(ctx context.Context, req dto.UploadImageRequest) (dto.ImageResponse, error)
	Update(ctx context.Context, req dto.UpdateImageRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Image
	venueRepo venueRepo.Venue
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
}

func New(repo repository.Image, venueRepo venueRepo.Venue, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Image {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAdmin(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.list(ctx, cacheGetAllImage, req, gDto.FilterGroup{})
}

func (s *serviceImpl) GetByVenue(ctx context.Context, req gDto.QueryParams, venueID string) (res dto.GetImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByVenue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err := s.venueRepo.Exist(ctx, shared.FilterByID(venueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if venue exists")

		return res, fmt.Errorf("failed to check if venue exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound(errVenueNotFoundText)
	}

	return s.list(ctx, cacheGetVenueImages, req, shared.FilterByID(venueID, model.FieldVenueID, model.TableName))
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetImage, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for image")

		return res, nil
	}

	image, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(image)

	go func() {
		c := context.WithoutCancel(ctx)
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save image to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateImageRequest) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = s.authorize(ctx, principal, req.VenueID); err != nil {
		return res, err
	}

	image := req.ToModel(principal.Username)

	if err = s.insert(ctx, image); err != nil {
		return res, err
	}

	res.FromModel(image)

	return res, nil
}

// Upload stores the file in the bucket and records it as an image of the venue.
func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadImageRequest) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = s.authorize(ctx, principal, req.VenueID); err != nil {
		return res, err
	}

	bucketName := s.cfg.External.S3.BucketName

	url, err := storage.Upload(ctx, s.s3, bucketName, req.VenueID, req.Image)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	image := dto.NewImage(req.VenueID, url, principal.Username)

	if err = s.insert(ctx, image); err != nil {
		go storage.Remove(context.WithoutCancel(ctx), s.s3, bucketName, url)

		return res, err
	}

	res.FromModel(image)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateImageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateImageRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	principal, _ := permissions.PrincipalFromContext(ctx)

	image, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorize(ctx, principal, image.VenueID); err != nil {
		return err
	}

	// moving an image requires ownership of the target venue as well
	if req.VenueID != nil && *req.VenueID != image.VenueID {
		if err = s.authorize(ctx, principal, *req.VenueID); err != nil {
			return err
		}
	}

	updatedFields := shared.TransformFields(req, principal.Username)
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update image")

		return fmt.Errorf("failed to update image: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// Delete removes the image row and, best-effort, the stored object.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)

	image, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorize(ctx, principal, image.VenueID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete image")

		return fmt.Errorf("failed to delete image: %w", err)
	}

	go storage.Remove(context.WithoutCancel(ctx), s.s3, s.cfg.External.S3.BucketName, image.ImageURL)

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) list(ctx context.Context, cachePrefix string, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetImagesResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cachePrefix, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for images")

		return res, nil
	}

	if req.SortBy == constant.Empty {
		req.SortBy = defaultImageSortBy
		req.SortDir = defaultImageSortDir
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count images")

		return res, fmt.Errorf("failed to count images: %w", err)
	}

	images, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get images")

		return res, fmt.Errorf("failed to get images: %w", err)
	}

	res.FromModels(images, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save images to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Image, error) {
	image, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get image")

		return image, fmt.Errorf("failed to get image: %w", err)
	}

	if image.ID == constant.Empty {
		return image, failure.NotFound("image not found")
	}

	return image, nil
}

// authorize re-fetches the venue and lets only its owner or an admin through.
func (s *serviceImpl) authorize(ctx context.Context, principal permissions.Principal, venueID string) error {
	if err := permissions.RequireAuthenticated(principal); err != nil {
		return err //nolint:wrapcheck
	}

	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(venueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return failure.NotFound(errVenueNotFoundText)
	}

	return permissions.RequireOwnerOrAdmin(principal, venue.OwnerID) //nolint:wrapcheck
}

func (s *serviceImpl) insert(ctx context.Context, image model.Image) error {
	if err := s.repo.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to create image")

		return fmt.Errorf("failed to create image: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// invalidate drops image caches and venue caches, which embed image URLs.
func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixImage)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixVenue)
	}()
}
