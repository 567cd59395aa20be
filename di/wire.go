//go:build wireinject
// +build wireinject

package di

import (
	"venuebook/config"
	"venuebook/infras/jwt"
	"venuebook/infras/kafka"
	"venuebook/infras/metrics"
	"venuebook/infras/otel"
	"venuebook/infras/postgres"
	"venuebook/infras/redis"
	"venuebook/infras/s3"
	"venuebook/permissions"
	"venuebook/shared/cache"
	"venuebook/transport/http"
	"venuebook/transport/http/middleware"
	"venuebook/transport/http/router"

	"github.com/google/wire"

	authService "venuebook/internal/domains/auth/service"
	bookingRepository "venuebook/internal/domains/booking/repository"
	bookingService "venuebook/internal/domains/booking/service"
	districtRepository "venuebook/internal/domains/district/repository"
	districtService "venuebook/internal/domains/district/service"
	imageRepository "venuebook/internal/domains/image/repository"
	imageService "venuebook/internal/domains/image/service"
	userRepository "venuebook/internal/domains/user/repository"
	userService "venuebook/internal/domains/user/service"
	venueRepository "venuebook/internal/domains/venue/repository"
	venueService "venuebook/internal/domains/venue/service"
	authHandler "venuebook/internal/handlers/auth"
	bookingHandler "venuebook/internal/handlers/booking"
	districtHandler "venuebook/internal/handlers/district"
	imageHandler "venuebook/internal/handlers/image"
	userHandler "venuebook/internal/handlers/user"
	venueHandler "venuebook/internal/handlers/venue"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	userRepository.New,
	districtRepository.New,
	venueRepository.New,
	imageRepository.New,
	bookingRepository.New,
)

var domains = wire.NewSet(
	authService.New,
	userService.New,
	districtService.New,
	venueService.New,
	imageService.New,
	bookingService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	districtHandler.New,
	venueHandler.New,
	imageHandler.New,
	bookingHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
