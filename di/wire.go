//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"shuttle/config"
	"shuttle/infras/jwt"
	"shuttle/infras/kafka"
	"shuttle/infras/otel"
	"shuttle/infras/postgres"
	"shuttle/infras/redis"
	"shuttle/infras/s3"
	"shuttle/internal/events"
	"shuttle/permissions"
	"shuttle/shared/cache"
	"shuttle/transport/http"
	"shuttle/transport/http/middleware"
	"shuttle/transport/http/router"

	authService "shuttle/internal/domains/auth/service"
	courtRepository "shuttle/internal/domains/court/repository"
	courtService "shuttle/internal/domains/court/service"
	reservationRepository "shuttle/internal/domains/reservation/repository"
	reservationService "shuttle/internal/domains/reservation/service"
	userRepository "shuttle/internal/domains/user/repository"

	authHandler "shuttle/internal/handlers/auth"
	courtHandler "shuttle/internal/handlers/court"
	reservationHandler "shuttle/internal/handlers/reservation"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var courtDomain = wire.NewSet(
	courtRepository.New,
	courtService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
	events.NewPublisher,
)

var domains = wire.NewSet(
	authDomain,
	courtDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	courtHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
