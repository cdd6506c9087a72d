//go:build wireinject
// +build wireinject

package di

import (
	"roomify/config"
	"roomify/infras/otel"
	"roomify/infras/redis"
	"roomify/internal/events"
	"roomify/internal/seed"
	"roomify/permissions"
	"roomify/shared/cache"
	"roomify/transport/http"
	"roomify/transport/http/middleware"
	"roomify/transport/http/router"

	analyticsService "roomify/internal/domains/analytics/service"
	bookingService "roomify/internal/domains/booking/service"
	notificationService "roomify/internal/domains/notification/service"
	roomService "roomify/internal/domains/room/service"
	userService "roomify/internal/domains/user/service"

	analyticsHandler "roomify/internal/handlers/analytics"
	bookingHandler "roomify/internal/handlers/booking"
	notificationHandler "roomify/internal/handlers/notification"
	roomHandler "roomify/internal/handlers/room"
	userHandler "roomify/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	seed.NewStore,
	events.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewIdentityMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewCounter,
)

var domains = wire.NewSet(
	userService.New,
	roomService.New,
	notificationService.New,
	bookingService.New,
	analyticsService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	notificationHandler.New,
	analyticsHandler.New,
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
