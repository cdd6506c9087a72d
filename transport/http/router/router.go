package router

import (
	"roomify/internal/handlers/analytics"
	"roomify/internal/handlers/booking"
	"roomify/internal/handlers/notification"
	"roomify/internal/handlers/room"
	"roomify/internal/handlers/user"
	"roomify/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	User         user.Handler
	Room         room.Handler
	Booking      booking.Handler
	Notification notification.Handler
	Analytics    analytics.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Identity       middleware.IdentityMiddleware
}

// SetupRoutes mounts every domain under /v1. All of them require a known caller.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Identity.Identify)

		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
		r.DomainHandlers.Analytics.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, identity middleware.IdentityMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Identity:       identity,
	}
}
