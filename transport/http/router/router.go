package router

import (
	"github.com/go-chi/chi/v5"

	"shuttle/internal/handlers/auth"
	"shuttle/internal/handlers/court"
	"shuttle/internal/handlers/reservation"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Court       court.Handler
	Reservation reservation.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Court.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
