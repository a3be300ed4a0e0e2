package router

import (
	"leonine/internal/handlers/auth"
	"leonine/internal/handlers/booking"
	"leonine/internal/handlers/category"
	"leonine/internal/handlers/feedback"
	"leonine/internal/handlers/gallery"
	"leonine/internal/handlers/room"
	"leonine/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	User     user.Handler
	Category category.Handler
	Room     room.Handler
	Booking  booking.Handler
	Feedback feedback.Handler
	Gallery  gallery.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Category.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Feedback.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
