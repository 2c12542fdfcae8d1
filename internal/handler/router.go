package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the full HTTP API on top of the services.
func NewRouter(rooms *service.RoomService, users *service.UserService, bookings *service.BookingService) http.Handler {
	roomHandler := NewRoomHandler(rooms)
	userHandler := NewUserHandler(users)
	bookingHandler := NewBookingHandler(bookings)
	authenticate := Authenticate(users)

	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger)                  // access log
	r.Use(CORS)                    // permissive CORS for the browser client

	// Health
	r.Get("/health", HealthCheck)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/profile", userHandler.Profile)
			r.Put("/profile", userHandler.UpdateProfile)
			r.Put("/wallet", userHandler.TopUp)
			r.With(RequireAdmin).Get("/", userHandler.List)
		})
	})

	r.Route("/api/rooms", func(r chi.Router) {
		r.Get("/", roomHandler.List)
		r.Get("/{id}", roomHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, RequireAdmin)
			r.Post("/", roomHandler.Create)
			r.Put("/{id}", roomHandler.Update)
			r.Delete("/{id}", roomHandler.Delete)
		})
	})

	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", bookingHandler.Create)
		r.Get("/my", bookingHandler.ListMine)
		r.Get("/{id}", bookingHandler.Get)
		r.Put("/{id}/cancel", bookingHandler.Cancel)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Get("/", bookingHandler.ListAll)
			r.Get("/stats", bookingHandler.Stats)
			r.Put("/{id}/status", bookingHandler.SetStatus)
		})
	})

	return r
}
