package http

import (
	"net/http"

	"github.com/MKhiriev/go-marketplace/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const welcomeMessage = "welcome to the marketplace"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.welcome)
		r.Post("/user/signup", h.signup)
		r.Post("/user/login", h.login)
		r.Get("/offers", h.searchOffers)
		r.Get("/offers/{id}", h.getOffer)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/offer/publish", h.publishOffer)
		r.Put("/offers/{id}", h.updateOffer)
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(routeNotFound)

	return router
}

func (h *Handler) welcome(w http.ResponseWriter, r *http.Request) {
	utils.WriteMessage(w, welcomeMessage, http.StatusOK)
}
