package handlers

import (
	"github.com/go-chi/chi"

	"github.com/cardapp/card-services/internal/cardsvc/auth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	// public routes
	r.Get("/health", h.HealthHandler)
	r.Post("/login", h.LoginHandler)

	// Secure routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Verifier(h.tokens))

		r.Get("/allcards", h.ListCardsHandler)
		r.Post("/addcard", h.AddCardHandler)
		r.Put("/updatecard/{id}", h.UpdateCardHandler)
		r.Delete("/deletecard/{id}", h.DeleteCardHandler)
	})
}
