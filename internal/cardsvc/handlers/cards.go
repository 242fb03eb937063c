package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
)

type cardRequest struct {
	CardName string `json:"card_name"`
	CardPic  string `json:"card_pic"`
}

// decodeCardRequest validates the body before any store call is made.
func decodeCardRequest(r *http.Request) (cardRequest, bool) {
	var req cardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return cardRequest{}, false
	}
	if req.CardName == "" || req.CardPic == "" {
		return cardRequest{}, false
	}
	return req, true
}

func cardID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *Handler) ListCardsHandler(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.List(r.Context())
	if err != nil {
		log.Errorf("error fetching cards: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

func (h *Handler) AddCardHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCardRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "card_name and card_pic are required")
		return
	}

	card, err := h.cards.Create(r.Context(), req.CardName, req.CardPic)
	if err != nil {
		log.Errorf("error adding card: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, card)
}

func (h *Handler) UpdateCardHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	req, ok := decodeCardRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "card_name and card_pic are required")
		return
	}

	affected, err := h.cards.Update(r.Context(), id, req.CardName, req.CardPic)
	if err != nil {
		log.Errorf("error updating card %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if affected == 0 {
		writeError(w, http.StatusNotFound, "Card not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Card updated",
		"affectedRows": affected,
	})
}

func (h *Handler) DeleteCardHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	affected, err := h.cards.Delete(r.Context(), id)
	if err != nil {
		log.Errorf("error deleting card %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if affected == 0 {
		writeError(w, http.StatusNotFound, "Card not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Card deleted",
		"affectedRows": affected,
	})
}
