package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/cardapp/card-services/internal/cardsvc/auth"
	"github.com/cardapp/card-services/internal/cardsvc/service"
)

type Handler struct {
	cards  *service.CardService
	creds  auth.CredentialStore
	tokens *auth.TokenService
}

func NewHandler(cards *service.CardService, creds auth.CredentialStore, tokens *auth.TokenService) *Handler {
	return &Handler{
		cards:  cards,
		creds:  creds,
		tokens: tokens,
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "card service is running"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler checks the credentials and answers with a fresh bearer
// token. This is the only route that can mint one.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.creds.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		log.Errorf("error authenticating %q: %v", req.Username, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.tokens.Issue(*user)
	if err != nil {
		log.Errorf("error issuing token for %q: %v", user.Username, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
