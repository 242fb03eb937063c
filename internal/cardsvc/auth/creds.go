package auth

import (
	"errors"

	"github.com/cardapp/card-services/internal/cardsvc/models"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// CredentialStore checks a login attempt against known principals. The
// interface exists so the static single-user store can be swapped for a
// hashed or database-backed one without touching the token service or the
// request middleware.
type CredentialStore interface {
	Authenticate(username, password string) (*models.User, error)
}

// StaticCredentialStore holds the one principal configured at startup.
type StaticCredentialStore struct {
	user models.User
}

func NewStaticCredentialStore(user models.User) *StaticCredentialStore {
	return &StaticCredentialStore{user: user}
}

// Authenticate compares both fields exactly, case-sensitive.
func (s *StaticCredentialStore) Authenticate(username, password string) (*models.User, error) {
	if username != s.user.Username || password != s.user.Password {
		return nil, ErrInvalidCredentials
	}

	u := s.user
	return &u, nil
}
