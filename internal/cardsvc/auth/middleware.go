package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	ErrMissingCredential   = errors.New("authorization header required")
	ErrMalformedCredential = errors.New("malformed bearer credential")
)

type ctxKey int

const identityKey ctxKey = 0

// WithIdentity returns a context carrying the verified identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the identity the Verifier middleware stored.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

// Verifier gates a route group on a bearer token. Missing header, bad
// scheme and failed verification are distinct errors internally but all
// answer 401 to the client.
func Verifier(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential, err := bearerCredential(r)
			if err != nil {
				log.Infof("rejected %s %s: %v", r.Method, r.URL.Path, err)
				unauthorized(w, err)
				return
			}

			identity, err := tokens.Verify(credential)
			if err != nil {
				log.Infof("rejected %s %s: %v", r.Method, r.URL.Path, err)
				unauthorized(w, ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// bearerCredential extracts the token from the Authorization header,
// distinguishing an absent header from a non-bearer or empty one.
func bearerCredential(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingCredential
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMalformedCredential
	}

	return parts[1], nil
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
