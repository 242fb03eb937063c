package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth"

	"github.com/cardapp/card-services/internal/cardsvc/models"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed payload, or an expired token. Callers only need to know the
// token is unusable.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 1 * time.Hour

// Identity is the decoded payload of a verified token.
type Identity struct {
	UserID   int64
	Username string
}

// TokenService issues and verifies HS256 bearer tokens. It keeps no state
// between calls; a token is checked purely against the secret and the clock.
type TokenService struct {
	tokenAuth *jwtauth.JWTAuth
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{
		tokenAuth: jwtauth.New("HS256", secret, nil),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Issue signs a token for the principal, expiring ttl after issuance.
func (s *TokenService) Issue(user models.User) (string, error) {
	now := s.now()
	_, tokenString, err := s.tokenAuth.Encode(map[string]interface{}{
		"user_id":  user.UserId,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the embedded identity.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	token, err := jwtauth.VerifyToken(s.tokenAuth, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, ok := claimInt64(token.PrivateClaims()["user_id"])
	if !ok {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}
	username, ok := token.PrivateClaims()["username"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing username claim", ErrInvalidToken)
	}

	return &Identity{UserID: userID, Username: username}, nil
}

// claimInt64 normalizes a numeric private claim; JSON round-trips integers
// as float64.
func claimInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
