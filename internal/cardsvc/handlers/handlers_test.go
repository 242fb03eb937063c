package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/require"

	"github.com/cardapp/card-services/internal/cardsvc/auth"
	"github.com/cardapp/card-services/internal/cardsvc/models"
	"github.com/cardapp/card-services/internal/cardsvc/service"
)

// fakeCardStore implements service.CardStorage in memory so handler tests
// run without a database.
type fakeCardStore struct {
	cards  []models.Card
	nextID int64
	calls  int
	err    error
}

func (f *fakeCardStore) List(ctx context.Context) ([]models.Card, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Card{}, f.cards...), nil
}

func (f *fakeCardStore) Create(ctx context.Context, cardName, cardPic string) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.cards = append(f.cards, models.Card{ID: f.nextID, CardName: cardName, CardPic: cardPic})
	return f.nextID, nil
}

func (f *fakeCardStore) Update(ctx context.Context, id int64, cardName, cardPic string) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	for i := range f.cards {
		if f.cards[i].ID == id {
			f.cards[i].CardName = cardName
			f.cards[i].CardPic = cardPic
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeCardStore) Delete(ctx context.Context, id int64) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	for i := range f.cards {
		if f.cards[i].ID == id {
			f.cards = append(f.cards[:i], f.cards[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type testEnv struct {
	router *chi.Mux
	store  *fakeCardStore
	tokens *auth.TokenService
}

func newTestEnv() *testEnv {
	store := &fakeCardStore{}
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	creds := auth.NewStaticCredentialStore(models.User{UserId: 1, Username: "admin", Password: "admin123"})

	h := NewHandler(service.NewCardService(store), creds, tokens)
	r := chi.NewRouter()
	h.SetRoutes(r)

	return &testEnv{router: r, store: store, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid username or password")
}

func TestLogin_BadBody(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/allcards", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/allcards", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	require.Zero(t, env.store.calls, "store must not be reached without a valid token")
}

func TestAddCard_Validation(t *testing.T) {
	env := newTestEnv()
	token := env.login(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "empty card_name", body: map[string]string{"card_name": "", "card_pic": "http://x/a.png"}},
		{name: "missing card_pic", body: map[string]string{"card_name": "Ace"}},
		{name: "empty body", body: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/addcard", token, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), "card_name and card_pic are required")
		})
	}

	require.Zero(t, env.store.calls, "validation failures must not reach the store")
}

func TestCreateThenList_ContainsCardOnce(t *testing.T) {
	env := newTestEnv()
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/addcard", token, map[string]string{
		"card_name": "Ace",
		"card_pic":  "http://x/ace.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Card
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotZero(t, created.ID)

	rec = env.do(t, http.MethodGet, "/allcards", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cards []models.Card
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cards))

	found := 0
	for _, c := range cards {
		if c.ID == created.ID {
			found++
			require.Equal(t, "Ace", c.CardName)
			require.Equal(t, "http://x/ace.png", c.CardPic)
		}
	}
	require.Equal(t, 1, found, "created card must appear exactly once")
}

func TestUpdateCard_NotFound(t *testing.T) {
	env := newTestEnv()
	token := env.login(t)

	rec := env.do(t, http.MethodPut, "/updatecard/99", token, map[string]string{
		"card_name": "Ace",
		"card_pic":  "http://x/ace.png",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Card not found")
	require.Empty(t, env.store.cards, "update of a nonexistent id must not mutate the store")
}

func TestUpdateCard_BadID(t *testing.T) {
	env := newTestEnv()
	token := env.login(t)

	rec := env.do(t, http.MethodPut, "/updatecard/abc", token, map[string]string{
		"card_name": "Ace",
		"card_pic":  "http://x/ace.png",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCard_Success(t *testing.T) {
	env := newTestEnv()
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/addcard", token, map[string]string{
		"card_name": "Ace",
		"card_pic":  "http://x/ace.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Card
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = env.do(t, http.MethodPut, "/updatecard/1", token, map[string]string{
		"card_name": "King",
		"card_pic":  "http://x/king.png",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message      string `json:"message"`
		AffectedRows int64  `json:"affectedRows"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "Card updated", resp.Message)
	require.Equal(t, int64(1), resp.AffectedRows)
}

func TestDeleteCard_Idempotent(t *testing.T) {
	env := newTestEnv()
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/addcard", token, map[string]string{
		"card_name": "Ace",
		"card_pic":  "http://x/ace.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, "/deletecard/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Card deleted")

	// second delete of the same id
	rec = env.do(t, http.MethodDelete, "/deletecard/1", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCards_StoreError(t *testing.T) {
	env := newTestEnv()
	token := env.login(t)

	env.store.err = errors.New("connection refused")
	rec := env.do(t, http.MethodGet, "/allcards", token, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "internal server error")
	require.NotContains(t, rec.Body.String(), "connection refused", "store detail must not leak to the client")
}

func TestExpiredToken_Rejected(t *testing.T) {
	env := newTestEnv()

	expired := auth.NewTokenService([]byte("test-secret"), -time.Minute)
	token, err := expired.Issue(models.User{UserId: 1, Username: "admin"})
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/allcards", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestScenario_LoginAddList(t *testing.T) {
	env := newTestEnv()

	token := env.login(t)

	rec := env.do(t, http.MethodGet, "/allcards", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cards []models.Card
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cards))
	require.Empty(t, cards)

	rec = env.do(t, http.MethodPost, "/addcard", token, map[string]string{
		"card_name": "Ace",
		"card_pic":  "http://x/ace.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/allcards", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cards = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cards))
	require.Len(t, cards, 1)
	require.Equal(t, "Ace", cards[0].CardName)
}
