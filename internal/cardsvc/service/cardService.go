package service

import (
	"context"

	"github.com/cardapp/card-services/internal/cardsvc/models"
)

// CardStorage is what the service needs from the cards table. Satisfied by
// store.CardStore in production and by fakes in handler tests.
type CardStorage interface {
	List(ctx context.Context) ([]models.Card, error)
	Create(ctx context.Context, cardName, cardPic string) (int64, error)
	Update(ctx context.Context, id int64, cardName, cardPic string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type CardService struct {
	store CardStorage
}

func NewCardService(store CardStorage) *CardService {
	return &CardService{store: store}
}

func (s *CardService) List(ctx context.Context) ([]models.Card, error) {
	return s.store.List(ctx)
}

func (s *CardService) Create(ctx context.Context, cardName, cardPic string) (models.Card, error) {
	id, err := s.store.Create(ctx, cardName, cardPic)
	if err != nil {
		return models.Card{}, err
	}
	return models.Card{ID: id, CardName: cardName, CardPic: cardPic}, nil
}

func (s *CardService) Update(ctx context.Context, id int64, cardName, cardPic string) (int64, error) {
	return s.store.Update(ctx, id, cardName, cardPic)
}

func (s *CardService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.store.Delete(ctx, id)
}
