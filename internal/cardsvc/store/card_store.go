package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cardapp/card-services/internal/cardsvc/models"
)

// queryTimeout bounds every statement so a stalled connection cannot
// suspend a request indefinitely.
const queryTimeout = 5 * time.Second

type CardStore struct {
	db *pgxpool.Pool
}

func NewCardStore(db *pgxpool.Pool) *CardStore {
	return &CardStore{db: db}
}

func (s *CardStore) List(ctx context.Context) ([]models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT id, card_name, card_pic
		FROM cards
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.CardName, &c.CardPic); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read card rows: %w", err)
	}

	return cards, nil
}

func (s *CardStore) Create(ctx context.Context, cardName, cardPic string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO cards (card_name, card_pic)
		VALUES ($1, $2)
		RETURNING id;
	`, cardName, cardPic).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not create card: %w", err)
	}

	return id, nil
}

// Update rewrites both fields of the card and reports the affected-count;
// zero means the id does not exist.
func (s *CardStore) Update(ctx context.Context, id int64, cardName, cardPic string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.Exec(ctx, `
		UPDATE cards
		SET card_name = $1, card_pic = $2
		WHERE id = $3
	`, cardName, cardPic, id)
	if err != nil {
		return 0, fmt.Errorf("could not update card: %w", err)
	}

	return res.RowsAffected(), nil
}

func (s *CardStore) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("could not delete card: %w", err)
	}

	return res.RowsAffected(), nil
}
