package models

// Card represents a row in the cards table. The store assigns the id;
// card_name and card_pic are required at the API boundary.
type Card struct {
	ID       int64  `json:"id"` // Primary key
	CardName string `json:"card_name"`
	CardPic  string `json:"card_pic"` // URL or media reference
}
