package models

// User is the principal a login is checked against. There is exactly one,
// configured at startup and immutable for the process lifetime.
type User struct {
	UserId   int64  `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
