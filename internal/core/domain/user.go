package domain

// User models a registered account. Usernames are stored lowercase; callers
// normalize before any lookup or insert.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
