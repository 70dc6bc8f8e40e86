package users

import "time"

// User is a credential record: a principal (email) and its hashed secret.
// Records are never mutated after creation and there is no deletion path.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
