package users

import (
	"context"
)

// Repository is the credential-store capability. Create must be atomic with
// respect to the existence check: concurrent signups for the same email must
// yield exactly one success and common.ErrorAlreadyExists for the rest.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
