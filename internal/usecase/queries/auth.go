package queries

import (
	"context"

	"github.com/google/uuid"
)

// AdminAccountView carries the credential row consumed by login. The hash
// never leaves the usecase layer.
type AdminAccountView struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	Active       bool
}

type AdminReadStore interface {
	FindByEmail(ctx context.Context, email string) (*AdminAccountView, error)
}
