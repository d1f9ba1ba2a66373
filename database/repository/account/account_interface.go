package accountRepo

import (
	"context"
	"errors"

	"staywise/models"
)

var (
	// ErrNotFound is returned when no account matches the email.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail marks a registration with an already-taken email.
	ErrDuplicateEmail = errors.New("account email already registered")
)

// AccountRepository defines data access for client and admin accounts.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ListByRole(ctx context.Context, role string) ([]models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, email string) error
}
