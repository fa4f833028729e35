package store

import (
	"context"
	"errors"

	"outlay/internal/model"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
)

// Store persists users and their expenses. Implementations perform no
// authorization: callers pass a user id already resolved by the auth layer,
// and every expense read or write is scoped to that id.
type Store interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*model.User, error)

	CreateExpense(ctx context.Context, e model.Expense) (model.Expense, error)
	ListExpenses(ctx context.Context, userID string) ([]model.Expense, error)
}
