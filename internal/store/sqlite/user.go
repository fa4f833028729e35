package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"outlay/internal/model"
	"outlay/internal/store"

	"github.com/google/uuid"
)

func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	now := time.Now().UTC()
	created := model.User{
		ID:         uuid.NewString(),
		Identifier: strings.TrimSpace(u.Identifier),
		SecretHash: u.SecretHash,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, identifier, secret_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, created.ID, created.Identifier, created.SecretHash, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return model.User{}, mapSQLiteErr(err)
	}
	return created, nil
}

func (s *Store) GetUserByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	// The identifier column collates NOCASE, so this match is case-insensitive.
	row := s.db.QueryRowContext(ctx, `
		SELECT id, identifier, secret_hash, created_at, updated_at
		FROM users
		WHERE identifier = ?
	`, identifier)

	var u model.User
	if err := row.Scan(&u.ID, &u.Identifier, &u.SecretHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
