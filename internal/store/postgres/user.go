package postgres

import (
	"context"
	"errors"
	"strings"

	"outlay/internal/model"
	"outlay/internal/store"

	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	var out model.User
	err := s.pool.QueryRow(ctx, `
		insert into public.users (identifier, secret_hash)
		values ($1, $2)
		returning id::text, identifier, secret_hash, created_at, updated_at
	`, strings.TrimSpace(u.Identifier), u.SecretHash).Scan(
		&out.ID,
		&out.Identifier,
		&out.SecretHash,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return model.User{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) GetUserByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx, `
		select id::text, identifier, secret_hash, created_at, updated_at
		from public.users
		where lower(identifier) = lower($1)
	`, identifier).Scan(
		&u.ID,
		&u.Identifier,
		&u.SecretHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, mapPgErr(err)
	}
	return &u, nil
}
