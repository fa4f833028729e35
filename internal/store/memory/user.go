package memory

import (
	"context"
	"strings"
	"time"

	"outlay/internal/model"
	"outlay/internal/store"

	"github.com/google/uuid"
)

func (s *Store) CreateUser(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identifier := strings.TrimSpace(u.Identifier)
	if identifier == "" {
		return model.User{}, errWithCode("identifier_required")
	}
	if u.SecretHash == "" {
		return model.User{}, errWithCode("secret_hash_required")
	}

	for _, existing := range s.users {
		if strings.EqualFold(existing.Identifier, identifier) {
			return model.User{}, store.ErrConflict
		}
	}

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.Identifier = identifier
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUserByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Identifier, identifier) {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}
