package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"outlay/internal/model"
	"outlay/internal/store"

	"github.com/google/uuid"
)

func (s *Store) CreateExpense(_ context.Context, e model.Expense) (model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(e.UserID) == "" {
		return model.Expense{}, errWithCode("user_id_required")
	}
	if strings.TrimSpace(e.Description) == "" {
		return model.Expense{}, errWithCode("description_required")
	}
	if _, ok := s.users[e.UserID]; !ok {
		return model.Expense{}, store.ErrNotFound
	}

	now := time.Now().UTC()
	if e.Date.IsZero() {
		e.Date = now
	}
	e.ID = uuid.NewString()
	e.CreatedAt = now
	s.expenses[e.ID] = e
	return e, nil
}

func (s *Store) ListExpenses(_ context.Context, userID string) ([]model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Expense, 0)
	for _, e := range s.expenses {
		if e.UserID != userID {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}
