package sqlite

import (
	"context"
	"time"

	"outlay/internal/model"

	"github.com/google/uuid"
)

func (s *Store) CreateExpense(ctx context.Context, e model.Expense) (model.Expense, error) {
	now := time.Now().UTC()
	if e.Date.IsZero() {
		e.Date = now
	}

	created := model.Expense{
		ID:          uuid.NewString(),
		UserID:      e.UserID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		CreatedAt:   now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, user_id, description, amount, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, created.ID, created.UserID, created.Description, created.Amount, created.Date, created.CreatedAt)
	if err != nil {
		return model.Expense{}, mapSQLiteErr(err)
	}
	return created, nil
}

func (s *Store) ListExpenses(ctx context.Context, userID string) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, description, amount, date, created_at
		FROM expenses
		WHERE user_id = ?
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Expense, 0)
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
