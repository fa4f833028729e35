package postgres

import (
	"context"
	"time"

	"outlay/internal/model"
)

func (s *Store) CreateExpense(ctx context.Context, e model.Expense) (model.Expense, error) {
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}

	var out model.Expense
	err := s.pool.QueryRow(ctx, `
		insert into public.expenses (user_id, description, amount, date)
		values ($1::uuid, $2, $3, $4)
		returning id::text, user_id::text, description, amount, date, created_at
	`, e.UserID, e.Description, e.Amount, e.Date).Scan(
		&out.ID,
		&out.UserID,
		&out.Description,
		&out.Amount,
		&out.Date,
		&out.CreatedAt,
	)
	if err != nil {
		return model.Expense{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) ListExpenses(ctx context.Context, userID string) ([]model.Expense, error) {
	rows, err := s.pool.Query(ctx, `
		select id::text, user_id::text, description, amount, date, created_at
		from public.expenses
		where user_id = $1::uuid
		order by date desc
	`, userID)
	if err != nil {
		return nil, mapPgErr(err)
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
