package model

import "time"

// Expense is a single spending record. Every expense belongs to exactly
// one user, and stores only ever read or write it through that user's id.
type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}
