package memory

import (
	"sync"

	"outlay/internal/model"
)

// Store is a mutex-guarded in-memory implementation of store.Store.
// It backs local development runs and handler tests; nothing survives
// a process restart.
type Store struct {
	mu sync.Mutex

	users    map[string]model.User
	expenses map[string]model.Expense
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]model.User),
		expenses: make(map[string]model.Expense),
	}
}

type errWithCode string

func (e errWithCode) Error() string { return string(e) }
