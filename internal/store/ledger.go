package store

import (
	"sync"

	"github.com/efreitasn/miniledger/internal/domain"
)

// LedgerStore is a thread-safe in-memory append-only store for ledger
// entries, keyed by tx_id. Entries are created once per accepted deposit
// or withdrawal; only their status changes afterwards, through Transition.
type LedgerStore struct {
	mu      sync.RWMutex
	entries map[uint32]*domain.Entry
}

// NewLedgerStore creates an empty LedgerStore.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		entries: make(map[uint32]*domain.Entry),
	}
}

// Record inserts a new entry. It returns domain.ErrDuplicateTransaction
// if an entry with the same tx_id already exists.
func (s *LedgerStore) Record(e *domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[e.TxID]; exists {
		return domain.ErrDuplicateTransaction
	}
	s.entries[e.TxID] = e
	return nil
}

// Get retrieves an entry by tx_id. It returns
// domain.ErrTransactionNotFound if the entry does not exist.
func (s *LedgerStore) Get(txID uint32) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[txID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return e, nil
}

// Exists returns true if an entry with the given tx_id exists.
func (s *LedgerStore) Exists(txID uint32) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[txID]
	return ok
}

// Transition moves an entry to a new status. It returns
// domain.ErrTransactionNotFound if the entry does not exist and
// domain.ErrInvalidTransition if the current status does not permit the
// move (the only legal edges are normal → disputed and
// disputed → resolved/charged_back).
func (s *LedgerStore) Transition(txID uint32, next domain.EntryStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[txID]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	if !e.Status.CanTransition(next) {
		return domain.ErrInvalidTransition
	}
	e.Status = next
	return nil
}

// Len returns the number of recorded entries. Useful for testing.
func (s *LedgerStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
