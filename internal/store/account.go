package store

import (
	"sort"
	"sync"

	"github.com/efreitasn/miniledger/internal/domain"
)

// AccountStore is a thread-safe in-memory store for accounts, keyed by
// client_id. Accounts are created lazily on first reference.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[uint16]*domain.Account
}

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[uint16]*domain.Account),
	}
}

// GetOrCreate returns the account for the given client, creating an empty
// unlocked account on first reference.
func (s *AccountStore) GetOrCreate(clientID uint16) *domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[clientID]
	if !ok {
		a = domain.NewAccount(clientID)
		s.accounts[clientID] = a
	}
	return a
}

// Get retrieves an account by client_id, or nil if the client has never
// been referenced.
func (s *AccountStore) Get(clientID uint16) *domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accounts[clientID]
}

// List returns all accounts in ascending client_id order.
func (s *AccountStore) List() []*domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ClientID < out[j].ClientID
	})
	return out
}
