package gif

import (
	"context"
	"sync"

	"github.com/status-im/arcadia/chain/types"
	"github.com/status-im/arcadia/gallery"
)

var _ gallery.RecordStore = (*MemoryStore)(nil)

// MemoryStore keeps galleries for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[types.PublicKey][]gallery.Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[types.PublicKey][]gallery.Item)}
}

func (s *MemoryStore) Fetch(_ context.Context, accountID types.PublicKey) ([]gallery.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.accounts[accountID]
	if !ok {
		return nil, gallery.ErrStoreUninitialized
	}
	out := make([]gallery.Item, len(items))
	copy(out, items)
	return out, nil
}

func (s *MemoryStore) Initialize(_ context.Context, accountID types.PublicKey, _ gallery.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; ok {
		return gallery.ErrAlreadyInitialized
	}
	s.accounts[accountID] = []gallery.Item{}
	return nil
}

func (s *MemoryStore) Append(_ context.Context, accountID types.PublicKey, owner gallery.Account, link string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.accounts[accountID]
	if !ok {
		return gallery.ErrStoreUninitialized
	}
	s.accounts[accountID] = append(items, gallery.Item{Link: link, Submitter: owner.Address().String()})
	return nil
}
