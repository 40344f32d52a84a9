package flash

import (
	"context"
	"fmt"
	"sync"

	"github.com/aquamarinepk/aqm"
)

// TableStore is the shared table state for the whole terminal. There is one
// write operation, Replace, which swaps in a fresh list; nothing ever mutates
// the published slice in place. Concurrent refreshes are not sequenced: the
// last one to settle wins.
type TableStore struct {
	mu          sync.RWMutex
	tables      []TableViewModel
	subscribers []func([]TableViewModel)
	gateway     *Gateway
	logger      aqm.Logger
}

// NewTableStore creates an empty store backed by the given gateway.
func NewTableStore(gateway *Gateway, logger aqm.Logger) *TableStore {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &TableStore{
		gateway: gateway,
		logger:  logger,
	}
}

// Read returns a snapshot copy of the current table list.
func (s *TableStore) Read() []TableViewModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TableViewModel, len(s.tables))
	copy(out, s.tables)
	return out
}

// Replace swaps the whole table list and notifies subscribers with the new
// snapshot. The caller's slice is copied, so later caller mutations cannot
// reach the store.
func (s *TableStore) Replace(tables []TableViewModel) {
	next := make([]TableViewModel, len(tables))
	copy(next, tables)

	s.mu.Lock()
	s.tables = next
	subs := make([]func([]TableViewModel), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, notify := range subs {
		notify(next)
	}
}

// Subscribe registers a callback invoked after every Replace. Callbacks run
// on the replacing goroutine and must not block.
func (s *TableStore) Subscribe(fn func([]TableViewModel)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Refresh pulls the table list through the gateway and replaces the store
// contents with the reduced view models. On any failure the previous state is
// kept untouched and the error is logged and returned.
func (s *TableStore) Refresh(ctx context.Context, token string) error {
	if s.gateway == nil {
		return fmt.Errorf("table gateway not configured")
	}

	sections, err := s.gateway.ListTables(ctx, token)
	if err != nil {
		s.logger.Error("cannot refresh tables", "error", err)
		return err
	}

	s.Replace(ReduceTables(sections))
	return nil
}

// Len reports the current number of tables without copying.
func (s *TableStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}
