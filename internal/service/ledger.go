// Package service exposes the engine to concurrent callers. The engine
// itself processes records strictly in order and is not safe for
// concurrent use; LedgerService serializes access so the HTTP surface can
// share one engine.
package service

import (
	"sync"

	"github.com/efreitasn/miniledger/internal/domain"
	"github.com/efreitasn/miniledger/internal/engine"
	"github.com/efreitasn/miniledger/internal/report"
)

// LedgerService serializes submissions to a single engine and exposes
// account snapshots and collected rejection notices.
type LedgerService struct {
	mu      sync.Mutex
	engine  *engine.Engine
	notices *report.MemoryReporter
}

// NewLedgerService wraps the given engine. The memory reporter must be
// one of the reporters the engine was built with, so that Notices reflects
// every rejection.
func NewLedgerService(eng *engine.Engine, notices *report.MemoryReporter) *LedgerService {
	return &LedgerService{engine: eng, notices: notices}
}

// Submit feeds one record to the engine. A rejected record returns its
// notice; a nil notice and nil error means the record was accepted. The
// error is non-nil only for an unrecoverable amount overflow.
func (s *LedgerService) Submit(rec domain.Record) (*report.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Process(rec)
}

// Snapshots returns the current view of every referenced account, in
// ascending client_id order.
func (s *LedgerService) Snapshots() []domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshots()
}

// Snapshot returns the current view of one account, or false if the
// client has never been referenced.
func (s *LedgerService) Snapshot(clientID uint16) (domain.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.engine.Account(clientID)
	if acct == nil {
		return domain.Snapshot{}, false
	}
	return acct.Snapshot(), true
}

// Notices returns every rejection collected so far, in arrival order.
func (s *LedgerService) Notices() []report.Notice {
	return s.notices.Notices()
}
