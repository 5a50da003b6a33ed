// Package report implements the diagnostic side channel for rejected and
// invalid transaction records. Rejections never abort a run; they are
// converted into notices and handed to a Reporter.
package report

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notice describes one rejected or invalid record: what was attempted,
// which client and transaction it referenced, and why it was refused.
type Notice struct {
	ID         string    `json:"id"`
	Seq        uint64    `json:"seq"`
	Kind       string    `json:"kind"`
	ClientID   uint16    `json:"client"`
	TxID       uint32    `json:"tx"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewNotice builds a Notice with a fresh id and timestamp.
func NewNotice(seq uint64, kind string, clientID uint16, txID uint32, reason string) Notice {
	return Notice{
		ID:         uuid.New().String(),
		Seq:        seq,
		Kind:       kind,
		ClientID:   clientID,
		TxID:       txID,
		Reason:     reason,
		OccurredAt: time.Now(),
	}
}

// Reporter receives rejection notices.
type Reporter interface {
	Reject(n Notice)
}

// LogReporter writes notices to a slog logger at warn level, keeping the
// diagnostic stream separate from primary output (stderr vs stdout in the
// CLI).
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a LogReporter backed by the given logger.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// Reject logs the notice.
func (r *LogReporter) Reject(n Notice) {
	r.logger.Warn("transaction rejected",
		slog.Uint64("seq", n.Seq),
		slog.String("kind", n.Kind),
		slog.Int("client", int(n.ClientID)),
		slog.Int("tx", int(n.TxID)),
		slog.String("reason", n.Reason),
	)
}

// MemoryReporter collects notices in memory so they can be queried later,
// e.g. through the HTTP surface or by tests. Safe for concurrent use.
type MemoryReporter struct {
	mu      sync.RWMutex
	notices []Notice
}

// NewMemoryReporter creates an empty MemoryReporter.
func NewMemoryReporter() *MemoryReporter {
	return &MemoryReporter{}
}

// Reject appends the notice.
func (r *MemoryReporter) Reject(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of all collected notices in arrival order.
func (r *MemoryReporter) Notices() []Notice {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Len returns the number of collected notices.
func (r *MemoryReporter) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notices)
}

// MultiReporter fans a notice out to several reporters.
type MultiReporter []Reporter

// Reject forwards the notice to every reporter.
func (m MultiReporter) Reject(n Notice) {
	for _, r := range m {
		r.Reject(n)
	}
}
