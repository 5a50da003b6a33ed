package report

import (
	"testing"
)

func TestNewNotice(t *testing.T) {
	n := NewNotice(7, "withdrawal", 3, 42, "insufficient_funds")
	if n.ID == "" {
		t.Error("notice id must be set")
	}
	if n.Seq != 7 || n.Kind != "withdrawal" || n.ClientID != 3 || n.TxID != 42 {
		t.Errorf("unexpected notice %+v", n)
	}
	if n.Reason != "insufficient_funds" {
		t.Errorf("reason = %q", n.Reason)
	}
	if n.OccurredAt.IsZero() {
		t.Error("occurred_at must be set")
	}
}

func TestMemoryReporter_CollectsInOrder(t *testing.T) {
	r := NewMemoryReporter()
	r.Reject(NewNotice(1, "deposit", 1, 1, "duplicate_transaction"))
	r.Reject(NewNotice(2, "dispute", 1, 2, "transaction_not_found"))

	notices := r.Notices()
	if len(notices) != 2 {
		t.Fatalf("len = %d, want 2", len(notices))
	}
	if notices[0].Seq != 1 || notices[1].Seq != 2 {
		t.Errorf("notices out of order: %+v", notices)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestMemoryReporter_NoticesReturnsCopy(t *testing.T) {
	r := NewMemoryReporter()
	r.Reject(NewNotice(1, "deposit", 1, 1, "x"))

	notices := r.Notices()
	notices[0].Reason = "mutated"
	if r.Notices()[0].Reason != "x" {
		t.Error("Notices must return a copy")
	}
}

func TestMultiReporter_FansOut(t *testing.T) {
	a := NewMemoryReporter()
	b := NewMemoryReporter()
	m := MultiReporter{a, b}

	m.Reject(NewNotice(1, "deposit", 1, 1, "x"))
	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("fan-out failed: a=%d b=%d", a.Len(), b.Len())
	}
}
