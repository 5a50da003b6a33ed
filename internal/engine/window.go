package engine

import (
	"github.com/google/btree"
)

// windowEntry tracks one open dispute. Deadline is the per-client
// transaction count at which the dispute must be force-settled:
// the count at open plus the window size.
type windowEntry struct {
	ClientID uint16
	Deadline uint64
	TxID     uint32
}

// windowLess orders entries by client_id, then deadline, then tx_id, so
// that all open disputes for one client sit in a contiguous ascending run.
func windowLess(a, b windowEntry) bool {
	if a.ClientID != b.ClientID {
		return a.ClientID < b.ClientID
	}
	if a.Deadline != b.Deadline {
		return a.Deadline < b.Deadline
	}
	return a.TxID < b.TxID
}

// WindowTracker remembers, for every open dispute, the per-client
// transaction count at which it was opened, and enforces the resolution
// deadline. Entries live exactly as long as the referenced ledger entry
// stays disputed. The B-tree keeps the per-client deadline scan at
// O(log n + expired), with a secondary index for O(log n) removal by
// tx_id.
type WindowTracker struct {
	size uint64
	tree *btree.BTreeG[windowEntry]
	byTx map[uint32]windowEntry
}

// NewWindowTracker creates a tracker with the given window size, measured
// in per-client transaction counts.
func NewWindowTracker(size uint64) *WindowTracker {
	const degree = 32
	return &WindowTracker{
		size: size,
		tree: btree.NewG[windowEntry](degree, windowLess),
		byTx: make(map[uint32]windowEntry),
	}
}

// Open registers a dispute opened at the given per-client transaction
// count. At most one open entry exists per tx_id.
func (w *WindowTracker) Open(clientID uint16, txID uint32, clientTxCount uint64) {
	e := windowEntry{
		ClientID: clientID,
		Deadline: clientTxCount + w.size,
		TxID:     txID,
	}
	w.tree.ReplaceOrInsert(e)
	w.byTx[txID] = e
}

// Close removes the open entry for the given tx_id, if any. Called on
// explicit resolve/chargeback and after a force-settlement.
func (w *WindowTracker) Close(txID uint32) {
	e, ok := w.byTx[txID]
	if !ok {
		return
	}
	w.tree.Delete(e)
	delete(w.byTx, txID)
}

// Expired returns the tx_ids of the client's open disputes whose deadline
// has been reached at the given per-client transaction count, in deadline
// order. The entries stay open until Close is called.
func (w *WindowTracker) Expired(clientID uint16, clientTxCount uint64) []uint32 {
	var out []uint32
	pivot := windowEntry{ClientID: clientID}
	w.tree.AscendGreaterOrEqual(pivot, func(e windowEntry) bool {
		if e.ClientID != clientID || e.Deadline > clientTxCount {
			return false
		}
		out = append(out, e.TxID)
		return true
	})
	return out
}

// OpenCount returns the number of open disputes being tracked. Useful for
// testing.
func (w *WindowTracker) OpenCount() int {
	return w.tree.Len()
}
