package domain

// EntryStatus represents the dispute lifecycle state of a ledger entry.
type EntryStatus string

const (
	StatusNormal      EntryStatus = "normal"
	StatusDisputed    EntryStatus = "disputed"
	StatusResolved    EntryStatus = "resolved"
	StatusChargedBack EntryStatus = "charged_back"
)

// Entry is the durable record of an accepted deposit or withdrawal.
// Everything except Status is immutable after creation; Status moves
// through the transition table below exactly once per edge.
type Entry struct {
	TxID        uint32
	ClientID    uint16
	Kind        RecordKind
	Amount      Amount
	Status      EntryStatus
	OpenedAtSeq uint64 // global sequence at which the entry was created
}

// allowedTransitions defines the legal status moves. Resolved and
// charged_back are terminal; an entry never re-enters disputed.
func allowedTransitions() map[EntryStatus][]EntryStatus {
	return map[EntryStatus][]EntryStatus{
		StatusNormal:      {StatusDisputed},
		StatusDisputed:    {StatusResolved, StatusChargedBack},
		StatusResolved:    {},
		StatusChargedBack: {},
	}
}

// CanTransition reports whether a status move from s to next is legal.
func (s EntryStatus) CanTransition(next EntryStatus) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
