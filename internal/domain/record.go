package domain

// RecordKind identifies the type of an input transaction record.
type RecordKind string

const (
	RecordDeposit    RecordKind = "deposit"
	RecordWithdrawal RecordKind = "withdrawal"
	RecordDispute    RecordKind = "dispute"
	RecordResolve    RecordKind = "resolve"
	RecordChargeback RecordKind = "chargeback"
)

// ValidRecordKind returns true for the five known record kinds.
func ValidRecordKind(k RecordKind) bool {
	switch k {
	case RecordDeposit, RecordWithdrawal, RecordDispute, RecordResolve, RecordChargeback:
		return true
	}
	return false
}

// Record is the parsed input unit handed to the engine. Amount is set only
// for deposits and withdrawals; dispute, resolve, and chargeback reference
// an earlier transaction by TxID and carry no amount.
type Record struct {
	Kind     RecordKind
	ClientID uint16
	TxID     uint32
	Amount   *Amount
}
