// Package engine implements the ledger state machine: it consumes an
// ordered stream of transaction records, maintains per-client accounts and
// the transaction ledger, and enforces the bounded dispute window.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/efreitasn/miniledger/internal/domain"
	"github.com/efreitasn/miniledger/internal/report"
	"github.com/efreitasn/miniledger/internal/store"
)

// DefaultWindowSize is the number of subsequent per-client transactions
// after which an unresolved dispute is force-settled.
const DefaultWindowSize = 1000

var errMissingAmount = errors.New("missing_amount")

// Engine owns all mutable run state: the ledger, the accounts, the open
// dispute window, and the sequence counters. Records must be fed strictly
// in input order; the engine itself is not safe for concurrent use (the
// service layer serializes access for the HTTP surface).
type Engine struct {
	ledger   *store.LedgerStore
	accounts *store.AccountStore
	window   *WindowTracker
	reporter report.Reporter
	logger   *slog.Logger

	seq      uint64            // global sequence, incremented per record
	clientTx map[uint16]uint64 // per-client record counts
}

// New creates an Engine with the given dispute window size. A nil logger
// falls back to slog.Default; a nil reporter logs rejections through the
// logger.
func New(windowSize uint64, reporter report.Reporter, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = report.NewLogReporter(logger)
	}
	return &Engine{
		ledger:   store.NewLedgerStore(),
		accounts: store.NewAccountStore(),
		window:   NewWindowTracker(windowSize),
		reporter: reporter,
		logger:   logger,
		clientTx: make(map[uint16]uint64),
	}
}

// Process applies one record. A rejected record produces a notice (already
// handed to the reporter) and a nil error; the stream continues. The only
// non-nil error is an unrecoverable amount-arithmetic overflow, after
// which the caller should stop feeding records but may still emit partial
// output. After every record the engine sweeps the record's client for
// disputes whose window has expired.
func (e *Engine) Process(rec domain.Record) (*report.Notice, error) {
	e.seq++
	e.clientTx[rec.ClientID]++

	var err error
	switch rec.Kind {
	case domain.RecordDeposit:
		err = e.applyDeposit(rec)
	case domain.RecordWithdrawal:
		err = e.applyWithdrawal(rec)
	case domain.RecordDispute:
		err = e.applyDispute(rec)
	case domain.RecordResolve:
		err = e.applySettlement(rec, domain.StatusResolved)
	case domain.RecordChargeback:
		err = e.applySettlement(rec, domain.StatusChargedBack)
	default:
		err = fmt.Errorf("unknown_record_kind")
	}

	var notice *report.Notice
	if err != nil {
		if errors.Is(err, domain.ErrAmountOverflow) {
			return nil, fmt.Errorf("tx %d: %w", rec.TxID, err)
		}
		n := report.NewNotice(e.seq, string(rec.Kind), rec.ClientID, rec.TxID, err.Error())
		e.reporter.Reject(n)
		notice = &n
	}

	if err := e.sweep(rec.ClientID); err != nil {
		return notice, err
	}
	return notice, nil
}

func (e *Engine) applyDeposit(rec domain.Record) error {
	if rec.Amount == nil {
		return errMissingAmount
	}
	if e.ledger.Exists(rec.TxID) {
		return domain.ErrDuplicateTransaction
	}
	acct := e.accounts.GetOrCreate(rec.ClientID)
	if acct.Locked {
		return domain.ErrAccountLocked
	}
	if err := acct.Credit(*rec.Amount); err != nil {
		return err
	}
	acct.LastSeq = e.seq
	return e.ledger.Record(&domain.Entry{
		TxID:        rec.TxID,
		ClientID:    rec.ClientID,
		Kind:        rec.Kind,
		Amount:      *rec.Amount,
		Status:      domain.StatusNormal,
		OpenedAtSeq: e.seq,
	})
}

func (e *Engine) applyWithdrawal(rec domain.Record) error {
	if rec.Amount == nil {
		return errMissingAmount
	}
	if e.ledger.Exists(rec.TxID) {
		return domain.ErrDuplicateTransaction
	}
	acct := e.accounts.GetOrCreate(rec.ClientID)
	// Debit checks the locked flag and the available balance; a rejected
	// withdrawal leaves no ledger entry behind.
	if err := acct.Debit(*rec.Amount); err != nil {
		return err
	}
	acct.LastSeq = e.seq
	return e.ledger.Record(&domain.Entry{
		TxID:        rec.TxID,
		ClientID:    rec.ClientID,
		Kind:        rec.Kind,
		Amount:      *rec.Amount,
		Status:      domain.StatusNormal,
		OpenedAtSeq: e.seq,
	})
}

func (e *Engine) applyDispute(rec domain.Record) error {
	entry, err := e.ledger.Get(rec.TxID)
	if err != nil {
		return err
	}
	if entry.ClientID != rec.ClientID {
		return domain.ErrClientMismatch
	}
	if entry.Status != domain.StatusNormal {
		return domain.ErrInvalidTransition
	}
	acct := e.accounts.GetOrCreate(entry.ClientID)
	// Hold may drive available negative: disputing a withdrawal reclaims
	// funds that were already paid out.
	if err := acct.Hold(entry.Amount); err != nil {
		return err
	}
	if err := e.ledger.Transition(rec.TxID, domain.StatusDisputed); err != nil {
		return err
	}
	acct.LastSeq = e.seq
	e.window.Open(entry.ClientID, rec.TxID, e.clientTx[entry.ClientID])
	return nil
}

// applySettlement handles explicit resolves and chargebacks, which share
// their preconditions: the entry must exist, belong to the record's
// client, and currently be disputed.
func (e *Engine) applySettlement(rec domain.Record, outcome domain.EntryStatus) error {
	entry, err := e.ledger.Get(rec.TxID)
	if err != nil {
		return err
	}
	if entry.ClientID != rec.ClientID {
		return domain.ErrClientMismatch
	}
	if entry.Status != domain.StatusDisputed {
		return domain.ErrInvalidTransition
	}
	acct := e.accounts.GetOrCreate(entry.ClientID)
	if outcome == domain.StatusResolved {
		err = acct.Release(entry.Amount)
	} else {
		err = acct.Forfeit(entry.Amount)
	}
	if err != nil {
		return err
	}
	if err := e.ledger.Transition(rec.TxID, outcome); err != nil {
		return err
	}
	acct.LastSeq = e.seq
	e.window.Close(rec.TxID)
	return nil
}

// sweep force-settles every open dispute of the given client whose window
// has expired at the client's current transaction count.
func (e *Engine) sweep(clientID uint16) error {
	for _, txID := range e.window.Expired(clientID, e.clientTx[clientID]) {
		if err := e.settleExpired(txID); err != nil {
			return err
		}
	}
	return nil
}

// settleExpired applies the deferred-resolution policy to one expired
// dispute: a non-negative total resolves it, a negative total charges it
// back. The total is read before any funds move.
func (e *Engine) settleExpired(txID uint32) error {
	entry, err := e.ledger.Get(txID)
	if err != nil {
		// The tracker only holds tx_ids recorded in the ledger.
		e.window.Close(txID)
		return nil
	}
	acct := e.accounts.GetOrCreate(entry.ClientID)

	outcome := domain.StatusResolved
	if acct.Total().IsNegative() {
		outcome = domain.StatusChargedBack
	}

	if outcome == domain.StatusResolved {
		err = acct.Release(entry.Amount)
	} else {
		err = acct.Forfeit(entry.Amount)
	}
	if err != nil {
		return err
	}
	if err := e.ledger.Transition(txID, outcome); err != nil {
		return err
	}
	acct.LastSeq = e.seq
	e.window.Close(txID)

	e.logger.Info("dispute window expired",
		slog.Int("tx", int(txID)),
		slog.Int("client", int(entry.ClientID)),
		slog.String("outcome", string(outcome)),
	)
	return nil
}

// Accounts returns all accounts that have ever been referenced, in
// ascending client_id order.
func (e *Engine) Accounts() []*domain.Account {
	return e.accounts.List()
}

// Account returns the account for the given client, or nil if the client
// has never been referenced.
func (e *Engine) Account(clientID uint16) *domain.Account {
	return e.accounts.Get(clientID)
}

// Snapshots returns the final reportable view of every account, in
// ascending client_id order.
func (e *Engine) Snapshots() []domain.Snapshot {
	accounts := e.accounts.List()
	out := make([]domain.Snapshot, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Snapshot())
	}
	return out
}

// OpenDisputes returns the number of disputes still inside their window.
func (e *Engine) OpenDisputes() int {
	return e.window.OpenCount()
}
