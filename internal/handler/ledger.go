package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/miniledger/internal/domain"
	"github.com/efreitasn/miniledger/internal/report"
	"github.com/efreitasn/miniledger/internal/service"
)

// LedgerHandler serves the transaction ingest and account query routes.
type LedgerHandler struct {
	svc *service.LedgerService
}

// NewLedgerHandler creates a LedgerHandler backed by the given service.
func NewLedgerHandler(svc *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

// submitRequest is the JSON body for POST /transactions, mirroring the
// CSV record columns.
type submitRequest struct {
	Type   string  `json:"type"`
	Client uint16  `json:"client"`
	Tx     uint32  `json:"tx"`
	Amount *string `json:"amount,omitempty"`
}

// Submit handles POST /transactions. An accepted record returns 202; a
// record the engine rejects returns 422 with the rejection reason; a
// malformed body returns 400.
func (h *LedgerHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	rec, err := recordFromRequest(req)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	notice, err := h.svc.Submit(rec)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "amount_overflow", err.Error())
		return
	}
	if notice != nil {
		WriteJSON(w, http.StatusUnprocessableEntity, notice)
		return
	}
	WriteJSON(w, http.StatusAccepted, map[string]any{
		"tx":     rec.TxID,
		"client": rec.ClientID,
		"status": "accepted",
	})
}

// recordFromRequest validates the request body against the record shape:
// deposits and withdrawals require an amount, the dispute lifecycle kinds
// must not carry one.
func recordFromRequest(req submitRequest) (domain.Record, error) {
	kind := domain.RecordKind(req.Type)
	if !domain.ValidRecordKind(kind) {
		return domain.Record{}, errors.New("unknown transaction type")
	}

	rec := domain.Record{
		Kind:     kind,
		ClientID: req.Client,
		TxID:     req.Tx,
	}

	switch kind {
	case domain.RecordDeposit, domain.RecordWithdrawal:
		if req.Amount == nil {
			return domain.Record{}, errors.New("amount is required for deposits and withdrawals")
		}
		amount, err := domain.ParseAmount(*req.Amount)
		if err != nil {
			return domain.Record{}, err
		}
		if amount.IsNegative() {
			return domain.Record{}, errors.New("amount must not be negative")
		}
		rec.Amount = &amount
	default:
		if req.Amount != nil {
			return domain.Record{}, errors.New("amount must be absent for dispute, resolve, and chargeback")
		}
	}
	return rec, nil
}

// ListAccounts handles GET /accounts.
func (h *LedgerHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.svc.Snapshots())
}

// GetAccount handles GET /accounts/{client_id}.
func (h *LedgerHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "client_id")
	clientID, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "client_id must be an integer between 0 and 65535")
		return
	}
	snapshot, ok := h.svc.Snapshot(uint16(clientID))
	if !ok {
		WriteError(w, http.StatusNotFound, "account_not_found", "no such client")
		return
	}
	WriteJSON(w, http.StatusOK, snapshot)
}

// ListNotices handles GET /notices, returning every rejection collected
// during this run.
func (h *LedgerHandler) ListNotices(w http.ResponseWriter, r *http.Request) {
	notices := h.svc.Notices()
	if notices == nil {
		notices = []report.Notice{}
	}
	WriteJSON(w, http.StatusOK, notices)
}
