// Package feed implements the record-format boundary: CSV transaction
// records in, CSV account summaries out. Malformed rows are rejected here
// with a ParseError and never reach the engine.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/efreitasn/miniledger/internal/domain"
)

// ParseError describes a malformed input row.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Reader parses transaction records from CSV input with the columns
// type, client, tx, amount. A leading header row is skipped. Whitespace
// around fields is tolerated.
type Reader struct {
	csv  *csv.Reader
	line int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may omit the trailing amount column
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Read returns the next record. It returns io.EOF at end of input and a
// *ParseError for a malformed row; the caller may report the row and keep
// reading.
func (r *Reader) Read() (domain.Record, error) {
	for {
		row, err := r.csv.Read()
		if err == io.EOF {
			return domain.Record{}, io.EOF
		}
		r.line++
		if err != nil {
			return domain.Record{}, &ParseError{Line: r.line, Reason: err.Error()}
		}
		if r.line == 1 && isHeader(row) {
			continue
		}
		return r.parseRow(row)
	}
}

func (r *Reader) parseRow(row []string) (domain.Record, error) {
	if len(row) < 3 {
		return domain.Record{}, &ParseError{Line: r.line, Reason: "expected at least 3 fields"}
	}

	kind := domain.RecordKind(strings.TrimSpace(row[0]))
	if !domain.ValidRecordKind(kind) {
		return domain.Record{}, &ParseError{Line: r.line, Reason: fmt.Sprintf("unknown record type %q", row[0])}
	}

	client, err := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 16)
	if err != nil {
		return domain.Record{}, &ParseError{Line: r.line, Reason: fmt.Sprintf("invalid client id %q", row[1])}
	}
	tx, err := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 32)
	if err != nil {
		return domain.Record{}, &ParseError{Line: r.line, Reason: fmt.Sprintf("invalid tx id %q", row[2])}
	}

	rec := domain.Record{
		Kind:     kind,
		ClientID: uint16(client),
		TxID:     uint32(tx),
	}

	var amountField string
	if len(row) > 3 {
		amountField = strings.TrimSpace(row[3])
	}

	switch kind {
	case domain.RecordDeposit, domain.RecordWithdrawal:
		if amountField == "" {
			return domain.Record{}, &ParseError{Line: r.line, Reason: fmt.Sprintf("%s requires an amount", kind)}
		}
		amount, err := domain.ParseAmount(amountField)
		if err != nil {
			return domain.Record{}, &ParseError{Line: r.line, Reason: err.Error()}
		}
		if amount.IsNegative() {
			return domain.Record{}, &ParseError{Line: r.line, Reason: fmt.Sprintf("%s amount must not be negative", kind)}
		}
		rec.Amount = &amount
	default:
		if amountField != "" {
			return domain.Record{}, &ParseError{Line: r.line, Reason: fmt.Sprintf("%s must not carry an amount", kind)}
		}
	}

	return rec, nil
}

// isHeader reports whether the row is the canonical header row.
func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "type")
}

// Line returns the number of the most recently read input line.
func (r *Reader) Line() int {
	return r.line
}
