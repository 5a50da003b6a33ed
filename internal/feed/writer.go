package feed

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/efreitasn/miniledger/internal/domain"
)

// Writer renders final account summaries as CSV with the columns
// client, available, held, total, locked. Amounts carry four fixed
// decimal places.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteSnapshots writes the header followed by one row per snapshot, in
// the order given (the account store lists clients in ascending id order).
func (w *Writer) WriteSnapshots(snapshots []domain.Snapshot) error {
	if err := w.csv.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, s := range snapshots {
		row := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available,
			s.Held,
			s.Total,
			strconv.FormatBool(s.Locked),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}
