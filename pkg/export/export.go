// Package export writes allocation records as JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/homeload/core/model"
)

// Header is the CSV column order.
var Header = []string{"kind", "resource", "slot", "time", "amount", "priority"}

// WriteJSON writes the records to w as an indented JSON array.
func WriteJSON(w io.Writer, records []model.Allocation) error {
	if records == nil {
		records = []model.Allocation{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteCSV writes the records to w with a header row. Zero times and the
// priority of placeholders are left empty.
func WriteCSV(w io.Writer, records []model.Allocation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		ts := ""
		if !r.Time.IsZero() {
			ts = r.Time.Format(time.RFC3339)
		}
		prio := ""
		if !r.IsPlaceholder() {
			prio = strconv.Itoa(r.Priority)
		}
		rec := []string{
			r.Kind.String(),
			r.Resource,
			r.Slot,
			ts,
			strconv.FormatFloat(r.Amount, 'f', -1, 64),
			prio,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write dispatches to WriteJSON or WriteCSV by format name.
func Write(w io.Writer, format string, records []model.Allocation) error {
	switch format {
	case "", "json":
		return WriteJSON(w, records)
	case "csv":
		return WriteCSV(w, records)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
