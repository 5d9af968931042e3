// Package csvtable implements an append-only CSV table: one header row
// written exactly once when the file is created, one appended row per
// record afterward. Rows are never rewritten or deduplicated, so an entity
// appended twice across runs appears twice. It is a pure append log.
package csvtable

import (
	"encoding/csv"
	"errors"
	"os"
)

type Writer struct {
	Path   string
	Header []string
}

// EnsureHeader creates the table and writes the header row, only when the
// file does not yet exist. Calling it again is a no-op.
func (w *Writer) EnsureHeader() error {
	_, err := os.Stat(w.Path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}

	f, err := os.OpenFile(w.Path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	err = cw.Write(w.Header)
	cw.Flush()
	return errors.Join(err, cw.Error(), f.Close())
}

// Append writes one data row at the end of the table.
func (w *Writer) Append(row []string) error {
	f, err := os.OpenFile(w.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	err = cw.Write(row)
	cw.Flush()
	return errors.Join(err, cw.Error(), f.Close())
}
