package ui

import (
	"fmt"
	"io"

	"ezconfig-cli/internal/interfaces"
)

// PlainPresenter writes one "key = value" line per field, for dumb terminals
// and piped output
type PlainPresenter struct{}

// NewPlainPresenter creates a presenter without box drawing
func NewPlainPresenter() *PlainPresenter {
	return &PlainPresenter{}
}

// Present renders the table to w.
func (p *PlainPresenter) Present(w io.Writer, t *interfaces.Table) error {
	if t.Title != "" {
		if _, err := fmt.Fprintln(w, t.Title); err != nil {
			return fmt.Errorf("failed to write title: %w", err)
		}
	}
	for _, row := range t.Rows {
		var err error
		if t.ShowIndex {
			_, err = fmt.Fprintf(w, "%d. %s = %s\n", row.Index, row.Key, row.Value.Text)
		} else {
			_, err = fmt.Fprintf(w, "%s = %s\n", row.Key, row.Value.Text)
		}
		if err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if t.Caption != "" {
		if _, err := fmt.Fprintln(w, t.Caption); err != nil {
			return fmt.Errorf("failed to write caption: %w", err)
		}
	}
	return nil
}
