package interfaces

import (
	"io"

	"ezconfig-cli/internal/schema"
)

// Row is one configuration entry ready for display
type Row struct {
	Index int
	Key   string
	Value schema.Display
}

// Styles holds style tokens such as "bold cyan" for the table parts
type Styles struct {
	Header string
	Key    string
	Value  string
}

// Table is everything a presenter needs to show the configuration
type Table struct {
	Title     string
	Caption   string
	Headers   []string
	Rows      []Row
	ShowIndex bool
	ShowLines bool
	Styles    Styles
}

// Presenter renders the configuration table
type Presenter interface {
	// Present writes the table to w
	Present(w io.Writer, table *Table) error
}
