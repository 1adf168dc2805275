package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"ezconfig-cli/internal/interfaces"
)

// TablePresenter draws the configuration as a rounded box table
type TablePresenter struct{}

// NewTablePresenter creates the default presenter
func NewTablePresenter() *TablePresenter {
	return &TablePresenter{}
}

// Present renders the table to w.
func (p *TablePresenter) Present(w io.Writer, t *interfaces.Table) error {
	headerStyle := MustStyle(t.Styles.Header)
	keyStyle := MustStyle(t.Styles.Key)
	valueStyle := MustStyle(t.Styles.Value)

	if t.Title != "" {
		if _, err := fmt.Fprintln(w, headerStyle.Sprint(t.Title)); err != nil {
			return fmt.Errorf("failed to write title: %w", err)
		}
	}

	columns := 2
	if t.ShowIndex {
		columns = 3
	}

	betweenRows := tw.Off
	if t.ShowLines {
		betweenRows = tw.On
	}

	table := tablewriter.NewWriter(w)
	table.Options(
		tablewriter.WithRendition(
			tw.Rendition{
				Symbols: tw.NewSymbols(tw.StyleRounded),
				Borders: tw.Border{
					Left:   tw.State(1),
					Top:    tw.State(1),
					Right:  tw.State(1),
					Bottom: tw.State(1),
				},
				Settings: tw.Settings{
					Separators: tw.Separators{BetweenRows: betweenRows},
				},
			},
		),
		tablewriter.WithAlignment(tw.MakeAlign(columns, tw.AlignLeft)),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	if len(t.Headers) > 0 {
		header := make([]string, 0, columns)
		if t.ShowIndex {
			header = append(header, "")
		}
		for i := 0; i < 2; i++ {
			text := ""
			if i < len(t.Headers) {
				text = t.Headers[i]
			}
			header = append(header, headerStyle.Sprint(text))
		}
		table.Options(tablewriter.WithHeader(header))
	}

	if t.Caption != "" {
		table.Caption(tw.Caption{Text: t.Caption, Spot: tw.SpotBottomCenter, Width: captionWidth(t.Caption)})
	}

	for _, row := range t.Rows {
		cells := make([]string, 0, columns)
		if t.ShowIndex {
			cells = append(cells, keyStyle.Sprint(strconv.Itoa(row.Index)))
		}
		cells = append(cells, keyStyle.Sprint(row.Key), FormatValue(row.Value, valueStyle))
		if err := table.Append(cells); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// captionWidth keeps captions wider than the table from being wrapped
func captionWidth(text string) int {
	width := 0
	for _, line := range strings.Split(text, "\n") {
		width = max(width, utf8.RuneCountInString(line))
	}
	return width
}
