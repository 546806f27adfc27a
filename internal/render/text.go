package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// CellString flattens a directive for a terminal.
func CellString(c Cell) string {
	switch c.Kind {
	case KindLink:
		return c.Href
	case KindRating:
		s := StarString(c.Stars, c.HalfStar) + " " + c.Text
		if c.Detail != "" {
			s += " " + c.Detail
		}
		return strings.TrimSpace(s)
	case KindCompound:
		if c.Secondary != nil {
			return c.Text + "\n" + CellString(*c.Secondary)
		}
		return c.Text
	default:
		return c.Text
	}
}

func StarString(stars int, half bool) string {
	s := strings.Repeat("★", stars)
	if half {
		s += "½"
	}
	return s
}

// WriteText draws t as a bordered terminal table.
func WriteText(w io.Writer, t Table) error {
	if len(t.Columns) == 0 {
		_, err := fmt.Fprintln(w, "(display schema has no columns)")
		return err
	}

	table := tablewriter.NewWriter(w)
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Label
	}
	table.Header(header...)

	for _, row := range t.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = CellString(c)
		}
		if err := table.Append(cells); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	return table.Render()
}
