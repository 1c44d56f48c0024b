package pivot

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Formatter renders a finalized Store as a console table.
type Formatter struct {
	// MaxWidth is the maximum width for a cell
	MaxWidth int
	// TruncateString is the string to append when truncating
	TruncateString string
}

// NewFormatter creates a formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		MaxWidth:       50,
		TruncateString: "...",
	}
}

// FormatStore formats a finalized store as a markdown table with the same
// column layout EmitTable writes.
func (f *Formatter) FormatStore(store *Store, keyLabel string) string {
	if store == nil || store.Len() == 0 {
		return "_Empty pivot table_"
	}

	headers := Header(keyLabel, store.Fields())

	tableString := &strings.Builder{}

	alignment := make([]tw.Align, len(headers))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(tableString,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header(headers)

	store.Ascend(func(key string, accs map[string]*Accumulator) bool {
		row := make([]string, 0, len(headers))
		row = append(row, f.truncate(key))
		for _, field := range store.Fields() {
			acc := accs[field]
			row = append(row,
				formatFloat(acc.Sum),
				fmt.Sprintf("%d", acc.Count),
				formatFloat(acc.Mean))
		}
		table.Append(row)
		return true
	})

	table.Render()

	tableString.WriteString(fmt.Sprintf("\n_%d groups_\n", store.Len()))

	return tableString.String()
}

// truncate shortens a cell that exceeds MaxWidth.
func (f *Formatter) truncate(s string) string {
	if f.MaxWidth <= 0 || len(s) <= f.MaxWidth {
		return s
	}
	cut := f.MaxWidth - len(f.TruncateString)
	if cut < 0 {
		cut = 0
	}
	return s[:cut] + f.TruncateString
}
