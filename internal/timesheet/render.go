package timesheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Row is the rendered view of one timesheet row. Nil time fields are
// absent in the underlying cells.
type Row struct {
	Date       time.Time
	Start      *Clock
	BreakStart *Clock
	BreakEnd   *Clock
	End        *Clock
}

func (r Row) times() [numFields]*Clock {
	return [numFields]*Clock{r.Start, r.BreakStart, r.BreakEnd, r.End}
}

// A Formatter renders a timesheet row for terminal output.
type Formatter interface {
	Format(Row) string
}

// NewFormatter selects the boxed formatter when pretty is requested and
// the always-available compact formatter otherwise.
func NewFormatter(pretty bool) Formatter {
	if pretty {
		return Boxed{}
	}
	return Compact{}
}

// Compact renders the single-line form
//
//	2024-03-01 -> start@09:00:00, end@17:30:00
//
// Absent fields are omitted; the date is the leading label and never a
// field@value pair.
type Compact struct{}

func (Compact) Format(r Row) string {
	var parts []string
	for i, c := range r.times() {
		if c == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s@%s", Field(i), c))
	}
	return fmt.Sprintf("%s -> %s", r.Date.Format("2006-01-02"), strings.Join(parts, ", "))
}

// Boxed renders a bordered one-row table with one column per field.
type Boxed struct{}

func (Boxed) Format(r Row) string {
	cells := []string{r.Date.Format("2006-01-02")}
	for _, c := range r.times() {
		if c == nil {
			cells = append(cells, "")
			continue
		}
		cells = append(cells, c.String())
	}
	headers := append([]string{"date"}, fieldNames[:]...)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Row(cells...).
		String()
}
