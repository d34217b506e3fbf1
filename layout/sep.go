package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SepGenerator produces a separator line for a given width. The result may
// be shorter or longer than width.
type SepGenerator func(width int) string

// RowSep decides whether and how to separate the rows of a tabular
// definition list. The decision is taken once per definition list.
type RowSep interface {
	// Sep returns the separator for a definition list rendered with the
	// given column widths. ok == false means no separator.
	Sep(rows []Row, colWidths []int, colSpacing, availableWidth int) (sep string, ok bool)
}

type fixedSep struct {
	sep string
}

// Fixed always inserts sep between rows. The empty string yields an empty
// line. sep must not end with a newline; the renderer writes one after it.
func Fixed(sep string) RowSep { return fixedSep{sep} }

func (f fixedSep) Sep([]Row, []int, int, int) (string, bool) { return f.sep, true }

type generatedSep struct {
	gen SepGenerator
}

// Generated inserts the output of gen, invoked with the width of the
// rendered table.
func Generated(gen SepGenerator) RowSep { return generatedSep{gen} }

func (g generatedSep) Sep(_ []Row, colWidths []int, colSpacing, _ int) (string, bool) {
	return g.gen(totalWidth(colWidths, colSpacing)), true
}

// Condition decides whether a definition list should get a row separator.
type Condition func(rows []Row, colWidths []int, colSpacing int) bool

type conditionalSep struct {
	condition Condition
	sep       RowSep
}

// RowSepIf inserts sep only when condition holds for the definition list,
// so short single-line lists stay compact while lists with long wrapped
// entries gain breathing room.
func RowSepIf(condition Condition, sep RowSep) RowSep {
	return conditionalSep{condition: condition, sep: sep}
}

func (c conditionalSep) Sep(rows []Row, colWidths []int, colSpacing, availableWidth int) (string, bool) {
	if !c.condition(rows, colWidths, colSpacing) {
		return "", false
	}
	return c.sep.Sep(rows, colWidths, colSpacing, availableWidth)
}

// CountMultilineRows counts the rows that will span multiple output lines,
// i.e. rows where some column text exceeds its column width.
func CountMultilineRows(rows []Row, colWidths []int) int {
	count := 0
	for _, row := range rows {
		if lipgloss.Width(row.Label) > colWidths[0] || lipgloss.Width(row.Help) > colWidths[1] {
			count++
		}
	}
	return count
}

// MultilineRowsAtLeast holds when at least count rows span multiple lines.
func MultilineRowsAtLeast(count int) Condition {
	if count <= 0 {
		panic("layout.MultilineRowsAtLeast: count must be positive")
	}
	return func(rows []Row, colWidths []int, _ int) bool {
		return CountMultilineRows(rows, colWidths) >= count
	}
}

// MultilineFractionAtLeast holds when the fraction of multiline rows is at
// least fraction, which must lie in (0, 1).
func MultilineFractionAtLeast(fraction float64) Condition {
	if fraction <= 0 || fraction >= 1 {
		panic("layout.MultilineFractionAtLeast: fraction must be in (0, 1)")
	}
	return func(rows []Row, colWidths []int, _ int) bool {
		if len(rows) == 0 {
			return false
		}
		return float64(CountMultilineRows(rows, colWidths))/float64(len(rows)) >= fraction
	}
}

// Hline returns a generator repeating pattern up to the requested width.
func Hline(pattern string) SepGenerator {
	if pattern == "" {
		panic("layout.Hline: pattern must be non-empty")
	}
	runes := []rune(pattern)
	return func(width int) string {
		if width <= 0 {
			return ""
		}
		if len(runes) == 1 {
			return strings.Repeat(pattern, width)
		}
		reps, rest := width/len(runes), width%len(runes)
		return strings.Repeat(pattern, reps) + string(runes[:rest])
	}
}

// Common horizontal line styles.
var (
	HlineSolid         = Hline("─")
	HlineDashed        = Hline("-")
	HlineDenselyDashed = Hline("╌")
	HlineDotted        = Hline("┄")
)

func totalWidth(colWidths []int, colSpacing int) int {
	total := colSpacing * (len(colWidths) - 1)
	for _, w := range colWidths {
		total += w
	}
	return total
}

func resolveRowSep(rs RowSep, rows []Row, colWidths []int, colSpacing, availableWidth int) (string, bool) {
	if rs == nil {
		return "", false
	}
	return rs.Sep(rows, colWidths, colSpacing, availableWidth)
}

func validateRowSep(rs RowSep) error {
	if f, ok := rs.(fixedSep); ok && strings.HasSuffix(f.sep, "\n") {
		return errTrailingNewline
	}
	return nil
}
