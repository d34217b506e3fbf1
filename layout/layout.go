// Package layout implements the definition-list layout engine behind the
// help output: given sections of (label, description) rows and a width
// budget, it negotiates column widths and renders each list either as an
// aligned two-column table or, when the description column would get too
// narrow, as a linear label-then-description list.
//
// Rendering is a pure function of (rows, settings): the same input always
// produces byte-identical output, and a Printer allocates no shared state, so
// independent renders may run concurrently.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"
)

// Row is one entry of a definition list.
type Row struct {
	// Label is the first column (option invocation, command name, ...).
	Label string
	// Help is the second column. Empty renders the label alone.
	Help string
}

// Section is a named definition list.
type Section struct {
	// Heading is the section title, rendered with a trailing colon.
	Heading string
	// Rows are the section entries. A section with no rows renders
	// nothing, not an empty heading.
	Rows []Row
	// Help is an optional paragraph shown below the heading.
	Help string
	// Constraint is an optional annotation rendered as "[...]" next to
	// the heading, used for option-group constraint descriptions.
	Constraint string
}

// Style transforms a string for display, typically adding ANSI codes.
type Style func(string) string

// Styles selects the styling of each rendered element. Nil fields render
// plain text.
type Styles struct {
	Heading     Style
	Constraint  Style
	SectionHelp Style
	Col1        Style
	Col2        Style
	Epilog      Style
}

func style(f Style, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// Settings are the global layout parameters.
type Settings struct {
	// Width is the total content width, excluding the newline.
	Width int
	// IndentIncrement is the width of one indentation step.
	IndentIncrement int
	// Col1MaxWidth caps the first column. Rows whose label exceeds it are
	// excluded from the column-width computation and wrap onto their own
	// overflow line, so a single long label cannot blow up the layout.
	Col1MaxWidth int
	// Col2MinWidth is the minimum acceptable width for the second column.
	// If the space left after column 1 falls below it, the whole
	// definition list switches to the linear layout.
	Col2MinWidth int
	// ColSpacing is the number of spaces between the two columns.
	ColSpacing int
	// RowSep optionally inserts an extra separator between tabular rows.
	RowSep RowSep
	// Styles controls element styling.
	Styles Styles
}

// Default returns the standard layout parameters.
func Default() Settings {
	return Settings{
		Width:           80,
		IndentIncrement: 2,
		Col1MaxWidth:    30,
		Col2MinWidth:    35,
		ColSpacing:      2,
	}
}

// Validate rejects malformed settings. Called at construction time so that
// rendering itself never fails.
func (s Settings) Validate() error {
	if s.Width <= 0 {
		return fmt.Errorf("layout: width must be positive, got %d", s.Width)
	}
	if s.IndentIncrement < 0 {
		return fmt.Errorf("layout: indent increment must be non-negative, got %d", s.IndentIncrement)
	}
	if s.Col1MaxWidth <= 0 {
		return fmt.Errorf("layout: col1 max width must be positive, got %d", s.Col1MaxWidth)
	}
	if s.Col2MinWidth < 0 {
		return fmt.Errorf("layout: col2 min width must be non-negative, got %d", s.Col2MinWidth)
	}
	if s.ColSpacing <= 0 {
		return fmt.Errorf("layout: column spacing must be positive, got %d", s.ColSpacing)
	}
	if err := validateRowSep(s.RowSep); err != nil {
		return err
	}
	return nil
}

// Printer renders sections and text into a buffer.
type Printer struct {
	settings Settings
	indent   int
	buf      strings.Builder
}

// NewPrinter returns a Printer for the given settings, or a configuration
// error if they are malformed.
func NewPrinter(settings Settings) (*Printer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Printer{settings: settings}, nil
}

// String returns everything written so far.
func (p *Printer) String() string { return p.buf.String() }

// AvailableWidth is the content width left of the current indentation.
func (p *Printer) AvailableWidth() int { return p.settings.Width - p.indent }

// Write appends raw strings to the buffer.
func (p *Printer) Write(strs ...string) {
	for _, s := range strs {
		p.buf.WriteString(s)
	}
}

// Blank writes an empty line.
func (p *Printer) Blank() { p.buf.WriteByte('\n') }

// Indent shifts subsequent output right by one indent increment.
func (p *Printer) Indent() { p.indent += p.settings.IndentIncrement }

// Outdent undoes one Indent.
func (p *Printer) Outdent() {
	p.indent -= p.settings.IndentIncrement
	if p.indent < 0 {
		p.indent = 0
	}
}

// WriteHeading writes a section heading with its trailing colon.
func (p *Printer) WriteHeading(heading string) {
	p.Write(spaces(p.indent), style(p.settings.Styles.Heading, heading+":"), "\n")
}

// WriteText word-wraps text to the available width, indents every line and
// applies st line by line (so wrapping widths stay ANSI-free).
func (p *Printer) WriteText(text string, st Style) {
	wrapped := wordwrap.WrapString(text, uint(max(1, p.AvailableWidth())))
	for _, line := range strings.Split(wrapped, "\n") {
		if line == "" {
			p.Blank()
			continue
		}
		p.Write(spaces(p.indent), style(st, line), "\n")
	}
}

// WriteEpilog writes trailing free text through the epilog style.
func (p *Printer) WriteEpilog(text string) {
	p.WriteText(text, p.settings.Styles.Epilog)
}

// WriteSections writes the non-empty sections. When aligned is true, the
// first column width is computed once over all rows so the sections line up;
// otherwise every section negotiates its own width.
func (p *Printer) WriteSections(sections []Section, aligned bool) {
	if !aligned {
		for _, s := range sections {
			p.WriteSection(s, 0)
		}
		return
	}
	var all []Row
	for _, s := range sections {
		all = append(all, s.Rows...)
	}
	col1Width := ComputeCol1Width(all, p.settings.Col1MaxWidth)
	for _, s := range sections {
		p.WriteSection(s, col1Width)
	}
}

// WriteSection writes one section. col1Width == 0 means "compute from the
// section's own rows". Sections with no rows render nothing.
func (p *Printer) WriteSection(s Section, col1Width int) {
	if len(s.Rows) == 0 {
		return
	}
	p.Blank()
	if s.Constraint == "" {
		p.WriteHeading(s.Heading)
	} else {
		p.Write(spaces(p.indent), style(p.settings.Styles.Heading, s.Heading+":"))
		annotation := "[" + s.Constraint + "]"
		available := p.AvailableWidth() - lipgloss.Width(s.Heading) - len(": ")
		if lipgloss.Width(annotation) <= available {
			p.Write(" ", style(p.settings.Styles.Constraint, annotation), "\n")
		} else {
			p.Blank()
			p.Indent()
			p.WriteText(annotation, p.settings.Styles.Constraint)
			p.Outdent()
		}
	}
	p.Indent()
	if s.Help != "" {
		p.WriteText(s.Help, p.settings.Styles.SectionHelp)
	}
	p.WriteDefinitionList(s.Rows, col1Width)
	p.Outdent()
}

// ComputeCol1Width returns the width of the longest label not exceeding
// maxWidth. Over-long labels are deliberately excluded rather than capped:
// they wrap onto their own overflow line at render time.
func ComputeCol1Width(rows []Row, maxWidth int) int {
	width := 0
	for _, r := range rows {
		if w := lipgloss.Width(r.Label); w <= maxWidth && w > width {
			width = w
		}
	}
	return width
}

// WriteDefinitionList renders rows as a two-column table when the second
// column keeps at least Col2MinWidth characters, and as a linear list
// otherwise. col1Width == 0 means "compute from rows".
func (p *Printer) WriteDefinitionList(rows []Row, col1Width int) {
	if len(rows) == 0 {
		return
	}
	col1Max := min(p.settings.Col1MaxWidth, p.AvailableWidth())
	if col1Width == 0 {
		col1Width = ComputeCol1Width(rows, col1Max)
	}
	col1Width = min(col1Width, col1Max)
	col2Width := p.AvailableWidth() - col1Width - p.settings.ColSpacing
	if col2Width < p.settings.Col2MinWidth {
		p.writeLinear(rows)
		return
	}
	p.writeTabular(rows, col1Width, col2Width)
}

// writeTabular renders the standard two-column layout. A label wider than
// col1Width pushes its description onto the next line; wrapped description
// lines are re-indented to the start of column 2.
func (p *Printer) writeTabular(rows []Row, col1Width, col2Width int) {
	indentation := spaces(p.indent)
	col1PlusSpacing := col1Width + p.settings.ColSpacing
	col2Indent := spaces(p.indent + max(p.settings.IndentIncrement, col1PlusSpacing))

	sep, useSep := resolveRowSep(p.settings.RowSep, rows,
		[]int{col1Width, col2Width}, p.settings.ColSpacing, p.AvailableWidth())

	st := p.settings.Styles
	for i, row := range rows {
		if i > 0 && useSep {
			if sep == "" {
				p.Blank()
			} else {
				p.Write(indentation, sep, "\n")
			}
		}
		p.Write(indentation, style(st.Col1, row.Label))
		if row.Help == "" {
			p.Blank()
			continue
		}
		if labelWidth := lipgloss.Width(row.Label); labelWidth <= col1Width {
			p.Write(spaces(col1PlusSpacing - labelWidth))
		} else {
			p.Blank()
			p.Write(col2Indent)
		}
		lines := strings.Split(wordwrap.WrapString(row.Help, uint(col2Width)), "\n")
		p.Write(style(st.Col2, lines[0]), "\n")
		for _, line := range lines[1:] {
			p.Write(col2Indent, style(st.Col2, line), "\n")
		}
	}
}

// writeLinear renders every label on its own line with the description
// wrapped below it, separated by blank lines regardless of the separator
// policy. Used when the terminal is too narrow for the tabular layout.
func (p *Printer) writeLinear(rows []Row) {
	extra := max(3, p.settings.IndentIncrement)
	st := p.settings.Styles
	for i, row := range rows {
		if i > 0 {
			p.Blank()
		}
		p.Write(spaces(p.indent), style(st.Col1, row.Label), "\n")
		if row.Help != "" {
			p.indent += extra
			p.WriteText(row.Help, st.Col2)
			p.indent -= extra
		}
	}
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

var errTrailingNewline = errors.New("layout: row separator must not end with a newline; one is always written after it")
