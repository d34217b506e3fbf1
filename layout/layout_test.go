package layout

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testSettings() Settings {
	s := Default()
	s.Width = 40
	s.Col2MinWidth = 10
	return s
}

func render(t *testing.T, settings Settings, fn func(p *Printer)) string {
	t.Helper()
	p, err := NewPrinter(settings)
	if err != nil {
		t.Fatalf("NewPrinter: %v", err)
	}
	fn(p)
	return p.String()
}

func TestTabularSection(t *testing.T) {
	rows := []Row{
		{Label: "-a, --alpha", Help: "First letter."},
		{Label: "--beta", Help: "Second letter."},
	}
	got := render(t, testSettings(), func(p *Printer) {
		p.WriteSection(Section{Heading: "Options", Rows: rows}, 0)
	})
	want := "\n" +
		"Options:\n" +
		"  -a, --alpha  First letter.\n" +
		"  --beta       Second letter.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tabular output mismatch (-want +got):\n%s", diff)
	}
}

func TestLinearSection(t *testing.T) {
	settings := testSettings()
	settings.Col2MinWidth = 35 // force the linear layout at width 40
	rows := []Row{
		{Label: "-a, --alpha", Help: "First letter."},
		{Label: "--beta", Help: "Second letter."},
	}
	got := render(t, settings, func(p *Printer) {
		p.WriteSection(Section{Heading: "Options", Rows: rows}, 0)
	})
	want := "\n" +
		"Options:\n" +
		"  -a, --alpha\n" +
		"     First letter.\n" +
		"\n" +
		"  --beta\n" +
		"     Second letter.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("linear output mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutSwitchBoundary(t *testing.T) {
	// col2 width = total - label(10) - spacing(2); the layout must be
	// tabular at exactly Col2MinWidth and linear one unit narrower.
	rows := []Row{{Label: strings.Repeat("x", 10), Help: "help"}}

	settings := Default()
	settings.Col2MinWidth = 20

	settings.Width = 32
	tabular := render(t, settings, func(p *Printer) { p.WriteDefinitionList(rows, 0) })
	if strings.Count(tabular, "\n") != 1 {
		t.Fatalf("expected single-line tabular row at the boundary, got %q", tabular)
	}

	settings.Width = 31
	linear := render(t, settings, func(p *Printer) { p.WriteDefinitionList(rows, 0) })
	if strings.Count(linear, "\n") != 2 {
		t.Fatalf("expected two-line linear row below the boundary, got %q", linear)
	}
}

func TestLongLabelExcludedFromWidth(t *testing.T) {
	long := strings.Repeat("z", 35) // exceeds the col1 cap of 30
	rows := []Row{
		{Label: "--one", Help: "a"},
		{Label: "--two22", Help: "b"},
		{Label: "--three", Help: "c"},
		{Label: long, Help: "overflows"},
	}
	if got := ComputeCol1Width(rows, 30); got != 7 {
		t.Fatalf("ComputeCol1Width = %d, want 7 (long label must be excluded)", got)
	}

	settings := Default()
	settings.Width = 60
	settings.Col2MinWidth = 10
	got := render(t, settings, func(p *Printer) { p.WriteDefinitionList(rows, 0) })

	if !strings.Contains(got, "--one    a\n") {
		t.Fatalf("short rows should align to width 7, got:\n%s", got)
	}
	// The long label wraps onto its own overflow line.
	if !strings.Contains(got, long+"\n") {
		t.Fatalf("long label should sit on its own line, got:\n%s", got)
	}
}

func TestDescriptionWrapsIntoColumn2(t *testing.T) {
	settings := Default()
	settings.Width = 30
	settings.Col2MinWidth = 10
	rows := []Row{{Label: "--opt", Help: "one two three four five six seven"}}
	got := render(t, settings, func(p *Printer) { p.WriteDefinitionList(rows, 0) })

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped description, got %q", got)
	}
	// Continuation lines re-indent to the start of column 2.
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, strings.Repeat(" ", 7)) {
			t.Fatalf("continuation line not aligned to column 2: %q", line)
		}
	}
}

func TestEmptySectionRendersNothing(t *testing.T) {
	got := render(t, testSettings(), func(p *Printer) {
		p.WriteSection(Section{Heading: "Empty"}, 0)
	})
	if got != "" {
		t.Fatalf("empty section rendered %q", got)
	}
}

func TestEmptyHelpRendersLabelAlone(t *testing.T) {
	got := render(t, testSettings(), func(p *Printer) {
		p.WriteDefinitionList([]Row{{Label: "--bare"}}, 0)
	})
	if got != "--bare\n" {
		t.Fatalf("bare label rendered %q", got)
	}
}

func TestAlignedSectionsShareColumnWidth(t *testing.T) {
	sections := []Section{
		{Heading: "A", Rows: []Row{{Label: "--long-option", Help: "a"}}},
		{Heading: "B", Rows: []Row{{Label: "--x", Help: "b"}}},
	}
	settings := Default()
	settings.Col2MinWidth = 10

	aligned := render(t, settings, func(p *Printer) { p.WriteSections(sections, true) })
	if !strings.Contains(aligned, "--x            b\n") {
		t.Fatalf("aligned sections should share col1 width 13, got:\n%s", aligned)
	}

	independent := render(t, settings, func(p *Printer) { p.WriteSections(sections, false) })
	if !strings.Contains(independent, "--x  b\n") {
		t.Fatalf("independent sections should compute their own width, got:\n%s", independent)
	}
}

func TestConstraintAnnotation(t *testing.T) {
	section := Section{
		Heading:    "Output",
		Constraint: "mutually exclusive",
		Rows:       []Row{{Label: "--json", Help: "JSON output."}},
	}
	got := render(t, testSettings(), func(p *Printer) { p.WriteSection(section, 0) })
	if !strings.Contains(got, "Output: [mutually exclusive]\n") {
		t.Fatalf("inline constraint annotation missing:\n%s", got)
	}

	narrow := testSettings()
	narrow.Width = 24
	got = render(t, narrow, func(p *Printer) { p.WriteSection(section, 0) })
	if !strings.Contains(got, "Output:\n  [mutually exclusive]\n") {
		t.Fatalf("wrapped constraint annotation missing:\n%s", got)
	}
}

func TestRenderingIsIdempotent(t *testing.T) {
	sections := []Section{
		{Heading: "One", Rows: []Row{{Label: "--a", Help: "alpha"}, {Label: "--b", Help: "beta"}}},
		{Heading: "Two", Rows: []Row{{Label: "--c", Help: strings.Repeat("gamma ", 20)}}},
	}
	settings := testSettings()
	settings.RowSep = RowSepIf(MultilineRowsAtLeast(1), Fixed(""))

	first := render(t, settings, func(p *Printer) { p.WriteSections(sections, true) })
	second := render(t, settings, func(p *Printer) { p.WriteSections(sections, true) })
	if first != second {
		t.Fatal("re-rendering identical input produced different output")
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero width", func(s *Settings) { s.Width = 0 }},
		{"negative indent", func(s *Settings) { s.IndentIncrement = -1 }},
		{"zero col1 cap", func(s *Settings) { s.Col1MaxWidth = 0 }},
		{"negative col2 min", func(s *Settings) { s.Col2MinWidth = -1 }},
		{"zero spacing", func(s *Settings) { s.ColSpacing = 0 }},
		{"newline separator", func(s *Settings) { s.RowSep = Fixed("--\n") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Fatal("expected a configuration error")
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("default settings rejected: %v", err)
	}
}

func TestStyledLabelsKeepColumnsAligned(t *testing.T) {
	green := func(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

	// Escape sequences never count toward the column width.
	if got := ComputeCol1Width([]Row{{Label: green("-a, --alpha")}}, 30); got != 11 {
		t.Fatalf("ComputeCol1Width over a styled label = %d, want 11", got)
	}

	settings := testSettings()
	settings.Styles.Col1 = green
	rows := []Row{
		{Label: "-a, --alpha", Help: "First letter."},
		{Label: "--beta", Help: "Second letter."},
	}
	got := render(t, settings, func(p *Printer) {
		p.WriteSection(Section{Heading: "Options", Rows: rows}, 0)
	})
	want := "\n" +
		"Options:\n" +
		"  " + green("-a, --alpha") + "  First letter.\n" +
		"  " + green("--beta") + "       Second letter.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("styled output mismatch (-want +got):\n%s", diff)
	}
}
