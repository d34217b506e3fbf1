package layout

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHline(t *testing.T) {
	if got := Hline("-")(5); got != "-----" {
		t.Fatalf("single-rune hline: got %q", got)
	}
	if got := Hline("- ")(5); got != "- - -" {
		t.Fatalf("multi-rune hline: got %q", got)
	}
	if got := HlineSolid(3); got != "───" {
		t.Fatalf("solid hline: got %q", got)
	}
	if got := Hline("-")(0); got != "" {
		t.Fatalf("zero-width hline: got %q", got)
	}
}

func TestHlinePanicsOnEmptyPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	Hline("")
}

func TestCountMultilineRows(t *testing.T) {
	rows := []Row{
		{Label: "--a", Help: "short"},
		{Label: "--b", Help: strings.Repeat("long ", 10)},
		{Label: "--a-very-long-label", Help: "short"},
	}
	if got := CountMultilineRows(rows, []int{10, 20}); got != 2 {
		t.Fatalf("CountMultilineRows = %d, want 2", got)
	}
}

func TestMultilineConditions(t *testing.T) {
	short := Row{Label: "--a", Help: "short"}
	long := Row{Label: "--b", Help: strings.Repeat("long ", 10)}
	widths := []int{10, 20}

	if MultilineRowsAtLeast(1)([]Row{short}, widths, 2) {
		t.Fatal("condition held with no multiline rows")
	}
	if !MultilineRowsAtLeast(1)([]Row{short, long}, widths, 2) {
		t.Fatal("condition did not hold with one multiline row")
	}
	if MultilineFractionAtLeast(0.75)([]Row{short, long}, widths, 2) {
		t.Fatal("fraction 0.5 satisfied a 0.75 threshold")
	}
	if !MultilineFractionAtLeast(0.5)([]Row{short, long}, widths, 2) {
		t.Fatal("fraction 0.5 did not satisfy a 0.5 threshold")
	}
	if MultilineFractionAtLeast(0.5)(nil, widths, 2) {
		t.Fatal("empty list satisfied the fraction condition")
	}
}

func TestGeneratedSepSpansTableWidth(t *testing.T) {
	sep, ok := Generated(HlineDashed).Sep(nil, []int{6, 12}, 2, 40)
	if !ok {
		t.Fatal("Generated returned ok == false")
	}
	// 6 + 2 + 12
	if sep != strings.Repeat("-", 20) {
		t.Fatalf("separator %q does not span the table", sep)
	}
}

func TestRowSepRendering(t *testing.T) {
	settings := testSettings()
	settings.RowSep = Generated(HlineDashed)
	rows := []Row{
		{Label: "--a", Help: "alpha"},
		{Label: "--b", Help: "beta"},
	}
	got := render(t, settings, func(p *Printer) {
		p.WriteSection(Section{Heading: "Options", Rows: rows}, 0)
	})
	// col1 = 3, col2 = 40 - 2 - 3 - 2 = 33, table width = 3 + 2 + 33.
	want := "\n" +
		"Options:\n" +
		"  --a  alpha\n" +
		"  " + strings.Repeat("-", 38) + "\n" +
		"  --b  beta\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("separated output mismatch (-want +got):\n%s", diff)
	}
}

func TestConditionalRowSep(t *testing.T) {
	settings := testSettings()
	settings.RowSep = RowSepIf(MultilineRowsAtLeast(1), Fixed(""))
	compact := []Row{
		{Label: "--a", Help: "alpha"},
		{Label: "--b", Help: "beta"},
	}
	got := render(t, settings, func(p *Printer) {
		p.WriteSection(Section{Heading: "Options", Rows: compact}, 0)
	})
	if strings.Contains(got, "\n\n  --b") {
		t.Fatalf("single-line rows got a separator:\n%s", got)
	}

	wrapped := []Row{
		{Label: "--a", Help: strings.Repeat("alpha ", 12)},
		{Label: "--b", Help: "beta"},
	}
	got = render(t, settings, func(p *Printer) {
		p.WriteSection(Section{Heading: "Options", Rows: wrapped}, 0)
	})
	if !strings.Contains(got, "\n\n  --b") {
		t.Fatalf("wrapped rows got no separator:\n%s", got)
	}
}
