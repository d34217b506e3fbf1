package optic

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theRebelliousNerd/optic/layout"
)

// Theme collects the lipgloss styles applied to the elements of a help
// page. The zero value renders plain text.
type Theme struct {
	// InvokedCommand styles the command path in the usage line.
	InvokedCommand lipgloss.Style
	// CommandHelp styles the command description below the usage line.
	CommandHelp lipgloss.Style
	// Heading styles section headings.
	Heading lipgloss.Style
	// Constraint styles option-group constraint annotations.
	Constraint lipgloss.Style
	// SectionHelp styles the optional paragraph below a section heading.
	SectionHelp lipgloss.Style
	// Col1 styles the first column of definition lists (flag invocations,
	// command names, aliases).
	Col1 lipgloss.Style
	// Col2 styles the second column (help text).
	Col2 lipgloss.Style
	// Epilog styles the trailing free text.
	Epilog lipgloss.Style
}

// Brand palette shared with the rest of the tooling.
var (
	colorLime   = lipgloss.Color("#8BC34A")
	colorBlue   = lipgloss.Color("#101F38")
	colorLight  = lipgloss.Color("#f2f2f2")
	colorAmber  = lipgloss.Color("#FFC107")
	colorSkyish = lipgloss.Color("#2196F3")
)

// PlainTheme renders without any styling.
func PlainTheme() Theme { return Theme{} }

// DarkTheme assumes a dark terminal background.
func DarkTheme() Theme {
	return Theme{
		InvokedCommand: lipgloss.NewStyle().Foreground(colorLime),
		Heading:        lipgloss.NewStyle().Foreground(colorLight).Bold(true),
		Constraint:     lipgloss.NewStyle().Foreground(colorAmber),
		Col1:           lipgloss.NewStyle().Foreground(colorLime),
	}
}

// LightTheme assumes a light terminal background.
func LightTheme() Theme {
	return Theme{
		InvokedCommand: lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
		Heading:        lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
		Constraint:     lipgloss.NewStyle().Foreground(colorSkyish),
		Col1:           lipgloss.NewStyle().Foreground(colorBlue),
	}
}

func styleFunc(s lipgloss.Style) layout.Style {
	return func(text string) string { return s.Render(text) }
}

// styles adapts the theme for the layout engine.
func (t Theme) styles() layout.Styles {
	return layout.Styles{
		Heading:     styleFunc(t.Heading),
		Constraint:  styleFunc(t.Constraint),
		SectionHelp: styleFunc(t.SectionHelp),
		Col1:        styleFunc(t.Col1),
		Col2:        styleFunc(t.Col2),
		Epilog:      styleFunc(t.Epilog),
	}
}
