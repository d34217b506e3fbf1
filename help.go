package optic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theRebelliousNerd/optic/layout"
	"github.com/theRebelliousNerd/optic/param"
)

// renderHelpTo is installed as the cobra help function by Apply.
func renderHelpTo(cmd *cobra.Command, _ []string) {
	out, err := RenderHelp(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "optic:", err)
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
}

// RenderHelp renders the full help page of cmd: usage line, description,
// option-group sections, subcommand sections, the optional constraints
// section and the epilog. Commands without a registry still render, with
// all flags in a single "Options" section.
func RenderHelp(cmd *cobra.Command) (string, error) {
	cfg := effectiveConfig(cmd)
	settings, err := cfg.layoutSettings()
	if err != nil {
		return "", err
	}
	theme, err := cfg.theme()
	if err != nil {
		return "", err
	}
	p, err := layout.NewPrinter(settings)
	if err != nil {
		return "", err
	}

	reg, _ := lookup(cmd)
	ctx := Context(cmd)

	writeUsage(p, cmd, theme)
	writeDescription(p, cmd, theme)
	writeAliases(p, cmd)

	p.WriteSections(optionSections(cmd, reg, ctx), cfg.alignOptionGroups())
	p.WriteSections(commandSections(cmd, reg), cfg.alignSections())
	if cfg.showConstraints() && reg != nil {
		p.WriteSection(constraintsSection(reg, ctx), 0)
	}
	if reg != nil && reg.epilog != "" {
		p.Blank()
		p.WriteEpilog(reg.epilog)
	}
	return p.String(), nil
}

func writeUsage(p *layout.Printer, cmd *cobra.Command, theme Theme) {
	path := cmd.CommandPath()
	rest := strings.TrimPrefix(cmd.UseLine(), path)
	p.Write(theme.Heading.Render("Usage:"), " ", theme.InvokedCommand.Render(path), rest, "\n")
}

func writeDescription(p *layout.Printer, cmd *cobra.Command, theme Theme) {
	text := cmd.Long
	if text == "" {
		text = cmd.Short
	}
	if text == "" {
		return
	}
	if cmd.Deprecated != "" {
		text = "(DEPRECATED) " + text
	}
	p.Blank()
	p.WriteText(text, func(s string) string { return theme.CommandHelp.Render(s) })
}

func writeAliases(p *layout.Printer, cmd *cobra.Command) {
	if len(cmd.Aliases) == 0 {
		return
	}
	p.Blank()
	p.WriteText("Aliases: "+strings.Join(cmd.Aliases, ", "), nil)
}

// optionSections builds one section per visible option group, then the
// leftover local flags ("Options", or "Other options" when groups exist)
// and finally the inherited flags ("Global options").
func optionSections(cmd *cobra.Command, reg *Registry, ctx param.Context) []layout.Section {
	var sections []layout.Section
	grouped := make(map[string]bool)
	if reg != nil {
		for _, g := range reg.groups {
			for _, name := range g.flags {
				grouped[name] = true
			}
			if g.Hidden {
				continue
			}
			s := layout.Section{Heading: g.Title, Help: g.Help}
			if g.Constraint != nil {
				s.Constraint = g.Constraint.Help(ctx)
			}
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil && !f.Hidden {
					s.Rows = append(s.Rows, flagRow(f))
				}
			}
			sections = append(sections, s)
		}
	}

	var leftover []layout.Row
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || grouped[f.Name] {
			return
		}
		leftover = append(leftover, flagRow(f))
	})
	if len(leftover) > 0 {
		title := "Options"
		if len(sections) > 0 {
			title = "Other options"
		}
		sections = append(sections, layout.Section{Heading: title, Rows: leftover})
	}

	var inherited []layout.Row
	cmd.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		inherited = append(inherited, flagRow(f))
	})
	if len(inherited) > 0 {
		sections = append(sections, layout.Section{Heading: "Global options", Rows: inherited})
	}
	return sections
}

// flagRow formats one flag as a definition-list row. Long-only flags are
// padded so all long forms line up with flags that have a shorthand.
func flagRow(f *pflag.Flag) layout.Row {
	varname, usage := pflag.UnquoteUsage(f)
	var label strings.Builder
	if f.Shorthand != "" {
		label.WriteString("-" + f.Shorthand + ", ")
	} else {
		label.WriteString("    ")
	}
	label.WriteString("--" + f.Name)
	if varname != "" {
		label.WriteString(" " + varname)
	}
	if showDefault(f) {
		usage += fmt.Sprintf(" (default %s)", f.DefValue)
	}
	return layout.Row{Label: label.String(), Help: usage}
}

func showDefault(f *pflag.Flag) bool {
	switch f.DefValue {
	case "", "false", "[]", "0", "0s":
		return false
	}
	return true
}

// commandSections builds the declared subcommand sections in declaration
// order, plus a trailing default section holding every subcommand not
// claimed by any section, listed alphabetically. The default section is
// titled "Commands" when it is the only one and "Other commands" otherwise.
func commandSections(cmd *cobra.Command, reg *Registry) []layout.Section {
	byName := make(map[string]*cobra.Command)
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() || sub.Name() == "help" {
			byName[sub.Name()] = sub
		}
	}

	var sections []layout.Section
	claimed := make(map[string]bool)
	if reg != nil {
		for _, sec := range reg.sections {
			s := layout.Section{Heading: sec.Title, Help: sec.Help}
			names := sec.commands
			if sec.Sorted {
				names = append([]string(nil), names...)
				sort.Strings(names)
			}
			for _, name := range names {
				claimed[name] = true
				if sub, ok := byName[name]; ok {
					s.Rows = append(s.Rows, layout.Row{Label: sub.Name(), Help: sub.Short})
				}
			}
			sections = append(sections, s)
		}
	}

	var rest []string
	for name := range byName {
		if !claimed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	if len(rest) > 0 {
		title := "Commands"
		if len(sections) > 0 {
			title = "Other commands"
		}
		s := layout.Section{Heading: title}
		for _, name := range rest {
			s.Rows = append(s.Rows, layout.Row{Label: name, Help: byName[name].Short})
		}
		sections = append(sections, s)
	}
	return sections
}

// constraintsSection lists the standalone constraints whose help is not
// hidden, labelling each with the braced flag list it covers.
func constraintsSection(reg *Registry, ctx param.Context) layout.Section {
	s := layout.Section{Heading: "Constraints"}
	for _, bc := range reg.standalone {
		help := bc.constraint.Help(ctx)
		if help == "" {
			continue
		}
		labels := make([]string, 0, len(bc.names))
		for _, name := range bc.names {
			labels = append(labels, "--"+name)
		}
		s.Rows = append(s.Rows, layout.Row{
			Label: "{" + strings.Join(labels, ", ") + "}",
			Help:  help,
		})
	}
	return s
}
