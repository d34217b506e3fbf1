package optic

import (
	"github.com/spf13/cobra"
)

// Section names a set of subcommands rendered together in the help page.
type Section struct {
	// Title heads the section. Mandatory.
	Title string
	// Help is an optional paragraph shown below the title.
	Help string
	// Sorted lists the section's commands alphabetically instead of in
	// registration order.
	Sorted bool

	commands []string
}

// Commands returns the subcommand names of the section in registration
// order.
func (s *Section) Commands() []string {
	out := make([]string, len(s.commands))
	copy(out, s.commands)
	return out
}

// AddSection registers a help section and adds the given subcommands both to
// the section and, if not already present, to the command itself.
// Subcommands never added to a section end up in a trailing default section
// ("Commands" when it is the only one, "Other commands" otherwise), listed
// alphabetically.
func (r *Registry) AddSection(s *Section, subcommands ...*cobra.Command) *Section {
	r.checkNotApplied("AddSection")
	if s.Title == "" {
		panic("optic: Section requires a title; you probably forgot it")
	}
	existing := make(map[string]bool)
	for _, sub := range r.cmd.Commands() {
		existing[sub.Name()] = true
	}
	for _, sub := range subcommands {
		if !existing[sub.Name()] {
			r.cmd.AddCommand(sub)
		}
		s.commands = append(s.commands, sub.Name())
		r.sectionOf[sub.Name()] = s
	}
	r.sections = append(r.sections, s)
	return s
}
