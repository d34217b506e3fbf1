package optic

import (
	"fmt"

	"github.com/theRebelliousNerd/optic/constraint"
)

// OptionGroup names a set of flags rendered together in the help page,
// optionally guarded by a constraint. Groups act as markers: the flags
// themselves stay ordinary pflag flags, and membership is recorded in the
// command's registry.
type OptionGroup struct {
	// Title heads the group's help section. Mandatory.
	Title string
	// Help is an optional paragraph shown below the title.
	Help string
	// Constraint optionally validates the group's flags. Its description
	// is rendered as an annotation next to the title unless hidden.
	Constraint constraint.Constraint
	// Hidden removes the whole group from the help page. Its constraint
	// is still enforced.
	Hidden bool

	flags []string
}

// Flags returns the destination names of the group's flags in registration
// order.
func (g *OptionGroup) Flags() []string {
	out := make([]string, len(g.flags))
	copy(out, g.flags)
	return out
}

// AddGroup registers an option group over the named flags, which must
// already be defined on the command. Malformed declarations (missing title,
// flag claimed by two groups) panic: they are developer errors that should
// never survive development.
func (r *Registry) AddGroup(g *OptionGroup, flagNames ...string) *OptionGroup {
	r.checkNotApplied("AddGroup")
	if g.Title == "" {
		panic("optic: OptionGroup requires a title; you probably forgot it")
	}
	if len(flagNames) == 0 {
		panic(fmt.Sprintf("optic: option group %q requires at least one flag", g.Title))
	}
	for _, name := range flagNames {
		if owner, taken := r.groupOf[name]; taken {
			panic(fmt.Sprintf("optic: flag %q already belongs to group %q", name, owner.Title))
		}
		r.groupOf[name] = g
		g.flags = append(g.flags, name)
	}
	r.groups = append(r.groups, g)
	return g
}

// Grouped is a convenience that creates and registers a group in one call.
func (r *Registry) Grouped(title string, c constraint.Constraint, flagNames ...string) *OptionGroup {
	return r.AddGroup(&OptionGroup{Title: title, Constraint: c}, flagNames...)
}
