// Package optic augments spf13/cobra commands with parameter constraints and
// grouped, theme-able help pages.
//
// Flags are organized into option groups and subcommands into sections, both
// rendered as aligned definition lists by the layout engine. Constraints
// (mutual exclusivity, conditional requirements, cardinality bounds) attach
// to option groups or stand alone, are consistency-checked when Apply is
// called and value-checked after parsing, before the command's RunE.
//
// Grouping metadata lives in a side table keyed by command; cobra and pflag
// objects are never mutated beyond the hooks cobra itself provides.
package optic

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/theRebelliousNerd/optic/constraint"
)

// Registry holds the optic metadata of a single command: its option groups,
// standalone constraints, subcommand sections and configuration override.
// Registries are append-only until Apply freezes them.
type Registry struct {
	cmd        *cobra.Command
	cfg        *Config
	groups     []*OptionGroup
	groupOf    map[string]*OptionGroup
	standalone []boundConstraint
	sections   []*Section
	sectionOf  map[string]*Section
	epilog     string
	applied    bool
}

type boundConstraint struct {
	constraint constraint.Constraint
	names      []string
}

var (
	registriesMu sync.Mutex
	registries   = make(map[*cobra.Command]*Registry)
)

// For returns the registry of cmd, creating it on first use.
func For(cmd *cobra.Command) *Registry {
	registriesMu.Lock()
	defer registriesMu.Unlock()
	if reg, ok := registries[cmd]; ok {
		return reg
	}
	reg := &Registry{
		cmd:       cmd,
		groupOf:   make(map[string]*OptionGroup),
		sectionOf: make(map[string]*Section),
	}
	registries[cmd] = reg
	return reg
}

func lookup(cmd *cobra.Command) (*Registry, bool) {
	registriesMu.Lock()
	defer registriesMu.Unlock()
	reg, ok := registries[cmd]
	return reg, ok
}

// SetConfig overrides the configuration for this command and its
// descendants. Descendant commands may override it again; unset fields
// inherit from the nearest ancestor that sets them.
func (r *Registry) SetConfig(cfg *Config) *Registry {
	r.checkNotApplied("SetConfig")
	r.cfg = cfg
	return r
}

// SetEpilog sets free text rendered after all help sections.
func (r *Registry) SetEpilog(text string) *Registry {
	r.checkNotApplied("SetEpilog")
	r.epilog = text
	return r
}

// Constrain declares a standalone constraint over the named flags. It is
// checked after all group-attached constraints, in declaration order.
func (r *Registry) Constrain(c constraint.Constraint, flagNames ...string) *Registry {
	r.checkNotApplied("Constrain")
	if c == nil {
		panic("optic: Constrain requires a constraint")
	}
	if len(flagNames) == 0 {
		panic("optic: Constrain requires at least one flag name")
	}
	r.standalone = append(r.standalone, boundConstraint{constraint: c, names: flagNames})
	return r
}

func (r *Registry) checkNotApplied(op string) {
	if r.applied {
		panic(fmt.Sprintf("optic: %s called after Apply; registries are frozen once applied", op))
	}
}

// Apply wires optic into cmd and its whole subtree: it validates every
// registered flag and subcommand reference, runs the consistency checks of
// all declared constraints (unless disabled by configuration), installs the
// help renderer and hooks value validation in before each command's RunE.
//
// A non-nil error is a developer error (unknown flag name, structurally
// unsatisfiable constraint) and should be treated as fatal.
func Apply(cmd *cobra.Command) error {
	cmd.SetHelpFunc(renderHelpTo)

	var walk func(c *cobra.Command) error
	walk = func(c *cobra.Command) error {
		if reg, ok := lookup(c); ok {
			if err := reg.apply(); err != nil {
				return err
			}
		}
		for _, sub := range c.Commands() {
			if err := walk(sub); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(cmd)
}

func (r *Registry) apply() error {
	if r.applied {
		return nil
	}
	cfg := effectiveConfig(r.cmd)
	if err := r.resolveAll(); err != nil {
		return err
	}
	if cfg.consistencyEnabled() {
		if err := r.checkConsistency(); err != nil {
			return err
		}
	}
	r.installValueCheck()
	r.applied = true
	return nil
}
