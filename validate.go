package optic

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theRebelliousNerd/optic/constraint"
	"github.com/theRebelliousNerd/optic/param"
)

// resolveAll verifies that every flag name referenced by a group or a
// standalone constraint exists on the command. Unknown names are developer
// errors surfaced at Apply time, before any parsing happens.
func (r *Registry) resolveAll() error {
	for _, g := range r.groups {
		for _, name := range g.flags {
			if r.cmd.Flags().Lookup(name) == nil {
				return fmt.Errorf("optic: option group %q on command %q references unknown flag %q",
					g.Title, r.cmd.Name(), name)
			}
		}
	}
	for _, bc := range r.standalone {
		for _, name := range bc.names {
			if r.cmd.Flags().Lookup(name) == nil {
				return fmt.Errorf("optic: constraint on command %q references unknown flag %q",
					r.cmd.Name(), name)
			}
		}
	}
	return nil
}

// params resolves flag names into parameter descriptors, in the given order.
func (r *Registry) params(names []string) []param.Param {
	out := make([]param.Param, 0, len(names))
	for _, name := range names {
		out = append(out, paramOf(r.cmd.Flags().Lookup(name)))
	}
	return out
}

// checkConsistency runs the structural checks of every constraint:
// group-attached constraints first, in declaration order, then standalone
// ones. These checks do not look at values and fail only on declarations
// that could never be satisfied.
func (r *Registry) checkConsistency() error {
	for _, g := range r.groups {
		if g.Constraint == nil {
			continue
		}
		if err := g.Constraint.CheckConsistency(r.params(g.flags)); err != nil {
			return fmt.Errorf("optic: command %q, group %q: %w", r.cmd.Name(), g.Title, err)
		}
	}
	for _, bc := range r.standalone {
		if err := bc.constraint.CheckConsistency(r.params(bc.names)); err != nil {
			return fmt.Errorf("optic: command %q: %w", r.cmd.Name(), err)
		}
	}
	return nil
}

// installValueCheck hooks constraint evaluation in after flag parsing and
// before the command's own PreRunE/RunE. The first violation aborts the run;
// cobra then prints the error followed by the usage line.
func (r *Registry) installValueCheck() {
	next := r.cmd.PreRunE
	prev := r.cmd.PreRun
	r.cmd.PreRun = nil
	r.cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if err := r.checkValues(cmd); err != nil {
			return err
		}
		if next != nil {
			return next(cmd, args)
		}
		if prev != nil {
			prev(cmd, args)
		}
		return nil
	}
}

// checkValues evaluates every constraint against the parsed flag values,
// group-attached first in declaration order, then standalone. It stops at
// the first violation.
func (r *Registry) checkValues(cmd *cobra.Command) error {
	ctx := Context(cmd)
	log := effectiveConfig(cmd).logger()
	for _, g := range r.groups {
		if g.Constraint == nil {
			continue
		}
		log.Debug("checking group constraint",
			zap.String("command", cmd.Name()),
			zap.String("group", g.Title),
			zap.String("constraint", constraintName(g.Constraint)))
		if err := g.Constraint.CheckValues(r.params(g.flags), ctx); err != nil {
			return err
		}
	}
	for _, bc := range r.standalone {
		log.Debug("checking constraint",
			zap.String("command", cmd.Name()),
			zap.Strings("flags", bc.names),
			zap.String("constraint", constraintName(bc.constraint)))
		if err := bc.constraint.CheckValues(r.params(bc.names), ctx); err != nil {
			return err
		}
	}
	return nil
}

func constraintName(c constraint.Constraint) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}
