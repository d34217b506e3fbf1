// Package constraint implements validators over groups of command-line
// parameters: cardinality bounds, logical combinators, conditional dispatch
// and composable rephrasing of help and error text.
//
// Constraints are immutable once constructed. Combinators and rephrasing
// always allocate wrappers, so a constraint value can be shared across any
// number of commands. Violations and structural inconsistencies are reported
// as error values, never by panicking at check time; panics are reserved for
// malformed declarations (negative cardinality, empty operand lists), which
// are developer errors caught the moment the constraint is built.
package constraint

import (
	"strings"

	"github.com/theRebelliousNerd/optic/param"
)

// Constraint validates an ordered group of parameters.
type Constraint interface {
	// Help is a textual description of the constraint shown in generated
	// documentation. An empty string hides the constraint from the docs
	// without affecting validation.
	Help(ctx param.Context) string

	// CheckConsistency detects constraints that are structurally
	// unsatisfiable for the given parameter group regardless of input
	// (e.g. at-most-1 over two required parameters). It is side-effect
	// free and never needs parsed values. A non-nil result is an
	// *UnsatisfiableError and represents a developer mistake.
	CheckConsistency(params []param.Param) error

	// CheckValues validates the parsed values in ctx. A non-nil result is
	// a *ViolationError describing the user input error.
	CheckValues(params []param.Param, ctx param.Context) error
}

type andConstraint struct {
	constraints []Constraint
}

type orConstraint struct {
	constraints []Constraint
}

// And is satisfied when every operand is satisfied. Nested And operands are
// flattened. The raw combined help text is rarely readable as user-facing
// prose; authors are expected to rephrase composites via Rephrased.
func And(constraints ...Constraint) Constraint {
	if len(constraints) == 0 {
		panic("constraint.And: at least one operand is required")
	}
	if len(constraints) == 1 {
		return constraints[0]
	}
	var flat []Constraint
	for _, c := range constraints {
		if inner, ok := c.(andConstraint); ok {
			flat = append(flat, inner.constraints...)
		} else {
			flat = append(flat, c)
		}
	}
	return andConstraint{flat}
}

// Or is satisfied when at least one operand is satisfied.
func Or(constraints ...Constraint) Constraint {
	if len(constraints) == 0 {
		panic("constraint.Or: at least one operand is required")
	}
	if len(constraints) == 1 {
		return constraints[0]
	}
	var flat []Constraint
	for _, c := range constraints {
		if inner, ok := c.(orConstraint); ok {
			flat = append(flat, inner.constraints...)
		} else {
			flat = append(flat, c)
		}
	}
	return orConstraint{flat}
}

func joinHelp(ctx param.Context, constraints []Constraint, sep string) string {
	parts := make([]string, len(constraints))
	for i, c := range constraints {
		h := c.Help(ctx)
		switch c.(type) {
		case andConstraint, orConstraint:
			h = "(" + h + ")"
		}
		parts[i] = h
	}
	return strings.Join(parts, sep)
}

func (c andConstraint) Help(ctx param.Context) string {
	return joinHelp(ctx, c.constraints, " and ")
}

func (c andConstraint) CheckConsistency(params []param.Param) error {
	for _, operand := range c.constraints {
		if err := operand.CheckConsistency(params); err != nil {
			return err
		}
	}
	return nil
}

func (c andConstraint) CheckValues(params []param.Param, ctx param.Context) error {
	for _, operand := range c.constraints {
		if err := operand.CheckValues(params, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c andConstraint) String() string {
	return "And(" + joinStrings(c.constraints) + ")"
}

func (c orConstraint) Help(ctx param.Context) string {
	return joinHelp(ctx, c.constraints, " or ")
}

func (c orConstraint) CheckConsistency(params []param.Param) error {
	for _, operand := range c.constraints {
		if err := operand.CheckConsistency(params); err != nil {
			return err
		}
	}
	return nil
}

func (c orConstraint) CheckValues(params []param.Param, ctx param.Context) error {
	for _, operand := range c.constraints {
		if operand.CheckValues(params, ctx) == nil {
			return nil
		}
	}
	return defaultViolation(c, params, c.Help(ctx))
}

func (c orConstraint) String() string {
	return "Or(" + joinStrings(c.constraints) + ")"
}

func joinStrings(constraints []Constraint) string {
	parts := make([]string, len(constraints))
	for i, c := range constraints {
		parts[i] = displayName(c)
	}
	return strings.Join(parts, ", ")
}
