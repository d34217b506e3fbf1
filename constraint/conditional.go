package constraint

import (
	"errors"
	"fmt"

	"github.com/theRebelliousNerd/optic/cond"
	"github.com/theRebelliousNerd/optic/param"
)

// Conditional checks one constraint or another depending on a condition
// evaluated against the parsed values. Build it with If; attach the
// false-branch with Else.
type Conditional struct {
	condition cond.Predicate
	then      Constraint
	otherwise Constraint
}

// If builds a conditional constraint: when condition is true, then is
// checked; otherwise the constraint is trivially satisfied unless an Else
// branch is attached.
//
// condition may be a cond.Predicate, a parameter name (shorthand for
// cond.IsSet) or a list of names (shorthand for cond.AllSet). Any other type
// is a declaration error and panics.
func If(condition any, then Constraint) *Conditional {
	return &Conditional{condition: asPredicate(condition), then: then}
}

// Else returns a copy of the conditional with the given false-branch
// constraint. The receiver is not modified.
func (c *Conditional) Else(otherwise Constraint) *Conditional {
	return &Conditional{condition: c.condition, then: c.then, otherwise: otherwise}
}

func asPredicate(condition any) cond.Predicate {
	switch v := condition.(type) {
	case cond.Predicate:
		return v
	case string:
		return cond.IsSet(v)
	case []string:
		return cond.AllSet(v...)
	default:
		panic(fmt.Sprintf(
			"constraint.If: condition must be a cond.Predicate, a parameter name or a list of names, got %T", condition))
	}
}

func (c *Conditional) Help(ctx param.Context) string {
	desc := c.condition.Description(ctx)
	if c.otherwise == nil {
		return fmt.Sprintf("%s if %s", c.then.Help(ctx), desc)
	}
	return fmt.Sprintf("%s if %s, otherwise %s",
		c.then.Help(ctx), desc, c.otherwise.Help(ctx))
}

// CheckConsistency checks both branches: the condition depends on runtime
// values but branch consistency does not, so it can run before parsing.
func (c *Conditional) CheckConsistency(params []param.Param) error {
	if err := c.then.CheckConsistency(params); err != nil {
		return err
	}
	if c.otherwise != nil {
		return c.otherwise.CheckConsistency(params)
	}
	return nil
}

func (c *Conditional) CheckValues(params []param.Param, ctx param.Context) error {
	conditionIsTrue := c.condition.Evaluate(ctx)
	branch := c.then
	if !conditionIsTrue {
		branch = c.otherwise
	}
	if branch == nil {
		return nil
	}
	err := branch.CheckValues(params, ctx)
	if err == nil {
		return nil
	}
	desc := c.condition.Description(ctx)
	if !conditionIsTrue {
		desc = c.condition.NegatedDescription(ctx)
	}
	var violation *ViolationError
	if errors.As(err, &violation) {
		return NewViolation(c, params, fmt.Sprintf("when %s, %s", desc, violation.Error()))
	}
	return err
}

func (c *Conditional) String() string {
	if c.otherwise == nil {
		return fmt.Sprintf("If(%s)", displayName(c.then))
	}
	return fmt.Sprintf("If(%s, Else(%s))", displayName(c.then), displayName(c.otherwise))
}
