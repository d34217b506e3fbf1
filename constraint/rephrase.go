package constraint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theRebelliousNerd/optic/param"
)

// HelpRephraser computes a help string for a wrapped constraint.
type HelpRephraser func(ctx param.Context, wrapped Constraint) string

// ErrorRephraser computes a message from the violation raised by a wrapped
// constraint. The violation carries the constraint and the full parameter
// group, so the rephrased message can reference any of it.
type ErrorRephraser func(err *ViolationError) string

// Placeholders usable in a Rephrase.Error template.
const (
	// ErrorPlaceholder is replaced by the wrapped constraint's original
	// message, so a template can prepend or append context without losing
	// the original diagnostic.
	ErrorPlaceholder = "{error}"
	// ParamListPlaceholder is replaced by a two-space indented list of the
	// constrained parameters, one per line, each rendered with both its
	// long and short invocation forms.
	ParamListPlaceholder = "{param_list}"
)

// Rephrase describes how to override the help text and/or the error message
// of a constraint. At least one field must be set.
type Rephrase struct {
	// Help overrides the help text with a literal string.
	Help string
	// HideHelp makes the constraint invisible in generated documentation
	// while leaving validation unchanged.
	HideHelp bool
	// HelpFunc overrides the help text with a computed string. Takes
	// precedence over Help and HideHelp.
	HelpFunc HelpRephraser
	// Error overrides the violation message with a template supporting
	// ErrorPlaceholder and ParamListPlaceholder.
	Error string
	// ErrorFunc overrides the violation message with a computed string.
	// Takes precedence over Error.
	ErrorFunc ErrorRephraser
}

func (r Rephrase) isZero() bool {
	return r.Help == "" && !r.HideHelp && r.HelpFunc == nil &&
		r.Error == "" && r.ErrorFunc == nil
}

type rephraser struct {
	inner Constraint
	r     Rephrase
}

// Rephrased wraps a constraint, overriding its help text and/or its error
// message. Validation behavior is unchanged: the wrapped constraint fails
// under exactly the same inputs.
func Rephrased(c Constraint, r Rephrase) Constraint {
	if r.isZero() {
		panic("constraint.Rephrased: at least one override must be set")
	}
	return rephraser{inner: c, r: r}
}

// Hidden hides a constraint from generated documentation while keeping it
// enforced.
func Hidden(c Constraint) Constraint {
	return Rephrased(c, Rephrase{HideHelp: true})
}

func (c rephraser) Help(ctx param.Context) string {
	switch {
	case c.r.HelpFunc != nil:
		return c.r.HelpFunc(ctx, c.inner)
	case c.r.HideHelp:
		return ""
	case c.r.Help != "":
		return c.r.Help
	default:
		return c.inner.Help(ctx)
	}
}

func (c rephraser) CheckConsistency(params []param.Param) error {
	err := c.inner.CheckConsistency(params)
	var unsat *UnsatisfiableError
	if errors.As(err, &unsat) {
		return unsatisfiable(c, params, unsat.Reason)
	}
	return err
}

func (c rephraser) CheckValues(params []param.Param, ctx param.Context) error {
	err := c.inner.CheckValues(params, ctx)
	if err == nil {
		return nil
	}
	var violation *ViolationError
	if !errors.As(err, &violation) {
		return err
	}
	switch {
	case c.r.ErrorFunc != nil:
		return NewViolation(c, params, c.r.ErrorFunc(violation))
	case c.r.Error != "":
		message := strings.ReplaceAll(c.r.Error, ErrorPlaceholder, violation.Error())
		message = strings.ReplaceAll(message, ParamListPlaceholder, param.FormatList(violation.Params))
		return NewViolation(c, params, message)
	default:
		return violation
	}
}

func (c rephraser) String() string {
	return fmt.Sprintf("Rephrased(%s)", displayName(c.inner))
}

// Wrapper is the base for named constraint types composed from existing
// ones: it delegates all checks to Inner and renders as "Name(args...)" in
// consistency diagnostics, so users can identify which declared constraint
// misbehaved instead of seeing an opaque composition. Embed it and override
// Help (and, when needed, CheckValues).
type Wrapper struct {
	// Name is the display name used in diagnostics.
	Name string
	// Args are display-only values completing the diagnostic rendering.
	Args []any
	// Inner is the constraint all checks delegate to.
	Inner Constraint
}

func (w Wrapper) Help(ctx param.Context) string {
	return w.Inner.Help(ctx)
}

func (w Wrapper) CheckConsistency(params []param.Param) error {
	err := w.Inner.CheckConsistency(params)
	var unsat *UnsatisfiableError
	if errors.As(err, &unsat) {
		return unsatisfiable(w, params, unsat.Reason)
	}
	return err
}

func (w Wrapper) CheckValues(params []param.Param, ctx param.Context) error {
	return w.Inner.CheckValues(params, ctx)
}

func (w Wrapper) String() string {
	if len(w.Args) == 0 {
		return w.Name
	}
	parts := make([]string, len(w.Args))
	for i, arg := range w.Args {
		parts[i] = fmt.Sprint(arg)
	}
	return fmt.Sprintf("%s(%s)", w.Name, strings.Join(parts, ", "))
}
