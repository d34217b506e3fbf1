package constraint

import (
	"fmt"

	"github.com/theRebelliousNerd/optic/param"
)

// ViolationError reports that parsed values failed a constraint's value
// check. It carries the offending constraint and the full ordered parameter
// group so callers can render or rephrase the diagnostic.
type ViolationError struct {
	Constraint Constraint
	Params     []param.Param
	message    string
}

// NewViolation builds a violation with an explicit message.
func NewViolation(c Constraint, params []param.Param, message string) *ViolationError {
	return &ViolationError{Constraint: c, Params: params, message: message}
}

// defaultViolation builds the generic message used when a constraint has no
// specialized one, e.g. a failed Or combinator.
func defaultViolation(c Constraint, params []param.Param, desc string) *ViolationError {
	return NewViolation(c, params, fmt.Sprintf(
		"the following constraint on parameters [%s] was not satisfied: %s",
		param.JoinLabels(params, ", "), desc))
}

func (e *ViolationError) Error() string { return e.message }

// UnsatisfiableError reports that a constraint can never be satisfied by its
// parameter group regardless of input. It is a developer error: it should
// surface during development, not be handled at runtime.
type UnsatisfiableError struct {
	Constraint Constraint
	Params     []param.Param
	Reason     string
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("the constraint %s defined on parameters [%s] cannot be satisfied because %s",
		displayName(e.Constraint), param.JoinLabels(e.Params, ", "), e.Reason)
}

func unsatisfiable(c Constraint, params []param.Param, reason string) *UnsatisfiableError {
	return &UnsatisfiableError{Constraint: c, Params: params, Reason: reason}
}

// displayName renders a constraint for diagnostics, preferring its Stringer
// form (e.g. "AcceptBetween(1, 3)") over an opaque value dump.
func displayName(c Constraint) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}
