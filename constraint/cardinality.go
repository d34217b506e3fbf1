package constraint

import (
	"fmt"

	"github.com/theRebelliousNerd/optic/param"
)

type atLeast struct {
	n int
}

// RequireAtLeast is satisfied when at least n of the parameters are set.
// n must be non-negative.
func RequireAtLeast(n int) Constraint {
	if n < 0 {
		panic("constraint.RequireAtLeast: n must be non-negative")
	}
	return atLeast{n}
}

func (c atLeast) Help(param.Context) string {
	return fmt.Sprintf("at least %d required", c.n)
}

func (c atLeast) CheckConsistency(params []param.Param) error {
	if len(params) < c.n {
		return unsatisfiable(c, params, fmt.Sprintf(
			"the constraint requires a minimum of %d parameters but it is applied to a group of only %d parameters",
			c.n, len(params)))
	}
	return nil
}

func (c atLeast) CheckValues(params []param.Param, ctx param.Context) error {
	if len(param.SetParams(ctx, params)) < c.n {
		return NewViolation(c, params, fmt.Sprintf(
			"at least %d of the following parameters must be set:\n%s",
			c.n, param.FormatList(params)))
	}
	return nil
}

func (c atLeast) String() string { return fmt.Sprintf("RequireAtLeast(%d)", c.n) }

type atMost struct {
	n int
}

// AcceptAtMost is satisfied when no more than n of the parameters are set.
// n must be non-negative.
func AcceptAtMost(n int) Constraint {
	if n < 0 {
		panic("constraint.AcceptAtMost: n must be non-negative")
	}
	return atMost{n}
}

func (c atMost) Help(param.Context) string {
	return fmt.Sprintf("at most %d accepted", c.n)
}

func (c atMost) CheckConsistency(params []param.Param) error {
	if required := len(param.RequiredParams(params)); required > c.n {
		return unsatisfiable(c, params, fmt.Sprintf(
			"%d of the parameters are required", required))
	}
	return nil
}

func (c atMost) CheckValues(params []param.Param, ctx param.Context) error {
	if len(param.SetParams(ctx, params)) > c.n {
		return NewViolation(c, params, fmt.Sprintf(
			"no more than %d of the following parameters can be set:\n%s",
			c.n, param.FormatList(params)))
	}
	return nil
}

func (c atMost) String() string { return fmt.Sprintf("AcceptAtMost(%d)", c.n) }

type exactly struct {
	Wrapper
	n int
}

// RequireExactly is satisfied when exactly n of the parameters are set.
// n must be non-negative; RequireExactly(0) forbids the whole group.
func RequireExactly(n int) Constraint {
	if n < 0 {
		panic("constraint.RequireExactly: n must be non-negative")
	}
	return exactly{
		// The wrapped conjunction supplies the consistency checks.
		Wrapper: Wrapper{
			Name:  "RequireExactly",
			Args:  []any{n},
			Inner: And(RequireAtLeast(n), AcceptAtMost(n)),
		},
		n: n,
	}
}

func (c exactly) Help(param.Context) string {
	return fmt.Sprintf("exactly %d required", c.n)
}

func (c exactly) CheckValues(params []param.Param, ctx param.Context) error {
	if len(param.SetParams(ctx, params)) != c.n {
		head := fmt.Sprintf("exactly %d of the following parameters must be set:\n", c.n)
		if c.n == 0 {
			head = "none of the following parameters must be set:\n"
		}
		return NewViolation(c, params, head+param.FormatList(params))
	}
	return nil
}

type between struct {
	Wrapper
	min, max int
}

// AcceptBetween is satisfied when the number of set parameters is within
// [min, max]. min must be non-negative and strictly less than max.
func AcceptBetween(min, max int) Constraint {
	if min < 0 {
		panic("constraint.AcceptBetween: min must be non-negative")
	}
	if min >= max {
		panic("constraint.AcceptBetween: min must be < max")
	}
	return between{
		Wrapper: Wrapper{
			Name:  "AcceptBetween",
			Args:  []any{min, max},
			Inner: And(RequireAtLeast(min), AcceptAtMost(max)),
		},
		min: min,
		max: max,
	}
}

func (c between) Help(param.Context) string {
	return fmt.Sprintf("at least %d required, at most %d accepted", c.min, c.max)
}

type requireAll struct{}

func (requireAll) Help(param.Context) string { return "all required" }

func (requireAll) CheckConsistency([]param.Param) error { return nil }

func (c requireAll) CheckValues(params []param.Param, ctx param.Context) error {
	var unset []param.Param
	for _, p := range params {
		value, provided := ctx.Value(p.Name)
		if !param.ValueIsSet(p.Kind, value, provided) {
			unset = append(unset, p)
		}
	}
	if len(unset) == 0 {
		return nil
	}
	message := param.Pluralize(len(unset),
		fmt.Sprintf("%s is required", param.Format(unset[0])),
		fmt.Sprintf("the following parameters are required:\n%s", param.FormatList(unset)))
	return NewViolation(c, params, message)
}

func (requireAll) String() string { return "RequireAll" }
