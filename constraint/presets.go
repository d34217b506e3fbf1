package constraint

// Named constraints covering the common cases. All of them are immutable and
// safe to attach to any number of parameter groups.
var (
	// RequireAll is satisfied when every parameter in the group is set.
	RequireAll Constraint = requireAll{}

	// AcceptNone is satisfied when none of the parameters is set. Mostly
	// useful as a branch of a conditional constraint.
	AcceptNone = Rephrased(RequireExactly(0), Rephrase{
		Help:  "all forbidden",
		Error: "the following parameters should not be provided:\n" + ParamListPlaceholder,
	})

	// AllOrNone is satisfied when either all or none of the parameters
	// are set.
	AllOrNone = Rephrased(Or(RequireAll, AcceptNone), Rephrase{
		Help: "provide all or none",
		Error: "the following parameters should be provided together (or none of " +
			"them should be provided):\n" + ParamListPlaceholder,
	})

	// MutuallyExclusive is satisfied when at most one of the parameters
	// is set.
	MutuallyExclusive = Rephrased(AcceptAtMost(1), Rephrase{
		Help:  "mutually exclusive",
		Error: "the following parameters are mutually exclusive:\n" + ParamListPlaceholder,
	})

	// RequireAny is an alias for RequireAtLeast(1).
	RequireAny = RequireAtLeast(1)

	// RequireOne is an alias for RequireExactly(1).
	RequireOne = RequireExactly(1)
)
