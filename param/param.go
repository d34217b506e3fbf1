// Package param models command-line parameters the way the constraint and
// layout engines need to see them: a destination name, a kind, the invocation
// forms used in messages, and a policy deciding when a parameter counts as
// "set". The actual parsing of argv is owned by the CLI framework; this
// package only reads the results through the Context interface.
package param

import (
	"fmt"
	"strings"
)

// Kind classifies a parameter for the purposes of the set-state policy.
type Kind int

const (
	// Single is a parameter taking exactly one value.
	Single Kind = iota
	// FlagBool is a boolean flag that is true when present (--verbose).
	FlagBool
	// ValueBool is a boolean option that takes an explicit value
	// (--enabled=false). Unlike FlagBool, an explicit false still counts
	// as set.
	ValueBool
	// Multi is a parameter that accepts multiple values.
	Multi
)

func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case FlagBool:
		return "flag"
	case ValueBool:
		return "bool"
	case Multi:
		return "multi"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Param is the read-only metadata of a parameter, as resolved from the
// underlying CLI framework.
type Param struct {
	// Name is the destination name, unique within a command.
	Name string
	// Kind drives the set-state policy.
	Kind Kind
	// Opts are the invocation forms, e.g. ["--output", "-o"]. May be empty
	// for positional arguments.
	Opts []string
	// Required reports whether the parameter is individually mandatory.
	Required bool
}

// Label returns the preferred display name of the parameter: the longest
// invocation form, or the destination name when there is none.
func (p Param) Label() string {
	if len(p.Opts) == 0 {
		return p.Name
	}
	longest := p.Opts[0]
	for _, opt := range p.Opts[1:] {
		if len(opt) > len(longest) {
			longest = opt
		}
	}
	return longest
}

// Context is the per-invocation view of a command that predicates and
// constraints evaluate against. Implementations are provided by the CLI
// integration layer.
type Context interface {
	// Param returns the metadata of the named parameter. The second return
	// value is false if no parameter with that destination name exists.
	Param(name string) (Param, bool)
	// Value returns the resolved value of the named parameter and whether
	// the user actually provided it. A parameter that was never provided
	// reports provided == false regardless of its default value.
	Value(name string) (value any, provided bool)
}

// ValueIsSet implements the set-state policy for a parameter of the given
// kind:
//
//   - a parameter that was not provided is unset;
//   - a Multi parameter is set iff it received at least one value;
//   - a FlagBool is set only if its value is true;
//   - anything else is set whenever provided, even if the value is falsy
//     (false, zero, empty string).
func ValueIsSet(kind Kind, value any, provided bool) bool {
	if !provided {
		return false
	}
	switch kind {
	case FlagBool:
		b, ok := value.(bool)
		return ok && b
	case Multi:
		return valueLen(value) > 0
	default:
		return true
	}
}

func valueLen(value any) int {
	switch v := value.(type) {
	case []string:
		return len(v)
	case []int:
		return len(v)
	case []float64:
		return len(v)
	case []bool:
		return len(v)
	case string:
		return len(v)
	case nil:
		return 0
	default:
		// Unknown multi-value representation: being provided is enough.
		return 1
	}
}

// IsSet reports whether the named parameter is set in ctx. Unknown names
// report false; the integration layer verifies names at registration time.
func IsSet(ctx Context, name string) bool {
	p, ok := ctx.Param(name)
	if !ok {
		return false
	}
	value, provided := ctx.Value(name)
	return ValueIsSet(p.Kind, value, provided)
}

// SetParams filters params down to those that are set in ctx.
func SetParams(ctx Context, params []Param) []Param {
	var set []Param
	for _, p := range params {
		value, provided := ctx.Value(p.Name)
		if ValueIsSet(p.Kind, value, provided) {
			set = append(set, p)
		}
	}
	return set
}

// RequiredParams filters params down to the individually mandatory ones.
func RequiredParams(params []Param) []Param {
	var required []Param
	for _, p := range params {
		if p.Required {
			required = append(required, p)
		}
	}
	return required
}

// Format renders a parameter with both of its invocation forms when
// available, e.g. "--output (-o)".
func Format(p Param) string {
	if len(p.Opts) == 0 {
		return p.Name
	}
	if len(p.Opts) == 1 {
		return p.Opts[0]
	}
	opts := make([]string, len(p.Opts))
	copy(opts, p.Opts)
	// Shortest form last, in parentheses.
	long, short := opts[0], opts[1]
	if len(short) > len(long) {
		long, short = short, long
	}
	return fmt.Sprintf("%s (%s)", long, short)
}

// FormatList renders one parameter per line, indented by two spaces. Used in
// violation messages that enumerate the constrained parameters.
func FormatList(params []Param) string {
	var b strings.Builder
	for _, p := range params {
		b.WriteString("  ")
		b.WriteString(Format(p))
		b.WriteString("\n")
	}
	return b.String()
}

// JoinLabels joins the display labels of params with sep.
func JoinLabels(params []Param, sep string) string {
	labels := make([]string, len(params))
	for i, p := range params {
		labels[i] = p.Label()
	}
	return strings.Join(labels, sep)
}

// JoinWithAnd joins strings in prose form: "a, b and c".
func JoinWithAnd(strs []string) string {
	switch len(strs) {
	case 0:
		return ""
	case 1:
		return strs[0]
	default:
		return strings.Join(strs[:len(strs)-1], ", ") + " and " + strs[len(strs)-1]
	}
}

// Pluralize picks one of two messages depending on count.
func Pluralize(count int, one, many string) string {
	if count == 1 {
		return one
	}
	return many
}
