// Package cond implements the predicate algebra used as conditions of
// conditional constraints. A predicate is an immutable, side-effect-free
// boolean function of a param.Context with a human-readable description that
// ends up in generated help text (e.g. "--format is set").
package cond

import (
	"fmt"
	"strings"

	"github.com/theRebelliousNerd/optic/param"
)

// Predicate is a boolean condition over parameter set-state. Implementations
// must not mutate the context and must be safe to share across commands.
type Predicate interface {
	// Description is a succinct rendering of the predicate.
	Description(ctx param.Context) string
	// NegatedDescription renders the negation without double-negation
	// artifacts ("--x is not set", not "NOT(--x is set)").
	NegatedDescription(ctx param.Context) string
	// Evaluate returns the truth value of the predicate in ctx.
	Evaluate(ctx param.Context) bool
}

func labelOf(ctx param.Context, name string) string {
	if p, ok := ctx.Param(name); ok {
		return p.Label()
	}
	return name
}

func labelsOf(ctx param.Context, names []string) []string {
	labels := make([]string, len(names))
	for i, name := range names {
		labels[i] = labelOf(ctx, name)
	}
	return labels
}

type isSet struct {
	name string
}

// IsSet is true when the named parameter is set.
func IsSet(name string) Predicate { return isSet{name} }

func (p isSet) Description(ctx param.Context) string {
	return labelOf(ctx, p.name) + " is set"
}

func (p isSet) NegatedDescription(ctx param.Context) string {
	return labelOf(ctx, p.name) + " is not set"
}

func (p isSet) Evaluate(ctx param.Context) bool {
	return param.IsSet(ctx, p.name)
}

type allSet struct {
	names []string
}

// AllSet is true when every listed parameter is set.
func AllSet(names ...string) Predicate {
	if len(names) == 0 {
		panic("cond.AllSet: at least one parameter name is required")
	}
	return allSet{names}
}

func (p allSet) Description(ctx param.Context) string {
	labels := labelsOf(ctx, p.names)
	if len(labels) == 1 {
		return labels[0] + " is set"
	}
	return fmt.Sprintf("%s are %s set", param.JoinWithAnd(labels), bothOrAll(len(labels)))
}

func (p allSet) NegatedDescription(ctx param.Context) string {
	labels := labelsOf(ctx, p.names)
	if len(labels) == 1 {
		return labels[0] + " is not set"
	}
	return fmt.Sprintf("%s are not %s set", param.JoinWithAnd(labels), bothOrAll(len(labels)))
}

func (p allSet) Evaluate(ctx param.Context) bool {
	for _, name := range p.names {
		if !param.IsSet(ctx, name) {
			return false
		}
	}
	return true
}

type anySet struct {
	names []string
}

// AnySet is true when at least one of the listed parameters is set.
func AnySet(names ...string) Predicate {
	if len(names) == 0 {
		panic("cond.AnySet: at least one parameter name is required")
	}
	return anySet{names}
}

func (p anySet) Description(ctx param.Context) string {
	labels := labelsOf(ctx, p.names)
	switch len(labels) {
	case 1:
		return labels[0] + " is set"
	case 2:
		return fmt.Sprintf("either %s or %s is set", labels[0], labels[1])
	default:
		return fmt.Sprintf("any of %s is set", param.JoinWithAnd(labels))
	}
}

func (p anySet) NegatedDescription(ctx param.Context) string {
	labels := labelsOf(ctx, p.names)
	switch len(labels) {
	case 1:
		return labels[0] + " is not set"
	case 2:
		return fmt.Sprintf("neither %s nor %s is set", labels[0], labels[1])
	default:
		return fmt.Sprintf("none of %s is set", param.JoinWithAnd(labels))
	}
}

func (p anySet) Evaluate(ctx param.Context) bool {
	for _, name := range p.names {
		if param.IsSet(ctx, name) {
			return true
		}
	}
	return false
}

func bothOrAll(n int) string {
	if n == 2 {
		return "both"
	}
	return "all"
}

type equal struct {
	name  string
	value string
}

// Equal is true when the parameter's resolved value equals value. Values are
// compared through their string representation, which is how the underlying
// flag library exposes them.
func Equal(name, value string) Predicate { return equal{name, value} }

func (p equal) Description(ctx param.Context) string {
	return fmt.Sprintf("%s=%q", labelOf(ctx, p.name), p.value)
}

func (p equal) NegatedDescription(ctx param.Context) string {
	return fmt.Sprintf("%s!=%q", labelOf(ctx, p.name), p.value)
}

func (p equal) Evaluate(ctx param.Context) bool {
	value, _ := ctx.Value(p.name)
	return fmt.Sprint(value) == p.value
}

type not struct {
	predicate Predicate
}

// Not negates a predicate. Negating a negation unwraps it, so Not(Not(p)) is
// p both in value and in the rendered description.
func Not(p Predicate) Predicate {
	if n, ok := p.(not); ok {
		return n.predicate
	}
	return not{p}
}

func (p not) Description(ctx param.Context) string {
	return p.predicate.NegatedDescription(ctx)
}

func (p not) NegatedDescription(ctx param.Context) string {
	return p.predicate.Description(ctx)
}

func (p not) Evaluate(ctx param.Context) bool {
	return !p.predicate.Evaluate(ctx)
}

type and struct {
	predicates []Predicate
}

type or struct {
	predicates []Predicate
}

// And is the conjunction of predicates. Same-type operands are flattened so
// And(And(a, b), c) reads "a and b and c". Two IsSet operands collapse into
// AllSet for better prose. Evaluation short-circuits.
func And(predicates ...Predicate) Predicate {
	if len(predicates) == 0 {
		panic("cond.And: at least one operand is required")
	}
	if len(predicates) == 1 {
		return predicates[0]
	}
	if merged, ok := mergeSets(predicates, true); ok {
		return merged
	}
	var flat []Predicate
	for _, p := range predicates {
		if inner, ok := p.(and); ok {
			flat = append(flat, inner.predicates...)
		} else {
			flat = append(flat, p)
		}
	}
	return and{flat}
}

// Or is the disjunction of predicates, with the same flattening rules as And.
// Two IsSet operands collapse into AnySet. Evaluation short-circuits.
func Or(predicates ...Predicate) Predicate {
	if len(predicates) == 0 {
		panic("cond.Or: at least one operand is required")
	}
	if len(predicates) == 1 {
		return predicates[0]
	}
	if merged, ok := mergeSets(predicates, false); ok {
		return merged
	}
	var flat []Predicate
	for _, p := range predicates {
		if inner, ok := p.(or); ok {
			flat = append(flat, inner.predicates...)
		} else {
			flat = append(flat, p)
		}
	}
	return or{flat}
}

// mergeSets collapses operands that are all IsSet (or AllSet/AnySet matching
// the conjunctive flag) into a single quantified predicate.
func mergeSets(predicates []Predicate, conjunctive bool) (Predicate, bool) {
	var names []string
	for _, p := range predicates {
		switch v := p.(type) {
		case isSet:
			names = append(names, v.name)
		case allSet:
			if !conjunctive {
				return nil, false
			}
			names = append(names, v.names...)
		case anySet:
			if conjunctive {
				return nil, false
			}
			names = append(names, v.names...)
		default:
			return nil, false
		}
	}
	if conjunctive {
		return allSet{names}, true
	}
	return anySet{names}, true
}

func (p and) Description(ctx param.Context) string {
	return joinOperands(ctx, p.predicates, " and ", false)
}

func (p and) NegatedDescription(ctx param.Context) string {
	return joinOperands(ctx, p.predicates, " or ", true)
}

func (p and) Evaluate(ctx param.Context) bool {
	for _, operand := range p.predicates {
		if !operand.Evaluate(ctx) {
			return false
		}
	}
	return true
}

func (p or) Description(ctx param.Context) string {
	return joinOperands(ctx, p.predicates, " or ", false)
}

func (p or) NegatedDescription(ctx param.Context) string {
	return joinOperands(ctx, p.predicates, " and ", true)
}

func (p or) Evaluate(ctx param.Context) bool {
	for _, operand := range p.predicates {
		if operand.Evaluate(ctx) {
			return true
		}
	}
	return false
}

// joinOperands renders operand descriptions, parenthesizing nested operators
// so "a and (b or c)" is unambiguous.
func joinOperands(ctx param.Context, predicates []Predicate, sep string, negated bool) string {
	parts := make([]string, len(predicates))
	for i, p := range predicates {
		desc := p.Description(ctx)
		if negated {
			desc = p.NegatedDescription(ctx)
		}
		switch p.(type) {
		case and, or:
			desc = "(" + desc + ")"
		}
		parts[i] = desc
	}
	return strings.Join(parts, sep)
}
