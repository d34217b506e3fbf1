package optic

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theRebelliousNerd/optic/param"
)

// requiredAnnotation is the pflag annotation cobra sets via
// MarkFlagRequired.
const requiredAnnotation = cobra.BashCompOneRequiredFlag

// cmdContext adapts a parsed cobra command to the param.Context interface
// consumed by predicates and constraints.
type cmdContext struct {
	cmd *cobra.Command
}

// Context returns the constraint-evaluation view of cmd. It is a read-only
// adapter; it never mutates the command or its flags.
func Context(cmd *cobra.Command) param.Context {
	return cmdContext{cmd}
}

func (c cmdContext) lookupFlag(name string) *pflag.Flag {
	return c.cmd.Flags().Lookup(name)
}

func (c cmdContext) Param(name string) (param.Param, bool) {
	f := c.lookupFlag(name)
	if f == nil {
		return param.Param{}, false
	}
	return paramOf(f), true
}

func (c cmdContext) Value(name string) (any, bool) {
	f := c.lookupFlag(name)
	if f == nil {
		return nil, false
	}
	return flagValue(f), f.Changed
}

func paramOf(f *pflag.Flag) param.Param {
	opts := []string{"--" + f.Name}
	if f.Shorthand != "" {
		opts = append(opts, "-"+f.Shorthand)
	}
	return param.Param{
		Name:     f.Name,
		Kind:     flagKind(f),
		Opts:     opts,
		Required: len(f.Annotations[requiredAnnotation]) > 0,
	}
}

// flagKind maps a pflag flag onto the set-state policy kinds: a bool flag
// that may be passed without a value (--verbose) is a FlagBool, a bool that
// demands an explicit value is a ValueBool, slice and array flags are Multi,
// everything else is Single.
func flagKind(f *pflag.Flag) param.Kind {
	if _, ok := f.Value.(pflag.SliceValue); ok {
		return param.Multi
	}
	if f.Value.Type() == "bool" {
		if f.NoOptDefVal != "" {
			return param.FlagBool
		}
		return param.ValueBool
	}
	return param.Single
}

func flagValue(f *pflag.Flag) any {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return sv.GetSlice()
	}
	if f.Value.Type() == "bool" {
		return f.Value.String() == "true"
	}
	return f.Value.String()
}
