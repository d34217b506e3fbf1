package optic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/theRebelliousNerd/optic/constraint"
)

func TestRenderHelpOptionGroups(t *testing.T) {
	cmd := newTestCommand("backup")
	cmd.Short = "Back up files."
	cmd.Flags().StringP("out", "o", "", "Output archive.")
	cmd.Flags().BoolP("compress", "c", false, "Compress the archive.")
	cmd.Flags().Bool("verbose", false, "Verbose output.")
	For(cmd).
		SetConfig(&Config{Width: 80}).
		Grouped("Output options", constraint.MutuallyExclusive, "out", "compress")
	require.NoError(t, Apply(cmd))

	got, err := RenderHelp(cmd)
	require.NoError(t, err)

	want := "Usage: backup [flags]\n" +
		"\n" +
		"Back up files.\n" +
		"\n" +
		"Output options: [mutually exclusive]\n" +
		"  -o, --out string  Output archive.\n" +
		"  -c, --compress    Compress the archive.\n" +
		"\n" +
		"Other options:\n" +
		"      --verbose     Verbose output.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("help page mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHelpSectionsConstraintsAndEpilog(t *testing.T) {
	cmd := newTestCommand("tool")
	cmd.Short = "Tool."
	cmd.Flags().String("a", "", "First.")
	cmd.Flags().String("b", "", "Second.")

	build := newTestCommand("build")
	build.Short = "Build things."
	test := newTestCommand("test")
	test.Short = "Run tests."
	format := newTestCommand("fmt")
	format.Short = "Format code."
	cmd.AddCommand(format)

	show := true
	reg := For(cmd).
		SetConfig(&Config{Width: 80, ShowConstraints: &show}).
		SetEpilog("See https://example.com for docs.").
		Constrain(constraint.MutuallyExclusive, "a", "b")
	reg.AddSection(&Section{Title: "Main commands"}, build, test)
	require.NoError(t, Apply(cmd))

	got, err := RenderHelp(cmd)
	require.NoError(t, err)

	want := "Usage: tool [flags]\n" +
		"\n" +
		"Tool.\n" +
		"\n" +
		"Options:\n" +
		"      --a string  First.\n" +
		"      --b string  Second.\n" +
		"\n" +
		"Main commands:\n" +
		"  build  Build things.\n" +
		"  test   Run tests.\n" +
		"\n" +
		"Other commands:\n" +
		"  fmt    Format code.\n" +
		"\n" +
		"Constraints:\n" +
		"  {--a, --b}  mutually exclusive\n" +
		"\n" +
		"See https://example.com for docs.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("help page mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHelpSortedSection(t *testing.T) {
	cmd := newTestCommand("tool")
	cmd.Short = "Tool."
	zeta := newTestCommand("zeta")
	zeta.Short = "Last."
	alpha := newTestCommand("alpha")
	alpha.Short = "First."
	delta := newTestCommand("delta")
	delta.Short = "Fourth."
	charlie := newTestCommand("charlie")
	charlie.Short = "Third."

	reg := For(cmd).SetConfig(&Config{Width: 80})
	reg.AddSection(&Section{Title: "Sorted", Sorted: true}, zeta, alpha)
	reg.AddSection(&Section{Title: "Declared"}, delta, charlie)
	require.NoError(t, Apply(cmd))

	got, err := RenderHelp(cmd)
	require.NoError(t, err)

	// A sorted section lists alphabetically regardless of registration
	// order; a plain section keeps registration order.
	want := "Usage: tool\n" +
		"\n" +
		"Tool.\n" +
		"\n" +
		"Sorted:\n" +
		"  alpha    First.\n" +
		"  zeta     Last.\n" +
		"\n" +
		"Declared:\n" +
		"  delta    Fourth.\n" +
		"  charlie  Third.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("help page mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHelpHiddenGroup(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := newTestCommand("run")
		cmd.Flags().String("secret", "", "Hush.")
		cmd.Flags().String("other", "", "Visible.")
		For(cmd).
			SetConfig(&Config{Width: 80}).
			AddGroup(&OptionGroup{
				Title:      "Internal",
				Hidden:     true,
				Constraint: constraint.RequireAll,
			}, "secret")
		require.NoError(t, Apply(cmd))
		return cmd
	}

	cmd := newCmd()
	got, err := RenderHelp(cmd)
	require.NoError(t, err)

	want := "Usage: run [flags]\n" +
		"\n" +
		"Test command.\n" +
		"\n" +
		"Options:\n" +
		"      --other string  Visible.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("help page mismatch (-want +got):\n%s", diff)
	}

	// Hidden groups disappear from help but keep their constraint.
	err = execute(t, newCmd())
	require.Error(t, err)
	require.Equal(t, "--secret is required", err.Error())
}

func TestRenderHelpAliasesAndInheritedFlags(t *testing.T) {
	root := newTestCommand("root")
	root.PersistentFlags().Bool("debug", false, "Debug output.")
	sub := newTestCommand("sub")
	sub.Aliases = []string{"s"}
	sub.Flags().String("name", "", "A name.")
	root.AddCommand(sub)
	For(root).SetConfig(&Config{Width: 80})
	require.NoError(t, Apply(root))

	got, err := RenderHelp(sub)
	require.NoError(t, err)

	want := "Usage: root sub [flags]\n" +
		"\n" +
		"Test command.\n" +
		"\n" +
		"Aliases: s\n" +
		"\n" +
		"Options:\n" +
		"      --name string  A name.\n" +
		"\n" +
		"Global options:\n" +
		"      --debug        Debug output.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("help page mismatch (-want +got):\n%s", diff)
	}
}
