// Command opticdemo is a small showcase of optic: option groups with
// constraints, conditional requirements, subcommand sections, themes and a
// YAML configuration file.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/theRebelliousNerd/optic"
	"github.com/theRebelliousNerd/optic/cond"
	"github.com/theRebelliousNerd/optic/constraint"
)

var (
	// Global flags
	verbose    bool
	configPath string
	theme      string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "opticdemo",
	Short: "Showcase of constraint-checked, grouped command-line help",
	Long: `opticdemo exercises the optic library: flags organized into option
groups, constraints validated after parsing, subcommands organized into
help sections and themed output.

Try "opticdemo backup --help" and then violate a constraint, e.g.
"opticdemo backup --tar --zip".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup PATH",
	Short: "Back up a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		logger.Info("backing up", zap.String("path", args[0]), zap.String("out", out))
		fmt.Fprintf(cmd.OutOrStdout(), "backed up %s\n", args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore ARCHIVE",
	Short: "Restore a backup archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", args[0])
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known archives",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "no archives yet")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file.")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "dark", "Help theme: plain, dark or light.")

	flags := backupCmd.Flags()
	flags.StringP("out", "o", "", "Output archive path.")
	flags.Bool("tar", false, "Write a tar archive.")
	flags.Bool("zip", false, "Write a zip archive.")
	flags.Bool("remote", false, "Upload to a remote host.")
	flags.String("host", "", "Remote host to upload to.")
	flags.StringP("user", "u", "", "Remote user.")

	reg := optic.For(backupCmd)
	reg.Grouped("Format options", constraint.MutuallyExclusive, "tar", "zip")
	reg.AddGroup(&optic.OptionGroup{
		Title:      "Remote options",
		Help:       "Upload the archive after writing it.",
		Constraint: constraint.If("remote", constraint.RequireAll),
	}, "remote", "host", "user")
	reg.Constrain(
		constraint.If(cond.AnySet("tar", "zip"), constraint.RequireAll),
		"out",
	)
	reg.SetEpilog("Report bugs at https://github.com/theRebelliousNerd/optic/issues.")

	optic.For(rootCmd).AddSection(&optic.Section{
		Title: "Archive commands",
	}, backupCmd, restoreCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	optic.For(rootCmd).SetConfig(cfg)
	if err := optic.Apply(rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the optional config file with the --theme flag, which
// has to be parsed ahead of cobra because it affects help rendering.
func loadConfig() (*optic.Config, error) {
	if v, ok := earlyFlag(os.Args[1:], "config"); ok {
		configPath = v
	}
	if v, ok := earlyFlag(os.Args[1:], "theme"); ok {
		theme = v
	}
	cfg := &optic.Config{ThemeName: theme}
	if configPath != "" {
		fileCfg, err := optic.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		if fileCfg.ThemeName == "" {
			fileCfg.ThemeName = theme
		}
		cfg = fileCfg
	}
	return cfg, nil
}

// earlyFlag scans args for "--name value" or "--name=value" without parsing
// anything else.
func earlyFlag(args []string, name string) (string, bool) {
	long := "--" + name
	for i, arg := range args {
		if arg == long && i+1 < len(args) {
			return args[i+1], true
		}
		if strings.HasPrefix(arg, long+"=") {
			return strings.TrimPrefix(arg, long+"="), true
		}
	}
	return "", false
}
