package optic

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/theRebelliousNerd/optic/layout"
)

const defaultMaxWidth = 80

// Config tunes rendering and validation for a command and its descendants.
// Zero/nil fields inherit from the nearest ancestor command that sets them,
// falling back to the defaults; inheritance is resolved per invocation and
// configs are never mutated after registration.
type Config struct {
	// Theme styles the help page. Set either this or ThemeName.
	Theme *Theme `yaml:"-"`
	// ThemeName selects a built-in theme: "plain", "dark" or "light".
	ThemeName string `yaml:"theme"`

	// Width fixes the content width. 0 means "detect the terminal width,
	// capped at MaxWidth".
	Width int `yaml:"width"`
	// MaxWidth caps the detected width. 0 means 80.
	MaxWidth int `yaml:"max_width"`
	// IndentIncrement, Col1MaxWidth, Col2MinWidth and ColSpacing override
	// the corresponding layout settings when positive.
	IndentIncrement int `yaml:"indent_increment"`
	Col1MaxWidth    int `yaml:"col1_max_width"`
	Col2MinWidth    int `yaml:"col2_min_width"`
	ColSpacing      int `yaml:"col_spacing"`

	// RowSep optionally separates definition-list rows. Set either this
	// or RowSepSpec.
	RowSep layout.RowSep `yaml:"-"`
	// RowSepSpec is the config-file form of RowSep.
	RowSepSpec *RowSepSpec `yaml:"row_sep"`

	// AlignOptionGroups aligns the columns of all option-group sections
	// of a command. Default true.
	AlignOptionGroups *bool `yaml:"align_option_groups"`
	// AlignSections aligns the columns of all subcommand sections.
	// Default true.
	AlignSections *bool `yaml:"align_sections"`
	// ShowConstraints adds a "Constraints" help section listing the
	// standalone constraints. Default false.
	ShowConstraints *bool `yaml:"show_constraints"`
	// CheckConsistency runs the structural constraint checks at Apply
	// time. Default true; disabling it is purely a micro-optimization and
	// never affects value checking.
	CheckConsistency *bool `yaml:"check_consistency"`

	// Logger receives debug traces of constraint evaluation. Nil means no
	// logging.
	Logger *zap.Logger `yaml:"-"`
}

// RowSepSpec declares a row-separator policy in a config file.
type RowSepSpec struct {
	// When decides if the separator applies: "always", or "multiline" to
	// apply only when enough rows wrap (see Threshold).
	When string `yaml:"when"`
	// Threshold qualifies "multiline": an integer >= 1 is an absolute row
	// count, a value in (0, 1) is a fraction of the list. Default 1.
	Threshold float64 `yaml:"threshold"`
	// Sep selects the separator: "blank", "solid", "dashed",
	// "densely-dashed" or "dotted". Default "blank".
	Sep string `yaml:"sep"`
}

func (s *RowSepSpec) rowSep() (layout.RowSep, error) {
	var sep layout.RowSep
	switch s.Sep {
	case "", "blank":
		sep = layout.Fixed("")
	case "solid":
		sep = layout.Generated(layout.HlineSolid)
	case "dashed":
		sep = layout.Generated(layout.HlineDashed)
	case "densely-dashed":
		sep = layout.Generated(layout.HlineDenselyDashed)
	case "dotted":
		sep = layout.Generated(layout.HlineDotted)
	default:
		return nil, fmt.Errorf("optic: unknown row separator %q", s.Sep)
	}
	switch s.When {
	case "", "always":
		return sep, nil
	case "multiline":
		threshold := s.Threshold
		if threshold == 0 {
			threshold = 1
		}
		if threshold > 0 && threshold < 1 {
			return layout.RowSepIf(layout.MultilineFractionAtLeast(threshold), sep), nil
		}
		return layout.RowSepIf(layout.MultilineRowsAtLeast(int(threshold)), sep), nil
	default:
		return nil, fmt.Errorf("optic: unknown row separator condition %q", s.When)
	}
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("optic: reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("optic: parsing config %s: %w", path, err)
	}
	if _, err := cfg.theme(); err != nil {
		return nil, err
	}
	if cfg.RowSepSpec != nil {
		if _, err := cfg.RowSepSpec.rowSep(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func (c *Config) theme() (Theme, error) {
	if c.Theme != nil {
		return *c.Theme, nil
	}
	switch c.ThemeName {
	case "", "plain":
		return PlainTheme(), nil
	case "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	default:
		return Theme{}, fmt.Errorf("optic: unknown theme %q", c.ThemeName)
	}
}

// effectiveConfig resolves the configuration visible from cmd by walking
// its ancestor chain root-first and letting each command override what it
// sets.
func effectiveConfig(cmd *cobra.Command) *Config {
	var chain []*Config
	for c := cmd; c != nil; c = c.Parent() {
		if reg, ok := lookup(c); ok && reg.cfg != nil {
			chain = append(chain, reg.cfg)
		}
	}
	merged := &Config{}
	for i := len(chain) - 1; i >= 0; i-- {
		merged.mergeFrom(chain[i])
	}
	return merged
}

func (c *Config) mergeFrom(other *Config) {
	if other.Theme != nil {
		c.Theme, c.ThemeName = other.Theme, ""
	} else if other.ThemeName != "" {
		c.Theme, c.ThemeName = nil, other.ThemeName
	}
	if other.Width > 0 {
		c.Width = other.Width
	}
	if other.MaxWidth > 0 {
		c.MaxWidth = other.MaxWidth
	}
	if other.IndentIncrement > 0 {
		c.IndentIncrement = other.IndentIncrement
	}
	if other.Col1MaxWidth > 0 {
		c.Col1MaxWidth = other.Col1MaxWidth
	}
	if other.Col2MinWidth > 0 {
		c.Col2MinWidth = other.Col2MinWidth
	}
	if other.ColSpacing > 0 {
		c.ColSpacing = other.ColSpacing
	}
	if other.RowSep != nil {
		c.RowSep = other.RowSep
	}
	if other.RowSepSpec != nil {
		c.RowSepSpec = other.RowSepSpec
	}
	if other.AlignOptionGroups != nil {
		c.AlignOptionGroups = other.AlignOptionGroups
	}
	if other.AlignSections != nil {
		c.AlignSections = other.AlignSections
	}
	if other.ShowConstraints != nil {
		c.ShowConstraints = other.ShowConstraints
	}
	if other.CheckConsistency != nil {
		c.CheckConsistency = other.CheckConsistency
	}
	if other.Logger != nil {
		c.Logger = other.Logger
	}
}

func (c *Config) consistencyEnabled() bool { return boolOr(c.CheckConsistency, true) }
func (c *Config) alignOptionGroups() bool  { return boolOr(c.AlignOptionGroups, true) }
func (c *Config) alignSections() bool      { return boolOr(c.AlignSections, true) }
func (c *Config) showConstraints() bool    { return boolOr(c.ShowConstraints, false) }

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// layoutSettings turns the config into validated layout settings.
func (c *Config) layoutSettings() (layout.Settings, error) {
	settings := layout.Default()
	settings.Width = c.contentWidth()
	if c.IndentIncrement > 0 {
		settings.IndentIncrement = c.IndentIncrement
	}
	if c.Col1MaxWidth > 0 {
		settings.Col1MaxWidth = c.Col1MaxWidth
	}
	if c.Col2MinWidth > 0 {
		settings.Col2MinWidth = c.Col2MinWidth
	}
	if c.ColSpacing > 0 {
		settings.ColSpacing = c.ColSpacing
	}
	switch {
	case c.RowSep != nil:
		settings.RowSep = c.RowSep
	case c.RowSepSpec != nil:
		sep, err := c.RowSepSpec.rowSep()
		if err != nil {
			return settings, err
		}
		settings.RowSep = sep
	}
	theme, err := c.theme()
	if err != nil {
		return settings, err
	}
	settings.Styles = theme.styles()
	return settings, settings.Validate()
}

// contentWidth returns the configured width, or the terminal width minus
// one (to leave room for the newline) capped at MaxWidth.
func (c *Config) contentWidth() int {
	if c.Width > 0 {
		return c.Width
	}
	maxWidth := c.MaxWidth
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 1 {
		return min(w-1, maxWidth)
	}
	return maxWidth
}
