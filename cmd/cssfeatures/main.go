package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/leodido/cssfeatures"
	"github.com/leodido/cssfeatures/simdom"
	"github.com/leodido/structcli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thediveo/enumflag/v2"
	"gopkg.in/yaml.v3"
)

// Build metadata injected via ldflags.
// When built without ldflags these remain at their zero values and the
// version command omits them.
var (
	version = ""
	commit  = ""
	date    = ""
)

// errRequirementsNotMet is returned by check after the failure was reported.
var errRequirementsNotMet = errors.New("requirements not met")

func main() {
	root, a := newRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errRequirementsNotMet) {
			a.logger.Error(err)
		}
		os.Exit(1)
	}
}

// app carries state shared by every subcommand.
type app struct {
	level  log.Level
	logger *log.Logger
}

var logLevelIdentifiers = map[log.Level][]string{
	log.DebugLevel: {"debug"},
	log.InfoLevel:  {"info"},
	log.WarnLevel:  {"warn", "warning"},
	log.ErrorLevel: {"error"},
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "cssfeatures",
		Level:  level,
	})
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{level: log.WarnLevel}
	a.logger = newLogger(os.Stderr, a.level)

	root := &cobra.Command{
		Use:   "cssfeatures",
		Short: "CSS and DOM feature detection against simulated browsers",
		Long: `cssfeatures runs the CSS and DOM feature detects against a simulated
browser described by a profile (built-in or a YAML/JSON file).

It reports which properties the engine recognizes, in unprefixed or
vendor-prefixed form, and the classes a page would get on its root element.
Use it to preview detection results, to gate builds on required features,
or to debug custom browser profiles.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			a.logger = newLogger(c.ErrOrStderr(), a.level)
		},
	}

	root.PersistentFlags().Var(
		enumflag.New(&a.level, "level", logLevelIdentifiers, enumflag.EnumCaseInsensitive),
		"log-level",
		"Log level (debug, info, warn, error)",
	)

	root.AddCommand(probeCmd(a))
	root.AddCommand(checkCmd(a))
	root.AddCommand(classesCmd(a))
	root.AddCommand(profilesCmd())
	root.AddCommand(versionCmd())
	return root, a
}

const defaultProfile = "modern"

// openWindow builds a simulated window for a built-in profile name or a
// profile file.
func openWindow(ref string) (*simdom.Window, error) {
	if ref == "" {
		ref = defaultProfile
	}
	p, err := simdom.OpenProfile(ref)
	if err != nil {
		return nil, fmt.Errorf("%w (built-in: %s)", err, strings.Join(simdom.ProfileNames(), ", "))
	}
	return simdom.New(p), nil
}

// loadConfig reads a detector configuration from a YAML or JSON file.
// Keys missing from the file keep their default values.
func loadConfig(path string) (cssfeatures.Config, error) {
	cfg := cssfeatures.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ProbeOptions defines flags for the probe subcommand.
type ProbeOptions struct {
	Profile    string `flag:"profile" flagshort:"p" flagdescr:"Built-in profile name or profile file (YAML or JSON)"`
	Config     string `flag:"config" flagshort:"c" flagdescr:"Detector configuration file (YAML or JSON)"`
	NoPrefixes bool   `flag:"no-prefixes" flagdescr:"Probe unprefixed properties only"`
	JSON       bool   `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *ProbeOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func probeCmd(a *app) *cobra.Command {
	opts := &ProbeOptions{Profile: defaultProfile}

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Run every built-in detect and display results",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			win, err := openWindow(opts.Profile)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts.Config)
			if err != nil {
				return err
			}
			if opts.NoPrefixes {
				cfg.UsePrefixes = false
			}

			sf, err := cssfeatures.Detect(win, cssfeatures.WithConfig(cfg), cssfeatures.WithLogger(a.logger))
			if err != nil {
				return err
			}

			if opts.JSON {
				return printJSON(c.OutOrStdout(), sf)
			}

			fmt.Fprintf(c.OutOrStdout(), "Profile: %s\n\n", win.Profile().Name)
			fmt.Fprint(c.OutOrStdout(), sf)
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// CheckOptions defines flags for the check subcommand.
type CheckOptions struct {
	Require featureRequirements `flag:"require" flagshort:"r" flagdescr:"Required features (see available features above)" flagrequired:"true" flagcustom:"true"`
	Profile string              `flag:"profile" flagshort:"p" flagdescr:"Built-in profile name or profile file (YAML or JSON)"`
	JSON    bool                `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *CheckOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (o *CheckOptions) DefineRequire(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*featureRequirements)
	*fieldPtr = nil
	return fieldPtr, descr
}

func (o *CheckOptions) DecodeRequire(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}

	return parseFeatureRequirements(s)
}

// CompleteRequire completes comma-separated feature names, skipping the
// ones already listed.
func (o *CheckOptions) CompleteRequire(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, current := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, current = toComplete[:i+1], toComplete[i+1:]
	}

	selected := map[string]bool{}
	for _, s := range strings.Split(prefix, ",") {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			selected[s] = true
		}
	}

	current = strings.ToLower(strings.TrimSpace(current))
	var candidates []string
	for _, name := range cssfeatures.FeatureNames() {
		if selected[name] || !strings.HasPrefix(name, current) {
			continue
		}
		candidates = append(candidates, prefix+name)
	}
	return candidates, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func checkCmd(a *app) *cobra.Command {
	opts := &CheckOptions{Profile: defaultProfile}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check specific feature requirements against a profile",
		Long:  checkLongDescription(),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			if len(opts.Require) == 0 {
				return fmt.Errorf("no features specified")
			}

			win, err := openWindow(opts.Profile)
			if err != nil {
				return err
			}

			err = cssfeatures.Check(win, opts.Require, cssfeatures.WithLogger(a.logger))
			if err != nil {
				var fe *cssfeatures.FeatureError
				if errors.As(err, &fe) {
					if opts.JSON {
						if err := printJSON(c.OutOrStdout(), map[string]any{
							"ok":      false,
							"feature": fe.Feature,
							"reason":  fe.Reason,
						}); err != nil {
							return err
						}
					} else {
						fmt.Fprintf(c.ErrOrStderr(), "FAIL: %s: %s\n", fe.Feature, fe.Reason)
					}
					return errRequirementsNotMet
				}
				return err
			}

			if opts.JSON {
				return printJSON(c.OutOrStdout(), map[string]any{"ok": true})
			}
			fmt.Fprintln(c.OutOrStdout(), "OK: all requirements satisfied")
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// ClassesOptions defines flags for the classes subcommand.
type ClassesOptions struct {
	Profile     string `flag:"profile" flagshort:"p" flagdescr:"Built-in profile name or profile file (YAML or JSON)"`
	Config      string `flag:"config" flagshort:"c" flagdescr:"Detector configuration file (YAML or JSON)"`
	ClassPrefix string `flag:"class-prefix" flagdescr:"Prefix for every class written on the root element"`
	NoClasses   bool   `flag:"no-classes" flagdescr:"Do not write feature classes"`
	NoJSClass   bool   `flag:"no-js-class" flagdescr:"Do not swap no-js for js"`
	JSON        bool   `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *ClassesOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func classesCmd(a *app) *cobra.Command {
	opts := &ClassesOptions{Profile: defaultProfile}

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Show the class attribute a page would end up with",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			win, err := openWindow(opts.Profile)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts.Config)
			if err != nil {
				return err
			}
			if c.Flags().Changed("class-prefix") {
				cfg.ClassPrefix = opts.ClassPrefix
			}
			if opts.NoClasses {
				cfg.EnableClasses = false
			}
			if opts.NoJSClass {
				cfg.EnableJSClass = false
			}

			root := win.Doc().Root()
			before := root.ClassName()
			if _, err := cssfeatures.Detect(win, cssfeatures.WithConfig(cfg), cssfeatures.WithLogger(a.logger)); err != nil {
				return err
			}
			after := strings.Join(strings.Fields(root.ClassName()), " ")

			if opts.JSON {
				return printJSON(c.OutOrStdout(), map[string]any{
					"before": before,
					"after":  after,
				})
			}
			fmt.Fprintln(c.OutOrStdout(), after)
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// ProfilesOptions defines flags for the profiles subcommand.
type ProfilesOptions struct {
	JSON bool `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *ProfilesOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func profilesCmd() *cobra.Command {
	opts := &ProfilesOptions{}

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in browser profiles",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			names := simdom.ProfileNames()
			profiles := make([]*simdom.Profile, 0, len(names))
			for _, name := range names {
				p, err := simdom.BuiltinProfile(name)
				if err != nil {
					return err
				}
				profiles = append(profiles, p)
			}

			if opts.JSON {
				return printJSON(c.OutOrStdout(), profiles)
			}
			for _, p := range profiles {
				fmt.Fprintf(c.OutOrStdout(), "%-14s %s\n", p.Name, p.Description)
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show tool version and catalog",
		RunE: func(c *cobra.Command, args []string) error {
			out := c.OutOrStdout()
			if version != "" {
				fmt.Fprintf(out, "cssfeatures %s", version)
				if commit != "" {
					fmt.Fprintf(out, " (%s)", commit)
				}
				if date != "" {
					fmt.Fprintf(out, " built %s", date)
				}
				fmt.Fprintln(out)
			} else {
				fmt.Fprintln(out, "cssfeatures (dev)")
			}

			fmt.Fprintf(out, "Catalog: %s\n", availableFeatures())
			fmt.Fprintf(out, "Profiles: %s\n", strings.Join(simdom.ProfileNames(), ", "))
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func availableFeatures() string {
	return strings.Join(cssfeatures.FeatureNames(), ", ")
}

func checkLongDescription() string {
	return fmt.Sprintf(`Check that a browser profile supports all required features.
Exits with code 0 if all requirements are met, 1 if any are missing.

Available features:
%s`, formatWrappedList(cssfeatures.FeatureNames(), "  ", 80))
}

func formatWrappedList(items []string, indent string, maxWidth int) string {
	if len(items) == 0 {
		return indent + "(none)"
	}

	lines := make([]string, 0, len(items))
	line := indent
	for i, item := range items {
		token := item
		if i < len(items)-1 {
			token += ", "
		}

		if len(line)+len(token) > maxWidth && line != indent {
			lines = append(lines, strings.TrimRight(line, " "))
			line = indent + token
			continue
		}

		line += token
	}

	lines = append(lines, strings.TrimRight(line, " "))
	return strings.Join(lines, "\n")
}

type featureRequirements []cssfeatures.Feature

var featureIdentifierMap = func() map[cssfeatures.Feature][]string {
	ids := make(map[cssfeatures.Feature][]string, len(cssfeatures.FeatureValues()))
	for _, f := range cssfeatures.FeatureValues() {
		ids[f] = []string{f.String()}
	}
	ids[cssfeatures.FeatureRequestAnimationFrame] = append(ids[cssfeatures.FeatureRequestAnimationFrame], "raf")
	return ids
}()

func (r *featureRequirements) String() string {
	names := make([]string, 0, len(*r))
	for _, f := range *r {
		names = append(names, f.String())
	}

	return strings.Join(names, ",")
}

func (r *featureRequirements) Set(input string) error {
	features, err := parseFeatureRequirements(input)
	if err != nil {
		return err
	}

	*r = append(*r, features...)
	return nil
}

func (r *featureRequirements) Type() string {
	return "feature"
}

func parseFeatureRequirements(input string) (featureRequirements, error) {
	if strings.TrimSpace(input) == "" {
		return featureRequirements{}, nil
	}

	parts := strings.Split(input, ",")
	features := make(featureRequirements, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}

		var feature cssfeatures.Feature
		enumValue := enumflag.New(&feature, "cssfeatures.Feature", featureIdentifierMap, enumflag.EnumCaseInsensitive)
		if err := enumValue.Set(name); err != nil {
			return nil, fmt.Errorf("unknown feature: %q (available: %s)", name, availableFeatures())
		}

		features = append(features, feature)
	}

	return features, nil
}
