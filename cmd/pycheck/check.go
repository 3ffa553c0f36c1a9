package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pycheck/internal/diag"
	"pycheck/internal/diagfmt"
	"pycheck/internal/driver"
	"pycheck/internal/observ"
	"pycheck/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.pyast|directory>...",
	Short: "Type-check unit snapshots",
	Long: `Type-check one or more unit snapshots (*.pyast) written by the parser front end.
Directories are searched recursively. Settings come from the nearest pycheck.toml
and are overridden by flags.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.String("format", "pretty", "output format (pretty|short|json)")
	f.String("ui", "auto", "progress view (auto|on|off)")
	f.String("config", "", "settings file (default: nearest pycheck.toml)")
	f.StringSlice("enable", nil, "enable diagnostic categories")
	f.StringSlice("disable", nil, "disable diagnostic categories")
	f.String("target-version", "", "target language version, e.g. 3.12")
	f.Int("max-diagnostics", 0, "keep at most N diagnostics per unit (0 = unlimited)")
	f.Int("jobs", 0, "max parallel units (0=auto)")
	f.Bool("with-notes", false, "include diagnostic notes in output")
	f.Bool("fullpath", false, "emit absolute file paths in output")
	f.Bool("semantics", false, "add scopes, symbols and expression types to json output")
	f.Bool("sort", false, "order diagnostics by file and position instead of traversal order")
}

// runCheck loads settings, checks every unit and renders the diagnostics.
// It returns errDiagnostics when any unit reported an error.
func runCheck(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	format, err := flagString(cmd, "format")
	if err != nil {
		return err
	}
	outFormat, err := diagfmt.ParseFormat(format)
	if err != nil {
		return err
	}
	uiValue, err := flagString(cmd, "ui")
	if err != nil {
		return err
	}
	mode, err := parseSwitch("ui", uiValue)
	if err != nil {
		return err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := flags.GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	withSemantics, err := flags.GetBool("semantics")
	if err != nil {
		return fmt.Errorf("failed to get semantics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	paths, err := driver.ExpandInputs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no %s files found", driver.SnapshotExt)
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	tracer, stopTracing, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer stopTracing()
	defer dumpTraceOnPanic(tracer)

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}
	opts := driver.Options{Settings: settings, Jobs: jobs, Timer: timer}

	var res *driver.Result
	if shouldUseTUI(mode, len(paths)) {
		res, err = runCheckWithUI(cmd.Context(), "pycheck", paths, opts)
	} else {
		res, err = driver.CheckFiles(cmd.Context(), paths, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	out := cmd.OutOrStdout()
	sortByPosition, err := flags.GetBool("sort")
	if err != nil {
		return fmt.Errorf("failed to get sort flag: %w", err)
	}
	diags := res.Merged(sortByPosition).Items()
	switch outFormat {
	case diagfmt.FormatShort:
		err = diagfmt.Short(out, diags, res.FileSet, withNotes)
	case diagfmt.FormatJSON:
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			Dropped:          res.Dropped(),
		}
		if withSemantics {
			jsonOpts.Semantics = semanticsInputs(res)
		}
		err = diagfmt.JSON(out, diags, res.FileSet, jsonOpts)
	default:
		err = diagfmt.Pretty(out, diags, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColorFor(cmd, out),
			Context:   2,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
		if err == nil {
			printSummary(out, res)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}

	if timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if res.HasErrors() {
		return errDiagnostics
	}
	return nil
}

// resolveSettings layers flags over --config or the nearest pycheck.toml.
func resolveSettings(cmd *cobra.Command) (project.Settings, error) {
	flags := cmd.Flags()
	configPath, err := flagString(cmd, "config")
	if err != nil {
		return project.Settings{}, err
	}

	settings := project.DefaultSettings()
	if configPath != "" {
		if settings, err = project.LoadSettings(configPath); err != nil {
			return project.Settings{}, err
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return project.Settings{}, err
		}
		manifest, ok, err := project.LoadManifest(wd)
		if err != nil {
			return project.Settings{}, err
		}
		if ok {
			settings = manifest.Settings
		}
	}

	var o project.Overrides
	if o.TargetVersion, err = flagString(cmd, "target-version"); err != nil {
		return project.Settings{}, err
	}
	if o.Enable, err = flags.GetStringSlice("enable"); err != nil {
		return project.Settings{}, fmt.Errorf("failed to get enable flag: %w", err)
	}
	if o.Disable, err = flags.GetStringSlice("disable"); err != nil {
		return project.Settings{}, fmt.Errorf("failed to get disable flag: %w", err)
	}
	if flags.Changed("max-diagnostics") {
		n, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return project.Settings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		o.MaxDiagnostics = &n
	}
	return settings.Apply(o)
}

func semanticsInputs(res *driver.Result) []*diagfmt.SemanticsInput {
	out := make([]*diagfmt.SemanticsInput, 0, len(res.Units))
	for i := range res.Units {
		u := &res.Units[i]
		if u.Sema == nil {
			continue
		}
		out = append(out, &diagfmt.SemanticsInput{
			Path:    u.Path,
			Builder: u.Tree,
			FileID:  u.File,
			Table:   u.Symbols,
			Types:   u.Sema.ExprTypes,
		})
	}
	return out
}

func printSummary(w io.Writer, res *driver.Result) {
	var errs, warns int
	for _, d := range res.Diagnostics() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	units := len(res.Units)
	if errs+warns == 0 {
		fmt.Fprintf(w, "no issues in %d unit(s)\n", units)
		return
	}
	fmt.Fprintf(w, "\n%d error(s), %d warning(s) in %d unit(s)", errs, warns, units)
	if dropped := res.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "; %d more not shown (max-diagnostics)", dropped)
	}
	fmt.Fprintln(w)
}

func flagString(cmd *cobra.Command, name string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}
