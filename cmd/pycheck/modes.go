package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// switchMode is the auto|on|off value shared by --color and --ui.
type switchMode string

const (
	modeAuto switchMode = "auto"
	modeOn   switchMode = "on"
	modeOff  switchMode = "off"
)

func parseSwitch(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on", "always":
		return modeOn, nil
	case "off", "never":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// enabled resolves auto through probe.
func (m switchMode) enabled(probe func() bool) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return probe()
	}
}

func colorSwitch(cmd *cobra.Command) (switchMode, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return "", fmt.Errorf("failed to get color flag: %w", err)
	}
	return parseSwitch("color", value)
}

// applyColorFlag syncs fatih/color's global switch with --color.
func applyColorFlag(cmd *cobra.Command, _ []string) error {
	mode, err := colorSwitch(cmd)
	if err != nil {
		return err
	}
	color.NoColor = !mode.enabled(func() bool { return colorTTY(os.Stdout) })
	return nil
}

// useColorFor decides pretty colouring for out.
func useColorFor(cmd *cobra.Command, out io.Writer) bool {
	mode, err := colorSwitch(cmd)
	if err != nil {
		return false
	}
	return mode.enabled(func() bool { return colorTTY(out) })
}

func colorTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && os.Getenv("NO_COLOR") == "" && isTerminal(f)
}

// shouldUseTUI: auto shows the view only for several units on an
// interactive stderr.
func shouldUseTUI(mode switchMode, units int) bool {
	return mode.enabled(func() bool { return units > 1 && isTerminal(os.Stderr) })
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
