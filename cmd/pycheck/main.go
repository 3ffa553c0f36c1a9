package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"pycheck/internal/version"
)

// errDiagnostics signals a completed run that reported errors.
var errDiagnostics = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:               "pycheck",
	Short:             "Static type checker for Python unit snapshots",
	Long:              `pycheck infers primitive types of expressions and reports operators applied to incompatible operands`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyColorFlag,
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("timings", false, "print phase timings to stderr")
	pf.String("trace", "", "write trace events to path ('-' for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson|chrome)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to path")
	pf.String("mem-profile", "", "write a heap profile to path on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to path")
}

// main runs the root command. Exit status: 0 clean, 1 when errors were
// reported, 2 when the run itself failed.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	if errors.Is(err, errDiagnostics) {
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "pycheck: %v\n", err)
	os.Exit(2)
}
