package commands

import (
	"github.com/spf13/cobra"
)

var (
	// outputFormat controls trace report output format (markdown, text, html).
	outputFormat string

	// logLevel controls the verbosity of the runtime's structured log.
	logLevel string
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "stepdemo",
	Short: "Drive the step runtime through a scripted scenario",
	Long: `stepdemo loads a scenario of spawn/tell/step/advance/drain directives
and runs it against a real step.StepRuntime, then renders a trace of
what happened on each Step and AdvanceTime call.

It exists to exercise the runtime by hand during development; it is not
part of the runtime's own contract.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&outputFormat, "format", "markdown",
		"Trace report output format: markdown, text, html",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info",
		"Runtime log level: trace, debug, info, warn, error",
	)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}
