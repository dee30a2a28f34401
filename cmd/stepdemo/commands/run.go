package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nexus-actors/runtime-step/internal/obslog"
	"github.com/nexus-actors/runtime-step/internal/scenario"
	"github.com/spf13/cobra"
)

var scriptPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario against the step runtime and print its trace",
	RunE:  runScenario,
}

func init() {
	runCmd.Flags().StringVar(
		&scriptPath, "script", "",
		"Path to a JSON scenario file (default: a built-in cascade-forward demo)",
	)
}

func runScenario(cmd *cobra.Command, args []string) error {
	slog.SetDefault(obslog.New(os.Stderr, obslog.ParseLevel(logLevel)))

	sc := scenario.Default()

	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return fmt.Errorf("opening scenario script: %w", err)
		}
		defer f.Close()

		sc, err = scenario.Load(f)
		if err != nil {
			return fmt.Errorf("loading scenario script: %w", err)
		}
	}

	trace, err := scenario.Run(sc)
	if err != nil {
		return fmt.Errorf("running scenario: %w", err)
	}

	switch outputFormat {
	case "text":
		fmt.Print(scenario.RenderText(trace))
	case "html":
		html, err := scenario.RenderHTML(trace)
		if err != nil {
			return err
		}
		fmt.Print(html)
	default:
		fmt.Print(scenario.RenderMarkdown(trace))
	}

	return nil
}
