package commands

import (
	"fmt"

	"github.com/nexus-actors/runtime-step/internal/buildinfo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `Display the version, commit hash, and build metadata for stepdemo.`,
	Run:   runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("stepdemo version %s", buildinfo.Version())

	if commit := buildinfo.Commit(); commit != "" {
		fmt.Printf(" commit=%s", commit)
	}

	if goVersion := buildinfo.GoVersion(); goVersion != "" {
		fmt.Printf(" go=%s", goVersion)
	}

	fmt.Println()
}
