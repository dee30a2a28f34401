package main

import (
	"fmt"
	"os"

	"github.com/nexus-actors/runtime-step/cmd/stepdemo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
