// Package main is lexiserve's entry point: a ranked, multi-algorithm
// word-completion service with a cobra CLI surface (start/stop/status/
// restart/benchmark/cli).
package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/lexiserve/lexiserve/cmd/lexiserve/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
