// Package cmd provides the CLI commands for lexiserve.
package cmd

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lexiserve/lexiserve/internal/utils"
)

const (
	// Version is lexiserve's release version.
	Version = "0.1.0"
	appName = "lexiserve"
)

var (
	configPath string
	dataPath   string
	verbose    bool
)

// NewRootCmd creates the root command for the lexiserve CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     appName,
		Short:   "A ranked, multi-algorithm word-completion service",
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
				log.SetReportTimestamp(true)
			} else {
				log.SetLevel(log.InfoLevel)
			}
		},
	}

	root.SetVersionTemplate(appName + " version {{.Version}}\n")

	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to config.toml")
	root.PersistentFlags().StringVar(&dataPath, "data", defaultDataPath(), "path to the corpus data file")
	root.PersistentFlags().BoolVarP(&verbose, "v", "v", false, "enable verbose logging")

	root.AddCommand(
		newStartCmd(),
		newStopCmd(),
		newStatusCmd(),
		newRestartCmd(),
		newBenchmarkCmd(),
		newCliCmd(),
	)
	return root
}

func defaultConfigPath() string {
	return filepath.Join(utils.DefaultConfigDir(), "config.toml")
}

func defaultDataPath() string {
	return filepath.Join(".", "corpus.txt")
}
