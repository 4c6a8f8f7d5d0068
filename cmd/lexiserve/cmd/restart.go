package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lexiserve/lexiserve/internal/daemon"
)

func newRestartCmd() *cobra.Command {
	var (
		host     string
		port     int
		asDaemon bool
	)

	cmd := &cobra.Command{
		Use:   "restart",
		Short: "Stop a running lexiserve daemon, then start a fresh one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := daemon.NewLock().Stop(); err != nil {
				log.Debugf("nothing to stop: %v", err)
			}
			return runStart(host, port, asDaemon)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "bind host (defaults to config.toml)")
	cmd.Flags().IntVar(&port, "port", 0, "bind port (defaults to config.toml)")
	cmd.Flags().BoolVar(&asDaemon, "daemon", false, "detach and run in the background")
	return cmd
}
