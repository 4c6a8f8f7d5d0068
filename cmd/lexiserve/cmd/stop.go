package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lexiserve/lexiserve/internal/daemon"
)

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop a running lexiserve daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := daemon.NewLock().Stop(); err != nil {
				return err
			}
			log.Info("stop signal sent")
			return nil
		},
	}
}
