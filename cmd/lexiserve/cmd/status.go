package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexiserve/lexiserve/internal/daemon"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether a lexiserve daemon is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			running, pid := daemon.NewLock().Status()
			if running {
				fmt.Printf("lexiserve is running (pid %d)\n", pid)
			} else {
				fmt.Println("lexiserve is not running")
			}
			return nil
		},
	}
}
