package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lexiserve/lexiserve/internal/tui"
)

func newCliCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "cli",
		Short: "Launch the interactive debug client",
		RunE: func(cmd *cobra.Command, args []string) error {
			var client tui.Client

			if addr != "" {
				wc, err := tui.DialWireClient(addr)
				if err != nil {
					return err
				}
				client = wc
			} else {
				rt, err := buildRuntime(configPath, dataPath)
				if err != nil {
					return err
				}
				if rt.Watcher != nil {
					defer rt.Watcher.Close()
				}
				client = &tui.EmbeddedClient{Engine: rt.Engine}
			}
			defer client.Close()

			return tui.Run(client)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "connect to a running server instead of loading the corpus locally")
	return cmd
}
