package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lexiserve/lexiserve/internal/daemon"
	"github.com/lexiserve/lexiserve/internal/server"
)

func newStartCmd() *cobra.Command {
	var (
		host     string
		port     int
		asDaemon bool
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the lexiserve server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(host, port, asDaemon)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "bind host (defaults to config.toml)")
	cmd.Flags().IntVar(&port, "port", 0, "bind port (defaults to config.toml)")
	cmd.Flags().BoolVar(&asDaemon, "daemon", false, "detach and run in the background")
	return cmd
}

// runStart is shared by start and restart: it honors --daemon by
// re-exec'ing into the background, otherwise it blocks serving
// connections until the process is signaled.
func runStart(host string, port int, asDaemon bool) error {
	if asDaemon && !daemon.IsDaemonized() {
		return startDetached()
	}

	lock := daemon.NewLock()
	if err := lock.Start(); err != nil {
		return err
	}
	defer lock.Release()

	rt, err := buildRuntime(configPath, dataPath)
	if err != nil {
		return err
	}
	if rt.Watcher != nil {
		defer rt.Watcher.Close()
	}

	effectiveHost, effectivePort := host, port
	if rt.Watcher != nil && host == "" && port == 0 {
		c := rt.Watcher.Current()
		effectiveHost, effectivePort = c.Server.Host, c.Server.Port
	}
	addr := fmt.Sprintf("%s:%d", effectiveHost, effectivePort)

	srv := server.New(rt.Store, rt.Engine, rt.Watcher)
	log.Infof("lexiserve starting on %s", addr)
	return srv.ListenAndServe(addr)
}

// startDetached re-execs the current binary with --daemon already
// satisfied by the child's own environment sentinel, so the child does
// not try to re-daemonize itself.
func startDetached() error {
	args := make([]string, 0, len(os.Args)-1)
	for _, a := range os.Args[1:] {
		if a == "--daemon" {
			continue
		}
		args = append(args, a)
	}
	proc, err := daemon.Daemonize(args)
	if err != nil {
		return err
	}
	log.Infof("lexiserve daemonized (pid %d)", proc.Pid)
	return nil
}
