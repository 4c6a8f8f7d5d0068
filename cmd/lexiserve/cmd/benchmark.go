package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexiserve/lexiserve/internal/bench"
	"github.com/lexiserve/lexiserve/internal/utils"
)

func newBenchmarkCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Run a latency benchmark against the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(configPath, dataPath)
			if err != nil {
				return err
			}
			if rt.Watcher != nil {
				defer rt.Watcher.Close()
			}

			report := bench.Run(rt.Store, rt.Engine, count)
			fmt.Printf("run       %s\n", report.RunID)
			fmt.Printf("queries   %s\n", utils.FormatWithCommas(report.Queries))
			fmt.Printf("p50       %s\n", report.P50)
			fmt.Printf("p95       %s\n", report.P95)
			fmt.Printf("p99       %s\n", report.P99)
			fmt.Printf("qps       %.1f\n", report.Throughput)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1000, "number of queries to sample")
	return cmd
}
