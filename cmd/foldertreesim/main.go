package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	foldertree "github.com/agatazaleska/foldertree"
	"github.com/agatazaleska/foldertree/stress"
)

var (
	workers      = 32
	opsPerWorker = 10000
	writeRatio   = 0.5
	seed         = int64(1)
	depth        = 3
)

var rootCmd = &cobra.Command{
	Use:   "foldertreesim",
	Short: "Hammer a concurrent in-memory folder tree and report invariant violations",
	RunE: func(cmd *cobra.Command, args []string) error {
		host := stress.CurrentHostInfo()
		fmt.Printf("host: %+v\n", host)

		tr := foldertree.New()
		defer tr.Free()

		cfg := stress.Config{
			Workers:      workers,
			OpsPerWorker: opsPerWorker,
			WriteRatio:   writeRatio,
			Seed:         seed,
			Names:        []string{"a", "b", "c", "d", "e"},
			Depth:        depth,
		}

		report, err := stress.Run(context.Background(), tr, cfg)
		if err != nil {
			return errors.Wrap(err, "stress run")
		}

		fmt.Printf("completed %d operations across %d workers\n", report.TotalOps, cfg.Workers)
		for kind, n := range report.ErrorCounts {
			fmt.Printf("  %s: %d\n", kind, n)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", workers, "number of concurrent workers")
	rootCmd.PersistentFlags().IntVarP(&opsPerWorker, "ops", "n", opsPerWorker, "operations issued per worker")
	rootCmd.PersistentFlags().Float64VarP(&writeRatio, "write-ratio", "r", writeRatio, "fraction of operations that mutate the tree")
	rootCmd.PersistentFlags().Int64VarP(&seed, "seed", "s", seed, "random seed")
	rootCmd.PersistentFlags().IntVarP(&depth, "depth", "d", depth, "maximum path depth addressed by workers")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
