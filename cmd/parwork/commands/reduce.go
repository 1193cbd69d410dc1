package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvoskov/parwork"
	"github.com/nvoskov/parwork/internal/config"
	"github.com/nvoskov/parwork/internal/printer"
	"github.com/nvoskov/parwork/metrics"
)

var (
	reduceSize    int
	reduceWorkers uint
	reduceTimeout time.Duration
)

var reduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Run the partitioned parallel sum demo",
	Long: `Sum the integers 0..size-1 with a partitioned parallel reduction and
compare the result and timing against a sequential fold.

The input is split into one contiguous span per worker; the last span absorbs
the remainder. Every worker folds its span into a dedicated slot, and the
partial sums are combined in ascending span order after all workers have
joined.`,
	RunE: runReduce,
}

func init() {
	reduceCmd.Flags().IntVar(&reduceSize, "size", 1_000_000, "How many integers to sum")
	reduceCmd.Flags().UintVar(&reduceWorkers, "workers", 4, "How many workers, one partition each")
	reduceCmd.Flags().DurationVar(&reduceTimeout, "join-timeout", 0, "Bound the join phase (0 = unbounded)")
	rootCmd.AddCommand(reduceCmd)
}

func runReduce(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		applyReduceConfig(cmd, cfg)
	}

	input := make([]int64, reduceSize)
	for i := range input {
		input[i] = int64(i)
	}

	spans, err := parwork.Split(len(input), int(reduceWorkers))
	if err != nil {
		return err
	}
	printer.Section("partitions")
	for i, s := range spans {
		printer.Info("worker %d: [%d, %d) holds %d items\n", i, s.Start, s.End, s.Len())
	}

	m := metrics.NewBasic()
	opts := []parwork.Option{
		parwork.WithWorkers(reduceWorkers),
		parwork.WithMetrics(m),
	}
	if reduceTimeout > 0 {
		opts = append(opts, parwork.WithJoinTimeout(reduceTimeout))
	}

	printer.Section("reduction")
	parallelStart := time.Now()
	parallel, err := parwork.Sum(ctx, input, opts...)
	if err != nil {
		printer.Fail("parallel sum aborted after %v\n", time.Since(parallelStart))
		return fmt.Errorf("parallel sum failed: %w", err)
	}
	parallelTook := time.Since(parallelStart)

	sequentialStart := time.Now()
	var sequential int64
	for _, v := range input {
		sequential += v
	}
	sequentialTook := time.Since(sequentialStart)

	printer.Info("parallel   sum %d in %v\n", parallel, parallelTook)
	printer.Info("sequential sum %d in %v\n", sequential, sequentialTook)
	if parallel != sequential {
		printer.Fail("results diverge\n")
		return fmt.Errorf("parallel sum %d does not match sequential sum %d", parallel, sequential)
	}

	printer.Success("sums match across %d workers\n", reduceWorkers)
	return nil
}

// applyReduceConfig merges file values under explicit flags: a flag set on
// the command line always wins, a zero file value keeps the built-in default.
func applyReduceConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("size") && cfg.Reduce.Size > 0 {
		reduceSize = cfg.Reduce.Size
	}
	if !cmd.Flags().Changed("workers") && cfg.Reduce.Workers > 0 {
		reduceWorkers = cfg.Reduce.Workers
	}
	if !cmd.Flags().Changed("join-timeout") && cfg.Reduce.JoinTimeout > 0 {
		reduceTimeout = cfg.Reduce.JoinTimeout.Std()
	}
}
