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
	pipelineItems    int
	pipelineDelay    time.Duration
	pipelinePoll     time.Duration
	pipelineCapacity uint
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the producer/consumer pipeline demo",
	Long: `Run a single producer emitting a monotone sequence through a shared
FIFO queue into a single consumer that prints every item in arrival order.

The producer pushes 1..items with a delay between pushes and closes the queue
when done; the consumer terminates once it observes the close and a
subsequent empty pop. With --poll-interval the consumer polls with a jittered
idle wait instead of blocking on the queue's condition variable.`,
	RunE: runPipeline,
}

func init() {
	pipelineCmd.Flags().IntVar(&pipelineItems, "items", 10, "How many items the producer emits")
	pipelineCmd.Flags().DurationVar(&pipelineDelay, "delay", 20*time.Millisecond, "Pause between consecutive pushes")
	pipelineCmd.Flags().DurationVar(&pipelinePoll, "poll-interval", 0, "Poll the queue at this interval instead of blocking (0 = blocking)")
	pipelineCmd.Flags().UintVar(&pipelineCapacity, "capacity", 0, "Initial queue buffer capacity")
	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		applyPipelineConfig(cmd, cfg)
	}

	m := metrics.NewBasic()
	opts := []parwork.Option{
		parwork.WithMetrics(m),
		parwork.WithQueueCapacity(pipelineCapacity),
	}
	if pipelineDelay > 0 {
		opts = append(opts, parwork.WithEmitDelay(pipelineDelay))
	}
	if pipelinePoll > 0 {
		opts = append(opts, parwork.WithPollInterval(pipelinePoll))
	}

	printer.Section("pipeline")
	printer.Info("producing %d items, delay %v\n", pipelineItems, pipelineDelay)

	p, err := parwork.NewPipeline(
		pipelineItems,
		func(i int) int { return i + 1 },
		func(v int) error {
			printer.Info("consumed %d\n", v)
			return nil
		},
		opts...,
	)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := p.Run(ctx); err != nil {
		printer.Fail("pipeline aborted after %v\n", time.Since(start))
		return fmt.Errorf("pipeline failed: %w", err)
	}

	printer.Success("delivered %d of %d pushed items in %v\n",
		m.CounterValue(parwork.MetricQueuePopped),
		m.CounterValue(parwork.MetricQueuePushed),
		time.Since(start),
	)
	return nil
}

// applyPipelineConfig merges file values under explicit flags: a flag set on
// the command line always wins, a zero file value keeps the built-in default.
func applyPipelineConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("items") && cfg.Pipeline.Items > 0 {
		pipelineItems = cfg.Pipeline.Items
	}
	if !cmd.Flags().Changed("delay") && cfg.Pipeline.Delay > 0 {
		pipelineDelay = cfg.Pipeline.Delay.Std()
	}
	if !cmd.Flags().Changed("poll-interval") && cfg.Pipeline.PollInterval > 0 {
		pipelinePoll = cfg.Pipeline.PollInterval.Std()
	}
	if !cmd.Flags().Changed("capacity") && cfg.Pipeline.Capacity > 0 {
		pipelineCapacity = cfg.Pipeline.Capacity
	}
}
