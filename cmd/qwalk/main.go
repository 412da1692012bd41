package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/spf13/cobra"
	"github.com/theapemachine/qwalk"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qwalk",
		Short: "Bounded one-dimensional quantum walk with entropy tracing",
		Long: `qwalk evolves a coined quantum walk on a line with reflecting borders
and writes the Shannon entropy of the walker's distribution at every
checkpoint of a step schedule.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qwalk version %s\n", version)
		},
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the walk over its checkpoint schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return run(ctx, cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("config", "", "YAML config file")
	cmd.Flags().String("out", "", "Output file (default quantum-walks.txt)")
	cmd.Flags().String("format", "", "Output format: text or msgpack")
	cmd.Flags().Uint64("seed", 0, "Random seed, 0 picks a fresh one")
	cmd.Flags().String("mode", "", "cumulative or independent")
	cmd.Flags().String("schedule", "", "Comma separated checkpoint lengths")
	cmd.Flags().String("log-level", "", "info or debug")

	return cmd
}

// buildConfig layers defaults, the config file, the environment and flags.
func buildConfig(cmd *cobra.Command) (*qwalk.Config, error) {
	cfg := qwalk.NewConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := qwalk.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("out") {
		cfg.Output.Path, _ = flags.GetString("out")
	}
	if flags.Changed("format") {
		v, _ := flags.GetString("format")
		cfg.Output.Format = qwalk.Format(v)
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("mode") {
		v, _ := flags.GetString("mode")
		cfg.Mode = qwalk.Mode(v)
	}
	if flags.Changed("schedule") {
		v, _ := flags.GetString("schedule")
		schedule, err := qwalk.ParseSchedule(v)
		if err != nil {
			return nil, err
		}
		cfg.Schedule = schedule
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// run only publishes the output file once the whole schedule has completed.
func run(ctx context.Context, cfg *qwalk.Config, out io.Writer) (err error) {
	recorder, err := qwalk.OpenRecorder(cfg.Output.Path, cfg.Output.Format)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := recorder.Close(); err == nil {
			err = cerr
		}
	}()

	sim, err := qwalk.NewSimulation(cfg, qwalk.NewSource(cfg.Seed), recorder)
	if err != nil {
		return err
	}

	if err = sim.Run(ctx); err != nil {
		return err
	}

	if err = recorder.Commit(); err != nil {
		return err
	}

	printSummary(out, sim)
	return nil
}

func printSummary(out io.Writer, sim *qwalk.Simulation) {
	exported := sim.Metrics().ExportMetrics()

	keys := make([]string, 0, len(exported))
	for k := range exported {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(out, "run %s %s\n", sim.ID(), sim.Phase())
	for _, k := range keys {
		fmt.Fprintf(out, "  %-15s %v\n", k, exported[k])
	}
}
