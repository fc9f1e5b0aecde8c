package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thesyncim/uicontracts/internal/soak"
)

var errSoakFailed = errors.New("soak run failed")

func soakCmd() *cobra.Command {
	var opts soak.Options

	cmd := &cobra.Command{
		Use:   "soak",
		Short: "Drive random events through every view-model and check its properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSoak(ctx, cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&opts.Duration, "duration", time.Minute, "run duration (e.g. 1m, 1h)")
	flags.IntVar(&opts.MaxSteps, "steps", 0, "stop after this many steps (0 = no limit)")
	flags.Uint64Var(&opts.Seed, "seed", uint64(time.Now().UnixNano()), "PRNG seed")
	flags.DurationVar(&opts.StatusInterval, "status-interval", 10*time.Second, "progress log interval")
	return cmd
}

func runSoak(ctx context.Context, cmd *cobra.Command, opts soak.Options) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Soak Runner\n")
	fmt.Fprintf(cmd.OutOrStdout(), "===========\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Duration: %v\n", opts.Duration)
	fmt.Fprintf(cmd.OutOrStdout(), "Seed:     %d\n", opts.Seed)

	result := soak.Run(ctx, opts)
	soak.PrintSummary(cmd.OutOrStdout(), result)

	if !result.Passed() {
		return errSoakFailed
	}
	return nil
}
