package main

import (
	"context"
	"fmt"
	"time"

	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/awmpietro/algoviz/internal/app"
	"github.com/awmpietro/algoviz/internal/playback"
	"github.com/awmpietro/algoviz/internal/sink"
	"github.com/awmpietro/algoviz/internal/step"
)

func newPlayCmd(c *cli) *cobra.Command {
	var (
		sets    []string
		random  int
		delay   time.Duration
		noColor     bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "play <algorithm>",
		Short: "Animate an algorithm in the terminal",
		Long:  "play applies the step sequence one step at a time. Interrupting (Ctrl-C) stops it before the next step.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := params(sets)
			if err != nil {
				return err
			}
			res, err := c.svc.Generate(cmd.Context(), app.GenerateRequest{
				Algorithm: args[0],
				Input:     in,
				Random:    random,
			})
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("delay") {
				delay = c.cfg.DefaultDelay
			}

			opts := []sink.TextOption{sink.WithTotal(res.Sequence.Len())}
			if noColor {
				opts = append(opts, sink.WithProfile(termenv.Ascii))
			}
			switch res.Algorithm.Family() {
			case step.FamilySorting, step.FamilySearching:
				opts = append(opts, sink.WithArray(sink.NewArray(res.Input.Array)))
			}
			out := sink.NewText(cmd.OutOrStdout(), opts...)

			reg := prometheus.NewRegistry()
			obs, flush := newPlayObserver(c.logger, c.cfg.ObsBuffer, reg)
			defer flush()
			if metricsAddr != "" {
				stop, err := serveMetrics(metricsAddr, reg, c.logger)
				if err != nil {
					return fmt.Errorf("failed to serve metrics: %w", err)
				}
				defer stop()
			}

			player := playback.NewPlayer(out, playback.WithObserver(obs), playback.WithLogger(c.logger))
			session, _ := player.Start(cmd.Context(), res.Sequence, delay)

			status, err := session.Wait(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s after %d/%d steps\n",
				res.Algorithm, status, session.Cursor(), session.Len())
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "input parameters as key=value[,key=value]; lists use |")
	cmd.Flags().IntVar(&random, "random", 0, "use this many random values when no array is set")
	cmd.Flags().DurationVarP(&delay, "delay", "d", 200*time.Millisecond, "pause between steps")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colours")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve playback metrics on this address while playing")
	return cmd
}
