package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/awmpietro/algoviz/internal/app"
	"github.com/awmpietro/algoviz/internal/bootstrap"
	"github.com/awmpietro/algoviz/internal/config"
	"github.com/awmpietro/algoviz/internal/logging"
)

// cli carries what every subcommand shares. It is filled in by the root's
// PersistentPreRunE.
type cli struct {
	cfg     config.Runtime
	logger  *slog.Logger
	svc     *app.Service
	cleanup func()
}

func newRootCmd() *cobra.Command {
	c := &cli{cleanup: func() {}}

	root := &cobra.Command{
		Use:           "algoviz",
		Short:         "Generate and play back algorithm animation steps",
		Long:          "algoviz records the step trace of sorting, searching, graph, tree and dynamic programming algorithms and replays it in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			c.cleanup()
		},
	}
	root.PersistentFlags().String("log-level", "", "log level (overrides ALGOVIZ_LOG_LEVEL)")

	root.AddCommand(newListCmd(c), newGenerateCmd(c), newPlayCmd(c))
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logging.New(level, cfg.LogFormat, cmd.ErrOrStderr())

	svc, cleanup, err := bootstrap.Service(cmd.Context(), cfg, c.logger, nil)
	if err != nil {
		return fmt.Errorf("failed to build service: %w", err)
	}
	c.svc, c.cleanup = svc, cleanup
	return nil
}

// params merges every --set flag into one raw input map.
func params(sets []string) (map[string]any, error) {
	out := map[string]any{}
	for _, s := range sets {
		p, err := app.ParseParams(s)
		if err != nil {
			return nil, err
		}
		for k, v := range p {
			out[k] = v
		}
	}
	return out, nil
}
