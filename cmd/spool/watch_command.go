package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"filespool/internal/consumer"
	"filespool/internal/stream"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Drain the queue continuously, printing each payload",
		Long: "watch runs a locked consumer loop: consumed items left by a previous crash are " +
			"recovered first, then each arriving payload is printed to stdout and acknowledged. " +
			"Only one watch may run per spool.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			q, err := ctx.openQueue()
			if err != nil {
				return err
			}

			var st *stream.Stream[payload]
			if cfg.Watch.Enabled {
				watcher, err := stream.NewWatcher(q.Dir(), cfg.Debounce(), logger)
				if err != nil {
					return err
				}
				defer watcher.Close()
				st = stream.NewWatched[payload](q, watcher)
			} else {
				st = stream.New[payload](q)
			}

			runner, err := consumer.New(q, st, func(_ context.Context, item payload) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(item))
				return err
			}, consumer.Options{
				PollInterval: cfg.PollInterval(),
				AckEvery:     cfg.Consumer.AckEvery,
				LockPath:     cfg.Paths.LockFile,
				Logger:       logger,
			})
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			err = runner.Run(signalCtx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
