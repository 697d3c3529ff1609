package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newFlushCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Permanently delete consumed items (acknowledgment)",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := ctx.openQueue()
			if err != nil {
				return err
			}
			if err := q.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "flushed consumed items")
			return nil
		},
	}
}

func newRecoverCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "recover",
		Short: "Return consumed items to the queue for redelivery",
		Long: "recover renames every consumed item back to its visible name. Use it after an " +
			"uncertain crash; items that were already processed will be delivered again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := ctx.openQueue()
			if err != nil {
				return err
			}
			if err := q.Recover(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "recovered consumed items")
			return nil
		},
	}
}

func newSweepCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete incoming files abandoned by crashed pushes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			q, err := ctx.openQueue()
			if err != nil {
				return err
			}
			age := olderThan
			if age <= 0 {
				age = cfg.SweepAge()
			}
			removed, err := q.Sweep(age)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d abandoned incoming item(s)\n", removed)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Age threshold (default from config, e.g. 1h30m)")
	return cmd
}
