package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every spool entry with its state, size, and age",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := ctx.openQueue()
			if err != nil {
				return err
			}
			items, err := q.Snapshot()
			if err != nil {
				return err
			}

			if jsonOut || !isatty.IsTerminal(os.Stdout.Fd()) {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				for _, item := range items {
					if err := encoder.Encode(item); err != nil {
						return err
					}
				}
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSnapshot(items, time.Now()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit one JSON object per entry instead of a table")
	return cmd
}
