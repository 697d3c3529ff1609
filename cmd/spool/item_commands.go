package main

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newPushCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "push [json...]",
		Short: "Enqueue one JSON payload per argument (or per stdin line)",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := ctx.openQueue()
			if err != nil {
				return err
			}

			docs := args
			if len(docs) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
				for scanner.Scan() {
					if line := scanner.Text(); line != "" {
						docs = append(docs, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			for i, doc := range docs {
				if !json.Valid([]byte(doc)) {
					return fmt.Errorf("payload %d is not valid JSON", i+1)
				}
			}
			for _, doc := range docs {
				if err := q.Push(payload(doc)); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %d item(s)\n", len(docs))
			return nil
		},
	}
}

func newPopCommand(ctx *commandContext) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "pop",
		Short: "Take items in arbitrary order, leaving them consumed until flushed",
		Long: "pop selects items without ordering guarantees and marks each one consumed. " +
			"Run `spool flush` to acknowledge them permanently, or `spool recover` to put them back.",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := ctx.openQueue()
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				item, ok, err := q.Pop()
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(item))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Maximum number of items to pop")
	return cmd
}

func newPullCommand(ctx *commandContext) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Take items in name order, deleting each on read (single consumer only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := ctx.openQueue()
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				item, ok, err := q.Pull()
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(item))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Maximum number of items to pull")
	return cmd
}
