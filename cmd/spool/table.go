package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"filespool/internal/spool"
)

// renderSnapshot formats spool entries as a rounded table for terminals.
func renderSnapshot(items []spool.ItemInfo, now time.Time) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"NAME", "STATE", "SIZE", "AGE"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	for _, item := range items {
		tw.AppendRow(table.Row{
			item.Name,
			string(item.State),
			formatSize(item.Size),
			formatAge(now.Sub(item.ModTime)),
		})
	}
	tw.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d item(s)", len(items))})
	return tw.Render()
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

func formatAge(age time.Duration) string {
	if age < 0 {
		age = 0
	}
	switch {
	case age >= time.Hour:
		return fmt.Sprintf("%.1fh", age.Hours())
	case age >= time.Minute:
		return fmt.Sprintf("%.1fm", age.Minutes())
	default:
		return fmt.Sprintf("%.0fs", age.Seconds())
	}
}
