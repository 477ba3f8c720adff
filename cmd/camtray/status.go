package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/camtray/internal/config"
	"github.com/cristianoliveira/camtray/internal/status"
	"github.com/spf13/cobra"
)

type statusClient interface {
	Summary(ctx context.Context) status.Summary
}

func statusCommandLong() string {
	var presets strings.Builder
	for _, p := range status.Presets() {
		fmt.Fprintf(&presets, "    %-12s %s\n", p.Name, p.Description)
	}
	return `Print a one-line gallery summary for shell prompts and status bars.
Nothing is printed for an empty gallery unless --show-empty is given.

USAGE:
    camtray status [--format NAME|TEMPLATE] [--show-empty]

PRESETS:
` + presets.String() + `
TEMPLATE VARIABLES:
    {{` + strings.Join(status.Variables, "}} {{") + `}}`
}

// NewStatusCmd creates the status command with explicit dependencies.
func NewStatusCmd(client func(ctx context.Context) (statusClient, error)) *cobra.Command {
	if client == nil {
		panic("NewStatusCmd: client dependency cannot be nil")
	}

	var (
		format    string
		showEmpty bool
	)
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print a gallery summary line",
		Long:  statusCommandLong(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = config.Get("status_format", status.DefaultPreset)
			}
			c, err := client(cmd.Context())
			if err != nil {
				return err
			}
			line, err := status.Render(c.Summary(cmd.Context()), status.Options{Format: format, ShowEmpty: showEmpty})
			if err != nil {
				return err
			}
			if line == "" {
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}
	statusCmd.Flags().StringVar(&format, "format", "", "Preset name or template (default from status_format)")
	statusCmd.Flags().BoolVar(&showEmpty, "show-empty", false, "Print the summary even when the gallery is empty")
	return statusCmd
}
