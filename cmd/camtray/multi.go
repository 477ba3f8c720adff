package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type multiClient interface {
	TakeMultiple(ctx context.Context) ([]string, error)
	TakeMultipleCount(ctx context.Context, count int) ([]string, error)
}

// NewMultiCmd creates the multi command with explicit dependencies.
func NewMultiCmd(client func(ctx context.Context) (multiClient, error)) *cobra.Command {
	if client == nil {
		panic("NewMultiCmd: client dependency cannot be nil")
	}

	var count int
	multiCmd := &cobra.Command{
		Use:   "multi",
		Short: "Take several pictures in a row",
		Long: `Take several pictures one after another. Failed attempts are skipped and
every successful photo is added to the gallery as soon as it is taken.

USAGE:
    camtray multi [--count N]

The count defaults to multi_capture_count (3).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("count") && count <= 0 {
				return fmt.Errorf("multi: --count must be positive, got %d", count)
			}
			ctx := cmd.Context()
			ctrl, err := client(ctx)
			if err != nil {
				return err
			}
			var refs []string
			if count > 0 {
				refs, err = ctrl.TakeMultipleCount(ctx, count)
			} else {
				refs, err = ctrl.TakeMultiple(ctx)
			}
			if err != nil {
				return err
			}
			for _, ref := range refs {
				fmt.Fprintln(cmd.OutOrStdout(), ref)
			}
			output.Success(fmt.Sprintf("captured %d photos", len(refs)))
			return nil
		},
	}
	multiCmd.Flags().IntVar(&count, "count", 0, "Number of pictures to take")
	return multiCmd
}
