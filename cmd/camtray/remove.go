package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/spf13/cobra"
)

type removeClient interface {
	Load(ctx context.Context) gallery.Gallery
	Remove(ctx context.Context, ref string) gallery.Gallery
}

// NewRemoveCmd creates the remove command with explicit dependencies.
func NewRemoveCmd(client func(ctx context.Context) (removeClient, error)) *cobra.Command {
	if client == nil {
		panic("NewRemoveCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "remove <ref>",
		Short: "Remove a photo from the gallery",
		Long: `Remove one reference from the gallery. The photo file itself is kept.

USAGE:
    camtray remove <ref>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := client(ctx)
			if err != nil {
				return err
			}
			ref := args[0]
			if !store.Load(ctx).Contains(ref) {
				return fmt.Errorf("remove: %q is not in the gallery", ref)
			}
			remaining := store.Remove(ctx, ref)
			output.Success(fmt.Sprintf("removed, %d photos left", len(remaining)))
			return nil
		},
	}
}
