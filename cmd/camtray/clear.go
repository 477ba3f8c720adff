package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

type clearClient interface {
	ClearGallery(ctx context.Context, confirm func() bool) bool
}

// NewClearCmd creates the clear command with explicit dependencies.
func NewClearCmd(client func(ctx context.Context) (clearClient, error)) *cobra.Command {
	if client == nil {
		panic("NewClearCmd: client dependency cannot be nil")
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every photo from the gallery",
		Long: `Remove every reference from the gallery after asking for confirmation.

USAGE:
    camtray clear [--yes]

OPTIONS:
    -y, --yes    Do not ask for confirmation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl, err := client(ctx)
			if err != nil {
				return err
			}
			confirm := func() bool {
				if yes {
					return true
				}
				return askConfirmation(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure you want to clear the gallery?")
			}
			if !ctrl.ClearGallery(ctx, confirm) {
				output.Info("Operation cancelled")
				return nil
			}
			output.Success("Gallery cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return clearCmd
}

// askConfirmation prints question and reads a y/N answer. Anything but yes is no.
func askConfirmation(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (y/N): ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
