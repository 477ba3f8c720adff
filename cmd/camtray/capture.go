package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianoliveira/camtray/internal/camera"
	"github.com/cristianoliveira/camtray/internal/colors"
	"github.com/cristianoliveira/camtray/internal/controller"
	"github.com/spf13/cobra"
)

type captureClient interface {
	TakePicture(ctx context.Context) error
	TakePictureFacing(ctx context.Context, direction camera.Direction) error
	State() controller.State
}

type selectClient interface {
	SelectFromLibrary(ctx context.Context) error
	State() controller.State
}

const captureCommandLong = `Take a picture with the configured capture command and add it to the gallery.

USAGE:
    camtray capture [--front | --rear]

The reference of the new photo is printed on stdout.

EXAMPLES:
    # Capture with the default camera
    camtray capture

    # Capture with the front camera
    camtray capture --front`

// NewCaptureCmd creates the capture command with explicit dependencies.
func NewCaptureCmd(client func(ctx context.Context) (captureClient, error)) *cobra.Command {
	if client == nil {
		panic("NewCaptureCmd: client dependency cannot be nil")
	}

	var front, rear bool
	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "Take a picture and add it to the gallery",
		Long:  captureCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl, err := client(ctx)
			if err != nil {
				return err
			}
			switch {
			case front:
				err = ctrl.TakePictureFacing(ctx, camera.DirectionFront)
			case rear:
				err = ctrl.TakePictureFacing(ctx, camera.DirectionRear)
			default:
				err = ctrl.TakePicture(ctx)
			}
			return reportCapture(cmd, ctrl.State(), err)
		},
	}
	captureCmd.Flags().BoolVar(&front, "front", false, "Use the front camera")
	captureCmd.Flags().BoolVar(&rear, "rear", false, "Use the rear camera")
	captureCmd.MarkFlagsMutuallyExclusive("front", "rear")
	return captureCmd
}

// NewSelectCmd creates the select command with explicit dependencies.
func NewSelectCmd(client func(ctx context.Context) (selectClient, error)) *cobra.Command {
	if client == nil {
		panic("NewSelectCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "select",
		Short: "Pick a photo from the library and add it to the gallery",
		Long: `Open the configured picker command, then add the chosen photo to the gallery.

USAGE:
    camtray select`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl, err := client(ctx)
			if err != nil {
				return err
			}
			err = ctrl.SelectFromLibrary(ctx)
			return reportCapture(cmd, ctrl.State(), err)
		},
	}
}

// reportCapture prints the shown reference or turns the state's message into
// the command error.
func reportCapture(cmd *cobra.Command, st controller.State, err error) error {
	if err != nil {
		if st.ErrorMessage != "" {
			return errors.New(st.ErrorMessage)
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), st.Current)
	colors.Debug(fmt.Sprintf("gallery now holds %d photos", len(st.Gallery)))
	return nil
}
