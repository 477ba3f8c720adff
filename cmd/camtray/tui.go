package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/camtray/internal/colors"
	"github.com/cristianoliveira/camtray/internal/config"
	"github.com/cristianoliveira/camtray/internal/logging"
	"github.com/cristianoliveira/camtray/internal/settings"
	"github.com/cristianoliveira/camtray/internal/tui/state"
	"github.com/spf13/cobra"
)

type tuiDeps interface {
	Controller() state.Controller
	FileServer() fileServer
}

// runProgram is a seam for tests.
var runProgram = func(ctx context.Context, m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(deps func(ctx context.Context) (tuiDeps, error)) *cobra.Command {
	if deps == nil {
		panic("NewTUICmd: deps dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive camera UI",
		Long: `Open the interactive camera UI.

KEYS:
    c        take a picture
    r        retry the last action
    l        pick from the library
    f        flip the camera and take a picture
    m        take several pictures
    g        show or hide the gallery
    j/k      move in the gallery
    Enter    show the selected photo
    d        delete the selected photo
    C        clear the gallery (asks y/N)
    /        filter the gallery (Esc clears)
    q        quit

Gallery visibility, filter and search mode are saved to tui.toml on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), deps)
		},
	}
}

func runTUI(ctx context.Context, deps func(ctx context.Context) (tuiDeps, error)) error {
	d, err := deps(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if config.GetBool("fileserver_enabled", false) {
		addr := config.Get("fileserver_addr", "127.0.0.1:8765")
		srv := d.FileServer()
		go func() {
			if err := srv.Run(ctx, addr); err != nil {
				logging.Error("file server stopped", "addr", addr, "error", err)
			}
		}()
	}

	prefs, err := settings.Load()
	if err != nil {
		output.Warning(fmt.Sprintf("ignoring TUI settings: %v", err))
		prefs = settings.Default()
	}

	// Console output would draw over the alternate screen.
	colors.SetOutput(io.Discard, io.Discard)
	model := state.NewModel(ctx, d.Controller(), state.WithSettings(prefs))
	runErr := runProgram(ctx, model)
	colors.SetOutput(nil, nil)

	if err := settings.Save(model.Settings()); err != nil {
		output.Warning(fmt.Sprintf("failed to save TUI settings: %v", err))
	}
	if runErr != nil {
		return fmt.Errorf("tui: %w", runErr)
	}
	return nil
}
