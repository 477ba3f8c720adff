package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/cristianoliveira/camtray/cmd"
	"github.com/cristianoliveira/camtray/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	rt := newLazyRuntime(newRuntime)
	root := newApp(rt)

	err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version.String()),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	)
	rt.close()
	if err != nil {
		os.Exit(1)
	}
}

// newApp wires every subcommand onto the root command. The TUI runs when no
// subcommand is given.
func newApp(rt *lazyRuntime) *cobra.Command {
	root := cmd.NewRootCmd()
	tui := NewTUICmd(provide(rt, func(r *runtime) tuiDeps { return r }))
	root.Args = cobra.NoArgs
	root.RunE = tui.RunE

	root.AddCommand(
		tui,
		NewCaptureCmd(provide(rt, func(r *runtime) captureClient { return r.ctrl })),
		NewSelectCmd(provide(rt, func(r *runtime) selectClient { return r.ctrl })),
		NewMultiCmd(provide(rt, func(r *runtime) multiClient { return r.ctrl })),
		NewListCmd(provide(rt, func(r *runtime) listClient { return r.store })),
		NewRemoveCmd(provide(rt, func(r *runtime) removeClient { return r.store })),
		NewClearCmd(provide(rt, func(r *runtime) clearClient { return r.ctrl })),
		NewStatusCmd(provide(rt, func(r *runtime) statusClient { return r })),
		NewServeCmd(provide(rt, func(r *runtime) serveDeps { return r })),
	)
	return root
}
