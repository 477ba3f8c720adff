package main

import (
	"context"

	"github.com/cristianoliveira/camtray/internal/config"
	"github.com/spf13/cobra"
)

type fileServer interface {
	Run(ctx context.Context, addr string) error
}

type serveDeps interface {
	FileServer() fileServer
}

// NewServeCmd creates the serve command with explicit dependencies.
func NewServeCmd(deps func(ctx context.Context) (serveDeps, error)) *cobra.Command {
	if deps == nil {
		panic("NewServeCmd: deps dependency cannot be nil")
	}

	var addr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve captured photos over HTTP",
		Long: `Serve the photos and library directories so gallery references become
displayable URLs, plus the gallery itself as JSON on /gallery.

USAGE:
    camtray serve [--addr host:port]

The address defaults to fileserver_addr (127.0.0.1:8765).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := deps(ctx)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = config.Get("fileserver_addr", "127.0.0.1:8765")
			}
			output.Info("Serving photos on http://" + addr)
			return d.FileServer().Run(ctx, addr)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (host:port)")
	return serveCmd
}
