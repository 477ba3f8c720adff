package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/camtray/internal/format"
	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/cristianoliveira/camtray/internal/search"
	"github.com/spf13/cobra"
)

type listClient interface {
	Load(ctx context.Context) gallery.Gallery
}

const listCommandLong = `List the gallery, newest first.

USAGE:
    camtray list [--format plain|table|json|yaml] [--search QUERY]

OPTIONS:
    --format=<format>      Output format: plain (default), table, json, yaml
    --search=<query>       Only list references matching the query
    --search-mode=<mode>   substring (default), regex or token
    --ignore-case          Case-insensitive search
    --name-only            Match the file name instead of the whole reference`

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client func(ctx context.Context) (listClient, error)) *cobra.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var (
		formatName string
		query      string
		mode       string
		ignoreCase bool
		nameOnly   bool
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the gallery",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := format.ParseFormatterType(formatName)
			if err != nil {
				return err
			}
			opts := []search.Option{search.WithCaseInsensitive(ignoreCase)}
			if nameOnly {
				opts = append(opts, search.WithFields(search.FieldName))
			}
			provider, err := search.New(search.Mode(mode), opts...)
			if err != nil {
				return err
			}
			if re, ok := provider.(*search.RegexProvider); ok && query != "" {
				if err := re.Validate(query); err != nil {
					return fmt.Errorf("invalid search pattern: %w", err)
				}
			}
			store, err := client(cmd.Context())
			if err != nil {
				return err
			}
			g := search.Filter(store.Load(cmd.Context()), provider, query)
			return format.NewFormatter(ft).FormatGallery(g, cmd.OutOrStdout())
		},
	}
	listCmd.Flags().StringVar(&formatName, "format", string(format.FormatterTypePlain), "Output format: plain, table, json, yaml")
	listCmd.Flags().StringVar(&query, "search", "", "Only list references matching the query")
	listCmd.Flags().StringVar(&mode, "search-mode", string(search.ModeSubstring), "Search mode: substring, regex, token")
	listCmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "Case-insensitive search")
	listCmd.Flags().BoolVar(&nameOnly, "name-only", false, "Match the file name only")
	return listCmd
}
