package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/camtray/internal/colors"
	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/cristianoliveira/camtray/internal/search"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	ShowHeaders bool
	HeaderColor string
	// RefWidth bounds the reference column; longer references keep their tail.
	RefWidth int
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		RefWidth:    60,
	}
}

// TableFormatter prints position, source and reference columns.
type TableFormatter struct {
	config *TableConfig
}

// NewTableFormatter creates a TableFormatter with the default configuration.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{config: DefaultTableConfig()}
}

// WithConfig replaces the table configuration.
func (f *TableFormatter) WithConfig(cfg *TableConfig) *TableFormatter {
	if cfg != nil {
		f.config = cfg
	}
	return f
}

// FormatGallery writes the gallery as a table.
func (f *TableFormatter) FormatGallery(g gallery.Gallery, writer io.Writer) error {
	if len(g) == 0 {
		_, err := fmt.Fprintln(writer, EmptyMessage)
		return err
	}
	if f.config.ShowHeaders {
		if _, err := fmt.Fprintf(writer, "%s%-4s  %-6s  %s%s\n", f.config.HeaderColor, "#", "SOURCE", "REFERENCE", colors.Reset); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(writer, "%s----  ------  %s%s\n", f.config.HeaderColor, strings.Repeat("-", 9), colors.Reset); err != nil {
			return err
		}
	}
	for i, ref := range g {
		if _, err := fmt.Fprintf(writer, "%4d  %-6s  %s\n", i+1, search.Source(ref), truncateLeft(ref, f.config.RefWidth)); err != nil {
			return err
		}
	}
	return nil
}

func truncateLeft(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return "..." + string(r[len(r)-(width-3):])
}
