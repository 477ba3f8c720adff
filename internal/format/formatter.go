// Package format renders the gallery for CLI output.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/camtray/internal/gallery"
)

// Formatter writes a gallery in one output style.
type Formatter interface {
	FormatGallery(g gallery.Gallery, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypePlain prints one reference per line.
	FormatterTypePlain FormatterType = "plain"

	// FormatterTypeTable prints position, source and reference columns.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON prints an indented JSON array.
	FormatterTypeJSON FormatterType = "json"

	// FormatterTypeYAML prints a YAML sequence.
	FormatterTypeYAML FormatterType = "yaml"
)

// EmptyMessage is printed by the human readable formatters for an empty gallery.
const EmptyMessage = "Gallery is empty"

// Types lists the supported formatter types.
func Types() []FormatterType {
	return []FormatterType{FormatterTypePlain, FormatterTypeTable, FormatterTypeJSON, FormatterTypeYAML}
}

// ParseFormatterType resolves a user supplied name. An empty name is plain.
func ParseFormatterType(name string) (FormatterType, error) {
	if name == "" {
		return FormatterTypePlain, nil
	}
	t := FormatterType(strings.ToLower(name))
	for _, known := range Types() {
		if t == known {
			return t, nil
		}
	}
	names := make([]string, 0, len(Types()))
	for _, known := range Types() {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("unknown format %q (want %s)", name, strings.Join(names, ", "))
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	case FormatterTypeYAML:
		return NewYAMLFormatter()
	default:
		return NewPlainFormatter()
	}
}
