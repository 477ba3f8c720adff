package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cristianoliveira/camtray/internal/gallery"
	"gopkg.in/yaml.v3"
)

// PlainFormatter prints one reference per line.
type PlainFormatter struct{}

// NewPlainFormatter creates a new PlainFormatter.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{}
}

// FormatGallery writes the references newest first.
func (f *PlainFormatter) FormatGallery(g gallery.Gallery, writer io.Writer) error {
	if len(g) == 0 {
		_, err := fmt.Fprintln(writer, EmptyMessage)
		return err
	}
	for _, ref := range g {
		if _, err := fmt.Fprintln(writer, ref); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter prints the gallery as a JSON array.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatGallery writes an indented array; an empty gallery is [].
func (f *JSONFormatter) FormatGallery(g gallery.Gallery, writer io.Writer) error {
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(g.Clone())
}

// YAMLFormatter prints the gallery as a YAML sequence.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAMLFormatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// FormatGallery writes a block sequence; an empty gallery is [].
func (f *YAMLFormatter) FormatGallery(g gallery.Gallery, writer io.Writer) error {
	enc := yaml.NewEncoder(writer)
	enc.SetIndent(2)
	if err := enc.Encode([]string(g.Clone())); err != nil {
		return err
	}
	return enc.Close()
}
