// Package status renders a one-line gallery summary for shell prompts and
// status bars.
package status

import (
	"fmt"
	"path"
	"strings"

	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/cristianoliveira/camtray/internal/search"
)

// Summary is the data a status template can show.
type Summary struct {
	Count   int
	Latest  string
	Backend string
	Facing  string
}

// NewSummary summarizes g. The newest reference is first.
func NewSummary(g gallery.Gallery, backend, facing string) Summary {
	s := Summary{Count: len(g), Backend: backend, Facing: facing}
	if len(g) > 0 {
		s.Latest = g[0]
	}
	return s
}

// LatestName returns the last path element of the newest reference.
func (s Summary) LatestName() string {
	if s.Latest == "" {
		return ""
	}
	return path.Base(strings.TrimRight(s.Latest, "/"))
}

// Source returns where the newest reference is served from.
func (s Summary) Source() string {
	if s.Latest == "" {
		return ""
	}
	return search.Source(s.Latest)
}

// Preset is a named template.
type Preset struct {
	Name        string
	Template    string
	Description string
}

// DefaultPreset is used when no format is configured.
const DefaultPreset = "compact"

// Presets returns the built-in templates in display order.
func Presets() []Preset {
	return []Preset{
		{Name: "compact", Template: "📷 {{count}}", Description: "Camera icon and photo count"},
		{Name: "detailed", Template: "{{count}} photos | latest: {{latest-name}}", Description: "Count and newest file name"},
		{Name: "count-only", Template: "{{count}}", Description: "Only the photo count"},
		{Name: "json", Template: `{"count":{{count}},"latest":"{{latest}}","backend":"{{backend}}"}`, Description: "JSON for scripts"},
	}
}

// Lookup returns the preset called name.
func Lookup(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Options selects what Render prints.
type Options struct {
	// Format is a preset name or, when it contains "{{", a custom template.
	Format string
	// ShowEmpty renders even when the gallery is empty.
	ShowEmpty bool
}

// Render formats s. An empty gallery renders as "" unless ShowEmpty is set.
func Render(s Summary, opts Options) (string, error) {
	format := opts.Format
	if format == "" {
		format = DefaultPreset
	}

	template := format
	if preset, ok := Lookup(format); ok {
		template = preset.Template
	} else if !strings.Contains(format, "{{") {
		return "", fmt.Errorf("unknown format: %s", format)
	}
	if err := Validate(template); err != nil {
		return "", err
	}
	if s.Count == 0 && !opts.ShowEmpty {
		return "", nil
	}
	return Substitute(template, s)
}
