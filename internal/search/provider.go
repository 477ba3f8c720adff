// Package search filters gallery references. The CLI list command and the TUI
// gallery panel share the same providers.
package search

import (
	"fmt"
	"path"
	"strings"

	"github.com/cristianoliveira/camtray/internal/gallery"
)

// Provider decides whether a reference matches a query.
type Provider interface {
	// Match returns true if ref matches query. An empty query matches everything.
	Match(ref, query string) bool

	// Name returns the provider name.
	Name() string
}

// Fields a provider can look at.
const (
	FieldRef  = "ref"
	FieldName = "name"
)

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool
	Fields          []string
}

// DefaultOptions searches the full reference, case sensitive.
func DefaultOptions() Options {
	return Options{Fields: []string{FieldRef}}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in: "ref" (whole reference) or "name"
// (last path element).
func WithFields(fields ...string) Option {
	return func(o *Options) {
		if len(fields) > 0 {
			o.Fields = fields
		}
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValues extracts the configured fields from ref.
func (o Options) fieldValues(ref string) []string {
	values := make([]string, 0, len(o.Fields))
	for _, field := range o.Fields {
		switch field {
		case FieldRef:
			values = append(values, ref)
		case FieldName:
			values = append(values, path.Base(strings.TrimRight(ref, "/")))
		}
	}
	return values
}

// Mode names a provider strategy.
type Mode string

const (
	ModeSubstring Mode = "substring"
	ModeRegex     Mode = "regex"
	ModeToken     Mode = "token"
)

// New creates the provider for mode.
func New(mode Mode, opts ...Option) (Provider, error) {
	switch Mode(strings.ToLower(string(mode))) {
	case ModeSubstring, "":
		return NewSubstringProvider(opts...), nil
	case ModeRegex:
		return NewRegexProvider(opts...), nil
	case ModeToken:
		return NewTokenProvider(opts...), nil
	default:
		return nil, fmt.Errorf("unknown search mode %q (want substring, regex or token)", mode)
	}
}

// Filter returns the references of g matching query, keeping their order.
func Filter(g gallery.Gallery, p Provider, query string) gallery.Gallery {
	out := gallery.Gallery{}
	for _, ref := range g {
		if p.Match(ref, query) {
			out = append(out, ref)
		}
	}
	return out
}
