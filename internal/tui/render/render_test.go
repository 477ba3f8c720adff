package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/cristianoliveira/camtray/internal/colors"
	"github.com/stretchr/testify/assert"
)

func TestAnsiColorNumber(t *testing.T) {
	assert.Equal(t, "34", ansiColorNumber(colors.Blue))
	assert.Equal(t, "31", ansiColorNumber(colors.Red))
	assert.Equal(t, "", ansiColorNumber("x"))
	assert.Equal(t, "", ansiColorNumber("\033[0m"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		value    string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"a long reference", 10, "a long ..."},
		{"abcdef", 2, "ab"},
		{"unbounded", 0, "unbounded"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncate(tt.value, tt.width))
		})
	}
}

func TestHeader(t *testing.T) {
	out := Header(HeaderState{Facing: "front", Count: 2, Width: 60})
	assert.Contains(t, out, "camtray")
	assert.Contains(t, out, "camera: front")
	assert.Contains(t, out, "photos: 2")
}

func TestImage(t *testing.T) {
	assert.Contains(t, Image(ImageState{}), "No image yet")
	assert.Contains(t, Image(ImageState{Current: "file:///a.jpg", Width: 80}), "Showing: file:///a.jpg")
	assert.Equal(t, "* Working...", Image(ImageState{Loading: true, Spinner: "*", Current: "x"}))
}

func TestGalleryRow(t *testing.T) {
	row := GalleryRow(GalleryRowState{Index: 0, Ref: "a.jpg", Current: true, Width: 40})
	assert.True(t, strings.HasPrefix(row, " 1."))
	assert.Contains(t, row, currentMarker+" a.jpg")

	selected := GalleryRow(GalleryRowState{Index: 9, Ref: strings.Repeat("x", 100), Selected: true, Width: 30})
	assert.Contains(t, selected, selectedMarker+"10.")
	assert.Contains(t, selected, ellipsis)
	assert.LessOrEqual(t, utf8.RuneCountInString(selected), 40)
}

func TestFooter(t *testing.T) {
	idle := Footer(FooterState{Width: 200})
	assert.Contains(t, idle, "c: capture")
	assert.NotContains(t, idle, "d: delete")

	withGallery := Footer(FooterState{GalleryVisible: true, Width: 200})
	assert.Contains(t, withGallery, "d: delete")
	assert.Contains(t, withGallery, "C: clear")

	loading := Footer(FooterState{GalleryVisible: true, Loading: true, Width: 200})
	assert.NotContains(t, loading, "c: capture")
	assert.Contains(t, loading, "j/k: move")

	assert.Contains(t, Footer(FooterState{Confirming: true}), "y: confirm")
	assert.Contains(t, withGallery, "/: filter")
	assert.Contains(t, Footer(FooterState{GalleryVisible: true, Filtering: true}), "Esc: clear filter")
	assert.Contains(t, NoMatches(), "No photos match")
}

func TestMessageLines(t *testing.T) {
	assert.Empty(t, Error(""))
	assert.Contains(t, Error("boom"), "Error: boom")
	assert.Empty(t, Success(""))
	assert.Contains(t, Success("saved"), "saved")
	assert.Contains(t, Confirm("Clear gallery?"), "Clear gallery? (y/N)")
}
