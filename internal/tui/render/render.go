// Package render draws the pieces of the camtray terminal UI.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/camtray/internal/colors"
)

const (
	indexWidth      = 4
	selectedMarker  = "▸"
	currentMarker   = "●"
	noMatchesMsg    = "No photos match the filter"
	emptyGalleryMsg = "Gallery is empty"
	noImageMsg      = "No image yet. Press c to take a picture."
	ellipsis        = "..."
	checkmark       = "✓"
)

// HeaderState defines the inputs needed to render the header.
type HeaderState struct {
	Facing string
	Count  int
	Width  int
}

// ImageState defines the inputs needed to render the current image pane.
type ImageState struct {
	Current string
	Loading bool
	Spinner string
	Width   int
}

// GalleryRowState defines the inputs needed to render one gallery entry.
type GalleryRowState struct {
	Index    int
	Ref      string
	Selected bool
	Current  bool
	Width    int
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	GalleryVisible bool
	Confirming     bool
	Filtering      bool
	Loading        bool
	Width          int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Red)))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Green)))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Yellow)))
	selectedRow  = lipgloss.NewStyle().
			Background(lipgloss.Color(ansiColorNumber(colors.Blue))).
			Foreground(lipgloss.Color("0"))
)

// Header renders the title line.
func Header(state HeaderState) string {
	left := "camtray"
	right := fmt.Sprintf("camera: %s  |  photos: %d", state.Facing, state.Count)
	gap := state.Width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 2 {
		gap = 2
	}
	return titleStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// Image renders the current image reference or the loading indicator.
func Image(state ImageState) string {
	if state.Loading {
		return fmt.Sprintf("%s Working...", state.Spinner)
	}
	if state.Current == "" {
		return mutedStyle.Render(noImageMsg)
	}
	return "Showing: " + truncate(state.Current, state.Width-len("Showing: "))
}

// GalleryRow renders one gallery entry.
func GalleryRow(state GalleryRowState) string {
	marker := " "
	if state.Current {
		marker = currentMarker
	}
	prefix := fmt.Sprintf("%-*s%s ", indexWidth, fmt.Sprintf("%d.", state.Index+1), marker)
	row := prefix + truncate(state.Ref, state.Width-utf8.RuneCountInString(prefix))
	if state.Selected {
		return selectedRow.Render(selectedMarker + row)
	}
	return " " + row
}

// EmptyGallery renders the placeholder for an empty gallery panel.
func EmptyGallery() string {
	return mutedStyle.Render(emptyGalleryMsg)
}

// NoMatches renders the gallery panel when a filter hides every item.
func NoMatches() string {
	return mutedStyle.Render(noMatchesMsg)
}

// Error renders an error line.
func Error(msg string) string {
	if msg == "" {
		return ""
	}
	return errorStyle.Render("Error: " + msg)
}

// Success renders a confirmation line.
func Success(msg string) string {
	if msg == "" {
		return ""
	}
	return successStyle.Render(checkmark + " " + msg)
}

// Confirm renders an inline yes/no prompt.
func Confirm(question string) string {
	return warningStyle.Render(question + " (y/N)")
}

// Footer renders the footer with help text.
func Footer(state FooterState) string {
	if state.Confirming {
		return mutedStyle.Render("y: confirm  |  any other key: cancel")
	}
	if state.Filtering {
		return mutedStyle.Render("Enter: apply filter  |  Esc: clear filter")
	}

	var help []string
	if !state.Loading {
		help = append(help, "c: capture", "r: retry", "l: library", "f: flip", "m: multi")
	}
	help = append(help, "g: gallery")
	if state.GalleryVisible {
		help = append(help, "j/k: move")
		if !state.Loading {
			help = append(help, "Enter: show", "d: delete", "C: clear")
		}
		help = append(help, "/: filter")
	}
	help = append(help, "q: quit")
	return mutedStyle.Render(truncate(strings.Join(help, "  |  "), state.Width))
}

// truncate shortens value to width runes, marking the cut with an ellipsis.
func truncate(value string, width int) string {
	if width <= 0 || utf8.RuneCountInString(value) <= width {
		return value
	}
	if width <= len(ellipsis) {
		return string([]rune(value)[:width])
	}
	return string([]rune(value)[:width-len(ellipsis)]) + ellipsis
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
