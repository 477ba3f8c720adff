package status

import (
	"testing"

	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Summary {
	return NewSummary(gallery.Gallery{"http://127.0.0.1:8765/_capture_file_/p/new.jpg", "/p/old.jpg"}, "sqlite", "front")
}

func TestNewSummary(t *testing.T) {
	s := sample()
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, "new.jpg", s.LatestName())
	assert.Equal(t, "http", s.Source())

	empty := NewSummary(nil, "file", "rear")
	assert.Equal(t, 0, empty.Count)
	assert.Empty(t, empty.LatestName())
	assert.Empty(t, empty.Source())
}

func TestRenderPresets(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"", "📷 2"},
		{"compact", "📷 2"},
		{"detailed", "2 photos | latest: new.jpg"},
		{"count-only", "2"},
		{"json", `{"count":2,"latest":"http://127.0.0.1:8765/_capture_file_/p/new.jpg","backend":"sqlite"}`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := Render(sample(), Options{Format: tt.format})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderCustomTemplate(t *testing.T) {
	got, err := Render(sample(), Options{Format: "{{facing}}/{{source}}/{{has-photos}}"})
	require.NoError(t, err)
	assert.Equal(t, "front/http/true", got)

	_, err = Render(sample(), Options{Format: "{{nope}}"})
	assert.ErrorContains(t, err, `unknown variable "nope"`)

	_, err = Render(sample(), Options{Format: "{{count}"})
	assert.ErrorContains(t, err, "mismatched")

	_, err = Render(sample(), Options{Format: "fancy"})
	assert.ErrorContains(t, err, "unknown format: fancy")
}

func TestRenderEmptyGallery(t *testing.T) {
	empty := NewSummary(nil, "file", "rear")

	got, err := Render(empty, Options{Format: "compact"})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Render(empty, Options{Format: "count-only", ShowEmpty: true})
	require.NoError(t, err)
	assert.Equal(t, "0", got)

	_, err = Render(empty, Options{Format: "bogus"})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	assert.Equal(t, []string{"count", "latest"}, Parse("{{count}} {{latest}} {{count}}"))
	assert.Nil(t, Parse("plain"))
}
