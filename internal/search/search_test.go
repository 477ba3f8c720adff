package search

import (
	"testing"

	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refs = gallery.Gallery{
	"http://127.0.0.1:8765/_capture_file_/photos/Beach.jpg",
	"file:///photos/dog.png",
	"/home/me/Pictures/beach-2.JPG",
}

func TestSubstring(t *testing.T) {
	p := NewSubstringProvider()
	assert.Equal(t, gallery.Gallery{refs[2]}, Filter(refs, p, "beach"))
	assert.Equal(t, refs, Filter(refs, p, ""))

	ci := NewSubstringProvider(WithCaseInsensitive(true))
	assert.Equal(t, gallery.Gallery{refs[0], refs[2]}, Filter(refs, ci, "BEACH"))
}

func TestNameField(t *testing.T) {
	p := NewSubstringProvider(WithFields(FieldName))
	assert.Empty(t, Filter(refs, p, "photos"))
	assert.Equal(t, gallery.Gallery{refs[1]}, Filter(refs, p, "dog"))
}

func TestRegex(t *testing.T) {
	p := NewRegexProvider(WithCaseInsensitive(true))
	assert.Equal(t, gallery.Gallery{refs[0], refs[2]}, Filter(refs, p, `\.jpg$`))
	assert.Empty(t, Filter(refs, p, "("))
	assert.Error(t, p.(*RegexProvider).Validate("("))
	assert.NoError(t, p.(*RegexProvider).Validate("a+"))
}

func TestToken(t *testing.T) {
	p := NewTokenProvider(WithCaseInsensitive(true))
	assert.Equal(t, gallery.Gallery{refs[0], refs[2]}, Filter(refs, p, "beach jpg"))
	assert.Equal(t, gallery.Gallery{refs[0]}, Filter(refs, p, "beach source:http"))
	assert.Equal(t, gallery.Gallery{refs[2]}, Filter(refs, p, "source:path"))
	assert.Equal(t, refs, Filter(refs, p, "  "))
}

func TestSource(t *testing.T) {
	assert.Equal(t, "http", Source(refs[0]))
	assert.Equal(t, "file", Source(refs[1]))
	assert.Equal(t, "path", Source(refs[2]))
	assert.Equal(t, "path", Source(`C:\photos\a.jpg`))
}

func TestNew(t *testing.T) {
	for _, mode := range []Mode{"", ModeSubstring, ModeRegex, "TOKEN"} {
		p, err := New(mode)
		require.NoError(t, err)
		assert.NotEmpty(t, p.Name())
	}
	_, err := New("fuzzy")
	assert.ErrorContains(t, err, "unknown search mode")
}

func TestFilterNeverReturnsNil(t *testing.T) {
	assert.NotNil(t, Filter(nil, NewSubstringProvider(), "x"))
}
