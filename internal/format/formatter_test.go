package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cristianoliveira/camtray/internal/colors"
	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, ft FormatterType, g gallery.Gallery) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(ft).FormatGallery(g, &buf))
	return buf.String()
}

func TestParseFormatterType(t *testing.T) {
	ft, err := ParseFormatterType("")
	require.NoError(t, err)
	assert.Equal(t, FormatterTypePlain, ft)

	ft, err = ParseFormatterType("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatterTypeJSON, ft)

	_, err = ParseFormatterType("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plain, table, json, yaml")
}

func TestNewFormatterDefaultsToPlain(t *testing.T) {
	assert.IsType(t, &PlainFormatter{}, NewFormatter("bogus"))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatterTypeTable))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatterTypeYAML))
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "b\na\n", render(t, FormatterTypePlain, gallery.Gallery{"b", "a"}))
	assert.Equal(t, EmptyMessage+"\n", render(t, FormatterTypePlain, nil))
}

func TestJSON(t *testing.T) {
	assert.Equal(t, "[\n  \"b\",\n  \"a\"\n]\n", render(t, FormatterTypeJSON, gallery.Gallery{"b", "a"}))
	assert.Equal(t, "[]\n", render(t, FormatterTypeJSON, nil))
}

func TestYAML(t *testing.T) {
	assert.Equal(t, "- b\n- a\n", render(t, FormatterTypeYAML, gallery.Gallery{"b", "a"}))
	assert.Equal(t, "[]\n", render(t, FormatterTypeYAML, gallery.Gallery{}))
}

func TestTable(t *testing.T) {
	out := render(t, FormatterTypeTable, gallery.Gallery{"http://127.0.0.1:8765/_capture_file_/p/b.jpg", "file:///p/a.jpg", "/p/c.jpg"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "SOURCE")
	assert.Contains(t, lines[0], colors.Blue)
	assert.Equal(t, "   1  http    http://127.0.0.1:8765/_capture_file_/p/b.jpg", lines[2])
	assert.Equal(t, "   2  file    file:///p/a.jpg", lines[3])
	assert.Equal(t, "   3  path    /p/c.jpg", lines[4])
}

func TestTableWithoutHeadersTruncatesLongRefs(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter().WithConfig(&TableConfig{RefWidth: 8})
	require.NoError(t, f.FormatGallery(gallery.Gallery{"/photos/abcdef.jpg"}, &buf))
	assert.Equal(t, "   1  path    ...f.jpg\n", buf.String())
}

func TestTableEmpty(t *testing.T) {
	assert.Equal(t, EmptyMessage+"\n", render(t, FormatterTypeTable, nil))
}
