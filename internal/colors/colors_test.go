package colors

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	entries []string
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.entries = append(r.entries, "debug:"+msg) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.entries = append(r.entries, "info:"+msg) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.entries = append(r.entries, "warn:"+msg) }
func (r *recordingLogger) Error(msg string, args ...any) { r.entries = append(r.entries, "error:"+msg) }

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(nil, nil)
		SetQuiet(false)
		SetDebug(false)
		SetLogger(nil)
	})
	return &out, &errOut
}

func TestErrorWritesToStderr(t *testing.T) {
	out, errOut := captureOutput(t)

	Error("something went wrong")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error:")
	assert.Contains(t, errOut.String(), "something went wrong")
	assert.Contains(t, errOut.String(), Red)
}

func TestSuccessAndInfoWriteToStdout(t *testing.T) {
	out, _ := captureOutput(t)

	Success("photo saved")
	Info("gallery has", "3", "photos")

	assert.Contains(t, out.String(), checkmark)
	assert.Contains(t, out.String(), "photo saved")
	assert.Contains(t, out.String(), "gallery has 3 photos")
}

func TestQuietSuppressesInfo(t *testing.T) {
	out, errOut := captureOutput(t)
	SetQuiet(true)

	Info("hidden")
	Success("hidden too")
	Warning("still shown")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "still shown")
}

func TestDebugOnlyWhenEnabled(t *testing.T) {
	_, errOut := captureOutput(t)

	Debug("first")
	require.Empty(t, errOut.String())

	SetDebug(true)
	Debug("second")
	assert.Contains(t, errOut.String(), "second")
	assert.NotContains(t, errOut.String(), "first")
}

func TestMessagesMirrorToLogger(t *testing.T) {
	captureOutput(t)
	rec := &recordingLogger{}
	SetLogger(rec)
	SetQuiet(true)

	Error("e")
	Warning("w")
	Info("i")

	assert.Equal(t, []string{"error:e", "warn:w", "info:i"}, rec.entries)
}
