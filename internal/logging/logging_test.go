package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/camtray/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("HOME", tmp)
	config.Load()
	return tmp
}

func decodeLines(t *testing.T, data string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	t.Setenv("CAMTRAY_LOGGING_ENABLED", "true")
	t.Setenv("CAMTRAY_LOGGING_LEVEL", "warn")
	t.Setenv("CAMTRAY_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, "warn", cfg.Level)
	require.Equal(t, 5, cfg.MaxFiles)
	require.Equal(t, filepath.Base(os.Args[0]), cfg.Command)
	require.Equal(t, os.Getpid(), cfg.PID)
}

func TestDebugForcesDebugLevel(t *testing.T) {
	setupTest(t)
	t.Setenv("CAMTRAY_DEBUG", "true")
	t.Setenv("CAMTRAY_LOGGING_LEVEL", "error")
	config.Load()

	require.Equal(t, "debug", FromGlobalConfig().Level)
}

func TestLogDirUsesStateDir(t *testing.T) {
	tmp := setupTest(t)
	dir, err := LogDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "camtray", "logs"), dir)
}

func TestInitDisabledReturnsNoop(t *testing.T) {
	l, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, noopLogger{}, l)
	require.NoError(t, l.Shutdown())
}

func TestInitEnabledCreatesFile(t *testing.T) {
	dir := t.TempDir()
	l, err := Init(Config{Enabled: true, Level: "info", MaxFiles: 3, Command: "camtray capture", PID: 42, Dir: dir})
	require.NoError(t, err)
	l.Info("photo captured", "ref", "file:///tmp/a.jpg")
	require.NoError(t, l.Shutdown())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	name := entries[0].Name()
	assert.True(t, strings.HasPrefix(name, "camtray_"))
	assert.Contains(t, name, "_PID42_camtray_capture.log")

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	lines := decodeLines(t, string(data))
	require.Len(t, lines, 1)
	assert.Equal(t, "photo captured", lines[0]["msg"])
	assert.Equal(t, "file:///tmp/a.jpg", lines[0]["ref"])
	assert.EqualValues(t, 42, lines[0]["pid"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, Config{Level: "warn", Command: "test"})
	l.Debug("nope")
	l.Info("nope")
	l.Warn("yes")
	l.Error("yes")

	lines := decodeLines(t, buf.String())
	require.Len(t, lines, 2)
}

func TestRedaction(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, Config{Level: "debug", Command: "test"})
	l.Info("auth", "api_token", "abc", "user_password", "hunter2", "monkey", "banana")

	lines := decodeLines(t, buf.String())
	require.Len(t, lines, 1)
	assert.Equal(t, redacted, lines[0]["api_token"])
	assert.Equal(t, redacted, lines[0]["user_password"])
	assert.Equal(t, "banana", lines[0]["monkey"])
}

func TestWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, Config{Level: "info", Command: "test"}).With("component", "gallery")
	l.Info("saved", "count", 2)

	lines := decodeLines(t, buf.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "gallery", lines[0]["component"])
	assert.EqualValues(t, 2, lines[0]["count"])
}

func TestRotationKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		p := filepath.Join(dir, "camtray_"+string(rune('a'+i))+".log")
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, ts, ts))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.log"), []byte("x"), 0o600))

	require.NoError(t, rotate(dir, 3))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"camtray_d.log", "camtray_e.log", "other.log"}, names)
}

func TestRotationDisabled(t *testing.T) {
	require.NoError(t, rotate("/does/not/exist", 0))
}

func TestGlobalLoggerDefaultsToNoop(t *testing.T) {
	require.NoError(t, ShutdownGlobal())
	require.IsType(t, noopLogger{}, GetGlobal())
	require.Equal(t, "", CurrentLogFile())
	Info("ignored")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, parseLevel("debug").String(), "debug")
	assert.Equal(t, parseLevel("WARNING").String(), "warn")
	assert.Equal(t, parseLevel("error").String(), "error")
	assert.Equal(t, parseLevel("bogus").String(), "info")
}
