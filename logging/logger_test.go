package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesJSONWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, "info").With("dir", "/roms")

	l.Info("renamed", "file", "1 a.txt", "new_name", "A.txt")
	l.Debug("hidden at info level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "renamed", entry["msg"])
	assert.Equal(t, "/roms", entry["dir"])
	assert.Equal(t, "1 a.txt", entry["file"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("Warn").String())
	assert.Equal(t, "INFO", parseLevel("bogus").String())
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")
	l, err := NewLogger(path, "debug")
	require.NoError(t, err)

	l.Warn("suggestion failed", "file", "42--test.rom")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "suggestion failed")
}

func TestNewLogger_EmptyPathDiscards(t *testing.T) {
	l, err := NewLogger("", "debug")
	require.NoError(t, err)
	l.Error("nowhere")
	assert.NoError(t, l.Close())
}
