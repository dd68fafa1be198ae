package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLinesRecordEntries(t *testing.T) {
	var out bytes.Buffer
	l, err := New(Options{Level: "info", Console: &out})
	require.NoError(t, err)

	l.Log("hello")
	l.Debug("hidden")
	l.Warn("careful", zap.String("part", "Head"))

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "["))
	assert.True(t, strings.HasSuffix(lines[0], "] INFO hello"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "] WARN careful"), lines[1])

	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), `"part": "Head"`)
	assert.NotContains(t, out.String(), "hidden")
}

func TestLinesReturnsCopy(t *testing.T) {
	l, err := New(Options{Console: &bytes.Buffer{}})
	require.NoError(t, err)
	l.Log("a")
	lines := l.Lines()
	lines[0] = "changed"
	assert.NotEqual(t, "changed", l.Lines()[0])
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "herogen.txt")
	l, err := New(Options{Level: "debug", File: path, Console: &bytes.Buffer{}})
	require.NoError(t, err)
	l.Debug("built", zap.Int("vertices", 362))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "built", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.EqualValues(t, 362, entry["vertices"])
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Log("ignored")
	assert.Empty(t, l.Lines())
	assert.NoError(t, l.Close())
}
