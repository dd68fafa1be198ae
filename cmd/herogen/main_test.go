package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"herogen/internal/genconfig"
	"herogen/internal/pipeline"
)

// run executes the CLI with a config and .env inside dir.
func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	_, out, errOut, err := runContext(t, context.Background(), dir, args...)
	return out, errOut, err
}

// runContext is run with a caller-supplied context; it also returns the app
// so tests can check what was released afterwards.
func runContext(t *testing.T, ctx context.Context, dir string, args ...string) (*app, string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{}
	cmd := newRootCmd(a)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	base := []string{
		"--config", filepath.Join(dir, "herogen.yaml"),
		"--env", filepath.Join(dir, ".env"),
	}
	cmd.SetArgs(append(args, base...))
	err := a.execute(ctx, cmd)
	return a, out.String(), errOut.String(), err
}

func TestDefaultCommandGenerates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Models", "Hero.glb")
	out, _, err := run(t, dir, "--out", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Parts: 9")
	assert.Contains(t, out, "Root: BanditHero")
	assert.Contains(t, out, "Exported: "+path)
	assert.FileExists(t, path)
}

func TestGenerateExportDisabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "herogen.yaml"), []byte("export:\n  enabled: false\n"), 0644))

	out, _, err := run(t, dir, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Parts: 9")
	assert.Contains(t, out, "Export skipped")
	assert.Contains(t, out, "herogen generate --out")
}

func TestGenerateEnabledWithoutPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "herogen.yaml"), []byte("export:\n  path: \"\"\n"), 0644))

	_, errOut, err := run(t, dir, "generate")
	require.Error(t, err)
	assert.Contains(t, errOut, "export.path is empty")
}

func TestGenerateDotEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "hero.obj")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HEROGEN_EXPORT_PATH="+path+"\n"), 0644))

	out, _, err := run(t, dir, "generate", "--snapshot", filepath.Join(dir, "hero.png"))
	require.NoError(t, err)
	assert.Contains(t, out, "Exported: "+path)
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, "out", "hero.mtl"))
	assert.FileExists(t, filepath.Join(dir, "hero.png"))
}

func TestInspect(t *testing.T) {
	out, _, err := run(t, t.TempDir(), "inspect")
	require.NoError(t, err)

	var sum pipeline.Summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	assert.Equal(t, "BanditHero", sum.Root)
	require.Len(t, sum.Parts, 9)
	assert.Equal(t, "Head", sum.Parts[0].Name)
	assert.Equal(t, 362, sum.Parts[0].Vertices)
	assert.Nil(t, sum.Export)
}

func TestMaterials(t *testing.T) {
	out, _, err := run(t, t.TempDir(), "materials")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "skin       Skin"), lines[0])
	assert.Contains(t, out, "roughness 0.70")
}

func TestSnapshotCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thumb.png")
	out, _, err := run(t, dir, "snapshot", path, "--size", "32", "--view", "side")
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshot: "+path)
	assert.FileExists(t, path)

	_, _, err = run(t, dir, "snapshot", path, "--view", "top")
	assert.Error(t, err)
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#ffffff", hexColor([4]float32{1, 1, 1, 1}))
	assert.Equal(t, "#000000", hexColor([4]float32{-1, 0, 0, 1}))
	assert.Equal(t, "#804000", hexColor([4]float32{0.5, 0.25, 0, 1}))
}

func TestLoggerClosedAfterFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "herogen.yaml"), []byte("export:\n  path: \"\"\n"), 0644))
	logPath := filepath.Join(dir, "logs", "herogen.txt")

	a, _, _, err := runContext(t, context.Background(), dir, "generate", "--log-file", logPath)
	require.Error(t, err)
	assert.Nil(t, a.log, "logger is released even though the command failed")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "invalid configuration")
}

func TestGenerateInterrupted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Hero.glb")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, out, _, err := runContext(t, ctx, dir, "generate", "--out", path)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, out, "Parts:")
	assert.NoFileExists(t, path)
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "herogen.yaml")

	out, _, err := run(t, dir, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Config: "+cfg)
	p, err := genconfig.Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, genconfig.Default(), p)

	_, _, err = run(t, dir, "config", "init")
	assert.Error(t, err, "an existing file is kept")
	_, _, err = run(t, dir, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HEROGEN_SNAPSHOT_SIZE=128\n"), 0644))

	out, _, err := run(t, dir, "config", "show")
	require.NoError(t, err)
	var p genconfig.Prefs
	require.NoError(t, yaml.Unmarshal([]byte(out), &p))
	assert.Equal(t, 128, p.Snapshot.Size)
	assert.Equal(t, genconfig.DefaultExportPath, p.Export.Path)
}
