package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/logger"
	"chosenoffset.com/sightline/internal/world/scene"
)

const split = `
name: split
tile_size: 10
tiles:
  - "##########"
  - "#...#....#"
  - "#...#....#"
  - "#...#....#"
  - "##########"
tokens:
  - {id: scout, x: 10, y: 10, height: 6}
  - {id: sniper, x: 60, y: 20, height: 6}
  - {id: squire, x: 20, y: 30, height: 4}
`

func writeScene(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "split.yaml")
	require.NoError(t, os.WriteFile(path, []byte(split), 0o644))
	return dir, path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logger.SetupWriter(io.Discard, "error", "")

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	missing := filepath.Join(t.TempDir(), "none.yaml")
	cmd.SetArgs(append([]string{"-c", missing}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVisibleCommand(t *testing.T) {
	_, path := writeScene(t)

	out, err := run(t, "visible", path, "scout", "squire")
	require.NoError(t, err)
	assert.Contains(t, out, "scout -> squire")
	assert.Contains(t, out, "Result: VISIBLE")

	out, err = run(t, "visible", path, "scout", "sniper")
	require.NoError(t, err)
	assert.Contains(t, out, "Result: HIDDEN")
}

func TestVisibleUnknownToken(t *testing.T) {
	_, path := writeScene(t)
	_, err := run(t, "visible", path, "scout", "dragon")
	assert.ErrorIs(t, err, scene.ErrUnknownToken)
}

func TestFlagOverridesAreValidated(t *testing.T) {
	_, path := writeScene(t)

	_, err := run(t, "--los", "telepathy", "visible", path, "scout", "squire")
	assert.ErrorIs(t, err, config.ErrUnknownAlgorithm)

	_, err = run(t, "--percent", "2", "visible", path, "scout", "squire")
	assert.ErrorIs(t, err, config.ErrInvalidPercent)

	out, err := run(t, "--los", "area", "--percent", "0.5", "visible", path, "scout", "squire")
	require.NoError(t, err)
	assert.Contains(t, out, "area (needs 50%)")
}

func TestCoverCommand(t *testing.T) {
	_, path := writeScene(t)

	out, err := run(t, "cover", path, "scout", "squire", "--all")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 8, "a header and one line per algorithm")
	assert.Contains(t, out, "center-to-center")
	assert.NotContains(t, out, "high")

	out, err = run(t, "cover", path, "scout", "squire", "-a", "area3d")
	require.NoError(t, err)
	assert.Contains(t, out, "area3d")
	assert.Contains(t, out, "none")

	_, err = run(t, "cover", path, "scout", "squire", "-a", "guesswork")
	assert.Error(t, err)
}

func TestFootprintCommand(t *testing.T) {
	_, path := writeScene(t)
	out, err := run(t, "footprint", path, "scout")
	require.NoError(t, err)
	assert.Contains(t, out, "area:   100.0")
	assert.Contains(t, out, "unconstrained")
}

func TestShadowCommand(t *testing.T) {
	_, path := writeScene(t)
	out, err := run(t, "shadow", path, "scout", "-z", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "elevation 2.0")
	assert.Contains(t, out, "shadowed area: 0.0")
}

func TestMatrixCommand(t *testing.T) {
	_, path := writeScene(t)
	out, err := run(t, "matrix", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "OBSERVER"))
	assert.Contains(t, out, "HIDDEN")
	assert.Contains(t, out, "VISIBLE")
}

func TestListCommand(t *testing.T) {
	dir, _ := writeScene(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("tiles: [[["), 0o644))

	out, err := run(t, "list", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "split (")
	assert.Contains(t, out, "3 tokens")
	assert.Contains(t, out, "invalid")
}
