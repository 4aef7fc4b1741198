package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gaugechart/pkg/errors"
	"github.com/matzehuels/gaugechart/pkg/pipeline"
)

const cpuConfig = `
width = 300
max = 100
formatNumber = "d"
colors = ["#00ff00", "#ff0000"]

[ticks]
count = 5
label = true

[limit]
values = [20, 80]

[indicator]
show = true
`

// execute runs the root command with args and an isolated cache directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cpu.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"render", "serve", "watch", "cache", "completion"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"from input", "", "configs/cpu.toml", "configs/cpu"},
		{"no input", "", "", "gauge"},
		{"output with format ext", "out/cpu.svg", "cpu.toml", "out/cpu"},
		{"output without ext", "out/cpu", "cpu.toml", "out/cpu"},
		{"output with other ext", "out/cpu.v2", "cpu.toml", "out/cpu.v2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, basePath(tt.output, tt.input))
		})
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, cpuConfig)
	base := filepath.Join(dir, "out", "cpu")
	require.NoError(t, os.MkdirAll(filepath.Dir(base), 0o755))

	_, err := execute(t, "render", cfg, "--value", "90", "-f", "svg,json", "-o", base)
	require.NoError(t, err)

	svg, err := os.ReadFile(base + ".svg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(svg), "<svg"))
	assert.Equal(t, 5, strings.Count(string(svg), `class="tick-label"`))
	assert.Contains(t, string(svg), `style="fill: red"`, "90 lies past the last limit")

	data, err := os.ReadFile(base + ".json")
	require.NoError(t, err)
	var out struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
		Max   float64 `json:"max"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "cpu", out.Name, "the config file name names the gauge")
	assert.Equal(t, 90.0, out.Value)
	assert.Equal(t, 100.0, out.Max)
}

func TestRenderCommandSingleOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "needle.svg")

	_, err := execute(t, "render", "--value", "3", "--no-cache", "--width", "200", "--height", "120", "-o", path)
	require.NoError(t, err)

	svg, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(svg), `width="200" height="120"`)
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "render", "-f", "gif")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)

	_, err = execute(t, "render", filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)

	bad := writeConfig(t, dir, "width = [")
	_, err = execute(t, "render", bad)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)

	_, err = execute(t, "render", "--height", "30", "-o", filepath.Join(dir, "x.svg"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSize), "got %v", err)
}

func TestRenderCommandRejectedKeys(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "theme = \"dark\"\n[dial]\nspin = 2\n")

	_, err := execute(t, "render", cfg, "-o", filepath.Join(dir, "out.svg"))
	require.NoError(t, err, "unknown keys are reported, not fatal")
	_, err = os.Stat(filepath.Join(dir, "out.svg"))
	assert.NoError(t, err)
}

func TestStatsLine(t *testing.T) {
	fresh := statsLine(pipeline.Stats{Segments: 150, Ticks: 5, Limits: 2, RenderTime: 3 * time.Millisecond}, false)
	assert.Contains(t, fresh, "150 segments")
	assert.Contains(t, fresh, "5 ticks")
	assert.Contains(t, fresh, "2 limits")
	assert.Contains(t, fresh, "3ms")
	assert.Contains(t, fresh, iconFresh)

	cached := statsLine(pipeline.Stats{}, true)
	assert.Contains(t, cached, iconCached)
	assert.NotContains(t, cached, "segments")
}

func TestCacheCommands(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"render", "--value", "4", "-o", filepath.Join(dir, "g.svg")})
	require.NoError(t, root.Execute())

	var out bytes.Buffer
	root = New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	require.NoError(t, root.Execute())
	cdir, err := cacheDir()
	require.NoError(t, err)
	assert.Equal(t, cdir, strings.TrimSpace(out.String()))

	entries, err := filepath.Glob(filepath.Join(cdir, "??", "*.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries, "the render was cached")

	root = New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	require.NoError(t, root.Execute())

	entries, err = filepath.Glob(filepath.Join(cdir, "??", "*.json"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
