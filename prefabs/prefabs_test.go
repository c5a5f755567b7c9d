package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/gridwalk/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestEmbeddedSimulationSpec(t *testing.T) {
	useDir(t, t.TempDir())

	spec, err := LoadSimulationSpec("")
	require.NoError(t, err)

	assert.Equal(t, sim.DefaultGridSize, spec.GridSize)
	assert.Equal(t, sim.DefaultTileSize, spec.Tile())
	assert.Equal(t, sim.DefaultSpeed, spec.Speed)
	assert.Equal(t, sim.DefaultTickInterval, spec.TickInterval())
	assert.Equal(t, "meadow.json", spec.Level)
	require.NotNil(t, spec.Palette.Agent)
	assert.Equal(t, color.NRGBA{R: 0x42, G: 0xa5, B: 0xf5, A: 0xff}, spec.Palette.Agent.Color)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x70, B: 0x43, A: 0x40}, spec.Palette.Visited.Color)
}

func TestDiskOverrideWins(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, SimulationFile), []byte("speed: 0.5\n"), 0o644))

	spec, err := LoadSimulationSpec("prefabs/" + SimulationFile)
	require.NoError(t, err)
	assert.Equal(t, 0.5, spec.Speed)
	assert.Zero(t, spec.GridSize)
	assert.Equal(t, filepath.Join(dir, SimulationFile), DiskPath(SimulationFile))
}

func TestDecodeSimulationSpec(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"empty", "", false},
		{"partial", "speed: 0.3\ntick_interval_ms: 20\n", false},
		{"negative_speed", "speed: -1\n", true},
		{"negative_grid", "grid_size: -4\n", true},
		{"negative_interval", "tick_interval_ms: -16\n", true},
		{"bad_color", "palette:\n  agent: \"#12\"\n", true},
		{"not_yaml", "speed: [\n", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := DecodeSimulationSpec([]byte(c.yaml))
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestApplyOverlaysNonZeroValues(t *testing.T) {
	base := sim.DefaultConfig()

	got := SimulationSpec{}.Apply(base)
	assert.Equal(t, base, got)

	got = SimulationSpec{GridSize: 20, Speed: 0.25, TickIntervalMS: 33, MaxSearchNodes: 50}.Apply(base)
	assert.Equal(t, 20, got.GridSize)
	assert.Equal(t, 0.25, got.Speed)
	assert.Equal(t, 33*time.Millisecond, got.TickInterval)
	assert.Equal(t, 50, got.MaxSearchNodes)
	assert.Equal(t, base.Items, got.Items)
}

func TestYAMLColorOr(t *testing.T) {
	var unset *YAMLColor
	assert.Equal(t, color.White, unset.Or(color.White))
	set := &YAMLColor{Color: color.Black}
	assert.Equal(t, color.Black, set.Or(color.White))
}

func TestScripts(t *testing.T) {
	useDir(t, t.TempDir())

	names := Scripts()
	assert.Contains(t, names, "first_item.tengo")
	assert.Contains(t, names, "collect_all.tengo")

	for _, name := range []string{"first_item", "first_item.tengo", "scripts/first_item.tengo", "prefabs/scripts/first_item.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "move_to(4, 2)")
	}

	_, err := LoadScript("missing")
	assert.Error(t, err)
}

func TestWatcherReportsSpecAndScriptChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SimulationFile), []byte("speed: 0.2\n"), 0o644))

	change := nextChange(t, w)
	assert.Equal(t, filepath.Join(dir, SimulationFile), change.Path)
	assert.False(t, change.Script)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tour.tengo"), []byte("tick(1)"), 0o644))
	change = waitFor(t, w, filepath.Join(dir, "tour.tengo"))
	assert.True(t, change.Script)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Changes
	assert.False(t, ok)
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

// waitFor skips late duplicates of earlier writes.
func waitFor(t *testing.T, w *Watcher, path string) Change {
	t.Helper()
	for {
		if c := nextChange(t, w); c.Path == path {
			return c
		}
	}
}

func nextChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes:
		return c
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
	return Change{}
}

func TestBuildConfig(t *testing.T) {
	useDir(t, t.TempDir())

	cfg, spec, err := BuildConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, "meadow.json", spec.Level)
	assert.Equal(t, sim.DefaultConfig().Items, cfg.Items)
	assert.Equal(t, 144, cfg.MaxSearchNodes)

	cfg, _, err = BuildConfig("", "orchard.json")
	require.NoError(t, err)
	assert.Len(t, cfg.Items, 6)

	_, _, err = BuildConfig("", "nowhere.json")
	assert.Error(t, err)
}

func TestBuildConfigRejectsMismatchedLevel(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, SimulationFile), []byte("grid_size: 8\n"), 0o644))

	_, _, err := BuildConfig("", "meadow.json")
	assert.Error(t, err)
}
