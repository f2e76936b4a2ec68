package gekko

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPreset = `
day_duration: 60
start_time: 0.5
time_scale: 2
reversed: true
base_sun_intensity: 1.5
sun_azimuth: 45
shadows: false
sun_intensity_curve:
  - { time: 0, value: 0 }
  - { time: 1, value: 1, in_tangent: 0 }
ambient_intensity_curve:
  - { time: 0, value: 0.5 }
sun_color_gradient:
  mode: fixed
  colors:
    - { time: 0, color: red }
    - { time: 1, color: "#0000ff" }
ambient_color_gradient:
  colors:
    - { time: 0, color: [0.1, 0.2, 0.3] }
  alphas:
    - { time: 0, alpha: 0.5 }
`

func writePreset(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseDayCycleSettings(t *testing.T) {
	s, err := ParseDayCycleSettings([]byte(fullPreset))
	require.NoError(t, err)

	assert.Equal(t, float32(60), s.DayDuration)
	assert.Equal(t, 0.5, s.StartTime)
	assert.Equal(t, float32(2), s.TimeScale)
	assert.True(t, s.Reversed)
	assert.Equal(t, float32(1.5), s.BaseSunIntensity)
	assert.Equal(t, float32(45), s.SunAzimuth)
	assert.False(t, s.ShadowsEnabled)

	require.Equal(t, 2, s.SunIntensityCurve.Len())
	assert.Equal(t, float32(1), s.SunIntensityCurve.Keys[0].OutTangent, "missing tangents follow the linear slope")
	assert.Equal(t, float32(0), s.SunIntensityCurve.Keys[1].InTangent)

	require.False(t, s.SunColorGradient.Empty())
	assert.Equal(t, GradientFixed, s.SunColorGradient.Mode)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, s.SunColorGradient.Evaluate(0.5).Vec3())

	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 0.5}, s.AmbientColorGradient.Evaluate(0.3))
	assert.Equal(t, float32(0.5), s.AmbientIntensityCurve.Evaluate(0.9))
}

func TestParseDayCycleSettings_Defaults(t *testing.T) {
	s, err := ParseDayCycleSettings([]byte("sun_azimuth: 10\n"))
	require.NoError(t, err)

	def := DefaultDayCycleSettings()
	assert.Equal(t, def.DayDuration, s.DayDuration)
	assert.Equal(t, def.StartTime, s.StartTime)
	assert.Equal(t, def.TimeScale, s.TimeScale)
	assert.True(t, s.ShadowsEnabled)
	assert.Nil(t, s.SunIntensityCurve)
	assert.True(t, s.SunColorGradient.Empty())
}

func TestParseDayCycleSettings_Invalid(t *testing.T) {
	for name, body := range map[string]string{
		"zero duration":     "day_duration: 0",
		"negative duration": "day_duration: -5",
		"start past one":    "start_time: 1.5",
		"negative start":    "start_time: -0.1",
		"negative scale":    "time_scale: -1",
		"gradient mode":     "sun_color_gradient: { mode: smooth, colors: [{ time: 0, color: red }] }",
		"bad colour":        "ambient_color_gradient: { colors: [{ time: 0, color: notacolour }] }",
		"not yaml":          "day_duration: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDayCycleSettings([]byte(body))
			assert.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestPresetServer_LoadKeepsId(t *testing.T) {
	dir := t.TempDir()
	path := writePreset(t, dir, "dusk.yaml", "base_sun_intensity: 0.5\n")

	server := NewPresetServer()
	id, err := server.Load(path)
	require.NoError(t, err)

	got, ok := server.Lookup(path)
	require.True(t, ok)
	assert.Equal(t, id, got)

	writePreset(t, dir, "dusk.yaml", "base_sun_intensity: 0.8\n")
	again, err := server.Load(path)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	s, err := server.Get(id)
	require.NoError(t, err)
	assert.Equal(t, float32(0.8), s.BaseSunIntensity)

	writePreset(t, dir, "dusk.yaml", "day_duration: -1\n")
	_, err = server.Load(path)
	assert.ErrorIs(t, err, ErrInvalidSettings)
	s, _ = server.Get(id)
	assert.Equal(t, float32(0.8), s.BaseSunIntensity, "a failed reload keeps the previous settings")
}

func TestPresetServer_Errors(t *testing.T) {
	server := NewPresetServer()

	_, err := server.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownPreset)

	_, err = server.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = server.LoadDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestPresetServer_LoadDir(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "b.yml", "sun_azimuth: 2\n")
	writePreset(t, dir, "a.yaml", "sun_azimuth: 1\n")
	writePreset(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755))

	server := NewPresetServer()
	ids, err := server.LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	first, _ := server.Get(ids[0])
	second, _ := server.Get(ids[1])
	assert.Equal(t, float32(1), first.SunAzimuth)
	assert.Equal(t, float32(2), second.SunAzimuth)
}

func TestPresetReloadSystem(t *testing.T) {
	dir := t.TempDir()
	path := writePreset(t, dir, "day.yaml", "base_sun_intensity: 1\n")

	app := NewApp()
	log := newRecordingLogger()
	cmd := app.Commands()
	cmd.AddResources(log)
	app.UseModules(TimeModule{}, DayCycleModule{PresetDirs: []string{dir}})

	server, ok := GetResource[PresetServer](cmd)
	require.True(t, ok)
	id, ok := server.Lookup(path)
	require.True(t, ok)

	// Events are fed by hand; the watcher goroutine is never started.
	watcher := newPresetWatcher(nil)
	server.Watch(watcher)

	sunTr := NewTransform(mgl32.Vec3{})
	sunLight := NewDirectionalLight([3]float32{1, 1, 1}, 1)
	sun := cmd.AddEntity(&sunTr, &sunLight)
	settings, _ := server.Get(id)
	dc := NewDayCycle(sun, settings)
	dc.Preset = id
	clock := cmd.AddEntity(&dc)
	other := NewDayCycle(sun, settings)
	untouched := cmd.AddEntity(&other)
	app.FlushCommands()

	app.Step(0)

	writePreset(t, dir, "day.yaml", "base_sun_intensity: 3\n")
	watcher.Events <- path
	app.Step(0)

	stored, _ := GetComponent[DayCycleComponent](cmd, clock)
	assert.Equal(t, float32(3), stored.Settings.BaseSunIntensity)
	assert.Equal(t, float32(3), stored.SunIntensity)
	assert.Equal(t, 1, log.count("info", "reloaded preset"))

	plain, _ := GetComponent[DayCycleComponent](cmd, untouched)
	assert.Equal(t, float32(1), plain.Settings.BaseSunIntensity)

	writePreset(t, dir, "day.yaml", "base_sun_intensity: [\n")
	watcher.Events <- path
	app.Step(0)
	assert.Equal(t, float32(3), stored.Settings.BaseSunIntensity)
	assert.Equal(t, 1, log.count("warn", "reload preset"))
}

func TestPresetWatcher_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	watcher, err := NewPresetWatcher(dir)
	require.NoError(t, err)
	defer watcher.Close()

	path := writePreset(t, dir, "live.yaml", "sun_azimuth: 5\n")
	writePreset(t, dir, "ignored.txt", "x")

	select {
	case got := <-watcher.Events:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the changed preset")
	}
}
