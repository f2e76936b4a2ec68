package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	sunGizmoLength = 10
	sunGizmoRadius = 0.5
)

// DayCycleComponent runs a day-night clock that drives the Sun entity's
// directional light and the scene Environment.
type DayCycleComponent struct {
	Settings  DayCycleSettings
	TimeOfDay float64
	Sun       EntityId
	// Preset links the clock to a PresetServer entry for hot reload.
	Preset       AssetId
	ShowSunGizmo bool

	// Read-only outputs of the last render.
	Clock        string
	SunIntensity float32

	initialized bool
	disabled    bool
}

func NewDayCycle(sun EntityId, settings DayCycleSettings) DayCycleComponent {
	return DayCycleComponent{
		Settings:  settings,
		TimeOfDay: WrapTimeOfDay(math01(settings.StartTime)),
		Sun:       sun,
	}
}

// Live reports whether the clock has started and owns a valid sun.
func (dc *DayCycleComponent) Live() bool {
	return dc.initialized && !dc.disabled
}

func (dc *DayCycleComponent) Disabled() bool {
	return dc.disabled
}

type DayCycleModule struct {
	// PresetDirs are scanned for *.yaml lighting presets at install.
	PresetDirs []string
	// Watch reloads presets from PresetDirs when their files change.
	Watch bool
}

func (mod DayCycleModule) Install(app *App, cmd *Commands) {
	log := app.Logger()
	server := NewPresetServer()

	for _, dir := range mod.PresetDirs {
		ids, err := server.LoadDir(dir)
		if err != nil {
			log.Warnf("day cycle: %v", err)
			continue
		}
		log.Infof("day cycle: loaded %d lighting presets from %s", len(ids), dir)
	}

	if mod.Watch && len(mod.PresetDirs) > 0 {
		watcher, err := NewPresetWatcher(mod.PresetDirs...)
		if err != nil {
			log.Warnf("day cycle: preset hot reload disabled: %v", err)
		} else {
			server.Watch(watcher)
		}
	}

	cmd.AddResources(server)
	app.UseSystem(
		System(presetReloadSystem).
			InStage(PreUpdate),
	)
	app.UseSystem(
		System(dayCycleSystem).
			InStage(Update),
	)
}

func dayCycleSystem(cmd *Commands, clock *Time, log Logger) {
	env, _ := GetResource[Environment](cmd)
	gizmos, _ := GetResource[GizmoBuffer](cmd)
	dt := clock.Dt.Seconds()

	MakeQuery1[DayCycleComponent](cmd).Map(func(eid EntityId, dc *DayCycleComponent) bool {
		if dc.disabled {
			return true
		}
		if !dc.initialized && !initializeDayCycle(cmd, log, eid, dc, env) {
			return true
		}

		dc.TimeOfDay = AdvanceTimeOfDay(dc.TimeOfDay, dt, dc.Settings)
		renderDayCycle(cmd, dc, env)

		if dc.ShowSunGizmo && gizmos != nil {
			if tr, ok := GetComponent[TransformComponent](cmd, dc.Sun); ok {
				gizmos.Ray(tr.Position, tr.Forward(), sunGizmoLength, GizmoYellow)
				gizmos.Sphere(tr.Position, sunGizmoRadius, GizmoYellow)
			}
		}
		return true
	})
}

// initializeDayCycle validates the sun and renders the starting time. A
// clock without a usable sun is disabled for good.
func initializeDayCycle(cmd *Commands, log Logger, eid EntityId, dc *DayCycleComponent, env *Environment) bool {
	if _, _, ok := dayCycleSun(cmd, dc); !ok {
		log.Errorf("day cycle %v: entity %v is not a directional light with a transform; disabling", eid, dc.Sun)
		dc.disabled = true
		return false
	}
	if dc.Settings.DayDuration <= 0 {
		log.Warnf("day cycle %v: day duration %v is not positive, using %v", eid, dc.Settings.DayDuration, DefaultDayDuration)
		dc.Settings.DayDuration = DefaultDayDuration
	}
	if dc.Settings.TimeScale < 0 {
		dc.Settings.TimeScale = 0
	}

	dc.TimeOfDay = WrapTimeOfDay(dc.TimeOfDay)
	dc.initialized = true
	renderDayCycle(cmd, dc, env)
	log.Debugf("day cycle %v: started at %s", eid, dc.Clock)
	return true
}

func dayCycleSun(cmd *Commands, dc *DayCycleComponent) (*LightComponent, *TransformComponent, bool) {
	if dc.Sun == NoEntity {
		return nil, nil, false
	}
	light, ok := GetComponent[LightComponent](cmd, dc.Sun)
	if !ok || light.Type != LightTypeDirectional {
		return nil, nil, false
	}
	tr, ok := GetComponent[TransformComponent](cmd, dc.Sun)
	if !ok {
		return nil, nil, false
	}
	return light, tr, true
}

func renderDayCycle(cmd *Commands, dc *DayCycleComponent, env *Environment) LightingState {
	state := RenderLighting(dc.Settings, dc.TimeOfDay)
	if light, tr, ok := dayCycleSun(cmd, dc); ok {
		state.Apply(light, tr, env)
		orientParentedSun(cmd, dc.Sun, tr, state.SunRotation)
	}
	dc.Clock = state.Clock
	dc.SunIntensity = state.SunIntensity
	return state
}

// orientParentedSun makes the sun rotation local to its parent, so the
// hierarchy pass keeps it. The world rotation is refreshed right away.
func orientParentedSun(cmd *Commands, sun EntityId, tr *TransformComponent, rot mgl32.Quat) {
	local, ok := GetComponent[LocalTransformComponent](cmd, sun)
	if !ok {
		return
	}
	parent, ok := GetComponent[Parent](cmd, sun)
	if !ok {
		return
	}
	local.Rotation = rot
	if parentWorld, ok := GetComponent[TransformComponent](cmd, parent.Entity); ok {
		tr.Rotation = parentWorld.Rotation.Mul(rot).Normalize()
	}
}

// DayCycleController changes a running clock so that the sun and ambient
// light follow immediately instead of on the next tick.
type DayCycleController struct {
	cmd *Commands
	dc  *DayCycleComponent
}

func DayCycle(cmd *Commands, eid EntityId) (DayCycleController, bool) {
	dc, ok := GetComponent[DayCycleComponent](cmd, eid)
	if !ok {
		return DayCycleController{}, false
	}
	return DayCycleController{cmd: cmd, dc: dc}, true
}

func (d DayCycleController) TimeOfDay() float64 { return d.dc.TimeOfDay }
func (d DayCycleController) Clock() string      { return d.dc.Clock }

// SetTimeScale clamps negative scales to 0.
func (d DayCycleController) SetTimeScale(scale float32) {
	if scale < 0 {
		scale = 0
	}
	d.dc.Settings.TimeScale = scale
}

func (d DayCycleController) SetReversed(reversed bool) {
	d.dc.Settings.Reversed = reversed
}

func (d DayCycleController) SetShadowsEnabled(enabled bool) {
	d.dc.Settings.ShadowsEnabled = enabled
	if d.dc.disabled {
		return
	}
	if light, _, ok := dayCycleSun(d.cmd, d.dc); ok {
		light.Shadows = shadowModeFor(enabled)
	}
}

// SetTimeNormalized jumps to t, clamped to [0, 1] and wrapped so 1 is
// midnight again.
func (d DayCycleController) SetTimeNormalized(t float64) {
	d.dc.TimeOfDay = WrapTimeOfDay(math01(t))
	d.rerender()
}

// ApplySettings swaps the settings but keeps the current time of day.
// Bad durations and negative scales are corrected as at startup.
func (d DayCycleController) ApplySettings(settings DayCycleSettings) {
	if settings.DayDuration <= 0 {
		settings.DayDuration = DefaultDayDuration
	}
	if settings.TimeScale < 0 {
		settings.TimeScale = 0
	}
	d.dc.Settings = settings
	d.rerender()
}

func (d DayCycleController) UsePreset(server *PresetServer, id AssetId) error {
	settings, err := server.Get(id)
	if err != nil {
		return err
	}
	d.dc.Preset = id
	d.ApplySettings(settings)
	return nil
}

func (d DayCycleController) rerender() {
	if !d.dc.Live() {
		return
	}
	env, _ := GetResource[Environment](d.cmd)
	renderDayCycle(d.cmd, d.dc, env)
}

func math01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
