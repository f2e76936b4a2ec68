package gekko

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultDayDuration is the cycle length in seconds used when a day
// duration is missing or not positive.
const DefaultDayDuration = 120

// DayCycleSettings drive a day-night clock. Time of day is normalized:
// 0 midnight, 0.25 sunrise, 0.5 noon, 0.75 sunset.
type DayCycleSettings struct {
	// DayDuration is the length of a full cycle in real seconds.
	DayDuration float32
	StartTime   float64
	// TimeScale multiplies the flow of time; 0 pauses.
	TimeScale float32
	Reversed  bool

	BaseSunIntensity float32
	// SunAzimuth is the compass heading of the sun's path, in degrees.
	SunAzimuth     float32
	ShadowsEnabled bool

	// Nil or empty curves and gradients leave their outputs alone, except the
	// sun intensity curve which then acts as a multiplier of 1.
	SunIntensityCurve     *AnimationCurve
	SunColorGradient      *Gradient
	AmbientIntensityCurve *AnimationCurve
	AmbientColorGradient  *Gradient
}

func DefaultDayCycleSettings() DayCycleSettings {
	return DayCycleSettings{
		DayDuration:      DefaultDayDuration,
		StartTime:        0.25,
		TimeScale:        1,
		BaseSunIntensity: 1,
		ShadowsEnabled:   true,
	}
}

// LightingState is everything a day cycle writes for one time of day.
type LightingState struct {
	TimeOfDay float64

	SunPitch     float32
	SunRotation  mgl32.Quat
	SunIntensity float32
	SunColor     mgl32.Vec4
	HasSunColor  bool

	AmbientIntensity    float32
	HasAmbientIntensity bool
	AmbientColor        mgl32.Vec4
	HasAmbientColor     bool

	Shadows ShadowMode
	Clock   string
}

// WrapTimeOfDay folds t into [0, 1) by modular arithmetic.
func WrapTimeOfDay(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	r := t - math.Floor(t)
	if r >= 1 || r < 0 {
		// t - floor(t) rounds up to 1 for tiny negative t.
		return 0
	}
	return r
}

// AdvanceTimeOfDay moves t by dt real seconds.
func AdvanceTimeOfDay(t float64, dt float64, s DayCycleSettings) float64 {
	if s.DayDuration <= 0 {
		return WrapTimeOfDay(t)
	}
	delta := dt / float64(s.DayDuration) * float64(s.TimeScale)
	if s.Reversed {
		delta = -delta
	}
	return WrapTimeOfDay(t + delta)
}

// SunPitch is the tilt of the sun light toward the ground: -90 at
// midnight (nadir), 90 at noon (zenith).
func SunPitch(t float64) float32 {
	return float32(t*360 - 90)
}

// SunRotation turns the light's forward axis down by pitch degrees after
// heading it along azimuth.
func SunRotation(pitch, azimuth float32) mgl32.Quat {
	return EulerRotation(azimuth, -pitch, 0)
}

// FormatClock renders t as HH:MM. Both fields are floored, so 0.9999
// reads 23:59 rather than rounding up to midnight.
func FormatClock(t float64) string {
	hours := WrapTimeOfDay(t) * 24
	whole := math.Floor(hours)
	h := int(whole) % 24
	m := int(math.Floor((hours - whole) * 60))
	return fmt.Sprintf("%02d:%02d", h, m)
}

// RenderLighting is a pure function of settings and time of day.
func RenderLighting(s DayCycleSettings, t float64) LightingState {
	tf := float32(t)
	pitch := SunPitch(t)

	state := LightingState{
		TimeOfDay:   t,
		SunPitch:    pitch,
		SunRotation: SunRotation(pitch, s.SunAzimuth),
		Clock:       FormatClock(t),
	}

	multiplier := float32(1)
	if s.SunIntensityCurve.Len() > 0 {
		multiplier = s.SunIntensityCurve.Evaluate(tf)
	}
	state.SunIntensity = s.BaseSunIntensity * multiplier

	if !s.SunColorGradient.Empty() {
		state.SunColor = s.SunColorGradient.Evaluate(tf)
		state.HasSunColor = true
	}
	if s.AmbientIntensityCurve.Len() > 0 {
		state.AmbientIntensity = s.AmbientIntensityCurve.Evaluate(tf)
		state.HasAmbientIntensity = true
	}
	if !s.AmbientColorGradient.Empty() {
		state.AmbientColor = s.AmbientColorGradient.Evaluate(tf)
		state.HasAmbientColor = true
	}

	state.Shadows = shadowModeFor(s.ShadowsEnabled)
	return state
}

func shadowModeFor(enabled bool) ShadowMode {
	if enabled {
		return ShadowsSoft
	}
	return ShadowsNone
}

// Apply writes the state into the sun and the environment. env may be nil.
func (state LightingState) Apply(light *LightComponent, tr *TransformComponent, env *Environment) {
	tr.Rotation = state.SunRotation
	light.Intensity = state.SunIntensity
	if state.HasSunColor {
		light.Color = [3]float32(state.SunColor.Vec3())
	}
	light.Shadows = state.Shadows

	if env == nil {
		return
	}
	if state.HasAmbientIntensity {
		env.AmbientIntensity = state.AmbientIntensity
	}
	if state.HasAmbientColor {
		env.AmbientColor = state.AmbientColor
		if env.Skybox != nil && env.Skybox.SupportsTint {
			env.Skybox.Tint = state.AmbientColor
		}
	}
}
