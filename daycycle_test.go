package gekko

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestWrapTimeOfDay(t *testing.T) {
	assert.InDelta(t, 0.2, WrapTimeOfDay(1.2), 1e-12)
	assert.InDelta(t, 0.75, WrapTimeOfDay(-0.25), 1e-12)
	assert.Equal(t, 0.0, WrapTimeOfDay(1))
	assert.Equal(t, 0.0, WrapTimeOfDay(-1e-18))
	assert.Equal(t, 0.0, WrapTimeOfDay(math.NaN()))
	assert.Equal(t, 0.0, WrapTimeOfDay(math.Inf(1)))
}

func TestAdvanceTimeOfDay(t *testing.T) {
	s := DefaultDayCycleSettings()
	s.DayDuration = 120

	assert.InDelta(t, 0.2, AdvanceTimeOfDay(0.95, 30, s), 1e-9, "wraps past midnight")

	s.TimeScale = 2
	assert.InDelta(t, 0.5, AdvanceTimeOfDay(0.25, 15, s), 1e-9)

	s.TimeScale = 0
	assert.Equal(t, 0.4, AdvanceTimeOfDay(0.4, 1000, s), "a zero scale pauses")
}

func TestAdvanceTimeOfDay_Reversed(t *testing.T) {
	s := DefaultDayCycleSettings()
	s.DayDuration = 60

	forward := AdvanceTimeOfDay(0.1, 12, s)
	assert.InDelta(t, 0.3, forward, 1e-9)

	s.Reversed = true
	back := AdvanceTimeOfDay(forward, 12, s)
	assert.InDelta(t, 0.1, back, 1e-9)
	assert.InDelta(t, 0.9, AdvanceTimeOfDay(0.1, 12, s), 1e-9, "runs backwards through midnight")
}

func TestAdvanceTimeOfDay_Associative(t *testing.T) {
	s := DefaultDayCycleSettings()
	s.DayDuration = 90
	s.TimeScale = 1.5

	whole := AdvanceTimeOfDay(0.6, 50, s)
	split := AdvanceTimeOfDay(AdvanceTimeOfDay(0.6, 20, s), 30, s)
	assert.InDelta(t, whole, split, 1e-9)
}

func TestFormatClock(t *testing.T) {
	cases := map[float64]string{
		0:      "00:00",
		0.25:   "06:00",
		0.5:    "12:00",
		0.75:   "18:00",
		0.9999: "23:59",
		1:      "00:00",
		0.5104: "12:14",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatClock(in), "FormatClock(%v)", in)
	}
}

func TestSunRotation(t *testing.T) {
	down := SunRotation(SunPitch(0.5), 0).Rotate(WorldForward)
	assertVec3(t, mgl32.Vec3{0, -1, 0}, down)

	up := SunRotation(SunPitch(0), 0).Rotate(WorldForward)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, up)

	horizon := SunRotation(SunPitch(0.25), 90).Rotate(WorldForward)
	assert.InDelta(t, 0, horizon.Y(), 1e-5)
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, horizon)

	assert.Equal(t, float32(-90), SunPitch(0))
	assert.Equal(t, float32(90), SunPitch(0.5))
}

func TestRenderLighting(t *testing.T) {
	s := DefaultDayCycleSettings()
	s.BaseSunIntensity = 2
	s.SunIntensityCurve = NewLinearCurve(Keyframe{Time: 0, Value: 0}, Keyframe{Time: 0.5, Value: 1}, Keyframe{Time: 1, Value: 0})
	s.SunColorGradient = blackToWhite(GradientBlend)

	state := RenderLighting(s, 0.5)
	assert.Equal(t, "12:00", state.Clock)
	assert.InDelta(t, 2, state.SunIntensity, 1e-6)
	assert.True(t, state.HasSunColor)
	assert.False(t, state.HasAmbientIntensity)
	assert.False(t, state.HasAmbientColor)
	assert.Equal(t, ShadowsSoft, state.Shadows)

	s.ShadowsEnabled = false
	s.SunIntensityCurve = nil
	state = RenderLighting(s, 0.1)
	assert.Equal(t, float32(2), state.SunIntensity, "no curve multiplies by 1")
	assert.Equal(t, ShadowsNone, state.Shadows)
}

func TestLightingState_Apply(t *testing.T) {
	s := DefaultDayCycleSettings()
	s.SunColorGradient = blackToWhite(GradientBlend)
	s.AmbientColorGradient = NewGradient(GradientBlend, []GradientColorKey{{Time: 0, Color: mgl32.Vec3{0.1, 0.2, 0.3}}}, nil)

	light := NewDirectionalLight([3]float32{0, 0, 0}, 0)
	tr := NewTransform(mgl32.Vec3{})
	env := &Environment{AmbientIntensity: 0.7, Skybox: &Skybox{SupportsTint: true}}

	state := RenderLighting(s, 1.0/3)
	state.Apply(&light, &tr, env)

	assert.Equal(t, state.SunRotation, tr.Rotation)
	assert.Equal(t, float32(1), light.Intensity)
	assert.InDelta(t, 1.0/3, light.Color[0], 1e-5)
	assert.Equal(t, float32(0.7), env.AmbientIntensity, "without a curve ambient intensity is left alone")
	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 1}, env.AmbientColor)
	assert.Equal(t, env.AmbientColor, env.Skybox.Tint)

	env.Skybox = &Skybox{SupportsTint: false}
	state.Apply(&light, &tr, env)
	assert.Equal(t, mgl32.Vec4{}, env.Skybox.Tint)

	assert.NotPanics(t, func() { state.Apply(&light, &tr, nil) })
}
