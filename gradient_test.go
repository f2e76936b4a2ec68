package gekko

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func blackToWhite(mode GradientMode) *Gradient {
	return NewGradient(mode,
		[]GradientColorKey{
			{Time: 1, Color: mgl32.Vec3{1, 1, 1}},
			{Time: 0, Color: mgl32.Vec3{0, 0, 0}},
		},
		nil,
	)
}

func TestGradient_Empty(t *testing.T) {
	var g *Gradient
	assert.True(t, g.Empty())
	assert.True(t, NewGradient(GradientBlend, nil, []GradientAlphaKey{{Time: 0, Alpha: 0.5}}).Empty())
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, g.Evaluate(0.5))
	assert.False(t, blackToWhite(GradientBlend).Empty())
}

func TestGradient_Blend(t *testing.T) {
	g := blackToWhite(GradientBlend)

	c := g.Evaluate(0.25)
	assert.True(t, mgl32.Vec4{0.25, 0.25, 0.25, 1}.ApproxEqualThreshold(c, 1e-5), "got %v", c)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, g.Evaluate(-1))
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, g.Evaluate(3))
}

func TestGradient_Fixed(t *testing.T) {
	g := NewGradient(GradientFixed,
		[]GradientColorKey{
			{Time: 0, Color: mgl32.Vec3{1, 0, 0}},
			{Time: 0.5, Color: mgl32.Vec3{0, 1, 0}},
			{Time: 1, Color: mgl32.Vec3{0, 0, 1}},
		},
		nil,
	)
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, g.Evaluate(0.25))
	assert.Equal(t, mgl32.Vec4{0, 0, 1, 1}, g.Evaluate(0.75))
}

func TestGradient_AlphaKeys(t *testing.T) {
	g := NewGradient(GradientBlend,
		[]GradientColorKey{{Time: 0, Color: mgl32.Vec3{1, 0, 0}}},
		[]GradientAlphaKey{{Time: 0, Alpha: 0}, {Time: 1, Alpha: 1}},
	)
	c := g.Evaluate(0.5)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c.Vec3())
	assert.InDelta(t, 0.5, c.W(), 1e-6)
}
