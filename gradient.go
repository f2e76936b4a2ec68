package gekko

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

type GradientMode int

const (
	// GradientBlend interpolates linearly between keys.
	GradientBlend GradientMode = iota
	// GradientFixed jumps to a key's value at its time.
	GradientFixed
)

type GradientColorKey struct {
	Time  float32
	Color mgl32.Vec3
}

type GradientAlphaKey struct {
	Time  float32
	Alpha float32
}

// Gradient maps time to an RGBA colour. Colour and alpha keys are sampled
// independently; without alpha keys the result is opaque.
type Gradient struct {
	Mode      GradientMode
	ColorKeys []GradientColorKey
	AlphaKeys []GradientAlphaKey
}

func NewGradient(mode GradientMode, colors []GradientColorKey, alphas []GradientAlphaKey) *Gradient {
	g := &Gradient{
		Mode:      mode,
		ColorKeys: slices.Clone(colors),
		AlphaKeys: slices.Clone(alphas),
	}
	slices.SortStableFunc(g.ColorKeys, func(a, b GradientColorKey) int { return compareTime(a.Time, b.Time) })
	slices.SortStableFunc(g.AlphaKeys, func(a, b GradientAlphaKey) int { return compareTime(a.Time, b.Time) })
	return g
}

// Empty reports whether the gradient has no colour to give.
func (g *Gradient) Empty() bool {
	return g == nil || len(g.ColorKeys) == 0
}

func (g *Gradient) Evaluate(t float32) mgl32.Vec4 {
	if g.Empty() {
		return mgl32.Vec4{1, 1, 1, 1}
	}

	lo, hi, s := sampleKeys(len(g.ColorKeys), t, g.Mode, func(i int) float32 { return g.ColorKeys[i].Time })
	a, b := g.ColorKeys[lo].Color, g.ColorKeys[hi].Color
	rgb := a.Add(b.Sub(a).Mul(s))

	alpha := float32(1)
	if len(g.AlphaKeys) > 0 {
		lo, hi, s := sampleKeys(len(g.AlphaKeys), t, g.Mode, func(i int) float32 { return g.AlphaKeys[i].Time })
		alpha = g.AlphaKeys[lo].Alpha + (g.AlphaKeys[hi].Alpha-g.AlphaKeys[lo].Alpha)*s
	}

	return rgb.Vec4(alpha)
}

// sampleKeys finds the pair of keys around t and the blend factor between
// them. n must be at least 1.
func sampleKeys(n int, t float32, mode GradientMode, timeOf func(int) float32) (lo, hi int, s float32) {
	if t <= timeOf(0) {
		return 0, 0, 0
	}
	if t >= timeOf(n-1) {
		return n - 1, n - 1, 0
	}

	hi = 1
	for hi < n-1 && timeOf(hi) < t {
		hi++
	}
	lo = hi - 1

	if mode == GradientFixed {
		return hi, hi, 0
	}

	span := timeOf(hi) - timeOf(lo)
	if span <= 0 {
		return hi, hi, 0
	}
	return lo, hi, (t - timeOf(lo)) / span
}

func compareTime(a, b float32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
