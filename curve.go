package gekko

import (
	"math"
	"slices"
)

// Keyframe is one point of an AnimationCurve. Tangents are slopes in value
// per unit time; an infinite out tangent holds the value until the next key.
type Keyframe struct {
	Time       float32
	Value      float32
	InTangent  float32
	OutTangent float32
}

// AnimationCurve maps time to a scalar by cubic Hermite interpolation
// between keys. Outside the key range the nearest end value is held.
type AnimationCurve struct {
	Keys []Keyframe
}

// NewAnimationCurve sorts keys by time.
func NewAnimationCurve(keys ...Keyframe) *AnimationCurve {
	c := &AnimationCurve{Keys: slices.Clone(keys)}
	c.sortKeys()
	return c
}

// NewLinearCurve sorts keys and replaces their tangents so the curve is
// piecewise linear.
func NewLinearCurve(keys ...Keyframe) *AnimationCurve {
	c := NewAnimationCurve(keys...)
	c.SetLinearTangents()
	return c
}

func (c *AnimationCurve) sortKeys() {
	slices.SortStableFunc(c.Keys, func(a, b Keyframe) int { return compareTime(a.Time, b.Time) })
}

func (c *AnimationCurve) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Keys)
}

func (c *AnimationCurve) SetLinearTangents() {
	n := len(c.Keys)
	for i := range c.Keys {
		var in, out float32
		if i > 0 {
			in = segmentSlope(c.Keys[i-1], c.Keys[i])
		}
		if i < n-1 {
			out = segmentSlope(c.Keys[i], c.Keys[i+1])
		}
		if i == 0 {
			in = out
		}
		if i == n-1 {
			out = in
		}
		c.Keys[i].InTangent = in
		c.Keys[i].OutTangent = out
	}
}

func segmentSlope(a, b Keyframe) float32 {
	dt := b.Time - a.Time
	if dt <= 0 {
		return 0
	}
	return (b.Value - a.Value) / dt
}

// Evaluate returns 0 for an empty curve; callers that need a neutral
// default check Len first.
func (c *AnimationCurve) Evaluate(t float32) float32 {
	n := c.Len()
	switch {
	case n == 0:
		return 0
	case n == 1 || t <= c.Keys[0].Time:
		return c.Keys[0].Value
	case t >= c.Keys[n-1].Time:
		return c.Keys[n-1].Value
	}

	hi, _ := slices.BinarySearchFunc(c.Keys, t, func(k Keyframe, t float32) int { return compareTime(k.Time, t) })
	if c.Keys[hi].Time == t {
		return c.Keys[hi].Value
	}
	return hermite(c.Keys[hi-1], c.Keys[hi], t)
}

func hermite(k0, k1 Keyframe, t float32) float32 {
	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k1.Value
	}
	if math.IsInf(float64(k0.OutTangent), 0) || math.IsInf(float64(k1.InTangent), 0) {
		return k0.Value
	}

	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*k0.Value + h10*k0.OutTangent*dt + h01*k1.Value + h11*k1.InTangent*dt
}
