package gekko

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var ErrInvalidColor = errors.New("scenekit: invalid color")

// ColorValue is an RGBA colour in [0, 1] that decodes from YAML as an SVG
// colour name ("orange"), a hex string ("#ffcc88" or "#ffcc8880") or a
// list of 3 or 4 floats.
type ColorValue mgl32.Vec4

func (c ColorValue) Vec4() mgl32.Vec4 { return mgl32.Vec4(c) }
func (c ColorValue) Vec3() mgl32.Vec3 { return mgl32.Vec4(c).Vec3() }

func (c *ColorValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v, err := ParseColor(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*c = ColorValue(v)
		return nil
	case yaml.SequenceNode:
		var comps []float32
		if err := node.Decode(&comps); err != nil {
			return fmt.Errorf("line %d: %w: %v", node.Line, ErrInvalidColor, err)
		}
		switch len(comps) {
		case 3:
			*c = ColorValue{comps[0], comps[1], comps[2], 1}
		case 4:
			*c = ColorValue{comps[0], comps[1], comps[2], comps[3]}
		default:
			return fmt.Errorf("line %d: %w: want 3 or 4 components, got %d", node.Line, ErrInvalidColor, len(comps))
		}
		return nil
	}
	return fmt.Errorf("line %d: %w: unsupported node", node.Line, ErrInvalidColor)
}

// ParseColor accepts SVG colour names and #rrggbb / #rrggbbaa hex.
func ParseColor(s string) (mgl32.Vec4, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 && len(hex) != 8 {
			return mgl32.Vec4{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		if len(hex) == 6 {
			hex += "ff"
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return mgl32.Vec4{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return mgl32.Vec4{
			float32(n>>24&0xff) / 255,
			float32(n>>16&0xff) / 255,
			float32(n>>8&0xff) / 255,
			float32(n&0xff) / 255,
		}, nil
	}

	named, ok := colornames.Map[s]
	if !ok {
		return mgl32.Vec4{}, fmt.Errorf("%w: unknown color name %q", ErrInvalidColor, s)
	}
	return mgl32.Vec4{
		float32(named.R) / 255,
		float32(named.G) / 255,
		float32(named.B) / 255,
		float32(named.A) / 255,
	}, nil
}
