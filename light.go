package gekko

import "github.com/go-gl/mathgl/mgl32"

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeSpot        LightType = 2
	LightTypeAmbient     LightType = 3
)

type ShadowMode uint32

const (
	ShadowsNone ShadowMode = iota
	ShadowsHard
	ShadowsSoft
)

func (m ShadowMode) String() string {
	switch m {
	case ShadowsHard:
		return "hard"
	case ShadowsSoft:
		return "soft"
	default:
		return "none"
	}
}

// LightComponent is the ECS component for lights. Directional lights shine
// along the entity's forward (-Z) axis.
type LightComponent struct {
	Type      LightType
	Color     [3]float32 // RGB
	Intensity float32
	Range     float32 // For point/spot
	ConeAngle float32 // Full cone angle in degrees (spot)
	Shadows   ShadowMode
}

func NewDirectionalLight(color [3]float32, intensity float32) LightComponent {
	return LightComponent{
		Type:      LightTypeDirectional,
		Color:     color,
		Intensity: intensity,
		Shadows:   ShadowsSoft,
	}
}

// Skybox is the sky material. Tint is only written when SupportsTint is set.
type Skybox struct {
	SupportsTint bool
	Tint         mgl32.Vec4
}

// Environment holds scene-wide lighting read by the renderer.
type Environment struct {
	AmbientColor     mgl32.Vec4
	AmbientIntensity float32
	Skybox           *Skybox
}

type EnvironmentModule struct {
	Skybox *Skybox
}

func (mod EnvironmentModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Environment{
		AmbientColor:     mgl32.Vec4{0.2, 0.2, 0.2, 1},
		AmbientIntensity: 1,
		Skybox:           mod.Skybox,
	})
}
