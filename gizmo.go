package gekko

import "github.com/go-gl/mathgl/mgl32"

type GizmoType int

const (
	GizmoLine GizmoType = iota
	GizmoSphere
)

var (
	GizmoYellow = [4]float32{1, 0.92, 0.016, 1}
	GizmoCyan   = [4]float32{0, 1, 1, 1}
)

// Gizmo is a debug wireframe. For lines Position is the start and LineEnd
// the end, both in world space.
type Gizmo struct {
	Type     GizmoType
	Color    [4]float32
	Position mgl32.Vec3
	LineEnd  mgl32.Vec3
	Radius   float32
}

// GizmoBuffer collects the gizmos of one frame for the renderer.
type GizmoBuffer struct {
	Items []Gizmo
}

func (b *GizmoBuffer) Line(start, end mgl32.Vec3, color [4]float32) {
	b.Items = append(b.Items, Gizmo{
		Type:     GizmoLine,
		Color:    color,
		Position: start,
		LineEnd:  end,
	})
}

func (b *GizmoBuffer) Ray(origin, dir mgl32.Vec3, length float32, color [4]float32) {
	b.Line(origin, origin.Add(dir.Mul(length)), color)
}

func (b *GizmoBuffer) Sphere(center mgl32.Vec3, radius float32, color [4]float32) {
	b.Items = append(b.Items, Gizmo{
		Type:     GizmoSphere,
		Color:    color,
		Position: center,
		Radius:   radius,
	})
}

type GizmoModule struct{}

func (GizmoModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&GizmoBuffer{})
	app.UseSystem(
		System(gizmoClearSystem).
			InStage(Prelude),
	)
}

func gizmoClearSystem(buf *GizmoBuffer) {
	buf.Items = buf.Items[:0]
}
