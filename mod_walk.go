package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

const DefaultWalkSpeed = 4

// WalkComponent moves an entity on the ground plane with WASD, relative to
// its own facing. Space and Control move it up and down.
type WalkComponent struct {
	Speed float32
	Move  mgl32.Vec3
}

type WalkModule struct{}

func (WalkModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(walkInputSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(walkControlSystem).
			InStage(Update),
	)
}

func walkInputSystem(input *Input, cmd *Commands) {
	MakeQuery1[WalkComponent](cmd).Map(func(eid EntityId, walk *WalkComponent) bool {
		walk.Move = mgl32.Vec3{0, 0, 0}
		if input.Pressed[KeyW] {
			walk.Move[2] += 1
		}
		if input.Pressed[KeyS] {
			walk.Move[2] -= 1
		}
		if input.Pressed[KeyA] {
			walk.Move[0] -= 1
		}
		if input.Pressed[KeyD] {
			walk.Move[0] += 1
		}
		if input.Pressed[KeySpace] {
			walk.Move[1] += 1
		}
		if input.Pressed[KeyControl] {
			walk.Move[1] -= 1
		}
		return true
	})
}

func walkControlSystem(cmd *Commands, clock *Time) {
	dt := clock.DeltaSeconds()
	if dt <= 0 {
		return
	}

	MakeQuery2[WalkComponent, TransformComponent](cmd).Map(func(eid EntityId, walk *WalkComponent, tr *TransformComponent) bool {
		if walk.Move.Len() == 0 {
			return true
		}
		if walk.Speed == 0 {
			walk.Speed = DefaultWalkSpeed
		}

		// Flatten the facing so looking up or down doesn't change ground speed.
		forward := tr.Forward()
		forward[1] = 0
		if forward.Len() < 1e-6 {
			forward = WorldForward
		}
		forward = forward.Normalize()
		right := forward.Cross(WorldUp).Normalize()

		step := forward.Mul(walk.Move.Z()).
			Add(right.Mul(walk.Move.X())).
			Add(WorldUp.Mul(walk.Move.Y()))
		if step.Len() > 1 {
			step = step.Normalize()
		}
		tr.Position = tr.Position.Add(step.Mul(walk.Speed * dt))
		return true
	})
}
