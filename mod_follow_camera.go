package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFollowSmoothSpeed = 10
	DefaultFollowLookHeight  = 1.5
)

// DefaultFollowOffset sits above and behind a target facing -Z.
var DefaultFollowOffset = mgl32.Vec3{0, 2, 5}

// FollowCameraComponent chases Target with a smoothed position and always
// looks a little above it. Offset is in the target's local frame, so the
// camera swings around with the target's facing.
type FollowCameraComponent struct {
	Target      EntityId
	Offset      mgl32.Vec3
	SmoothSpeed float32
	LookHeight  float32
	Disabled    bool
}

func NewFollowCamera(target EntityId) FollowCameraComponent {
	return FollowCameraComponent{
		Target:      target,
		Offset:      DefaultFollowOffset,
		SmoothSpeed: DefaultFollowSmoothSpeed,
		LookHeight:  DefaultFollowLookHeight,
	}
}

type FollowCameraModule struct{}

// Install runs the follow step in LateUpdate, after gameplay and the
// hierarchy have settled the target's pose for the frame.
func (FollowCameraModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(followCameraSystem).
			InStage(LateUpdate),
	)
}

func followCameraSystem(cmd *Commands, clock *Time, log Logger) {
	dt := clock.DeltaSeconds()

	MakeQuery2[FollowCameraComponent, TransformComponent](cmd).Map(func(eid EntityId, follow *FollowCameraComponent, tr *TransformComponent) bool {
		if follow.Disabled {
			return true
		}
		target, ok := GetComponent[TransformComponent](cmd, follow.Target)
		if follow.Target == NoEntity || !ok {
			log.Warnf("follow camera %v: target %v is not set", eid, follow.Target)
			return true
		}
		if follow.SmoothSpeed == 0 {
			follow.SmoothSpeed = DefaultFollowSmoothSpeed
		}

		FollowStep(tr, *target, *follow, dt)
		return true
	})
}

// FollowStep moves the camera one frame toward its desired pose. A factor
// of SmoothSpeed*dt at or above 1 lands on the desired position exactly.
func FollowStep(cam *TransformComponent, target TransformComponent, follow FollowCameraComponent, dt float32) {
	desired := target.Position.Add(target.Rotation.Rotate(follow.Offset))
	cam.Position = lerpVec3(cam.Position, desired, clamp01(follow.SmoothSpeed*dt))

	focus := target.Position.Add(WorldUp.Mul(follow.LookHeight))
	if rot, ok := LookRotation(cam.Position, focus, WorldUp); ok {
		cam.Rotation = rot
	}
}
