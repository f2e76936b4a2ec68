package gekko

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldRight   = mgl32.Vec3{1, 0, 0}
	WorldForward = mgl32.Vec3{0, 0, -1}
)

// TransformComponent is the world-space pose of an entity.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// LocalTransformComponent is the pose relative to Parent.
type LocalTransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

type Parent struct {
	Entity EntityId
}

func NewTransform(position mgl32.Vec3) TransformComponent {
	return TransformComponent{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func NewLocalTransform(position mgl32.Vec3) LocalTransformComponent {
	return LocalTransformComponent{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (tr TransformComponent) Forward() mgl32.Vec3 {
	return tr.Rotation.Rotate(WorldForward)
}

// EulerRotation builds yaw (about Y), then pitch (about X), then roll (about Z), in degrees.
func EulerRotation(yaw, pitch, roll float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(yaw), WorldUp).
		Mul(mgl32.QuatRotate(mgl32.DegToRad(pitch), WorldRight)).
		Mul(mgl32.QuatRotate(mgl32.DegToRad(roll), mgl32.Vec3{0, 0, 1})).
		Normalize()
}

// PitchDegrees extracts the signed pitch of a yaw-pitch-roll rotation, in [-90, 90].
func PitchDegrees(q mgl32.Quat) float32 {
	s := 2 * (q.W*q.V[0] - q.V[1]*q.V[2])
	s = mgl32.Clamp(s, -1, 1)
	return mgl32.RadToDeg(float32(math.Asin(float64(s))))
}

// LookRotation orients -Z from eye toward target. ok is false when the two
// points coincide.
func LookRotation(eye, target, up mgl32.Vec3) (mgl32.Quat, bool) {
	dir := target.Sub(eye)
	if dir.Len() < 1e-6 {
		return mgl32.QuatIdent(), false
	}
	forward := dir.Normalize()

	right := forward.Cross(up)
	if right.Len() < 1e-6 {
		// Looking straight along up; any horizontal right axis will do.
		right = forward.Cross(WorldForward)
		if right.Len() < 1e-6 {
			right = WorldRight
		}
	}
	right = right.Normalize()
	trueUp := right.Cross(forward)

	basis := mgl32.Mat3FromCols(right, trueUp, forward.Mul(-1))
	return mgl32.Mat4ToQuat(basis.Mat4()).Normalize(), true
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	// a*(1-t) + b*t lands exactly on b at t == 1.
	return a.Mul(1 - t).Add(b.Mul(t))
}

func clamp01(v float32) float32 {
	return mgl32.Clamp(v, 0, 1)
}
