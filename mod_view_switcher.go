package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultLookSensitivity = 100
	maxLookPitch           = 90
)

type ViewMode int

const (
	ThirdPersonView ViewMode = iota
	FirstPersonView
)

func (m ViewMode) String() string {
	if m == FirstPersonView {
		return "first-person"
	}
	return "third-person"
}

// ViewSwitcherComponent toggles between a third-person and a first-person
// camera rig. In first person, mouse X turns Body and mouse Y tilts the
// first-person camera.
type ViewSwitcherComponent struct {
	ThirdPersonCamera EntityId
	FirstPersonCamera EntityId
	// Body defaults to the switcher's own entity.
	Body        EntityId
	SwitchKey   int
	Sensitivity float32

	Mode  ViewMode
	Pitch float32

	initialized bool
}

func NewViewSwitcher(thirdPerson, firstPerson, body EntityId) ViewSwitcherComponent {
	return ViewSwitcherComponent{
		ThirdPersonCamera: thirdPerson,
		FirstPersonCamera: firstPerson,
		Body:              body,
		SwitchKey:         KeyC,
		Sensitivity:       DefaultLookSensitivity,
	}
}

type ViewSwitcherModule struct{}

func (ViewSwitcherModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(viewSwitcherSystem).
			InStage(Update),
	)
}

func viewSwitcherSystem(cmd *Commands, input *Input, clock *Time, log Logger) {
	dt := clock.DeltaSeconds()

	MakeQuery1[ViewSwitcherComponent](cmd).Map(func(eid EntityId, vs *ViewSwitcherComponent) bool {
		if !readySwitcher(cmd, log, eid, vs) {
			return true
		}
		if !vs.initialized {
			startSwitcher(vs)
			activateView(cmd, log, eid, vs, input, ThirdPersonView)
		}

		if input.JustPressed[vs.SwitchKey] {
			next := FirstPersonView
			if vs.Mode == FirstPersonView {
				next = ThirdPersonView
			}
			activateView(cmd, log, eid, vs, input, next)
		}

		if vs.Mode == FirstPersonView {
			if cam, ok := GetComponent[CameraComponent](cmd, vs.FirstPersonCamera); ok && cam.Active {
				firstPersonLook(cmd, vs, input, dt)
			}
		}
		return true
	})
}

// SwitchView forces a view, as if the switch key had been pressed enough
// times. It reports false when eid has no switcher or its rigs are missing.
func SwitchView(cmd *Commands, eid EntityId, mode ViewMode) bool {
	vs, ok := GetComponent[ViewSwitcherComponent](cmd, eid)
	if !ok {
		return false
	}
	input, ok := GetResource[Input](cmd)
	if !ok {
		return false
	}
	log := cmd.Logger()
	if !readySwitcher(cmd, log, eid, vs) {
		return false
	}
	if !vs.initialized {
		startSwitcher(vs)
	}
	activateView(cmd, log, eid, vs, input, mode)
	return true
}

// readySwitcher defaults the body and reports whether both rigs exist.
func readySwitcher(cmd *Commands, log Logger, eid EntityId, vs *ViewSwitcherComponent) bool {
	if vs.Body == NoEntity {
		log.Warnf("view switcher %v: no body set, turning the switcher's own entity", eid)
		vs.Body = eid
	}
	if !rigsPresent(cmd, vs) {
		log.Warnf("view switcher %v: camera rigs not set (third %v, first %v)", eid, vs.ThirdPersonCamera, vs.FirstPersonCamera)
		return false
	}
	return true
}

func startSwitcher(vs *ViewSwitcherComponent) {
	if vs.Sensitivity == 0 {
		vs.Sensitivity = DefaultLookSensitivity
	}
	vs.initialized = true
}

func rigsPresent(cmd *Commands, vs *ViewSwitcherComponent) bool {
	return HasComponent[CameraComponent](cmd, vs.ThirdPersonCamera) && HasComponent[CameraComponent](cmd, vs.FirstPersonCamera)
}

func activateView(cmd *Commands, log Logger, eid EntityId, vs *ViewSwitcherComponent, input *Input, mode ViewMode) {
	third, thirdOk := GetComponent[CameraComponent](cmd, vs.ThirdPersonCamera)
	first, firstOk := GetComponent[CameraComponent](cmd, vs.FirstPersonCamera)
	if !thirdOk || !firstOk {
		log.Warnf("view switcher %v: camera rigs not set (third %v, first %v)", eid, vs.ThirdPersonCamera, vs.FirstPersonCamera)
		return
	}

	vs.Mode = mode
	switch mode {
	case FirstPersonView:
		third.Active = false
		setListener(cmd, vs.ThirdPersonCamera, false)
		setFollow(cmd, vs.ThirdPersonCamera, false)

		first.Active = true
		setListener(cmd, vs.FirstPersonCamera, true)

		input.SetCursorLocked(true)
		vs.Pitch = mgl32.Clamp(PitchDegrees(cameraLocalRotation(cmd, vs.FirstPersonCamera)), -maxLookPitch, maxLookPitch)
	default:
		third.Active = true
		setListener(cmd, vs.ThirdPersonCamera, true)
		setFollow(cmd, vs.ThirdPersonCamera, true)

		first.Active = false
		setListener(cmd, vs.FirstPersonCamera, false)

		input.SetCursorLocked(false)
	}
	log.Debugf("view switcher %v: %s", eid, mode)
}

// setListener adds a listener when one is needed and missing.
func setListener(cmd *Commands, rig EntityId, enabled bool) {
	if listener, ok := GetComponent[AudioListenerComponent](cmd, rig); ok {
		listener.Enabled = enabled
		return
	}
	if enabled {
		cmd.AddComponents(rig, &AudioListenerComponent{Enabled: true})
	}
}

func setFollow(cmd *Commands, rig EntityId, enabled bool) {
	if follow, ok := GetComponent[FollowCameraComponent](cmd, rig); ok {
		follow.Disabled = !enabled
	}
}

func cameraLocalRotation(cmd *Commands, cam EntityId) mgl32.Quat {
	if local, ok := GetComponent[LocalTransformComponent](cmd, cam); ok && HasComponent[Parent](cmd, cam) {
		return local.Rotation
	}
	if tr, ok := GetComponent[TransformComponent](cmd, cam); ok {
		return tr.Rotation
	}
	return mgl32.QuatIdent()
}

func firstPersonLook(cmd *Commands, vs *ViewSwitcherComponent, input *Input, dt float32) {
	dx := float32(input.MouseDeltaX) * vs.Sensitivity * dt
	dy := float32(input.MouseDeltaY) * vs.Sensitivity * dt

	vs.Pitch = mgl32.Clamp(vs.Pitch-dy, -maxLookPitch, maxLookPitch)
	tilt := mgl32.QuatRotate(mgl32.DegToRad(vs.Pitch), WorldRight)

	if local, ok := GetComponent[LocalTransformComponent](cmd, vs.FirstPersonCamera); ok && HasComponent[Parent](cmd, vs.FirstPersonCamera) {
		local.Rotation = tilt
	} else if tr, ok := GetComponent[TransformComponent](cmd, vs.FirstPersonCamera); ok {
		tr.Rotation = tilt
	}

	// Positive dx turns right, which is a negative turn about +Y.
	if body, ok := GetComponent[TransformComponent](cmd, vs.Body); ok && dx != 0 {
		body.Rotation = body.Rotation.Mul(mgl32.QuatRotate(mgl32.DegToRad(-dx), WorldUp)).Normalize()
	}
}
