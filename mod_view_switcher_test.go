package gekko

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viewRig struct {
	app   *App
	cmd   *Commands
	log   *recordingLogger
	input *Input

	body, third, first EntityId
}

func newViewRig(t *testing.T) *viewRig {
	t.Helper()
	r := &viewRig{
		app: NewApp(),
		log: newRecordingLogger(),
	}
	r.cmd = r.app.Commands()
	r.cmd.AddResources(r.log)
	r.app.UseModules(TimeModule{}, InputModule{}, ViewSwitcherModule{}, HierarchyModule{}, FollowCameraModule{})
	r.input, _ = GetResource[Input](r.cmd)

	bodyTr := NewTransform(mgl32.Vec3{})
	r.body = r.cmd.AddEntity(&bodyTr)

	thirdTr := NewTransform(mgl32.Vec3{0, 2, 5})
	thirdCam := NewCamera(true)
	follow := NewFollowCamera(r.body)
	r.third = r.cmd.AddEntity(&thirdTr, &thirdCam, &follow)

	firstLocal := NewLocalTransform(mgl32.Vec3{0, 1.7, 0})
	firstLocal.Rotation = EulerRotation(0, 20, 0)
	firstTr := NewTransform(mgl32.Vec3{0, 1.7, 0})
	firstCam := NewCamera(true)
	r.first = r.cmd.AddEntity(&firstLocal, &firstTr, &firstCam, &Parent{Entity: r.body})

	vs := NewViewSwitcher(r.third, r.first, r.body)
	r.cmd.AddComponents(r.body, &vs)
	r.app.FlushCommands()
	return r
}

func (r *viewRig) step() {
	r.app.Step(100 * time.Millisecond)
}

func (r *viewRig) tapSwitch() {
	r.input.PressKey(KeyC)
	r.step()
	r.input.ReleaseKey(KeyC)
}

func (r *viewRig) switcher(t *testing.T) *ViewSwitcherComponent {
	t.Helper()
	vs, ok := GetComponent[ViewSwitcherComponent](r.cmd, r.body)
	require.True(t, ok)
	return vs
}

func (r *viewRig) camera(t *testing.T, eid EntityId) *CameraComponent {
	t.Helper()
	cam, ok := GetComponent[CameraComponent](r.cmd, eid)
	require.True(t, ok)
	return cam
}

func (r *viewRig) listener(t *testing.T, eid EntityId) *AudioListenerComponent {
	t.Helper()
	l, ok := GetComponent[AudioListenerComponent](r.cmd, eid)
	require.True(t, ok, "entity %v has no audio listener", eid)
	return l
}

func TestViewSwitcher_StartsInThirdPerson(t *testing.T) {
	r := newViewRig(t)
	r.step()

	assert.Equal(t, ThirdPersonView, r.switcher(t).Mode)
	assert.True(t, r.camera(t, r.third).Active)
	assert.False(t, r.camera(t, r.first).Active)
	assert.True(t, r.listener(t, r.third).Enabled)
	assert.False(t, HasComponent[AudioListenerComponent](r.cmd, r.first))
	assert.False(t, r.input.MouseCaptured)
	assert.False(t, r.input.CursorHidden)
}

func TestViewSwitcher_Toggle(t *testing.T) {
	r := newViewRig(t)
	r.step()

	r.tapSwitch()
	assert.Equal(t, FirstPersonView, r.switcher(t).Mode)
	assert.False(t, r.camera(t, r.third).Active)
	assert.True(t, r.camera(t, r.first).Active)
	assert.False(t, r.listener(t, r.third).Enabled)
	assert.True(t, r.listener(t, r.first).Enabled)
	assert.True(t, r.input.MouseCaptured)
	assert.True(t, r.input.CursorHidden)

	follow, _ := GetComponent[FollowCameraComponent](r.cmd, r.third)
	assert.True(t, follow.Disabled)

	// A held key toggles once, on the frame it goes down.
	r.input.PressKey(KeyC)
	r.step()
	r.step()
	assert.Equal(t, ThirdPersonView, r.switcher(t).Mode)
	r.input.ReleaseKey(KeyC)
	r.step()
	assert.Equal(t, ThirdPersonView, r.switcher(t).Mode)

	assert.True(t, r.camera(t, r.third).Active)
	assert.False(t, r.camera(t, r.first).Active)
	assert.True(t, r.listener(t, r.third).Enabled)
	assert.False(t, r.listener(t, r.first).Enabled)
	assert.False(t, r.input.MouseCaptured)
	assert.False(t, r.input.CursorHidden)
	assert.False(t, follow.Disabled)
}

func TestViewSwitcher_SeedsPitchFromCamera(t *testing.T) {
	r := newViewRig(t)
	r.step()
	r.tapSwitch()

	assert.InDelta(t, 20, r.switcher(t).Pitch, 1e-3)
}

func TestViewSwitcher_MouseLook(t *testing.T) {
	r := newViewRig(t)
	r.step()
	r.tapSwitch()

	// 0.1s at sensitivity 100: one unit of mouse motion is 10 degrees.
	r.input.MoveMouse(0, 1)
	r.step()
	assert.InDelta(t, 10, r.switcher(t).Pitch, 1e-3, "moving the mouse down looks down")

	local, _ := GetComponent[LocalTransformComponent](r.cmd, r.first)
	assert.InDelta(t, 10, PitchDegrees(local.Rotation), 1e-3)

	r.input.MoveMouse(0, 100)
	r.step()
	assert.Equal(t, float32(-maxLookPitch), r.switcher(t).Pitch)
	r.input.MoveMouse(0, -1000)
	r.step()
	assert.Equal(t, float32(maxLookPitch), r.switcher(t).Pitch)

	r.input.MoveMouse(9, 0)
	r.step()
	body, _ := GetComponent[TransformComponent](r.cmd, r.body)
	forward := body.Forward()
	assert.InDelta(t, 1, forward.X(), 1e-5, "moving the mouse right turns right")
	assert.InDelta(t, 0, forward.Z(), 1e-5)
}

func TestViewSwitcher_NoLookInThirdPerson(t *testing.T) {
	r := newViewRig(t)
	r.step()

	r.input.MoveMouse(10, 10)
	r.step()

	body, _ := GetComponent[TransformComponent](r.cmd, r.body)
	assert.Equal(t, mgl32.QuatIdent(), body.Rotation)
	assert.Equal(t, float32(0), r.switcher(t).Pitch)
}

func TestViewSwitcher_MissingRigsWarnEachFrame(t *testing.T) {
	app := NewApp()
	log := newRecordingLogger()
	cmd := app.Commands()
	cmd.AddResources(log)
	app.UseModules(TimeModule{}, InputModule{}, ViewSwitcherModule{})

	bodyTr := NewTransform(mgl32.Vec3{})
	vs := NewViewSwitcher(NoEntity, NoEntity, NoEntity)
	eid := cmd.AddEntity(&bodyTr, &vs)
	app.FlushCommands()

	input, _ := GetResource[Input](cmd)
	input.PressKey(KeyC)
	assert.NotPanics(t, func() {
		app.Step(time.Millisecond)
		app.Step(time.Millisecond)
	})

	stored, _ := GetComponent[ViewSwitcherComponent](cmd, eid)
	assert.Equal(t, eid, stored.Body, "the body defaults to the switcher's own entity")
	assert.Equal(t, 1, log.count("warn", "no body set"))
	assert.Equal(t, 2, log.count("warn", "camera rigs not set"))
	assert.Equal(t, ThirdPersonView, stored.Mode)
	assert.False(t, input.MouseCaptured)
}

func TestSwitchView(t *testing.T) {
	r := newViewRig(t)
	r.step()

	require.True(t, SwitchView(r.cmd, r.body, FirstPersonView))
	assert.Equal(t, FirstPersonView, r.switcher(t).Mode)
	assert.True(t, r.input.MouseCaptured)

	require.True(t, SwitchView(r.cmd, r.body, ThirdPersonView))
	assert.False(t, r.input.MouseCaptured)

	assert.False(t, SwitchView(r.cmd, r.third, FirstPersonView))
	assert.Equal(t, "first-person", FirstPersonView.String())
	assert.Equal(t, "third-person", ThirdPersonView.String())
}

func TestSwitchView_BeforeFirstTick(t *testing.T) {
	r := newViewRig(t)
	r.switcher(t).Sensitivity = 0

	require.True(t, SwitchView(r.cmd, r.body, FirstPersonView))
	vs := r.switcher(t)
	assert.Equal(t, float32(DefaultLookSensitivity), vs.Sensitivity)
	assert.InDelta(t, 20, vs.Pitch, 1e-3)

	r.input.MoveMouse(0, 1)
	r.step()
	assert.Equal(t, FirstPersonView, r.switcher(t).Mode, "the first tick keeps the forced view")
	assert.InDelta(t, 10, r.switcher(t).Pitch, 1e-3)
}

func TestSwitchView_MissingRigs(t *testing.T) {
	app := NewApp()
	log := newRecordingLogger()
	cmd := app.Commands()
	cmd.AddResources(log)
	app.UseModules(TimeModule{}, InputModule{}, ViewSwitcherModule{})

	vs := NewViewSwitcher(NoEntity, NoEntity, NoEntity)
	eid := cmd.AddEntity(&vs)
	app.FlushCommands()

	assert.False(t, SwitchView(cmd, eid, FirstPersonView))
	stored, _ := GetComponent[ViewSwitcherComponent](cmd, eid)
	assert.Equal(t, ThirdPersonView, stored.Mode)
	assert.Equal(t, 1, log.count("warn", "camera rigs not set"))

	input, _ := GetResource[Input](cmd)
	assert.False(t, input.MouseCaptured)
}
