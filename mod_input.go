package gekko

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyMinus
	KeyEqual
	KeyShift
	KeyControl
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Input is filled by the host once per frame before Update. Mouse deltas
// are in screen units, X to the right and Y downward.
type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64

	// MouseCaptured locks the pointer to the window.
	MouseCaptured bool
	CursorHidden  bool

	mouseSeeded bool
}

func (input *Input) PressKey(key int) {
	if !input.Pressed[key] {
		input.JustPressed[key] = true
	}
	input.Pressed[key] = true
}

func (input *Input) ReleaseKey(key int) {
	if input.Pressed[key] {
		input.JustReleased[key] = true
	}
	input.Pressed[key] = false
}

func (input *Input) MoveMouse(dx, dy float64) {
	input.MouseX += dx
	input.MouseY += dy
	input.MouseDeltaX += dx
	input.MouseDeltaY += dy
}

// SetMousePosition records an absolute cursor position from the host and
// accumulates the motion since the last one. The first sample after a
// resync only seeds the position.
func (input *Input) SetMousePosition(x, y float64) {
	if input.mouseSeeded {
		input.MouseDeltaX += x - input.MouseX
		input.MouseDeltaY += y - input.MouseY
	}
	input.MouseX = x
	input.MouseY = y
	input.mouseSeeded = true
}

// ResyncMouse drops the motion up to the next SetMousePosition. Hosts call
// it when the cursor mode changes and the pointer warps.
func (input *Input) ResyncMouse() {
	input.mouseSeeded = false
}

// SetCursorLocked captures and hides the pointer, or releases and shows it.
func (input *Input) SetCursorLocked(locked bool) {
	if locked != input.MouseCaptured {
		input.ResyncMouse()
	}
	input.MouseCaptured = locked
	input.CursorHidden = locked
}

type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputEndFrameSystem).
			InStage(Finale),
	)
}

// inputEndFrameSystem drops per-frame edges so an injected press lasts one frame.
func inputEndFrameSystem(input *Input) {
	input.JustPressed = [256]bool{}
	input.JustReleased = [256]bool{}
	input.MouseDeltaX = 0
	input.MouseDeltaY = 0
}
