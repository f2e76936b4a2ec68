// Package platform hosts a scenekit app in a glfw window and feeds its
// Input resource from the keyboard and mouse.
package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	gekko "github.com/gekko3d/scenekit"
)

func init() {
	// glfw must be driven from the main OS thread.
	runtime.LockOSThread()
}

type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
}

// WindowModule opens the window and installs input polling. It needs the
// InputModule installed first.
type WindowModule struct {
	Width  int
	Height int
	Title  string
}

func NewWindowModule(width, height int, title string) WindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "scenekit"
	}
	return WindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m WindowModule) Install(app *gekko.App, cmd *gekko.Commands) {
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(m.Width, m.Height, m.Title, nil, nil)
	if err != nil {
		panic(err)
	}

	cmd.AddResources(&WindowState{
		windowGlfw:   win,
		WindowWidth:  m.Width,
		WindowHeight: m.Height,
		windowTitle:  m.Title,
	})
	app.UseSystem(
		gekko.System(inputSystem).
			InStage(gekko.PreUpdate),
	)
	app.UseSystem(
		gekko.System(cursorSystem).
			InStage(gekko.PostRender),
	)
}

// Close destroys the window and shuts glfw down. Call it after App.Run returns.
func (s *WindowState) Close() {
	if s.windowGlfw != nil {
		s.windowGlfw.Destroy()
		s.windowGlfw = nil
	}
	glfw.Terminate()
}

func inputSystem(cmd *gekko.Commands, s *WindowState, input *gekko.Input) {
	glfw.PollEvents()

	if s.windowGlfw.ShouldClose() {
		cmd.Exit()
		return
	}

	for key, glfwKey := range keyToGlfw {
		switch s.windowGlfw.GetKey(glfwKey) {
		case glfw.Press, glfw.Repeat:
			input.PressKey(key)
		case glfw.Release:
			input.ReleaseKey(key)
		}
	}

	for btn, glfwBtn := range buttonToGlfw {
		switch s.windowGlfw.GetMouseButton(glfwBtn) {
		case glfw.Press:
			input.PressKey(btn)
		case glfw.Release:
			input.ReleaseKey(btn)
		}
	}

	input.SetMousePosition(s.windowGlfw.GetCursorPos())

	s.WindowWidth, s.WindowHeight = s.windowGlfw.GetSize()
}

// cursorSystem applies the cursor state chosen by this frame's systems.
func cursorSystem(s *WindowState, input *gekko.Input) {
	mode := glfw.CursorNormal
	switch {
	case input.MouseCaptured:
		mode = glfw.CursorDisabled
	case input.CursorHidden:
		mode = glfw.CursorHidden
	}
	if s.windowGlfw.GetInputMode(glfw.CursorMode) != mode {
		s.windowGlfw.SetInputMode(glfw.CursorMode, mode)
		// The pointer warps on a mode change; skip that jump.
		input.ResyncMouse()
	}
}

var buttonToGlfw = map[int]glfw.MouseButton{
	gekko.MouseButtonLeft:   glfw.MouseButtonLeft,
	gekko.MouseButtonRight:  glfw.MouseButtonRight,
	gekko.MouseButtonMiddle: glfw.MouseButtonMiddle,
}

var keyToGlfw = map[int]glfw.Key{
	gekko.KeyA:       glfw.KeyA,
	gekko.KeyB:       glfw.KeyB,
	gekko.KeyC:       glfw.KeyC,
	gekko.KeyD:       glfw.KeyD,
	gekko.KeyE:       glfw.KeyE,
	gekko.KeyF:       glfw.KeyF,
	gekko.KeyG:       glfw.KeyG,
	gekko.KeyH:       glfw.KeyH,
	gekko.KeyI:       glfw.KeyI,
	gekko.KeyJ:       glfw.KeyJ,
	gekko.KeyK:       glfw.KeyK,
	gekko.KeyL:       glfw.KeyL,
	gekko.KeyM:       glfw.KeyM,
	gekko.KeyN:       glfw.KeyN,
	gekko.KeyO:       glfw.KeyO,
	gekko.KeyP:       glfw.KeyP,
	gekko.KeyQ:       glfw.KeyQ,
	gekko.KeyR:       glfw.KeyR,
	gekko.KeyS:       glfw.KeyS,
	gekko.KeyT:       glfw.KeyT,
	gekko.KeyU:       glfw.KeyU,
	gekko.KeyV:       glfw.KeyV,
	gekko.KeyW:       glfw.KeyW,
	gekko.KeyX:       glfw.KeyX,
	gekko.KeyY:       glfw.KeyY,
	gekko.KeyZ:       glfw.KeyZ,
	gekko.Key0:       glfw.Key0,
	gekko.Key1:       glfw.Key1,
	gekko.Key2:       glfw.Key2,
	gekko.Key3:       glfw.Key3,
	gekko.Key4:       glfw.Key4,
	gekko.Key5:       glfw.Key5,
	gekko.Key6:       glfw.Key6,
	gekko.Key7:       glfw.Key7,
	gekko.Key8:       glfw.Key8,
	gekko.Key9:       glfw.Key9,
	gekko.KeySpace:   glfw.KeySpace,
	gekko.KeyEnter:   glfw.KeyEnter,
	gekko.KeyEscape:  glfw.KeyEscape,
	gekko.KeyTab:     glfw.KeyTab,
	gekko.KeyRight:   glfw.KeyRight,
	gekko.KeyLeft:    glfw.KeyLeft,
	gekko.KeyDown:    glfw.KeyDown,
	gekko.KeyUp:      glfw.KeyUp,
	gekko.KeyF1:      glfw.KeyF1,
	gekko.KeyF2:      glfw.KeyF2,
	gekko.KeyF3:      glfw.KeyF3,
	gekko.KeyF4:      glfw.KeyF4,
	gekko.KeyMinus:   glfw.KeyMinus,
	gekko.KeyEqual:   glfw.KeyEqual,
	gekko.KeyShift:   glfw.KeyLeftShift,
	gekko.KeyControl: glfw.KeyLeftControl,
	gekko.KeyLeftAlt: glfw.KeyLeftAlt,
}
