package main

import (
	"flag"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/scenekit"
	"github.com/gekko3d/scenekit/platform"
)

func main() {
	presetDir := flag.String("presets", "presets", "directory of lighting presets")
	preset := flag.String("preset", "default.yaml", "preset file inside the preset directory")
	debug := flag.Bool("debug", false, "enable debug logging")
	quiet := flag.Bool("quiet", false, "log only warnings and errors")
	flag.Parse()

	app := gekko.NewAppBuilder().
		UseModule(gekko.LoggingModule{Debug: *debug, Quiet: *quiet}).
		UseModule(gekko.TimeModule{}).
		UseModule(gekko.InputModule{}).
		UseModule(platform.NewWindowModule(1280, 720, "scenekit demo")).
		UseModule(gekko.EnvironmentModule{Skybox: &gekko.Skybox{SupportsTint: true}}).
		UseModule(gekko.GizmoModule{}).
		UseModule(gekko.DayCycleModule{PresetDirs: []string{*presetDir}, Watch: true}).
		UseModule(gekko.ViewSwitcherModule{}).
		UseModule(gekko.WalkModule{}).
		UseModule(gekko.HierarchyModule{}).
		UseModule(gekko.FollowCameraModule{}).
		Build()

	cmd := app.Commands()
	spawnScene(cmd, filepath.Join(*presetDir, *preset))
	app.FlushCommands()

	app.Run()

	if server, ok := gekko.GetResource[gekko.PresetServer](cmd); ok {
		if err := server.Close(); err != nil {
			cmd.Logger().Warnf("close preset watcher: %v", err)
		}
	}
	if win, ok := gekko.GetResource[platform.WindowState](cmd); ok {
		win.Close()
	}
}

func spawnScene(cmd *gekko.Commands, presetFile string) {
	log := cmd.Logger()

	sunTr := gekko.NewTransform(mgl32.Vec3{0, 50, 0})
	sunLight := gekko.NewDirectionalLight([3]float32{1, 1, 1}, 1)
	sun := cmd.AddEntity(&sunTr, &sunLight)

	clock := gekko.NewDayCycle(sun, gekko.DefaultDayCycleSettings())
	clock.ShowSunGizmo = true
	if server, ok := gekko.GetResource[gekko.PresetServer](cmd); ok {
		if id, ok := server.Lookup(presetFile); ok {
			settings, _ := server.Get(id)
			clock = gekko.NewDayCycle(sun, settings)
			clock.Preset = id
			clock.ShowSunGizmo = true
		} else {
			log.Warnf("preset %s not loaded, using defaults", presetFile)
		}
	}
	cmd.AddEntity(&clock)

	playerTr := gekko.NewTransform(mgl32.Vec3{0, 0, 0})
	player := cmd.AddEntity(&playerTr, &gekko.WalkComponent{Speed: gekko.DefaultWalkSpeed})

	thirdTr := gekko.NewTransform(mgl32.Vec3{0, 2, 5})
	thirdCam := gekko.NewCamera(true)
	follow := gekko.NewFollowCamera(player)
	third := cmd.AddEntity(&thirdTr, &thirdCam, &follow, &gekko.AudioListenerComponent{Enabled: true})

	firstLocal := gekko.NewLocalTransform(mgl32.Vec3{0, 1.7, 0})
	firstTr := gekko.NewTransform(mgl32.Vec3{0, 1.7, 0})
	firstCam := gekko.NewCamera(false)
	first := cmd.AddEntity(&firstLocal, &firstTr, &firstCam, &gekko.Parent{Entity: player})

	switcher := gekko.NewViewSwitcher(third, first, player)
	cmd.AddComponents(player, &switcher)
}
