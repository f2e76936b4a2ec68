package gekko

// CameraComponent marks a camera rig. Only active cameras render.
type CameraComponent struct {
	Active bool
	Fov    float32
	Near   float32
	Far    float32
}

func NewCamera(active bool) CameraComponent {
	return CameraComponent{
		Active: active,
		Fov:    60,
		Near:   0.1,
		Far:    1000,
	}
}

// AudioListenerComponent is the ear of the scene; at most one should be enabled.
type AudioListenerComponent struct {
	Enabled bool
}
