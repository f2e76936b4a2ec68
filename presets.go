package gekko

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type AssetId string

var (
	ErrUnknownPreset   = errors.New("scenekit: unknown preset")
	ErrInvalidSettings = errors.New("scenekit: invalid day cycle settings")
)

type curveKeyDoc struct {
	Time       float32  `yaml:"time"`
	Value      float32  `yaml:"value"`
	InTangent  *float32 `yaml:"in_tangent"`
	OutTangent *float32 `yaml:"out_tangent"`
}

type gradientColorDoc struct {
	Time  float32    `yaml:"time"`
	Color ColorValue `yaml:"color"`
}

type gradientAlphaDoc struct {
	Time  float32 `yaml:"time"`
	Alpha float32 `yaml:"alpha"`
}

type gradientDoc struct {
	Mode   string             `yaml:"mode"`
	Colors []gradientColorDoc `yaml:"colors"`
	Alphas []gradientAlphaDoc `yaml:"alphas"`
}

type dayCycleDoc struct {
	DayDuration      *float32 `yaml:"day_duration"`
	StartTime        *float64 `yaml:"start_time"`
	TimeScale        *float32 `yaml:"time_scale"`
	Reversed         bool     `yaml:"reversed"`
	BaseSunIntensity *float32 `yaml:"base_sun_intensity"`
	SunAzimuth       float32  `yaml:"sun_azimuth"`
	Shadows          *bool    `yaml:"shadows"`

	SunIntensityCurve     []curveKeyDoc `yaml:"sun_intensity_curve"`
	AmbientIntensityCurve []curveKeyDoc `yaml:"ambient_intensity_curve"`
	SunColorGradient      *gradientDoc  `yaml:"sun_color_gradient"`
	AmbientColorGradient  *gradientDoc  `yaml:"ambient_color_gradient"`
}

// ParseDayCycleSettings decodes a YAML lighting preset. Omitted fields keep
// the values of DefaultDayCycleSettings.
func ParseDayCycleSettings(data []byte) (DayCycleSettings, error) {
	var doc dayCycleDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return DayCycleSettings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	settings := DefaultDayCycleSettings()
	if doc.DayDuration != nil {
		if *doc.DayDuration <= 0 {
			return DayCycleSettings{}, fmt.Errorf("%w: day_duration must be positive, got %v", ErrInvalidSettings, *doc.DayDuration)
		}
		settings.DayDuration = *doc.DayDuration
	}
	if doc.StartTime != nil {
		if *doc.StartTime < 0 || *doc.StartTime > 1 {
			return DayCycleSettings{}, fmt.Errorf("%w: start_time must be within [0, 1], got %v", ErrInvalidSettings, *doc.StartTime)
		}
		settings.StartTime = *doc.StartTime
	}
	if doc.TimeScale != nil {
		if *doc.TimeScale < 0 {
			return DayCycleSettings{}, fmt.Errorf("%w: time_scale must not be negative, got %v", ErrInvalidSettings, *doc.TimeScale)
		}
		settings.TimeScale = *doc.TimeScale
	}
	if doc.BaseSunIntensity != nil {
		settings.BaseSunIntensity = *doc.BaseSunIntensity
	}
	if doc.Shadows != nil {
		settings.ShadowsEnabled = *doc.Shadows
	}
	settings.Reversed = doc.Reversed
	settings.SunAzimuth = doc.SunAzimuth

	settings.SunIntensityCurve = buildCurve(doc.SunIntensityCurve)
	settings.AmbientIntensityCurve = buildCurve(doc.AmbientIntensityCurve)

	var err error
	if settings.SunColorGradient, err = buildGradient(doc.SunColorGradient); err != nil {
		return DayCycleSettings{}, fmt.Errorf("sun_color_gradient: %w", err)
	}
	if settings.AmbientColorGradient, err = buildGradient(doc.AmbientColorGradient); err != nil {
		return DayCycleSettings{}, fmt.Errorf("ambient_color_gradient: %w", err)
	}

	return settings, nil
}

// buildCurve fills missing tangents with the slopes of a piecewise linear curve.
func buildCurve(keys []curveKeyDoc) *AnimationCurve {
	if len(keys) == 0 {
		return nil
	}
	sorted := slices.Clone(keys)
	slices.SortStableFunc(sorted, func(a, b curveKeyDoc) int { return compareTime(a.Time, b.Time) })

	frames := make([]Keyframe, len(sorted))
	for i, k := range sorted {
		frames[i] = Keyframe{Time: k.Time, Value: k.Value}
	}
	curve := NewLinearCurve(frames...)
	for i, k := range sorted {
		if k.InTangent != nil {
			curve.Keys[i].InTangent = *k.InTangent
		}
		if k.OutTangent != nil {
			curve.Keys[i].OutTangent = *k.OutTangent
		}
	}
	return curve
}

func buildGradient(doc *gradientDoc) (*Gradient, error) {
	if doc == nil {
		return nil, nil
	}

	var mode GradientMode
	switch strings.ToLower(doc.Mode) {
	case "", "blend":
		mode = GradientBlend
	case "fixed":
		mode = GradientFixed
	default:
		return nil, fmt.Errorf("%w: unknown gradient mode %q", ErrInvalidSettings, doc.Mode)
	}

	colors := make([]GradientColorKey, len(doc.Colors))
	for i, c := range doc.Colors {
		colors[i] = GradientColorKey{Time: c.Time, Color: c.Color.Vec3()}
	}
	alphas := make([]GradientAlphaKey, len(doc.Alphas))
	for i, a := range doc.Alphas {
		alphas[i] = GradientAlphaKey{Time: a.Time, Alpha: a.Alpha}
	}
	return NewGradient(mode, colors, alphas), nil
}

func LoadDayCycleSettings(filename string) (DayCycleSettings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return DayCycleSettings{}, fmt.Errorf("scenekit: load %s: %w", filename, err)
	}
	settings, err := ParseDayCycleSettings(data)
	if err != nil {
		return DayCycleSettings{}, fmt.Errorf("scenekit: parse %s: %w", filename, err)
	}
	return settings, nil
}

// PresetServer keeps lighting presets by id. Presets loaded from files
// keep their id when the file is loaded again.
type PresetServer struct {
	presets map[AssetId]DayCycleSettings
	byPath  map[string]AssetId

	watcher *PresetWatcher
}

func NewPresetServer() *PresetServer {
	return &PresetServer{
		presets: make(map[AssetId]DayCycleSettings),
		byPath:  make(map[string]AssetId),
	}
}

func (server *PresetServer) Add(settings DayCycleSettings) AssetId {
	id := makeAssetId()
	server.presets[id] = settings
	return id
}

func (server *PresetServer) Get(id AssetId) (DayCycleSettings, error) {
	settings, ok := server.presets[id]
	if !ok {
		return DayCycleSettings{}, fmt.Errorf("%w: %s", ErrUnknownPreset, id)
	}
	return settings, nil
}

// Lookup finds the id of a preset loaded from filename.
func (server *PresetServer) Lookup(filename string) (AssetId, bool) {
	id, ok := server.byPath[cleanPresetPath(filename)]
	return id, ok
}

// Load reads a preset file. A failed reload leaves the previous settings in place.
func (server *PresetServer) Load(filename string) (AssetId, error) {
	path := cleanPresetPath(filename)
	settings, err := LoadDayCycleSettings(path)
	if err != nil {
		return "", err
	}

	id, ok := server.byPath[path]
	if !ok {
		id = makeAssetId()
		server.byPath[path] = id
	}
	server.presets[id] = settings
	return id, nil
}

// LoadDir loads every *.yaml and *.yml file in dir, in name order.
func (server *PresetServer) LoadDir(dir string) ([]AssetId, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scenekit: read preset dir %s: %w", dir, err)
	}

	var ids []AssetId
	for _, entry := range entries {
		if entry.IsDir() || !isPresetFile(entry.Name()) {
			continue
		}
		id, err := server.Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (server *PresetServer) Watch(watcher *PresetWatcher) {
	server.watcher = watcher
}

func (server *PresetServer) Close() error {
	if server.watcher == nil {
		return nil
	}
	err := server.watcher.Close()
	server.watcher = nil
	return err
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

func cleanPresetPath(filename string) string {
	if abs, err := filepath.Abs(filename); err == nil {
		return abs
	}
	return filepath.Clean(filename)
}

func isPresetFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// presetReloadSystem drains watcher events without blocking and pushes
// reloaded presets into every clock that uses them.
func presetReloadSystem(cmd *Commands, server *PresetServer, log Logger) {
	if server.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-server.watcher.Events:
			if !ok {
				server.watcher = nil
				return
			}
			id, err := server.Load(path)
			if err != nil {
				log.Warnf("day cycle: reload preset: %v", err)
				continue
			}
			log.Infof("day cycle: reloaded preset %s", path)
			applyPreset(cmd, server, id)
		case err, ok := <-server.watcher.Errors:
			if !ok {
				server.watcher = nil
				return
			}
			log.Warnf("day cycle: preset watcher: %v", err)
		default:
			return
		}
	}
}

func applyPreset(cmd *Commands, server *PresetServer, id AssetId) {
	settings, err := server.Get(id)
	if err != nil {
		return
	}
	MakeQuery1[DayCycleComponent](cmd).Map(func(eid EntityId, dc *DayCycleComponent) bool {
		if dc.Preset == id {
			DayCycleController{cmd: cmd, dc: dc}.ApplySettings(settings)
		}
		return true
	})
}
