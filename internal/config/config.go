package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/layout"
	"github.com/san-kum/constellation/internal/motion"
	"github.com/san-kum/constellation/internal/scene"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCount       = 20
	DefaultRadius      = 8.0
	DefaultK           = 3
	DefaultNodeSize    = 0.3
	DefaultAmplitude   = 0.01
	DefaultPhaseStep   = 0.5
	DefaultTimeScale   = 0.001
	DefaultFOV         = 75.0
	DefaultNear        = 0.1
	DefaultFar         = 1000.0
	DefaultDistance    = 15.0
	DefaultDamping     = 0.05
	DefaultFPS         = 60
	DefaultDuration    = 10.0
	DefaultSampleEvery = 6
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

var validate = validator.New()

type Config struct {
	Preset  string       `yaml:"preset,omitempty" toml:"preset,omitempty"`
	Seed    int64        `yaml:"seed" toml:"seed"`
	Content string       `yaml:"content,omitempty" toml:"content,omitempty"`
	Nodes   NodesConfig  `yaml:"nodes" toml:"nodes"`
	Motion  MotionConfig `yaml:"motion" toml:"motion"`
	Camera  CameraConfig `yaml:"camera" toml:"camera"`
	Render  RenderConfig `yaml:"render" toml:"render"`
	Run     RunConfig    `yaml:"run" toml:"run"`
}

type NodesConfig struct {
	Count       int         `yaml:"count" toml:"count" validate:"gte=0,lte=5000"`
	Radius      float64     `yaml:"radius" toml:"radius" validate:"gt=0"`
	YOffset     float64     `yaml:"y_offset" toml:"y_offset"`
	K           int         `yaml:"k" toml:"k" validate:"gte=0"`
	Size        float64     `yaml:"node_size" toml:"node_size" validate:"gt=0"`
	Proxy       scene.Proxy `yaml:"proxy" toml:"proxy" validate:"oneof=sphere plane"`
	BoundFactor float64     `yaml:"bound_factor" toml:"bound_factor" validate:"gte=1"`
}

type MotionConfig struct {
	Amplitude   float64    `yaml:"amplitude" toml:"amplitude" validate:"gte=0"`
	Frequencies [3]float64 `yaml:"frequencies" toml:"frequencies"`
	PhaseStep   float64    `yaml:"phase_step" toml:"phase_step"`
	TimeScale   float64    `yaml:"time_scale" toml:"time_scale" validate:"gte=0"`
}

type CameraConfig struct {
	FOV        float64 `yaml:"fov" toml:"fov" validate:"gt=0,lt=180"`
	Near       float64 `yaml:"near" toml:"near" validate:"gt=0"`
	Far        float64 `yaml:"far" toml:"far" validate:"gtfield=Near"`
	Distance   float64 `yaml:"distance" toml:"distance" validate:"gt=0"`
	Damping    float64 `yaml:"damping" toml:"damping" validate:"gte=0,lte=1"`
	AutoRotate float64 `yaml:"auto_rotate" toml:"auto_rotate"`
}

type RenderConfig struct {
	FPS       int  `yaml:"fps" toml:"fps" validate:"gt=0,lte=240"`
	Billboard bool `yaml:"billboard" toml:"billboard"`
	HoverSwap bool `yaml:"hover_swap" toml:"hover_swap"`
}

type RunConfig struct {
	Duration    float64 `yaml:"duration" toml:"duration" validate:"gt=0"`
	SampleEvery int     `yaml:"sample_every" toml:"sample_every" validate:"gt=0"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset: "classic",
		Nodes: NodesConfig{
			Count:       DefaultCount,
			Radius:      DefaultRadius,
			K:           DefaultK,
			Size:        DefaultNodeSize,
			Proxy:       scene.ProxySphere,
			BoundFactor: scene.DefaultBoundFactor,
		},
		Motion: MotionConfig{
			Amplitude:   DefaultAmplitude,
			Frequencies: [3]float64{0.5, 0.7, 0.3},
			PhaseStep:   DefaultPhaseStep,
			TimeScale:   DefaultTimeScale,
		},
		Camera: CameraConfig{
			FOV:      DefaultFOV,
			Near:     DefaultNear,
			Far:      DefaultFar,
			Distance: DefaultDistance,
			Damping:  DefaultDamping,
		},
		Render: RenderConfig{
			FPS:       DefaultFPS,
			HoverSwap: true,
		},
		Run: RunConfig{
			Duration:    DefaultDuration,
			SampleEvery: DefaultSampleEvery,
		},
	}
}

// Load reads a YAML or TOML config, picked by extension. Keys missing from
// the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes the file at path onto cfg. Keys missing from the file
// keep whatever cfg already holds.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isTOML(path) {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate checks every section and reports all failures at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s %s", strings.ToLower(fe.Namespace()), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Layout returns the sampling and graph parameters.
func (c *Config) Layout() layout.Params {
	return layout.Params{
		Count:       c.Nodes.Count,
		Radius:      c.Nodes.Radius,
		YOffset:     c.Nodes.YOffset,
		K:           c.Nodes.K,
		BoundFactor: c.Nodes.BoundFactor,
		Proxy:       c.Nodes.Proxy,
		ProxySize:   c.Nodes.Size,
	}
}

// Bound is the containment radius.
func (c *Config) Bound() float64 {
	return c.Nodes.Radius * c.Nodes.BoundFactor
}

// Drift returns the idle motion parameters.
func (c *Config) Drift() motion.Drift {
	return motion.Drift{
		Amplitude:   c.Motion.Amplitude,
		Frequencies: c.Motion.Frequencies,
		PhaseStep:   c.Motion.PhaseStep,
		Bound:       c.Bound(),
	}
}

// NewCamera builds the perspective camera for a viewport aspect ratio.
func (c *Config) NewCamera(aspect float64) *camera.Camera {
	return camera.New(c.Camera.FOV, aspect, c.Camera.Near, c.Camera.Far, c.Camera.Distance)
}

// NewOrbit attaches orbit controls to cam.
func (c *Config) NewOrbit(cam *camera.Camera) *camera.Orbit {
	o := camera.NewOrbit(cam, c.Camera.Damping)
	o.AutoRotate = c.Camera.AutoRotate
	return o
}
