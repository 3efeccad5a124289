package config

import (
	"sort"

	"github.com/san-kum/constellation/internal/scene"
)

// Presets are complete configurations; a preset's k is authoritative over
// the default.
var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"cards": func() *Config {
		c := DefaultConfig()
		c.Preset = "cards"
		c.Nodes.Proxy = scene.ProxyPlane
		c.Nodes.Size = 1.2
		c.Motion.Frequencies = [3]float64{0.3, 0.4, 0.2}
		c.Motion.Amplitude = 0.002
		c.Motion.PhaseStep = 0.2
		c.Render.Billboard = true
		return c
	}(),
	"dense": func() *Config {
		c := DefaultConfig()
		c.Preset = "dense"
		c.Nodes.Count = 120
		c.Nodes.K = 4
		c.Nodes.Size = 0.15
		return c
	}(),
	"calm": func() *Config {
		c := DefaultConfig()
		c.Preset = "calm"
		c.Motion.Amplitude = 0.003
		c.Motion.TimeScale = 0.0005
		c.Camera.AutoRotate = 0.002
		c.Camera.Damping = 0.1
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
