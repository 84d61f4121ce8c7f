// Package tuning loads physics and camera knobs from config/tuning.yaml and reloads them when the
// file changes.
package tuning

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"silly-billy/internal/interact"
	"silly-billy/internal/orbit"
	"silly-billy/internal/physics"

	"github.com/chewxy/math32"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

const (
	// TuningPath is the tuning file, relative to the working directory.
	TuningPath = "config/tuning.yaml"
	// MaxBalls caps the free balls.
	MaxBalls = 50
)

// Camera holds the orbit camera limits.
type Camera struct {
	Damping     float32 `yaml:"damping"`
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	MaxPolar    float32 `yaml:"max_polar"`
}

// Tuning is everything the tuning file can override. Keys missing from the file keep their defaults.
type Tuning struct {
	Presets    []interact.Preset `yaml:"presets"`
	Iterations int               `yaml:"iterations"`
	Balls      int               `yaml:"balls"`
	Camera     Camera            `yaml:"camera"`
}

var defaults = Tuning{
	Presets:    interact.DefaultPresets,
	Iterations: physics.DefaultIterations,
	Balls:      3,
	Camera: Camera{
		Damping:     orbit.DefaultDamping,
		MinDistance: orbit.DefaultMinDistance,
		MaxDistance: orbit.DefaultMaxDistance,
		MaxPolar:    orbit.DefaultMaxPolar,
	},
}

// Default returns a fresh copy of the built-in tuning. Callers may modify it freely.
func Default() Tuning {
	var t Tuning
	if err := copier.CopyWithOption(&t, &defaults, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("tuning: copy defaults: %v", err))
	}
	return t
}

// Parse decodes YAML over the defaults and checks the result.
func Parse(data []byte) (Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Default(), fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Default(), err
	}
	return t, nil
}

// Load reads the tuning file at path. A missing file yields the defaults and no error.
func Load(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read tuning: %w", err)
	}
	return Parse(data)
}

// Save writes t to path as YAML, creating the directory if needed.
func Save(path string, t Tuning) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode tuning: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the simulation cannot run with.
func (t Tuning) Validate() error {
	if len(t.Presets) == 0 {
		return errors.New("tuning: no presets")
	}
	seen := make(map[string]bool, len(t.Presets))
	for _, p := range t.Presets {
		if p.Name == "" {
			return errors.New("tuning: preset without a name")
		}
		if seen[p.Name] {
			return fmt.Errorf("tuning: duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
		if p.Damping < 0 || p.Damping >= 1 {
			return fmt.Errorf("tuning: preset %q damping %v outside [0,1)", p.Name, p.Damping)
		}
	}
	if t.Iterations < 1 {
		return fmt.Errorf("tuning: iterations %d < 1", t.Iterations)
	}
	if t.Balls < 0 || t.Balls > MaxBalls {
		return fmt.Errorf("tuning: balls %d outside [0,%d]", t.Balls, MaxBalls)
	}
	if t.Camera.MinDistance <= 0 || t.Camera.MaxDistance < t.Camera.MinDistance {
		return fmt.Errorf("tuning: camera distance range [%v,%v] invalid", t.Camera.MinDistance, t.Camera.MaxDistance)
	}
	if t.Camera.Damping <= 0 || t.Camera.Damping > 1 {
		return fmt.Errorf("tuning: camera damping %v outside (0,1]", t.Camera.Damping)
	}
	if t.Camera.MaxPolar <= 0 || t.Camera.MaxPolar >= math32.Pi {
		return fmt.Errorf("tuning: camera max_polar %v outside (0,pi)", t.Camera.MaxPolar)
	}
	return nil
}

// Preset returns the named preset.
func (t Tuning) Preset(name string) (interact.Preset, bool) {
	for _, p := range t.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return interact.Preset{}, false
}
