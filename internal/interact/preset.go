package interact

import "fmt"

// Preset is a named physics feel: world gravity along Y and the damping set on every doll part.
type Preset struct {
	Name    string  `yaml:"name"`
	Gravity float32 `yaml:"gravity"`
	Damping float32 `yaml:"damping"`
}

// DefaultPresets are the presets offered on the HUD, in button order.
var DefaultPresets = []Preset{
	{Name: "normal", Gravity: -9.82, Damping: 0.01},
	{Name: "bouncy", Gravity: -5, Damping: 0.005},
	{Name: "heavy", Gravity: -15, Damping: 0.02},
}

// DefaultPreset is active until another one is applied.
const DefaultPreset = "normal"

func findPreset(presets []Preset, name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q", name)
}
