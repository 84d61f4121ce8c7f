package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EngineConfigPath is the path to the engine config file, relative to the process working directory.
const EngineConfigPath = "config/engine.json"

// EnginePrefs holds host preferences (debug overlays, grid, starting preset, AI model, HUD font).
// Persisted across runs. Physics tuning lives in the tuning file instead.
type EnginePrefs struct {
	ShowFPS      bool   `json:"show_fps"`
	ShowMemAlloc bool   `json:"show_memalloc"`
	GridVisible  bool   `json:"grid_visible"`
	Preset       string `json:"preset,omitempty"`
	AIModel      string `json:"ai_model,omitempty"`
	Font         string `json:"font,omitempty"`
}

// Default returns default preferences: overlays and grid off, the normal preset.
// AIModel is empty so the director uses its provider's default model.
func Default() EnginePrefs {
	return EnginePrefs{Preset: "normal"}
}

// Load reads preferences from EngineConfigPath. See LoadFrom.
func Load() (EnginePrefs, error) {
	return LoadFrom(EngineConfigPath)
}

// LoadFrom reads preferences from path. Keys missing from the file keep their defaults.
// If the file is missing or invalid, returns Default() and does not create a file.
func LoadFrom(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// SaveTo writes preferences to path, creating its directory if needed.
func SaveTo(path string, p EnginePrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
