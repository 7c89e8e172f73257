package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EngineConfigPath is the path to the engine config file, relative to the
// process working directory.
const EngineConfigPath = "config/engine.json"

// EnginePrefs holds engine-only preferences (debug overlays, simulation
// tuning). Persisted across runs. Scene data is separate and lives under
// assets/scenes.
type EnginePrefs struct {
	ShowFPS            bool `json:"show_fps"`
	ShowMemAlloc       bool `json:"show_memalloc"`
	ShowDebugText      bool `json:"show_debug_text"`
	ShowCollisionDebug bool `json:"show_collision_debug"`
	// Substeps overrides the scene's substep count when > 0.
	Substeps     int  `json:"substeps,omitempty"`
	SleepEnabled bool `json:"sleep_enabled"`
}

// Default returns default engine preferences (overlays off, sleeping on,
// scene-defined substeps).
func Default() EnginePrefs {
	return EnginePrefs{
		ShowFPS:            false,
		ShowMemAlloc:       false,
		ShowDebugText:      false,
		ShowCollisionDebug: false,
		Substeps:           0,
		SleepEnabled:       true,
	}
}

// Load reads engine preferences from config/engine.json. If the file is
// missing or invalid, returns Default() and does not create a file.
func Load() (EnginePrefs, error) {
	data, err := os.ReadFile(EngineConfigPath)
	if err != nil {
		return Default(), nil
	}
	var p EnginePrefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes engine preferences to config/engine.json, creating the config
// directory if needed.
func Save(p EnginePrefs) error {
	dir := filepath.Dir(EngineConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(EngineConfigPath, data, 0644)
}
