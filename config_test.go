package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	result := loadConfigFromPath(filepath.Join(t.TempDir(), "nope.json"))

	if result.Status != "Default" {
		t.Errorf("status = %q, want Default", result.Status)
	}
	cfg := result.Config
	if cfg.WindowWidth != defaultWidth || cfg.WindowHeight != defaultHeight {
		t.Errorf("window = %dx%d, want defaults", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.Opacity != defaultOpacity {
		t.Errorf("opacity = %v, want %v", cfg.Opacity, defaultOpacity)
	}
	if cfg.CompareWidth != defaultCompareWidth {
		t.Errorf("compare width = %d, want %d", cfg.CompareWidth, defaultCompareWidth)
	}
	if cfg.Keybindings == nil || cfg.Mousebindings == nil {
		t.Error("default bindings missing")
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{broken`)
	result := loadConfigFromPath(path)

	if !result.HasError || result.Status != "Error" {
		t.Errorf("HasError=%v Status=%q, want error result", result.HasError, result.Status)
	}
	if result.Config.WindowWidth != defaultWidth {
		t.Error("invalid config should fall back to defaults")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "opacity above one resets",
			json: `{"opacity": 2.0}`,
			check: func(t *testing.T, cfg Config) {
				if cfg.Opacity != defaultOpacity {
					t.Errorf("opacity = %v, want %v", cfg.Opacity, defaultOpacity)
				}
			},
		},
		{
			name: "opacity below minimum resets",
			json: `{"opacity": 0.01}`,
			check: func(t *testing.T, cfg Config) {
				if cfg.Opacity != defaultOpacity {
					t.Errorf("opacity = %v, want %v", cfg.Opacity, defaultOpacity)
				}
			},
		},
		{
			name: "valid opacity kept",
			json: `{"opacity": 0.75}`,
			check: func(t *testing.T, cfg Config) {
				if cfg.Opacity != 0.75 {
					t.Errorf("opacity = %v, want 0.75", cfg.Opacity)
				}
			},
		},
		{
			name: "tiny window resets",
			json: `{"window_width": 100, "window_height": 50}`,
			check: func(t *testing.T, cfg Config) {
				if cfg.WindowWidth != defaultWidth || cfg.WindowHeight != defaultHeight {
					t.Errorf("window = %dx%d, want defaults", cfg.WindowWidth, cfg.WindowHeight)
				}
			},
		},
		{
			name: "tiny compare width resets",
			json: `{"compare_width": 10}`,
			check: func(t *testing.T, cfg Config) {
				if cfg.CompareWidth != defaultCompareWidth {
					t.Errorf("compare width = %d, want %d", cfg.CompareWidth, defaultCompareWidth)
				}
			},
		},
		{
			name: "valid compare width kept",
			json: `{"compare_width": 900}`,
			check: func(t *testing.T, cfg Config) {
				if cfg.CompareWidth != 900 {
					t.Errorf("compare width = %d, want 900", cfg.CompareWidth)
				}
			},
		},
		{
			name: "cache size clamped",
			json: `{"cache_size": 200}`,
			check: func(t *testing.T, cfg Config) {
				if cfg.CacheSize != 64 {
					t.Errorf("cache size = %d, want 64", cfg.CacheSize)
				}
			},
		},
		{
			name: "opacity step clamped",
			json: `{"opacity_step": 0.9}`,
			check: func(t *testing.T, cfg Config) {
				if cfg.OpacityStep != defaultOpacityStep {
					t.Errorf("opacity step = %v, want %v", cfg.OpacityStep, defaultOpacityStep)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeConfigFile(t, tt.json))
			tt.check(t, result.Config)
		})
	}
}

func TestLoadConfigKeybindingConflict(t *testing.T) {
	path := writeConfigFile(t, `{"keybindings": {"exit": ["KeyC"]}}`)
	result := loadConfigFromPath(path)

	// KeyC is the default toggle_compare binding; binding it to exit too is a
	// conflict and drops the whole custom set.
	if result.Status != "Warning" {
		t.Errorf("status = %q, want Warning", result.Status)
	}
	if got := result.Config.Keybindings["exit"]; len(got) != 1 || got[0] != "KeyQ" {
		t.Errorf("exit binding = %v, want default KeyQ", got)
	}
}

func TestLoadConfigUnknownKeyName(t *testing.T) {
	path := writeConfigFile(t, `{"keybindings": {"exit": ["KeyQQ"]}}`)
	result := loadConfigFromPath(path)

	if result.Status != "Warning" {
		t.Errorf("status = %q, want Warning", result.Status)
	}
}

func TestLoadConfigPartialKeybindingsFilled(t *testing.T) {
	path := writeConfigFile(t, `{"keybindings": {"exit": ["KeyZ"]}}`)
	result := loadConfigFromPath(path)

	if got := result.Config.Keybindings["exit"]; len(got) != 1 || got[0] != "KeyZ" {
		t.Errorf("exit binding = %v, want KeyZ", got)
	}
	if got := result.Config.Keybindings["invert"]; len(got) != 1 || got[0] != "KeyI" {
		t.Errorf("missing actions should get defaults, invert = %v", got)
	}
}

func TestValidateKeyString(t *testing.T) {
	valid := getValidKeyNames()

	tests := []struct {
		keyStr string
		ok     bool
	}{
		{"KeyA", true},
		{"Shift+KeyC", true},
		{"Ctrl+Alt+Key0", true},
		{"Escape", true},
		{"NumpadEnter", true},
		{"KeyAA", false},
		{"Super+KeyA", false},
		{"", false},
	}

	for _, tt := range tests {
		err := validateKeyString(tt.keyStr, valid)
		if (err == nil) != tt.ok {
			t.Errorf("validateKeyString(%q) = %v, want ok=%v", tt.keyStr, err, tt.ok)
		}
	}
}

func TestSaveConfigRefusesInvalidSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Config{WindowWidth: 10, WindowHeight: 10}

	saveConfigToPath(cfg, path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config with invalid window size should not be written")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := loadConfigFromPath(path).Config
	cfg.Opacity = 0.65
	cfg.CompareWidth = 800

	saveConfigToPath(cfg, path)

	reloaded := loadConfigFromPath(path)
	if reloaded.Status != "OK" {
		t.Fatalf("reload status = %q, want OK", reloaded.Status)
	}
	if reloaded.Config.Opacity != 0.65 {
		t.Errorf("opacity = %v, want 0.65", reloaded.Config.Opacity)
	}
	if reloaded.Config.CompareWidth != 800 {
		t.Errorf("compare width = %d, want 800", reloaded.Config.CompareWidth)
	}
}
