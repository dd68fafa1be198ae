package genconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file, relative to the process working directory.
const ConfigPath = "config/herogen.yaml"

// DefaultExportPath mirrors the asset layout of the game project the hero is built for.
const DefaultExportPath = "Assets/_Game/Models/Hero.glb"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Prefs holds generator preferences. Every field is optional: the zero file
// reproduces the default run.
type Prefs struct {
	Export   ExportPrefs   `yaml:"export"`
	Log      LogPrefs      `yaml:"log"`
	Snapshot SnapshotPrefs `yaml:"snapshot"`
}

// ExportPrefs controls whether and how the character is written out.
type ExportPrefs struct {
	Enabled bool   `yaml:"enabled" env:"HEROGEN_EXPORT_ENABLED"`
	Path    string `yaml:"path" env:"HEROGEN_EXPORT_PATH"`
	// Format overrides the path's extension: glb, gltf or obj.
	Format         string `yaml:"format,omitempty" env:"HEROGEN_EXPORT_FORMAT"`
	UpAxis         string `yaml:"up_axis" env:"HEROGEN_EXPORT_UP_AXIS"`
	Smoothing      string `yaml:"smoothing" env:"HEROGEN_EXPORT_SMOOTHING"`
	SelectionOnly  bool   `yaml:"selection_only" env:"HEROGEN_EXPORT_SELECTION_ONLY"`
	IncludeEmpties bool   `yaml:"include_empties" env:"HEROGEN_EXPORT_INCLUDE_EMPTIES"`
	BakeTransforms bool   `yaml:"bake_transforms" env:"HEROGEN_EXPORT_BAKE_TRANSFORMS"`
}

// LogPrefs selects the log level and an optional JSON log file.
type LogPrefs struct {
	Level string `yaml:"level" env:"HEROGEN_LOG_LEVEL"`
	File  string `yaml:"file,omitempty" env:"HEROGEN_LOG_FILE"`
}

// SnapshotPrefs configures the PNG thumbnail. An empty Path skips it during generate.
type SnapshotPrefs struct {
	Path string `yaml:"path,omitempty" env:"HEROGEN_SNAPSHOT_PATH"`
	Size int    `yaml:"size" env:"HEROGEN_SNAPSHOT_SIZE"`
	View string `yaml:"view" env:"HEROGEN_SNAPSHOT_VIEW"`
}

// Default returns the preferences of a plain run: export the selection to
// DefaultExportPath as Y-up GLB with baked transforms, info logging, no thumbnail.
func Default() Prefs {
	return Prefs{
		Export: ExportPrefs{
			Enabled:        true,
			Path:           DefaultExportPath,
			UpAxis:         "y",
			Smoothing:      "face",
			SelectionOnly:  true,
			IncludeEmpties: true,
			BakeTransforms: true,
		},
		Log:      LogPrefs{Level: "info"},
		Snapshot: SnapshotPrefs{Size: 512, View: "front"},
	}
}

// Load reads preferences from path. A missing file yields Default(); keys
// absent from the file keep their defaults. Invalid YAML is an error.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return p, nil
}

// LoadWithEnv loads path and then applies HEROGEN_* overrides from environ.
func LoadWithEnv(path string, environ map[string]string) (Prefs, error) {
	p, err := Load(path)
	if err != nil {
		return p, err
	}
	if err := env.ParseWithOptions(&p, env.Options{Environment: environ}); err != nil {
		return p, fmt.Errorf("config: parse env: %w", err)
	}
	return p, nil
}

// Save writes preferences to path as YAML, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var (
	formats    = []string{"", "glb", "gltf", "obj"}
	upAxes     = []string{"y", "z"}
	smoothings = []string{"face", "off"}
	views      = []string{"front", "side"}
)

// Validate rejects combinations the pipeline cannot honour. Export enabled
// with an empty path is an error rather than a silent skip.
func (p Prefs) Validate() error {
	e := p.Export
	if e.Enabled && e.Path == "" {
		return fmt.Errorf("%w: export.enabled is set but export.path is empty", ErrInvalid)
	}
	if err := oneOf("export.format", e.Format, formats); err != nil {
		return err
	}
	if err := oneOf("export.up_axis", e.UpAxis, upAxes); err != nil {
		return err
	}
	if err := oneOf("export.smoothing", e.Smoothing, smoothings); err != nil {
		return err
	}
	if err := oneOf("snapshot.view", p.Snapshot.View, views); err != nil {
		return err
	}
	if p.Snapshot.Size <= 0 {
		return fmt.Errorf("%w: snapshot.size must be positive, got %d", ErrInvalid, p.Snapshot.Size)
	}
	return nil
}

func oneOf(key, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("%w: %s %q is not one of %q", ErrInvalid, key, value, allowed)
}
