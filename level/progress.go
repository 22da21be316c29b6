package level

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Progress is what survives between sessions.
type Progress struct {
	// Level is the index of the level last loaded.
	Level int `yaml:"level"`
	// Best is the highest level index ever reached.
	Best int `yaml:"best"`
	// Runs counts completed runs through the whole pack.
	Runs int `yaml:"runs"`
}

// ProgressStore persists Progress between runs.
type ProgressStore interface {
	Load() (Progress, error)
	Save(Progress) error
}

const (
	progressObject   = "progress"
	progressProperty = "state.yaml"
)

// GdataProgress keeps progress in the platform's per-user data directory.
type GdataProgress struct {
	data *gdata.Manager
}

// OpenGdataProgress opens the data directory of the named application.
func OpenGdataProgress(appName string) (*GdataProgress, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("level: open save data: %w", err)
	}
	return &GdataProgress{data: m}, nil
}

// Load returns zero progress when nothing was saved yet.
func (g *GdataProgress) Load() (Progress, error) {
	var p Progress
	if !g.data.ObjectPropExists(progressObject, progressProperty) {
		return p, nil
	}
	raw, err := g.data.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return p, fmt.Errorf("level: load progress: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Progress{}, fmt.Errorf("level: decode progress: %w", err)
	}
	return p, nil
}

func (g *GdataProgress) Save(p Progress) error {
	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("level: encode progress: %w", err)
	}
	if err := g.data.SaveObjectProp(progressObject, progressProperty, raw); err != nil {
		return fmt.Errorf("level: save progress: %w", err)
	}
	return nil
}

// MemoryProgress is a ProgressStore that keeps progress in memory.
type MemoryProgress struct {
	Saved Progress
	Saves int
}

func (m *MemoryProgress) Load() (Progress, error) {
	return m.Saved, nil
}

func (m *MemoryProgress) Save(p Progress) error {
	m.Saved = p
	m.Saves++
	return nil
}
