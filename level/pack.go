package level

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"
)

//go:embed levels.txtar
var builtinLevels []byte

// DefaultPack returns the built-in levels.
func DefaultPack() *Pack {
	pack, err := ParseArchive(builtinLevels)
	if err != nil {
		panic(fmt.Sprintf("level: built-in pack: %v", err))
	}
	return pack
}

// ParseArchive reads a txtar archive holding one YAML level per file.
// Files are played in archive order; files not ending in .yaml or .yml
// are ignored.
func ParseArchive(data []byte) (*Pack, error) {
	archive := txtar.Parse(data)

	pack := &Pack{}
	for _, f := range archive.Files {
		ext := filepath.Ext(f.Name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		l := &Level{}
		if err := yaml.Unmarshal(f.Data, l); err != nil {
			return nil, fmt.Errorf("level: parse %s: %w", f.Name, err)
		}
		pack.Levels = append(pack.Levels, l)
	}

	if err := pack.Validate(); err != nil {
		return nil, err
	}
	return pack, nil
}

// ParseYAML reads a pack from a single YAML document with a top-level
// levels list.
func ParseYAML(data []byte) (*Pack, error) {
	pack := &Pack{}
	if err := yaml.Unmarshal(data, pack); err != nil {
		return nil, fmt.Errorf("level: parse pack: %w", err)
	}
	if err := pack.Validate(); err != nil {
		return nil, err
	}
	return pack, nil
}

// LoadPackFile reads a pack from a .txtar archive or a YAML file.
func LoadPackFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read pack: %w", err)
	}

	var pack *Pack
	if strings.EqualFold(filepath.Ext(path), ".txtar") {
		pack, err = ParseArchive(data)
	} else {
		pack, err = ParseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pack, nil
}

// Archive encodes the pack as a txtar archive that ParseArchive reads back.
func (p *Pack) Archive() ([]byte, error) {
	archive := &txtar.Archive{}
	for i, l := range p.Levels {
		data, err := yaml.Marshal(l)
		if err != nil {
			return nil, fmt.Errorf("level: encode level %d: %w", l.ID, err)
		}
		archive.Files = append(archive.Files, txtar.File{
			Name: fmt.Sprintf("%02d-level-%d.yaml", i+1, l.ID),
			Data: data,
		})
	}
	return txtar.Format(archive), nil
}
