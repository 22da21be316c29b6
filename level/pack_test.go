package level_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/mirrorworld/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPack(t *testing.T) {
	pack := level.DefaultPack()
	require.Equal(t, 2, pack.Len())

	first, err := pack.At(0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, level.Point{X: 64, Y: 64}, first.Start)
	assert.Equal(t, level.Point{X: 704, Y: 512}, first.Exit)
	assert.Len(t, first.Walls, 7)
	assert.Equal(t, level.Rect{X: 200, Y: 100, W: 32, H: 400}, first.Walls[4])

	second, err := pack.At(1)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, level.Point{X: 64, Y: 512}, second.Start)
	assert.Equal(t, level.Point{X: 704, Y: 64}, second.Exit)
	assert.Len(t, second.Walls, 8)
	assert.Equal(t, "Level 2: The Maze", second.Title())

	_, err = pack.At(2)
	assert.ErrorIs(t, err, level.ErrLevelIndex)
}

func TestParseArchiveSkipsNonLevelFiles(t *testing.T) {
	data := []byte(`comment
-- README.md --
not a level
-- one.yaml --
id: 7
start: {x: 1, y: 2}
exit: {x: 3, y: 4}
walls: []
`)
	pack, err := level.ParseArchive(data)
	require.NoError(t, err)
	require.Equal(t, 1, pack.Len())
	assert.Equal(t, 7, pack.Levels[0].ID)
	assert.Equal(t, "Level 7", pack.Levels[0].Title())
}

func TestPackValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "levels: []", level.ErrEmptyPack},
		{"zero id", "levels: [{id: 0}]", level.ErrInvalidLevel},
		{"duplicate id", "levels: [{id: 1}, {id: 1}]", level.ErrInvalidLevel},
		{"flat wall", "levels: [{id: 1, walls: [{x: 0, y: 0, w: 10, h: 0}]}]", level.ErrInvalidLevel},
		{"negative wall", "levels: [{id: 1, walls: [{x: 0, y: 0, w: -1, h: 5}]}]", level.ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := level.ParseYAML([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseYAMLSyntaxError(t *testing.T) {
	_, err := level.ParseYAML([]byte("levels: [unterminated"))
	assert.Error(t, err)
}

func TestLoadPackFile(t *testing.T) {
	dir := t.TempDir()

	archive, err := level.DefaultPack().Archive()
	require.NoError(t, err)
	txtarPath := filepath.Join(dir, "pack.txtar")
	require.NoError(t, os.WriteFile(txtarPath, archive, 0o644))

	yamlPath := filepath.Join(dir, "pack.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
levels:
  - id: 3
    start: {x: 64, y: 64}
    exit: {x: 100, y: 100}
    walls:
      - {x: 0, y: 0, w: 800, h: 32}
`), 0o644))

	fromArchive, err := level.LoadPackFile(txtarPath)
	require.NoError(t, err)
	assert.Equal(t, level.DefaultPack().Levels, fromArchive.Levels)

	fromYAML, err := level.LoadPackFile(yamlPath)
	require.NoError(t, err)
	require.Equal(t, 1, fromYAML.Len())
	assert.Equal(t, 3, fromYAML.Levels[0].ID)

	_, err = level.LoadPackFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
