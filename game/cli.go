package game

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/plus3/mirrorworld/config"
	"github.com/plus3/mirrorworld/level"
)

// Flags are the command-line options shared by the front-ends.
type Flags struct {
	ConfigPath string
	LevelsPath string
	LogPath    string
	Resume     bool
	NoSave     bool
	Mute       bool
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "YAML config file. Defaults apply when empty.")
	fs.StringVar(&f.LevelsPath, "levels", "", "Level pack (.txtar or .yaml) overriding the config.")
	fs.StringVar(&f.LogPath, "log", "", "Append logs to this file.")
	fs.BoolVar(&f.Resume, "resume", false, "Resume from the saved level.")
	fs.BoolVar(&f.NoSave, "no-save", false, "Do not read or write saved progress.")
	fs.BoolVar(&f.Mute, "mute", false, "Disable sound.")
}

// Config loads the config file and applies the flag overrides.
func (f *Flags) Config() (config.Config, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.LevelsPath != "" {
		cfg.Levels.Path = f.LevelsPath
	}
	if f.Resume {
		cfg.Levels.Resume = true
	}
	if f.NoSave {
		cfg.Levels.SaveApp = ""
	}
	if f.Mute {
		cfg.Audio.Enabled = false
	}
	return cfg, cfg.Validate()
}

// SetupLog points the standard logger at LogPath, or at fallback when no
// path was given. The returned closer is never nil.
func (f *Flags) SetupLog(fallback io.Writer) (io.Closer, error) {
	if f.LogPath == "" {
		log.SetOutput(fallback)
		return io.NopCloser(nil), nil
	}
	file, err := os.OpenFile(f.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("game: open log: %w", err)
	}
	log.SetOutput(file)
	return file, nil
}

// OpenProgress opens the per-user progress store named by the config.
// Failures are logged and disable saving rather than stopping the game.
func OpenProgress(cfg config.Config) level.ProgressStore {
	if cfg.Levels.SaveApp == "" {
		return nil
	}
	store, err := level.OpenGdataProgress(cfg.Levels.SaveApp)
	if err != nil {
		log.Printf("[Game] Progress disabled: %v", err)
		return nil
	}
	return store
}
