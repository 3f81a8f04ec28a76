package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML
// friendly.
type FileConfig struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`

	UserCol      string `toml:"user_col"`
	ItemCol      string `toml:"item_col"`
	TimestampCol string `toml:"timestamp_col"`
	RatingCol    string `toml:"rating_col"`
	GenreCol     string `toml:"genre_col"`

	SortByRecency *bool  `toml:"sort_by_timestamp"`
	Threshold     int    `toml:"threshold"`
	SortGenres    *bool  `toml:"sort_genres"`
	Quiet         *bool  `toml:"quiet"`
	Debounce      string `toml:"debounce"`

	Bucket        string `toml:"bucket"`
	Region        string `toml:"region"`
	Profile       string `toml:"profile"`
	UploadTimeout string `toml:"upload_timeout"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.reelprep/config.toml if the home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".reelprep", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input", fc.Input, &cfg.Input)
	s.setString("output", fc.Output, &cfg.Output)
	s.setString("user-col", fc.UserCol, &cfg.UserCol)
	s.setString("item-col", fc.ItemCol, &cfg.ItemCol)
	s.setString("timestamp-col", fc.TimestampCol, &cfg.TimestampCol)
	s.setString("rating-col", fc.RatingCol, &cfg.RatingCol)
	s.setString("genre-col", fc.GenreCol, &cfg.GenreCol)
	s.setString("bucket", fc.Bucket, &cfg.Bucket)
	s.setString("region", fc.Region, &cfg.Region)
	s.setString("profile", fc.Profile, &cfg.Profile)

	s.setInt("threshold", fc.Threshold, &cfg.Threshold)

	s.setBool("sort-by-timestamp", fc.SortByRecency, &cfg.SortByRecency)
	s.setBool("sort-genres", fc.SortGenres, &cfg.SortGenres)
	s.setBool("quiet", fc.Quiet, &cfg.Quiet)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.UploadTimeout, &cfg.UploadTimeout); err != nil {
		return err
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
