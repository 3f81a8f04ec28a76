package cliconfig

import (
	"fmt"
	"strconv"
	"time"
)

// Default column names follow the MovieLens CSV conventions.
const (
	DefaultUserCol      = "userId"
	DefaultItemCol      = "movieId"
	DefaultTimestampCol = "timestamp"
	DefaultRatingCol    = "rating"
	DefaultGenreCol     = "genres"
)

// DefaultThreshold is the minimum rating count for filter-users.
const DefaultThreshold = 30

// Config holds CLI configuration shared by the reelprep subcommands.
// Precedence: flags > environment (REELPREP_*) > config file > defaults.
type Config struct {
	Input  string
	Output string

	UserCol      string
	ItemCol      string
	TimestampCol string
	RatingCol    string
	GenreCol     string

	SortByRecency bool
	Threshold     int
	SortGenres    bool
	Quiet         bool

	Watch    bool
	Debounce time.Duration

	Bucket        string
	Key           string
	File          string
	Region        string
	Profile       string
	UploadTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		UserCol:       DefaultUserCol,
		ItemCol:       DefaultItemCol,
		TimestampCol:  DefaultTimestampCol,
		RatingCol:     DefaultRatingCol,
		GenreCol:      DefaultGenreCol,
		Threshold:     DefaultThreshold,
		Debounce:      500 * time.Millisecond,
		UploadTimeout: 60 * time.Second,
	}
}

// Validate checks the parts of the configuration shared by the CSV
// subcommands.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	for name, col := range map[string]string{
		"user-col":      c.UserCol,
		"item-col":      c.ItemCol,
		"timestamp-col": c.TimestampCol,
		"rating-col":    c.RatingCol,
		"genre-col":     c.GenreCol,
	} {
		if col == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	if c.Threshold < 1 {
		return fmt.Errorf("threshold must be >= 1")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't
// been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag
// not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if
// valid. Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false. Used for
// environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
