package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (REELPREP_*). It respects flags that have been explicitly set (changed
// map). Returns an error if any environment variable has an invalid
// format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input", os.Getenv("REELPREP_INPUT"), &cfg.Input)
	s.setString("output", os.Getenv("REELPREP_OUTPUT"), &cfg.Output)
	s.setString("user-col", os.Getenv("REELPREP_USER_COL"), &cfg.UserCol)
	s.setString("item-col", os.Getenv("REELPREP_ITEM_COL"), &cfg.ItemCol)
	s.setString("timestamp-col", os.Getenv("REELPREP_TIMESTAMP_COL"), &cfg.TimestampCol)
	s.setString("rating-col", os.Getenv("REELPREP_RATING_COL"), &cfg.RatingCol)
	s.setString("genre-col", os.Getenv("REELPREP_GENRE_COL"), &cfg.GenreCol)
	s.setString("bucket", os.Getenv("REELPREP_BUCKET"), &cfg.Bucket)
	s.setString("region", os.Getenv("REELPREP_REGION"), &cfg.Region)
	s.setString("profile", os.Getenv("REELPREP_PROFILE"), &cfg.Profile)

	if err := s.setIntFromString("threshold", os.Getenv("REELPREP_THRESHOLD"), &cfg.Threshold); err != nil {
		return err
	}

	if err := s.setDuration("debounce", os.Getenv("REELPREP_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("REELPREP_UPLOAD_TIMEOUT"), &cfg.UploadTimeout); err != nil {
		return err
	}

	s.setBoolFromString("sort-by-timestamp", os.Getenv("REELPREP_SORT_BY_TIMESTAMP"), &cfg.SortByRecency)
	s.setBoolFromString("sort-genres", os.Getenv("REELPREP_SORT_GENRES"), &cfg.SortGenres)
	s.setBoolFromString("quiet", os.Getenv("REELPREP_QUIET"), &cfg.Quiet)

	return nil
}
