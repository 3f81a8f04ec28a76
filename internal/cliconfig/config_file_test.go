package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfig(t, `
user_col = "uid"
item_col = "mid"
threshold = 10
sort_by_timestamp = true
debounce = "2s"
bucket = "ml-data"
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}
	if fc.UserCol != "uid" || fc.ItemCol != "mid" {
		t.Errorf("columns = %q/%q, want uid/mid", fc.UserCol, fc.ItemCol)
	}
	if fc.Threshold != 10 {
		t.Errorf("Threshold = %d, want 10", fc.Threshold)
	}
	if fc.SortByRecency == nil || !*fc.SortByRecency {
		t.Errorf("SortByRecency = %v, want true", fc.SortByRecency)
	}
	if fc.Bucket != "ml-data" {
		t.Errorf("Bucket = %q, want ml-data", fc.Bucket)
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	path := writeConfig(t, "user_col = [broken\n")
	if _, err := LoadFileConfig(path); err == nil {
		t.Fatal("LoadFileConfig should reject invalid TOML")
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := DefaultConfig()
	fc := FileConfig{
		UserCol:   "uid",
		Threshold: 10,
		Debounce:  "2s",
	}

	// user-col was set on the command line; file value must not win.
	changed := map[string]bool{"user-col": true}

	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}
	if cfg.UserCol != DefaultUserCol {
		t.Errorf("UserCol = %q; explicit flag must beat the file", cfg.UserCol)
	}
	if cfg.Threshold != 10 {
		t.Errorf("Threshold = %d, want 10 from file", cfg.Threshold)
	}
	if cfg.Debounce != 2*time.Second {
		t.Errorf("Debounce = %v, want 2s from file", cfg.Debounce)
	}
}

func TestApplyFileConfig_BadDuration(t *testing.T) {
	cfg := DefaultConfig()
	fc := FileConfig{Debounce: "soon"}
	if err := ApplyFileConfig(&cfg, fc, nil); err == nil {
		t.Fatal("ApplyFileConfig should reject an unparsable duration")
	}
}
