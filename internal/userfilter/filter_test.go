package userfilter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reeldata/reelprep/internal/domain"
	"github.com/reeldata/reelprep/internal/progress"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRun_ThresholdBoundary(t *testing.T) {
	dir := t.TempDir()
	// user 1: 2 rows, user 2: 1 row, user 3: 3 rows.
	in := writeCSV(t, dir, "ratings.csv",
		"userId,movieId,rating\n"+
			"1,10,4\n"+
			"2,11,3\n"+
			"1,12,5\n"+
			"3,13,2\n"+
			"3,14,4\n"+
			"3,15,5\n")
	out := filepath.Join(dir, "out.csv")

	res, err := Run(Config{Input: in, Output: out, UserCol: "userId", Threshold: 2},
		zerolog.Nop(), progress.Noop{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Count == threshold is kept.
	if res.Total != 6 || res.Kept != 5 || res.UsersKept != 2 {
		t.Errorf("Result = %+v, want total 6 kept 5 users 2", res)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	// Input order is preserved; user 2's single row is gone.
	want := []string{
		"userId,movieId,rating",
		"1,10,4",
		"1,12,5",
		"3,13,2",
		"3,14,4",
		"3,15,5",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRun_InvalidThreshold(t *testing.T) {
	_, err := Run(Config{Input: "x", Output: "y", UserCol: "userId", Threshold: 0},
		zerolog.Nop(), progress.Noop{})
	if err == nil {
		t.Fatal("Run should reject threshold < 1")
	}
}

func TestRun_MissingUserColumn(t *testing.T) {
	dir := t.TempDir()
	in := writeCSV(t, dir, "ratings.csv", "movieId,rating\n10,4\n")
	out := filepath.Join(dir, "out.csv")

	_, err := Run(Config{Input: in, Output: out, UserCol: "userId", Threshold: 1},
		zerolog.Nop(), progress.Noop{})
	var se *domain.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *domain.SchemaError", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output should not exist after schema error")
	}
}
