package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestBar_KnownTotal(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf, "Processing", 4)

	b.Advance(2)
	out := buf.String()
	if !strings.Contains(out, "50%") {
		t.Errorf("after 2/4 expected 50%%, got %q", out)
	}
	if !strings.Contains(out, "(2/4)") {
		t.Errorf("expected counter (2/4), got %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("redraw should end with carriage return, got %q", out)
	}

	b.Advance(2)
	b.Finish()
	out = buf.String()
	if !strings.Contains(out, "100%") {
		t.Errorf("expected 100%% at finish, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("Finish should terminate the line, got %q", out)
	}
}

func TestBar_UnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf, "Scanning", 0)

	b.Advance(3)
	if !strings.Contains(buf.String(), "3 rows") {
		t.Errorf("unknown total should show a plain counter, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "%") {
		t.Errorf("unknown total should not show a percentage, got %q", buf.String())
	}
}

func TestBar_RedrawsOnlyOnChange(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf, "P", 1000000)

	b.Advance(1)
	first := buf.Len()
	// Tiny advances render the same line; no rewrite expected.
	b.Advance(0)
	if buf.Len() != first {
		t.Errorf("identical line was redrawn")
	}
}

func TestNoop(t *testing.T) {
	var r Reporter = Noop{}
	r.Advance(10)
	r.Finish()
}
