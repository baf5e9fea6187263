package logging

import (
	"strings"
	"testing"
)

func TestPreviewRedactsSecrets(t *testing.T) {
	body := map[string]any{
		"title":  "Example",
		"apiKey": "super-secret",
	}

	got := Preview(body)
	if strings.Contains(got, "super-secret") {
		t.Fatalf("expected secret to be masked, got %q", got)
	}
	if !strings.Contains(got, "***REDACTED***") {
		t.Fatalf("expected redaction marker, got %q", got)
	}
	if !strings.Contains(got, "Example") {
		t.Fatalf("expected non-secret fields preserved, got %q", got)
	}
}

func TestPreviewCapsLength(t *testing.T) {
	body := map[string]any{"blob": strings.Repeat("x", 5000)}

	got := Preview(body)
	if !strings.HasSuffix(got, "...(truncated)") {
		t.Fatalf("expected truncation suffix, got tail %q", got[len(got)-30:])
	}
	if len(got) > maxPreviewBytes+len("...(truncated)") {
		t.Fatalf("preview too long: %d bytes", len(got))
	}
}

func TestPreviewUnserializable(t *testing.T) {
	if got := Preview(make(chan int)); got != "<unserializable>" {
		t.Fatalf("Preview(chan) = %q", got)
	}
	if got := Preview(nil); got != "<nil>" {
		t.Fatalf("Preview(nil) = %q", got)
	}
}

func TestTruncatePath(t *testing.T) {
	short := "/data/scenes/clip.mp4"
	if got := TruncatePath(short); got != short {
		t.Fatalf("short path modified: %q", got)
	}

	long := "/" + strings.Repeat("segment/", 30) + "clip.mp4"
	got := TruncatePath(long)
	if !strings.HasPrefix(got, "...") {
		t.Fatalf("expected ... prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "clip.mp4") {
		t.Fatalf("expected file name preserved, got %q", got)
	}
	if len([]rune(got)) != maxPathRunes {
		t.Fatalf("expected %d runes, got %d", maxPathRunes, len([]rune(got)))
	}
}
