package placement

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"stashsync/internal/pathmap"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLocatePrefersStashSide(t *testing.T) {
	base := t.TempDir()
	stashDir := filepath.Join(base, "stash")
	whisparrDir := filepath.Join(base, "whisparr")
	writeFile(t, filepath.Join(stashDir, "clip.mp4"))
	writeFile(t, filepath.Join(whisparrDir, "clip.mp4"))

	loc := NewLocator(filepath.Join(stashDir, "clip.mp4"), whisparrDir, nil, nil)
	got, err := loc.Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != filepath.Join(stashDir, "clip.mp4") {
		t.Fatalf("Locate = %q, want stash-side path", got)
	}
}

func TestLocateFallsBackToTargetSide(t *testing.T) {
	base := t.TempDir()
	stashDir := filepath.Join(base, "stash")
	whisparrDir := filepath.Join(base, "whisparr")
	writeFile(t, filepath.Join(whisparrDir, "clip.mp4"))

	loc := NewLocator(filepath.Join(stashDir, "clip.mp4"), whisparrDir, nil, nil)
	got, err := loc.Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != filepath.Join(whisparrDir, "clip.mp4") {
		t.Fatalf("Locate = %q, want whisparr-side path", got)
	}
}

func TestLocateAppliesMappings(t *testing.T) {
	base := t.TempDir()
	localDir := filepath.Join(base, "local")
	writeFile(t, filepath.Join(localDir, "clip.mp4"))

	table := pathmap.Table{{Server: "/remote/stash", Local: localDir}}
	loc := NewLocator("/remote/stash/clip.mp4", filepath.Join(base, "whisparr"), table, nil)
	got, err := loc.Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != filepath.Join(localDir, "clip.mp4") {
		t.Fatalf("Locate = %q, want mapped path", got)
	}
}

func TestLocateReportsBothCandidates(t *testing.T) {
	base := t.TempDir()
	loc := NewLocator(filepath.Join(base, "stash", "clip.mp4"), filepath.Join(base, "whisparr"), nil, nil)
	_, err := loc.Locate()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Locate error = %v, want ErrNotFound", err)
	}
}

func TestMoveRelocatesFile(t *testing.T) {
	base := t.TempDir()
	stashDir := filepath.Join(base, "stash")
	whisparrDir := filepath.Join(base, "whisparr")
	source := filepath.Join(stashDir, "clip.mp4")
	writeFile(t, source)

	loc := NewLocator(source, whisparrDir, nil, nil)
	moved, err := loc.Move(context.Background(), source)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !moved {
		t.Fatal("expected moved=true")
	}
	if _, err := os.Stat(filepath.Join(whisparrDir, "clip.mp4")); err != nil {
		t.Fatalf("destination missing: %v", err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatalf("source still present: %v", err)
	}
}

func TestMoveIdempotent(t *testing.T) {
	base := t.TempDir()
	whisparrDir := filepath.Join(base, "whisparr")
	inPlace := filepath.Join(whisparrDir, "clip.mp4")
	writeFile(t, inPlace)

	loc := NewLocator(inPlace, whisparrDir, nil, nil)
	for i := 0; i < 2; i++ {
		moved, err := loc.Move(context.Background(), inPlace)
		if err != nil {
			t.Fatalf("Move attempt %d: %v", i+1, err)
		}
		if moved {
			t.Fatalf("Move attempt %d reported a move for in-place file", i+1)
		}
	}
}

func TestMoveMissingSource(t *testing.T) {
	base := t.TempDir()
	loc := NewLocator(filepath.Join(base, "stash", "clip.mp4"), filepath.Join(base, "whisparr"), nil, nil)

	moved, err := loc.Move(context.Background(), filepath.Join(base, "stash", "clip.mp4"))
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if moved {
		t.Fatal("expected moved=false for missing source")
	}
}

func TestCheckWritable(t *testing.T) {
	dir := t.TempDir()
	if err := CheckWritable(dir); err != nil {
		t.Fatalf("CheckWritable(%q): %v", dir, err)
	}
	if err := CheckWritable(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
