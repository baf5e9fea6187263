package reconcile

import (
	"errors"
	"testing"

	"stashsync/internal/whisparr"
)

func TestResolveQualityProfileID(t *testing.T) {
	profiles := []whisparr.QualityProfile{{ID: 4, Name: "SD"}, {ID: 9, Name: "HD"}}

	tests := []struct {
		name       string
		profiles   []whisparr.QualityProfile
		configured string
		wantID     int64
		wantRule   string
	}{
		{"configured name wins", profiles, "HD", 9, "configured name"},
		{"unknown name falls back to first", profiles, "UHD", 4, "first available"},
		{"empty list yields fixed default", nil, "HD", defaultQualityProfileID, "fixed default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, rule := resolveQualityProfileID(tt.profiles, tt.configured)
			if id != tt.wantID || rule != tt.wantRule {
				t.Fatalf("resolveQualityProfileID = (%d, %q), want (%d, %q)", id, rule, tt.wantID, tt.wantRule)
			}
		})
	}
}

func TestResolveRootFolder(t *testing.T) {
	folders := []whisparr.RootFolder{{ID: 1, Path: "/media/a"}, {ID: 2, Path: "/media/b"}}

	path, rule, err := resolveRootFolder(folders, "/media/b")
	if err != nil || path != "/media/b" || rule != "configured path" {
		t.Fatalf("configured lookup = (%q, %q, %v)", path, rule, err)
	}

	path, rule, err = resolveRootFolder(folders, "/media/missing")
	if err != nil || path != "/media/a" || rule != "first known root" {
		t.Fatalf("fallback lookup = (%q, %q, %v)", path, rule, err)
	}

	if _, _, err := resolveRootFolder(nil, "/media/a"); !errors.Is(err, ErrNoRootFolders) {
		t.Fatalf("expected ErrNoRootFolders, got %v", err)
	}
}

func TestMatchPreviews(t *testing.T) {
	previews := []whisparr.PreviewFile{
		{Path: "/managed/x/part1.mkv"},
		{Path: "/managed/x/part2.mkv"},
		{Path: "/managed/x/extras.mkv"},
	}

	matched := matchPreviews([]string{`C:\library\part2.mkv`, "/library/part1.mkv"}, previews)
	if len(matched) != 2 {
		t.Fatalf("expected two matches, got %#v", matched)
	}
	if matched[0].Path != "/managed/x/part2.mkv" || matched[1].Path != "/managed/x/part1.mkv" {
		t.Fatalf("matches out of order: %#v", matched)
	}

	if got := matchPreviews([]string{"/library/unknown.mkv"}, previews); len(got) != 0 {
		t.Fatalf("expected no matches, got %#v", got)
	}
}

func TestMatchPreviewsNormalizesUnicode(t *testing.T) {
	// NFD-composed name on one side, NFC on the other.
	nfd := "cafe\u0301.mkv"
	nfc := "caf\u00e9.mkv"
	previews := []whisparr.PreviewFile{{Path: "/managed/x/" + nfd}}
	matched := matchPreviews([]string{"/library/" + nfc}, previews)
	if len(matched) != 1 {
		t.Fatalf("expected unicode-normalized match, got %#v", matched)
	}
}

func TestMatchPreviewsDoesNotReuseEntries(t *testing.T) {
	previews := []whisparr.PreviewFile{{Path: "/managed/x/scene.mkv"}}
	matched := matchPreviews([]string{"/library/a/scene.mkv", "/library/b/scene.mkv"}, previews)
	if len(matched) != 1 {
		t.Fatalf("a preview entry must match at most once, got %#v", matched)
	}
}
