package pathmap

import "testing"

func TestRewriteFirstMatchWins(t *testing.T) {
	table := Table{
		{Server: "/data/scenes", Local: "/mnt/library/scenes"},
		{Server: "/data", Local: "/mnt/other"},
	}

	got := table.Rewrite("/data/scenes/studio/clip.mp4")
	want := "/mnt/library/scenes/studio/clip.mp4"
	if got != want {
		t.Fatalf("Rewrite() = %q, want %q", got, want)
	}
}

func TestRewritePreservesSuffix(t *testing.T) {
	cases := []struct {
		name   string
		server string
		local  string
		in     string
		want   string
	}{
		{
			name:   "plain",
			server: "/srv/media",
			local:  "/mnt/media",
			in:     "/srv/media/a/b/c.mkv",
			want:   "/mnt/media/a/b/c.mkv",
		},
		{
			name:   "trailing slash on server prefix",
			server: "/srv/media/",
			local:  "/mnt/media",
			in:     "/srv/media/a.mkv",
			want:   "/mnt/media/a.mkv",
		},
		{
			name:   "trailing slash on local prefix",
			server: "/srv/media",
			local:  "/mnt/media/",
			in:     "/srv/media/a.mkv",
			want:   "/mnt/media/a.mkv",
		},
		{
			name:   "exact prefix match",
			server: "/srv/media",
			local:  "/mnt/media",
			in:     "/srv/media",
			want:   "/mnt/media",
		},
		{
			name:   "backslash input",
			server: "C:/stash",
			local:  "/mnt/stash",
			in:     `C:\stash\clips\one.mp4`,
			want:   "/mnt/stash/clips/one.mp4",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table := Table{{Server: tc.server, Local: tc.local}}
			if got := table.Rewrite(tc.in); got != tc.want {
				t.Fatalf("Rewrite(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRewritePassThrough(t *testing.T) {
	table := Table{{Server: "/srv/media", Local: "/mnt/media"}}

	for _, in := range []string{
		"/srv/mediastore/a.mkv", // prefix must match on a path boundary
		"/elsewhere/a.mkv",
		"relative/path.mkv",
	} {
		if got := table.Rewrite(in); got != in {
			t.Fatalf("Rewrite(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestRewriteEmptyTable(t *testing.T) {
	var table Table
	if got := table.Rewrite("/srv/media/a.mkv"); got != "/srv/media/a.mkv" {
		t.Fatalf("Rewrite() with empty table = %q, want input", got)
	}
}
