package reconcile

import (
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"

	"stashsync/internal/whisparr"
)

// baseName extracts the final path element in a platform-neutral way; scene
// paths come from the Stash server and preview paths from Whisparr, and the
// two may disagree on separators.
func baseName(p string) string {
	return path.Base(strings.ReplaceAll(p, "\\", "/"))
}

// matchPreviews pairs every scene file with the preview entry of the same
// name. Names are NFC-normalized before comparison so files written through
// NFD filesystems still match. Each scene file is matched independently;
// scene files without a preview counterpart are simply absent from the
// result, which the caller reads as already imported.
func matchPreviews(sceneFiles []string, previews []whisparr.PreviewFile) []whisparr.PreviewFile {
	matched := make([]whisparr.PreviewFile, 0, len(sceneFiles))
	used := make(map[int]bool, len(previews))
	for _, file := range sceneFiles {
		want := norm.NFC.String(baseName(file))
		for i, preview := range previews {
			if used[i] {
				continue
			}
			if norm.NFC.String(baseName(preview.Path)) == want {
				matched = append(matched, preview)
				used[i] = true
				break
			}
		}
	}
	return matched
}
