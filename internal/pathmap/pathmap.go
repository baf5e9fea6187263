package pathmap

import (
	"strings"
)

// Mapping pairs a server-side path prefix with its local replacement.
type Mapping struct {
	Server string
	Local  string
}

// Table is an ordered list of prefix mappings. Order matters: Rewrite applies
// the first mapping whose server prefix matches.
type Table []Mapping

// Rewrite translates a server-reported path into a local path. The probe and
// both prefixes are compared in forward-slash form with trailing slashes
// stripped, so Windows-style input still matches. The suffix beyond the
// matched prefix, including the file name, is preserved verbatim. Paths that
// match no prefix are returned unchanged.
func (t Table) Rewrite(p string) string {
	probe := normalize(p)
	for _, m := range t {
		server := normalize(m.Server)
		if server == "" {
			continue
		}
		local := normalize(m.Local)
		if probe == server {
			return local
		}
		if strings.HasPrefix(probe, server+"/") {
			rel := strings.TrimLeft(probe[len(server):], "/")
			return local + "/" + rel
		}
	}
	return p
}

func normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if p != "/" {
		p = strings.TrimRight(p, "/")
	}
	return p
}
