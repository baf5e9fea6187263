package stash

import "strings"

// StashID binds a scene to an external metadata database endpoint.
type StashID struct {
	Endpoint string `json:"endpoint"`
	StashID  string `json:"stash_id"`
}

// Scene is a read-only snapshot of a Stash scene, fetched once per
// reconciliation and never mutated.
type Scene struct {
	ID       int64
	Title    string
	Tags     []string
	Files    []string
	StashIDs []StashID
}

// ExternalID returns the bound ID whose endpoint contains endpointSubstr, or
// empty when the scene carries no matching binding.
func (s *Scene) ExternalID(endpointSubstr string) string {
	if endpointSubstr == "" {
		return ""
	}
	for _, sid := range s.StashIDs {
		if strings.Contains(sid.Endpoint, endpointSubstr) {
			return sid.StashID
		}
	}
	return ""
}

// IgnoredTag returns the first scene tag found in ignoreTags.
func (s *Scene) IgnoredTag(ignoreTags []string) (string, bool) {
	for _, tag := range s.Tags {
		for _, ignored := range ignoreTags {
			if tag == ignored {
				return tag, true
			}
		}
	}
	return "", false
}
