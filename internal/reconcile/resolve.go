package reconcile

import (
	"stashsync/internal/whisparr"
)

// defaultQualityProfileID is assigned when Whisparr reports no profiles at
// all; profile 1 always exists on a stock install.
const defaultQualityProfileID = 1

// profileRule is one step of the quality-profile resolution ladder.
type profileRule struct {
	name    string
	resolve func(profiles []whisparr.QualityProfile, configured string) (int64, bool)
}

// profileRules is evaluated in order; the first rule that produces an ID
// wins. Keeping the ladder explicit keeps the policy auditable.
var profileRules = []profileRule{
	{
		name: "configured name",
		resolve: func(profiles []whisparr.QualityProfile, configured string) (int64, bool) {
			for _, profile := range profiles {
				if profile.Name == configured {
					return profile.ID, true
				}
			}
			return 0, false
		},
	},
	{
		name: "first available",
		resolve: func(profiles []whisparr.QualityProfile, _ string) (int64, bool) {
			if len(profiles) > 0 {
				return profiles[0].ID, true
			}
			return 0, false
		},
	},
	{
		name: "fixed default",
		resolve: func(_ []whisparr.QualityProfile, _ string) (int64, bool) {
			return defaultQualityProfileID, true
		},
	},
}

// resolveQualityProfileID picks the profile for new entries: the configured
// name when Whisparr knows it, else the first listed profile, else a fixed
// default.
func resolveQualityProfileID(profiles []whisparr.QualityProfile, configured string) (int64, string) {
	for _, rule := range profileRules {
		if id, ok := rule.resolve(profiles, configured); ok {
			return id, rule.name
		}
	}
	return defaultQualityProfileID, "fixed default"
}

// rootRule is one step of the root-folder resolution ladder.
type rootRule struct {
	name    string
	resolve func(folders []whisparr.RootFolder, configured string) (string, bool)
}

var rootRules = []rootRule{
	{
		name: "configured path",
		resolve: func(folders []whisparr.RootFolder, configured string) (string, bool) {
			if configured == "" {
				return "", false
			}
			for _, folder := range folders {
				if folder.Path == configured {
					return folder.Path, true
				}
			}
			return "", false
		},
	},
	{
		name: "first known root",
		resolve: func(folders []whisparr.RootFolder, _ string) (string, bool) {
			if len(folders) > 0 {
				return folders[0].Path, true
			}
			return "", false
		},
	},
}

// resolveRootFolder picks the managed root for new entries: the configured
// path when Whisparr knows it, else the first known root. An empty root list
// is a hard error since the entry would have nowhere to live.
func resolveRootFolder(folders []whisparr.RootFolder, configured string) (string, string, error) {
	for _, rule := range rootRules {
		if path, ok := rule.resolve(folders, configured); ok {
			return path, rule.name, nil
		}
	}
	return "", "", ErrNoRootFolders
}
