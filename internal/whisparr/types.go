package whisparr

// Statistics carries the file bookkeeping Whisparr tracks per movie entry.
type Statistics struct {
	MovieFileCount int   `json:"movieFileCount"`
	SizeOnDisk     int64 `json:"sizeOnDisk"`
}

// Movie is a Whisparr movie entry.
type Movie struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Path       string     `json:"path"`
	Statistics Statistics `json:"statistics"`
}

// AddOptions encodes creation-time monitoring behavior.
type AddOptions struct {
	Monitor        string `json:"monitor"`
	SearchForMovie bool   `json:"searchForMovie"`
}

// AddMovieRequest is the creation payload for POST /movie. The StashDB ID
// doubles as foreign and catalog key.
type AddMovieRequest struct {
	Title            string     `json:"title"`
	ForeignID        string     `json:"foreignId"`
	StashID          string     `json:"stashId"`
	Monitored        bool       `json:"monitored"`
	QualityProfileID int64      `json:"qualityProfileId"`
	RootFolderPath   string     `json:"rootFolderPath"`
	AddOptions       AddOptions `json:"addOptions"`
}

// QualityProfile is a configured quality profile.
type QualityProfile struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RootFolder is a storage root Whisparr manages.
type RootFolder struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
}

// Quality describes a detected file quality.
type Quality struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Source     string `json:"source"`
	Resolution int    `json:"resolution"`
}

// QualityWrapper matches the nested quality object Whisparr uses on files.
type QualityWrapper struct {
	Quality *Quality `json:"quality"`
}

// PreviewFile is a manual-import candidate Whisparr detected inside a managed
// folder.
type PreviewFile struct {
	Path       string          `json:"path"`
	FolderName string          `json:"folderName"`
	Size       int64           `json:"size"`
	Quality    *QualityWrapper `json:"quality"`
}

// Language identifies a track language on an import payload.
type Language struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ImportFile is one file in a ManualImport command.
type ImportFile struct {
	Path         string          `json:"path"`
	MovieID      int64           `json:"movieId"`
	FolderName   string          `json:"folderName"`
	ReleaseGroup string          `json:"releaseGroup"`
	Languages    []Language      `json:"languages"`
	IndexerFlags int             `json:"indexerFlags"`
	Quality      *QualityWrapper `json:"quality,omitempty"`
}

// CommandResponse is Whisparr's acknowledgement of a queued command.
type CommandResponse struct {
	ID     int64  `json:"id"`
	Result string `json:"result"`
	Status string `json:"status"`
}

type manualImportCommand struct {
	Name       string       `json:"name"`
	Files      []ImportFile `json:"files"`
	ImportMode string       `json:"importMode"`
}

type movieIDsCommand struct {
	Name     string  `json:"name"`
	MovieIDs []int64 `json:"movieIds"`
}

// defaultLanguages is applied to import payloads; Whisparr rejects files
// without at least one language.
func defaultLanguages() []Language {
	return []Language{{ID: 1, Name: "English"}}
}
