package whisparr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ErrUndecodable indicates the API answered 2xx with a body that did not
// match the expected schema.
var ErrUndecodable = errors.New("whisparr response did not match expected schema")

// MoviesByStashID queries movie entries bound to the given StashDB ID.
func (c *Client) MoviesByStashID(ctx context.Context, stashID string) ([]Movie, error) {
	params := url.Values{}
	params.Set("stashId", stashID)
	payload, err := request[[]Movie](ctx, c, http.MethodGet, "/movie", params, nil)
	if err != nil {
		return nil, err
	}
	if !payload.Decoded {
		return nil, fmt.Errorf("%w: GET /movie", ErrUndecodable)
	}
	return payload.Value, nil
}

// AddMovie registers a new movie entry. The creation response is reported
// with Decoded=false when Whisparr answers with an unexpected shape; callers
// re-query for the canonical entry regardless.
func (c *Client) AddMovie(ctx context.Context, req AddMovieRequest) (Payload[Movie], error) {
	return request[Movie](ctx, c, http.MethodPost, "/movie", nil, req)
}

// QualityProfiles lists the configured quality profiles.
func (c *Client) QualityProfiles(ctx context.Context) ([]QualityProfile, error) {
	payload, err := request[[]QualityProfile](ctx, c, http.MethodGet, "/qualityprofile", nil, nil)
	if err != nil {
		return nil, err
	}
	if !payload.Decoded {
		return nil, fmt.Errorf("%w: GET /qualityprofile", ErrUndecodable)
	}
	return payload.Value, nil
}

// RootFolders lists the storage roots Whisparr manages.
func (c *Client) RootFolders(ctx context.Context) ([]RootFolder, error) {
	payload, err := request[[]RootFolder](ctx, c, http.MethodGet, "/rootfolder", nil, nil)
	if err != nil {
		return nil, err
	}
	if !payload.Decoded {
		return nil, fmt.Errorf("%w: GET /rootfolder", ErrUndecodable)
	}
	return payload.Value, nil
}

// ManualImportPreview fetches the import candidates Whisparr detects inside
// folder for the given movie. The preview is always fetched fresh; the remote
// folder may have changed since the last call.
func (c *Client) ManualImportPreview(ctx context.Context, folder string, movieID int64) ([]PreviewFile, error) {
	params := url.Values{}
	params.Set("folder", folder)
	params.Set("movieId", strconv.FormatInt(movieID, 10))
	params.Set("filterExistingFiles", "true")
	payload, err := request[[]PreviewFile](ctx, c, http.MethodGet, "/manualimport", params, nil)
	if err != nil {
		return nil, err
	}
	if !payload.Decoded {
		return nil, fmt.Errorf("%w: GET /manualimport", ErrUndecodable)
	}
	return payload.Value, nil
}

// ManualImport queues a ManualImport command for the supplied files.
func (c *Client) ManualImport(ctx context.Context, files []ImportFile) (Payload[CommandResponse], error) {
	for i := range files {
		if len(files[i].Languages) == 0 {
			files[i].Languages = defaultLanguages()
		}
	}
	command := manualImportCommand{Name: "ManualImport", Files: files, ImportMode: "auto"}
	return request[CommandResponse](ctx, c, http.MethodPost, "/command", nil, command)
}

// RenameFiles queues a RenameFiles command for the given movie IDs.
func (c *Client) RenameFiles(ctx context.Context, movieIDs ...int64) (Payload[CommandResponse], error) {
	command := movieIDsCommand{Name: "RenameFiles", MovieIDs: movieIDs}
	return request[CommandResponse](ctx, c, http.MethodPost, "/command", nil, command)
}

// RefreshMovie queues a RefreshMovie command for the given movie IDs.
func (c *Client) RefreshMovie(ctx context.Context, movieIDs ...int64) (Payload[CommandResponse], error) {
	command := movieIDsCommand{Name: "RefreshMovie", MovieIDs: movieIDs}
	return request[CommandResponse](ctx, c, http.MethodPost, "/command", nil, command)
}
