package stash

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stashsync/internal/logging"
)

// ErrSceneNotFound indicates Stash has no scene with the requested ID.
var ErrSceneNotFound = errors.New("scene not found in stash")

const (
	findSceneQuery = `query FindScene($id: ID!) {
  findScene(id: $id) {
    id
    title
    tags { name }
    files { path }
    stash_ids { endpoint stash_id }
  }
}`

	configurationQuery = `query Configuration {
  configuration {
    general { databasePath }
  }
}`
)

// Client provides access to the Stash GraphQL API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a Stash client.
func New(baseURL, apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("stash base url required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.With(logging.String(logging.FieldComponent, "stash")),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

func (c *Client) query(ctx context.Context, query string, variables map[string]any, out any) error {
	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("ApiKey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute graphql request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read graphql response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stash returned HTTP %d: %s", resp.StatusCode, logging.PreviewBytes(raw))
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode graphql envelope: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("stash graphql error: %s", envelope.Errors[0].Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}

type sceneData struct {
	FindScene *struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Tags  []struct {
			Name string `json:"name"`
		} `json:"tags"`
		Files []struct {
			Path string `json:"path"`
		} `json:"files"`
		StashIDs []StashID `json:"stash_ids"`
	} `json:"findScene"`
}

// FindScene fetches one scene by ID. Returns ErrSceneNotFound when Stash has
// no such scene.
func (c *Client) FindScene(ctx context.Context, sceneID int64) (*Scene, error) {
	var data sceneData
	variables := map[string]any{"id": strconv.FormatInt(sceneID, 10)}
	if err := c.query(ctx, findSceneQuery, variables, &data); err != nil {
		return nil, err
	}
	if data.FindScene == nil {
		return nil, fmt.Errorf("%w: id %d", ErrSceneNotFound, sceneID)
	}

	raw := data.FindScene
	scene := &Scene{
		ID:       sceneID,
		Title:    raw.Title,
		Tags:     make([]string, 0, len(raw.Tags)),
		Files:    make([]string, 0, len(raw.Files)),
		StashIDs: raw.StashIDs,
	}
	for _, tag := range raw.Tags {
		scene.Tags = append(scene.Tags, tag.Name)
	}
	for _, file := range raw.Files {
		if file.Path != "" {
			scene.Files = append(scene.Files, file.Path)
		}
	}
	c.logger.Debug("fetched scene",
		logging.Int64("scene_id", sceneID),
		logging.String("title", scene.Title),
		logging.Int("files", len(scene.Files)),
	)
	return scene, nil
}

type configurationData struct {
	Configuration struct {
		General struct {
			DatabasePath string `json:"databasePath"`
		} `json:"general"`
	} `json:"configuration"`
}

// DatabasePath returns the sqlite database location Stash reports in its
// configuration. Bulk mode uses it when no override is configured.
func (c *Client) DatabasePath(ctx context.Context) (string, error) {
	var data configurationData
	if err := c.query(ctx, configurationQuery, nil, &data); err != nil {
		return "", err
	}
	path := strings.TrimSpace(data.Configuration.General.DatabasePath)
	if path == "" {
		return "", errors.New("stash configuration reports no database path")
	}
	return path, nil
}
