package runner_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stashsync/internal/config"
	"stashsync/internal/reconcile"
	"stashsync/internal/runner"
	"stashsync/internal/stash"
	"stashsync/internal/whisparr"
)

// fakeStash answers the two GraphQL queries the runner issues. Scenes are
// keyed by ID; unknown IDs answer a null findScene.
type fakeStash struct {
	scenes map[string]string
	dbPath string
}

func (f *fakeStash) handler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode graphql request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(req.Query, "findScene"):
			id, _ := req.Variables["id"].(string)
			scene, ok := f.scenes[id]
			if !ok {
				scene = "null"
			}
			fmt.Fprintf(w, `{"data":{"findScene":%s}}`, scene)
		case strings.Contains(req.Query, "configuration"):
			fmt.Fprintf(w, `{"data":{"configuration":{"general":{"databasePath":%q}}}}`, f.dbPath)
		default:
			t.Errorf("unexpected graphql query: %s", req.Query)
		}
	})
}

func sceneJSON(id int64, title, stashID string, tags ...string) string {
	type name struct {
		Name string `json:"name"`
	}
	named := make([]name, 0, len(tags))
	for _, tag := range tags {
		named = append(named, name{Name: tag})
	}
	payload := map[string]any{
		"id":    fmt.Sprint(id),
		"title": title,
		"tags":  named,
		"files": []map[string]string{{"path": fmt.Sprintf("/library/scene-%d.mkv", id)}},
		"stash_ids": []map[string]string{
			{"endpoint": "https://stashdb.org/graphql", "stash_id": stashID},
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// emptyWhisparr answers every endpoint with an empty success so scenes
// follow the create-then-import path without file activity.
func emptyWhisparr(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v3/movie":
			fmt.Fprint(w, `[{"id":1,"title":"t","path":"/media/managed/t"}]`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/v3/manualimport":
			fmt.Fprint(w, "[]")
		default:
			fmt.Fprint(w, "{}")
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func seedSceneDatabase(t *testing.T, ids []int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stash-go.sqlite")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open seed db: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec("CREATE TABLE scenes (id INTEGER PRIMARY KEY, title TEXT)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	for _, id := range ids {
		if _, err := db.Exec("INSERT INTO scenes (id, title) VALUES (?, ?)", id, "scene"); err != nil {
			t.Fatalf("insert scene: %v", err)
		}
	}
	return path
}

func newBulkRunner(t *testing.T, fake *fakeStash, out *bytes.Buffer) (*runner.Runner, *config.Config) {
	t.Helper()
	stashServer := httptest.NewServer(fake.handler(t))
	t.Cleanup(stashServer.Close)
	whisparrServer := emptyWhisparr(t)

	cfg := config.Default()
	cfg.Stash.URL = stashServer.URL
	cfg.Whisparr.URL = whisparrServer.URL
	cfg.Whisparr.APIKey = "key"
	cfg.Whisparr.MoveFiles = false
	cfg.Paths.LedgerDir = t.TempDir()

	stashClient, err := stash.New(stashServer.URL, "", nil)
	if err != nil {
		t.Fatalf("stash.New: %v", err)
	}
	whisparrClient, err := whisparr.New(whisparrServer.URL, "key", nil, whisparr.WithRetryBackoff(time.Millisecond))
	if err != nil {
		t.Fatalf("whisparr.New: %v", err)
	}
	r, err := runner.New(&cfg, nil,
		runner.WithStashClient(stashClient),
		runner.WithReconciler(reconcile.New(&cfg, whisparrClient, nil)),
		runner.WithSummaryOutput(out),
	)
	if err != nil {
		t.Fatalf("runner.New: %v", err)
	}
	return r, &cfg
}

func TestRunSceneSuccess(t *testing.T) {
	fake := &fakeStash{scenes: map[string]string{
		"5": sceneJSON(5, "Example", "abc-123"),
	}}
	r, _ := newBulkRunner(t, fake, &bytes.Buffer{})

	outcome, err := r.RunScene(context.Background(), 5)
	if err != nil {
		t.Fatalf("RunScene returned error: %v", err)
	}
	if outcome != reconcile.OutcomeSuccess {
		t.Fatalf("expected success, got %q", outcome)
	}
}

func TestRunSceneFetchFailureIsFailedOutcome(t *testing.T) {
	fake := &fakeStash{scenes: map[string]string{}}
	r, _ := newBulkRunner(t, fake, &bytes.Buffer{})

	outcome, err := r.RunScene(context.Background(), 99)
	if outcome != reconcile.OutcomeFailed {
		t.Fatalf("expected failed outcome, got %q", outcome)
	}
	if !errors.Is(err, stash.ErrSceneNotFound) {
		t.Fatalf("expected ErrSceneNotFound, got %v", err)
	}
}

func TestRunBulkRecordsEveryScene(t *testing.T) {
	fake := &fakeStash{scenes: map[string]string{
		"1": sceneJSON(1, "First", "id-1"),
		"2": sceneJSON(2, "Second", "id-2", "ignored"),
		// scene 3 missing from Stash: fetch fails, batch continues
	}}
	fake.dbPath = seedSceneDatabase(t, []int64{1, 2, 3})

	var out bytes.Buffer
	r, cfg := newBulkRunner(t, fake, &out)
	cfg.Sync.IgnoreTags = []string{"ignored"}

	if err := r.RunBulk(context.Background()); err != nil {
		t.Fatalf("RunBulk returned error: %v", err)
	}

	file, err := os.Open(filepath.Join(cfg.Paths.LedgerDir, "bulk_results.csv"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}

	want := [][]string{
		{"scene_id", "outcome"},
		{"3", "Failed"},
		{"2", "SkippedTag"},
		{"1", "Success"},
	}
	if len(rows) != len(want) {
		t.Fatalf("ledger rows = %v, want %v", rows, want)
	}
	for i := range want {
		if rows[i][0] != want[i][0] || rows[i][1] != want[i][1] {
			t.Fatalf("ledger row %d = %v, want %v", i, rows[i], want[i])
		}
	}

	summary := out.String()
	for _, line := range []string{"Success=1", "SkippedTag=1", "Failed=1", "total=3"} {
		if !strings.Contains(summary, line) {
			t.Fatalf("summary missing %q:\n%s", line, summary)
		}
	}
}

func TestRunBulkAppendsAcrossRuns(t *testing.T) {
	fake := &fakeStash{scenes: map[string]string{
		"1": sceneJSON(1, "First", "id-1"),
	}}
	fake.dbPath = seedSceneDatabase(t, []int64{1})

	var out bytes.Buffer
	r, cfg := newBulkRunner(t, fake, &out)

	for run := 0; run < 2; run++ {
		if err := r.RunBulk(context.Background()); err != nil {
			t.Fatalf("RunBulk run %d: %v", run, err)
		}
	}

	raw, err := os.ReadFile(filepath.Join(cfg.Paths.LedgerDir, "bulk_results.csv"))
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %q", lines)
	}
	if lines[0] != "scene_id,outcome" {
		t.Fatalf("header written twice or missing: %q", lines[0])
	}
}

func TestRunBulkUsesConfiguredDatabasePath(t *testing.T) {
	fake := &fakeStash{scenes: map[string]string{
		"7": sceneJSON(7, "Only", "id-7"),
	}}
	// No dbPath on the fake: the configuration query must not be needed.

	var out bytes.Buffer
	r, cfg := newBulkRunner(t, fake, &out)
	cfg.Stash.DatabasePath = seedSceneDatabase(t, []int64{7})

	if err := r.RunBulk(context.Background()); err != nil {
		t.Fatalf("RunBulk returned error: %v", err)
	}
	if !strings.Contains(out.String(), "total=1") {
		t.Fatalf("unexpected summary:\n%s", out.String())
	}
}
