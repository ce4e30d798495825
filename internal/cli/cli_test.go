package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/viant/vecmem/internal/logging"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWithInput(t, "", args...)
}

func runWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	var buf bytes.Buffer
	err := newApp(strings.NewReader(input), &buf).Run(context.Background(), append([]string{"vecmem"}, args...))
	return buf.String(), err
}

func TestCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	common := []string{"--db", db, "--dim", "32"}

	out, err := run(t, append([]string{"init"}, common...)...)
	gt.NoError(t, err)
	gt.S(t, out).Contains("initialized memories")

	out, err = run(t, append(append([]string{"store"}, common...),
		"--type", "fact", "--tag", "sky", "--tag", "colour", "--confidence", "0.9",
		`{"fact":"The sky is blue"}`)...)
	gt.NoError(t, err)

	var stored memoryView
	gt.NoError(t, json.Unmarshal([]byte(out), &stored))
	gt.NotEqual(t, stored.ID, "")
	gt.Equal(t, stored.Type, "fact")
	gt.Equal(t, stored.Tags, []string{"sky", "colour"})
	gt.Equal(t, stored.Confidence, 0.9)

	_, err = run(t, append(append([]string{"store"}, common...), `{"fact":"Grass is green"}`)...)
	gt.NoError(t, err)

	// the hash provider maps identical text to identical vectors
	out, err = run(t, append(append([]string{"search"}, common...), "--tag", "sky", "The sky is blue")...)
	gt.NoError(t, err)
	var matches []memoryView
	gt.NoError(t, json.Unmarshal([]byte(out), &matches))
	gt.A(t, matches).Length(1)
	gt.Equal(t, matches[0].ID, stored.ID)
	gt.True(t, *matches[0].Similarity > 0.99)

	out, err = run(t, append(append([]string{"get"}, common...), "--format", "yaml", stored.ID)...)
	gt.NoError(t, err)
	var got map[string]any
	gt.NoError(t, yaml.Unmarshal([]byte(out), &got))
	gt.Equal(t, got["id"], any(stored.ID))
	gt.Equal(t, got["content"], any(map[string]any{"fact": "The sky is blue"}))

	out, err = run(t, append(append([]string{"delete"}, common...), stored.ID)...)
	gt.NoError(t, err)
	gt.S(t, out).Contains("deleted " + stored.ID)

	out, err = run(t, append(append([]string{"delete"}, common...), stored.ID)...)
	gt.NoError(t, err)
	gt.S(t, out).Contains("not found")

	_, err = run(t, append(append([]string{"get"}, common...), stored.ID)...)
	gt.Error(t, err)
}

func TestStoreInvalidContent(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	_, err := run(t, "init", "--db", db, "--dim", "8")
	gt.NoError(t, err)

	_, err = run(t, "store", "--db", db, "--dim", "8", `{"fact":`)
	gt.Error(t, err)
}

func TestUnknownProvider(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	_, err := run(t, "search", "--db", db, "--provider", "nope", "query")
	gt.Error(t, err)
}

func TestUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	gt.Error(t, write(&buf, "xml", map[string]string{"a": "b"}))
}

func TestStoreFromStdin(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	_, err := run(t, "init", "--db", db, "--dim", "8")
	gt.NoError(t, err)

	out, err := runWithInput(t, `{"observation":"door left open"}`, "store", "--db", db, "--dim", "8", "-")
	gt.NoError(t, err)

	var stored memoryView
	gt.NoError(t, json.Unmarshal([]byte(out), &stored))
	gt.Equal(t, stored.Content, any(map[string]any{"observation": "door left open"}))
}

func TestLookupWithoutProviderCredentials(t *testing.T) {
	t.Setenv("GEMINI_PROJECT_ID", "")
	t.Setenv("VECMEM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	db := filepath.Join(t.TempDir(), "cli.db")
	common := []string{"--db", db, "--dim", "8"}
	_, err := run(t, append([]string{"init"}, common...)...)
	gt.NoError(t, err)

	out, err := run(t, append(append([]string{"store"}, common...), `{"fact":"x"}`)...)
	gt.NoError(t, err)
	var stored memoryView
	gt.NoError(t, json.Unmarshal([]byte(out), &stored))

	// gemini cannot be constructed without credentials, but lookups never embed
	_, err = run(t, append(append([]string{"get"}, common...), "--provider", "gemini", stored.ID)...)
	gt.NoError(t, err)

	out, err = run(t, append(append([]string{"delete"}, common...), "--provider", "gemini", stored.ID)...)
	gt.NoError(t, err)
	gt.S(t, out).Contains("deleted " + stored.ID)

	_, err = run(t, append(append([]string{"search"}, common...), "--provider", "gemini", "x")...)
	gt.Error(t, err)
}

func TestOpenAIDimensionsOnlyWhenSet(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","model":"m","data":[{"object":"embedding","index":0,"embedding":[0.6,0.8]}],"usage":{"prompt_tokens":1,"total_tokens":1}}`))
	}))
	defer srv.Close()

	db := filepath.Join(t.TempDir(), "cli.db")
	_, err := run(t, "init", "--db", db, "--dim", "2")
	gt.NoError(t, err)

	openai := []string{"--db", db, "--provider", "openai", "--api-key", "k", "--base-url", srv.URL + "/v1"}
	_, err = run(t, append(append([]string{"search"}, openai...), "query")...)
	gt.NoError(t, err)
	_, err = run(t, append(append([]string{"search"}, openai...), "--dim", "2", "query")...)
	gt.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	gt.A(t, bodies).Length(2)
	_, ok := bodies[0]["dimensions"]
	gt.False(t, ok)
	gt.Equal(t, bodies[1]["dimensions"], any(float64(2)))
}

func TestLogLevelAppliesToDefault(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	orig := logging.Default()
	defer logging.SetDefault(orig)

	var buf bytes.Buffer
	err := newApp(strings.NewReader(""), &buf).Run(context.Background(),
		[]string{"vecmem", "init", "--db", db, "--dim", "4", "--log-level", "debug"})
	gt.NoError(t, err)
	gt.True(t, logging.Default().Enabled(context.Background(), slog.LevelDebug))

	err = newApp(strings.NewReader(""), &buf).Run(context.Background(),
		[]string{"vecmem", "init", "--db", db, "--dim", "4", "--log-level", "error"})
	gt.NoError(t, err)
	gt.False(t, logging.Default().Enabled(context.Background(), slog.LevelWarn))

	_, err = run(t, "init", "--db", db, "--dim", "4", "--log-level", "chatty")
	gt.Error(t, err)
}
