package embedding_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/viant/vecmem/embedding"
)

func TestOpenAI_Generate(t *testing.T) {
	var req struct {
		Input []string `json:"input"`
		Model string   `json:"model"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/embeddings") {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","model":"test-model","data":[{"object":"embedding","index":0,"embedding":[0.25,-0.5,1]}],"usage":{"prompt_tokens":3,"total_tokens":3}}`))
	}))
	defer srv.Close()

	p, err := embedding.NewOpenAI("test-key",
		embedding.WithOpenAIBaseURL(srv.URL+"/v1"),
		embedding.WithOpenAIModel("test-model"),
	)
	gt.NoError(t, err)

	vec, err := p.Generate(context.Background(), "The sky is blue")
	gt.NoError(t, err)
	gt.Equal(t, vec, []float32{0.25, -0.5, 1})
	gt.Equal(t, req.Model, "test-model")
	gt.Equal(t, req.Input, []string{"The sky is blue"})
}

func TestOpenAI_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
	}))
	defer srv.Close()

	p, err := embedding.NewOpenAI("test-key", embedding.WithOpenAIBaseURL(srv.URL))
	gt.NoError(t, err)

	_, err = p.Generate(context.Background(), "text")
	gt.Error(t, err)
}

func TestOpenAI_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	p, err := embedding.NewOpenAI("test-key", embedding.WithOpenAIBaseURL(srv.URL))
	gt.NoError(t, err)

	_, err = p.Generate(context.Background(), "text")
	gt.Error(t, err)
}

func TestNewOpenAI_RequiresKey(t *testing.T) {
	_, err := embedding.NewOpenAI("")
	gt.Error(t, err)
}
