package embedding

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/philippgille/chromem-go"
)

// ChromemConfig selects one of the hosted or local embedding backends that
// chromem-go ships with.
type ChromemConfig struct {
	// Backend is one of "ollama", "localai", "mistral", "jina".
	Backend string
	Model   string
	APIKey  string
	// BaseURL is only used by ollama; empty selects http://localhost:11434/api.
	BaseURL string
}

// NewChromem returns a Provider backed by a chromem-go embedding function.
func NewChromem(cfg ChromemConfig) (Provider, error) {
	var fn chromem.EmbeddingFunc

	switch strings.ToLower(cfg.Backend) {
	case "ollama":
		model := cfg.Model
		if model == "" {
			model = "nomic-embed-text"
		}
		fn = chromem.NewEmbeddingFuncOllama(model, cfg.BaseURL)
	case "localai":
		model := cfg.Model
		if model == "" {
			model = "bert-cpp-minilm-v6"
		}
		fn = chromem.NewEmbeddingFuncLocalAI(model)
	case "mistral":
		if cfg.APIKey == "" {
			return nil, goerr.New("mistral api key is required")
		}
		fn = chromem.NewEmbeddingFuncMistral(cfg.APIKey)
	case "jina":
		if cfg.APIKey == "" {
			return nil, goerr.New("jina api key is required")
		}
		model := chromem.EmbeddingModelJina2BaseEN
		if cfg.Model != "" {
			model = chromem.EmbeddingModelJina(cfg.Model)
		}
		fn = chromem.NewEmbeddingFuncJina(cfg.APIKey, model)
	default:
		return nil, goerr.New("unknown chromem embedding backend", goerr.V("backend", cfg.Backend))
	}

	backend := cfg.Backend
	return Func(func(ctx context.Context, text string) ([]float32, error) {
		vec, err := fn(ctx, text)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to embed text", goerr.V("backend", backend))
		}
		if len(vec) == 0 {
			return nil, goerr.Wrap(ErrEmptyEmbedding, "chromem backend returned no embedding", goerr.V("backend", backend))
		}
		return vec, nil
	}), nil
}
