package embedding

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the embedding model used when none is configured.
const DefaultOpenAIModel = string(openai.SmallEmbedding3)

// OpenAI generates embeddings with the OpenAI embeddings endpoint or any
// server that speaks the same protocol.
type OpenAI struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
}

// OpenAIOption customizes an OpenAI provider.
type OpenAIOption func(*openaiSettings)

type openaiSettings struct {
	baseURL    string
	model      string
	dimensions int
}

// WithOpenAIBaseURL points the client at an OpenAI-compatible server.
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(s *openaiSettings) { s.baseURL = url }
}

// WithOpenAIModel sets the embedding model.
func WithOpenAIModel(model string) OpenAIOption {
	return func(s *openaiSettings) {
		if model != "" {
			s.model = model
		}
	}
}

// WithOpenAIDimensions requests a reduced output dimension (text-embedding-3 models).
func WithOpenAIDimensions(n int) OpenAIOption {
	return func(s *openaiSettings) { s.dimensions = n }
}

// NewOpenAI creates an OpenAI embedding provider.
func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	s := &openaiSettings{model: DefaultOpenAIModel}
	for _, opt := range opts {
		opt(s)
	}
	if apiKey == "" && s.baseURL == "" {
		return nil, goerr.New("openai api key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if s.baseURL != "" {
		cfg.BaseURL = s.baseURL
	}
	return &OpenAI{
		client:     openai.NewClientWithConfig(cfg),
		model:      openai.EmbeddingModel(s.model),
		dimensions: s.dimensions,
	}, nil
}

// Generate embeds text with the configured model.
func (o *OpenAI) Generate(ctx context.Context, text string) ([]float32, error) {
	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      o.model,
		Dimensions: o.dimensions,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create embeddings", goerr.V("model", o.model))
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, goerr.Wrap(ErrEmptyEmbedding, "openai returned no embedding", goerr.V("model", o.model))
	}
	return resp.Data[0].Embedding, nil
}
