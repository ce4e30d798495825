package embedding

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// DefaultGeminiModel is the embedding model used when none is configured.
const DefaultGeminiModel = "gemini-embedding-001"

// Gemini generates embeddings with the Gemini API or Vertex AI.
type Gemini struct {
	client     *genai.Client
	model      string
	dimensions int32
	taskType   string
}

// GeminiOption customizes a Gemini provider.
type GeminiOption func(*Gemini)

// WithGeminiModel sets the embedding model.
func WithGeminiModel(model string) GeminiOption {
	return func(g *Gemini) {
		if model != "" {
			g.model = model
		}
	}
}

// WithGeminiDimensions requests a truncated output dimensionality.
func WithGeminiDimensions(n int) GeminiOption {
	return func(g *Gemini) {
		g.dimensions = int32(n)
	}
}

// WithGeminiTaskType sets the embedding task type, e.g. "SEMANTIC_SIMILARITY".
func WithGeminiTaskType(taskType string) GeminiOption {
	return func(g *Gemini) {
		g.taskType = taskType
	}
}

// NewGeminiVertex creates a provider backed by Vertex AI.
func NewGeminiVertex(ctx context.Context, projectID, location string, opts ...GeminiOption) (*Gemini, error) {
	if projectID == "" {
		return nil, goerr.New("gemini project is required")
	}
	return newGemini(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	}, opts...)
}

// NewGeminiAPIKey creates a provider backed by the Gemini developer API.
func NewGeminiAPIKey(ctx context.Context, apiKey string, opts ...GeminiOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, goerr.New("gemini api key is required")
	}
	return newGemini(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, opts...)
}

func newGemini(ctx context.Context, cfg *genai.ClientConfig, opts ...GeminiOption) (*Gemini, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}

	g := &Gemini{
		client: client,
		model:  DefaultGeminiModel,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate embeds text with the configured model.
func (g *Gemini) Generate(ctx context.Context, text string) ([]float32, error) {
	cfg := &genai.EmbedContentConfig{TaskType: g.taskType}
	if g.dimensions > 0 {
		dims := g.dimensions
		cfg.OutputDimensionality = &dims
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed content", goerr.V("model", g.model))
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, goerr.Wrap(ErrEmptyEmbedding, "gemini returned no embedding", goerr.V("model", g.model))
	}
	return resp.Embeddings[0].Values, nil
}
