package cli

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/viant/vecmem/embedding"
	"github.com/viant/vecmem/engine"
	"github.com/viant/vecmem/internal/logging"
	"github.com/viant/vecmem/memory"
	"github.com/viant/vecmem/vector"
)

// config holds configuration values
type config struct {
	// Storage
	dbPath string
	table  string
	metric string

	// Embedding
	provider       string
	model          string
	dimensions     int64
	apiKey         string
	baseURL        string
	geminiProject  string
	geminiLocation string

	// dimensionsSet records whether dim came from a flag or the environment
	// rather than its default.
	dimensionsSet bool

	// Output
	format   string
	logLevel string
}

// storageFlags returns flags selecting the database, table and metric
func storageFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db",
			Usage:       "Path to the SQLite database file",
			Value:       "vecmem.db",
			Sources:     cli.EnvVars("VECMEM_DB"),
			Destination: &cfg.dbPath,
		},
		&cli.StringFlag{
			Name:        "table",
			Usage:       "Table holding the memories",
			Value:       memory.DefaultTable,
			Sources:     cli.EnvVars("VECMEM_TABLE"),
			Destination: &cfg.table,
		},
		&cli.StringFlag{
			Name:        "metric",
			Usage:       "Distance metric (cosine, l2)",
			Value:       vector.Cosine.Name,
			Sources:     cli.EnvVars("VECMEM_METRIC"),
			Destination: &cfg.metric,
		},
		&cli.IntFlag{
			Name:        "dim",
			Usage:       "Embedding dimension",
			Value:       embedding.DefaultHashDimensions,
			Sources:     cli.EnvVars("VECMEM_DIM"),
			Destination: &cfg.dimensions,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "warn",
			Sources:     cli.EnvVars("VECMEM_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// providerFlags returns flags for the embedding provider
func providerFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "provider",
			Usage:       "Embedding provider (hash, openai, gemini, ollama, localai, mistral, jina)",
			Value:       "hash",
			Sources:     cli.EnvVars("VECMEM_PROVIDER"),
			Destination: &cfg.provider,
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Embedding model name",
			Sources:     cli.EnvVars("VECMEM_MODEL"),
			Destination: &cfg.model,
		},
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "API key for the embedding provider",
			Sources:     cli.EnvVars("VECMEM_API_KEY", "OPENAI_API_KEY"),
			Destination: &cfg.apiKey,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL of an OpenAI compatible or Ollama server",
			Sources:     cli.EnvVars("VECMEM_BASE_URL"),
			Destination: &cfg.baseURL,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
	}
}

// outputFlags returns the output format flag
func outputFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (json, yaml)",
			Value:       formatJSON,
			Sources:     cli.EnvVars("VECMEM_FORMAT"),
			Destination: &cfg.format,
		},
	}
}

// setup applies the parsed flags: it installs the configured logger as the
// default and into ctx, and notes which optional values were given.
func (cfg *config) setup(ctx context.Context, c *cli.Command) (context.Context, error) {
	logger, err := logging.Configure(cfg.logLevel, os.Stderr)
	if err != nil {
		return ctx, goerr.Wrap(err, "invalid log-level")
	}
	cfg.dimensionsSet = c.IsSet("dim")
	return logging.With(ctx, logger.With(slog.String("db", cfg.dbPath))), nil
}

// openDB opens the configured database file
func (cfg *config) openDB() (*sql.DB, error) {
	if cfg.dbPath == "" {
		return nil, goerr.New("db is required")
	}
	db, err := engine.Open(engine.FileDSN(cfg.dbPath))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("path", cfg.dbPath))
	}
	return db, nil
}

// newProvider creates the configured embedding provider
func (cfg *config) newProvider(ctx context.Context) (embedding.Provider, error) {
	if cfg.dimensions <= 0 {
		return nil, goerr.New("dim must be positive", goerr.V("dim", cfg.dimensions))
	}
	dim := int(cfg.dimensions)

	switch name := strings.ToLower(cfg.provider); name {
	case "", "hash":
		return embedding.NewHash(dim), nil

	case "openai":
		opts := []embedding.OpenAIOption{
			embedding.WithOpenAIBaseURL(cfg.baseURL),
			embedding.WithOpenAIModel(cfg.model),
		}
		// older models and many compatible servers reject the dimensions parameter
		if cfg.dimensionsSet {
			opts = append(opts, embedding.WithOpenAIDimensions(dim))
		}
		return embedding.NewOpenAI(cfg.apiKey, opts...)

	case "gemini":
		opts := []embedding.GeminiOption{
			embedding.WithGeminiModel(cfg.model),
		}
		if cfg.dimensionsSet {
			opts = append(opts, embedding.WithGeminiDimensions(dim))
		}
		if cfg.geminiProject != "" {
			return embedding.NewGeminiVertex(ctx, cfg.geminiProject, cfg.geminiLocation, opts...)
		}
		return embedding.NewGeminiAPIKey(ctx, cfg.apiKey, opts...)

	case "ollama", "localai", "mistral", "jina":
		return embedding.NewChromem(embedding.ChromemConfig{
			Backend: name,
			Model:   cfg.model,
			APIKey:  cfg.apiKey,
			BaseURL: cfg.baseURL,
		})

	default:
		return nil, goerr.New("unknown embedding provider", goerr.V("provider", cfg.provider))
	}
}

// noEmbedding stands in for the provider in commands that never embed text.
var noEmbedding = embedding.Func(func(context.Context, string) ([]float32, error) {
	return nil, goerr.New("command does not use an embedding provider")
})

// newStore builds a Store that embeds with the configured provider. The
// caller closes the returned db.
func (cfg *config) newStore(ctx context.Context) (*memory.Store, *sql.DB, error) {
	provider, err := cfg.newProvider(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create embedding provider")
	}
	return cfg.openStore(provider)
}

// newLookupStore builds a Store for get and delete, which need no provider
// or credentials.
func (cfg *config) newLookupStore() (*memory.Store, *sql.DB, error) {
	return cfg.openStore(noEmbedding)
}

func (cfg *config) openStore(provider embedding.Provider) (*memory.Store, *sql.DB, error) {
	metric, err := vector.MetricByName(cfg.metric)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "invalid metric")
	}

	db, err := cfg.openDB()
	if err != nil {
		return nil, nil, err
	}

	store, err := memory.New(db, provider, memory.WithTable(cfg.table), memory.WithMetric(metric))
	if err != nil {
		_ = db.Close()
		return nil, nil, goerr.Wrap(err, "failed to create memory store")
	}
	return store, db, nil
}
