package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/viant/vecmem/embedding"
	"github.com/viant/vecmem/internal/logging"
	"github.com/viant/vecmem/vector"
)

// Store persists and retrieves memories. It is safe for concurrent use.
type Store struct {
	db       *sql.DB
	provider embedding.Provider
	table    string
	metric   vector.Metric
	now      func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithTable sets the table name (default DefaultTable).
func WithTable(table string) Option {
	return func(s *Store) { s.table = table }
}

// WithMetric sets the distance metric used by Search (default vector.Cosine).
func WithMetric(m vector.Metric) Option {
	return func(s *Store) { s.metric = m }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store over db, embedding text with provider. The schema must
// already exist (see EnsureSchema).
func New(db *sql.DB, provider embedding.Provider, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, goerr.New("db is nil")
	}
	if provider == nil {
		return nil, goerr.New("embedding provider is nil")
	}

	s := &Store{
		db:       db,
		provider: provider,
		table:    DefaultTable,
		metric:   vector.Cosine,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := validateTable(s.table); err != nil {
		return nil, err
	}
	if err := s.metric.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid metric")
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// StoreMemory embeds the text of in.Content, then inserts a new record and
// returns it as stored. See EmbeddableText for which text is embedded.
func (s *Store) StoreMemory(ctx context.Context, in NewMemory) (*Memory, error) {
	text, err := EmbeddableText(in.Content)
	if err != nil {
		return nil, err
	}
	if err := checkCtx(ctx, "store"); err != nil {
		return nil, err
	}

	vec, err := s.provider.Generate(ctx, text)
	if err != nil {
		return nil, fail(ctx, err, goerr.T(ErrEmbeddingUnavailable), "failed to generate embedding")
	}
	blob, err := vector.Encode(vec)
	if err != nil {
		return nil, goerr.Wrap(err, "embedding provider returned an unusable vector", goerr.T(ErrEmbeddingUnavailable))
	}

	var tags sql.NullString
	if len(in.Tags) > 0 {
		raw, err := json.Marshal(in.Tags)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode tags", goerr.T(ErrInvalidInput))
		}
		tags = sql.NullString{String: string(raw), Valid: true}
	}

	// Round(0) drops the monotonic reading so the returned value equals what
	// a later Get decodes.
	now := s.now().Round(0).UTC()
	m := &Memory{
		ID:         NewID(),
		Type:       in.Type,
		Content:    slices.Clone(in.Content),
		Source:     in.Source,
		Embedding:  slices.Clone(vec),
		Confidence: in.Confidence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if tags.Valid {
		m.Tags = slices.Clone(in.Tags)
	}

	stmt := fmt.Sprintf(`INSERT INTO %s(id, type, content, source, embedding, tags, confidence, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table)
	if _, err := s.db.ExecContext(ctx, stmt,
		string(m.ID), m.Type, string(m.Content), m.Source, blob, tags,
		m.Confidence, m.CreatedAt.UnixNano(), m.UpdatedAt.UnixNano(),
	); err != nil {
		return nil, fail(ctx, err, goerr.T(ErrStorage), "failed to insert memory",
			goerr.V("id", m.ID), goerr.V("dim", len(vec)))
	}

	logging.From(ctx).Debug("stored memory", "id", m.ID, "type", m.Type, "dim", len(vec), "tags", len(m.Tags))
	return m, nil
}

// Get returns the record with the given id, or nil when there is none.
func (s *Store) Get(ctx context.Context, id ID) (*Memory, error) {
	if err := checkCtx(ctx, "get"); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, memoryColumns, s.table)
	rows, err := s.db.QueryContext(ctx, q, string(id))
	if err != nil {
		return nil, fail(ctx, err, goerr.T(ErrStorage), "failed to query memory", goerr.V("id", id))
	}
	defer rows.Close()

	matches, err := scanMatches(rows)
	if err != nil {
		return nil, fail(ctx, err, goerr.T(ErrStorage), "failed to read memory", goerr.V("id", id))
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0].Memory, nil
}

// Delete removes the record with the given id and reports whether a row was
// removed. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id ID) (bool, error) {
	if err := checkCtx(ctx, "delete"); err != nil {
		return false, err
	}

	stmt := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.table)
	res, err := s.db.ExecContext(ctx, stmt, string(id))
	if err != nil {
		return false, fail(ctx, err, goerr.T(ErrStorage), "failed to delete memory", goerr.V("id", id))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, goerr.Wrap(err, "failed to read affected rows", goerr.V("id", id), goerr.T(ErrStorage))
	}

	logging.From(ctx).Debug("deleted memory", "id", id, "found", n > 0)
	return n > 0, nil
}
