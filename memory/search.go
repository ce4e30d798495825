package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/viant/vecmem/internal/logging"
	"github.com/viant/vecmem/vector"
)

// Search defaults.
const (
	DefaultLimit         = 10
	DefaultMinSimilarity = 0.7
)

type searchOptions struct {
	limit         int
	minSimilarity float64
	tags          []string
}

// SearchOption customizes Search.
type SearchOption func(*searchOptions)

// WithLimit bounds the number of results. It must be positive.
func WithLimit(n int) SearchOption {
	return func(o *searchOptions) { o.limit = n }
}

// WithMinSimilarity sets the similarity threshold in [0,1]. Records are
// returned only if their distance is strictly below the metric's
// MaxDistance for this value.
func WithMinSimilarity(s float64) SearchOption {
	return func(o *searchOptions) { o.minSimilarity = s }
}

// WithTags restricts results to records whose tags include every given tag.
func WithTags(tags ...string) SearchOption {
	return func(o *searchOptions) { o.tags = append(o.tags, tags...) }
}

// Search embeds query and returns the closest records, nearest first.
// No match is an empty result, not an error.
func (s *Store) Search(ctx context.Context, query string, opts ...SearchOption) ([]*Match, error) {
	o := searchOptions{limit: DefaultLimit, minSimilarity: DefaultMinSimilarity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.limit <= 0 {
		return nil, goerr.New("limit must be positive", goerr.V("limit", o.limit), goerr.T(ErrInvalidInput))
	}
	if math.IsNaN(o.minSimilarity) || o.minSimilarity < 0 || o.minSimilarity > 1 {
		return nil, goerr.New("min similarity must be within [0,1]",
			goerr.V("min_similarity", o.minSimilarity), goerr.T(ErrInvalidInput))
	}
	if err := checkCtx(ctx, "search"); err != nil {
		return nil, err
	}

	vec, err := s.provider.Generate(ctx, query)
	if err != nil {
		return nil, fail(ctx, err, goerr.T(ErrEmbeddingUnavailable), "failed to generate query embedding")
	}
	blob, err := vector.Encode(vec)
	if err != nil {
		return nil, goerr.Wrap(err, "embedding provider returned an unusable vector", goerr.T(ErrEmbeddingUnavailable))
	}

	maxDistance := s.metric.MaxDistance(o.minSimilarity)
	q, args, err := s.searchQuery(blob, maxDistance, o)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fail(ctx, err, goerr.T(ErrStorage), "failed to search memories", goerr.V("dim", len(vec)))
	}
	defer rows.Close()

	matches, err := scanMatches(rows)
	if err != nil {
		return nil, fail(ctx, err, goerr.T(ErrStorage), "failed to read search results")
	}
	for _, m := range matches {
		m.Similarity = s.metric.Similarity(m.Distance)
	}

	logging.From(ctx).Debug("searched memories",
		"results", len(matches), "limit", o.limit, "max_distance", maxDistance, "tags", o.tags)
	return matches, nil
}

// searchQuery builds the similarity statement. The distance is computed once
// in a subquery so the threshold, tag filter and ordering share it.
func (s *Store) searchQuery(queryBlob []byte, maxDistance float64, o searchOptions) (string, []any, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `SELECT * FROM (
    SELECT %s, %s(embedding, ?) AS distance FROM %s
) AS m
WHERE m.distance < ?`, memoryColumns, s.metric.Function, s.table)
	args := []any{queryBlob, maxDistance}

	if len(o.tags) > 0 {
		raw, err := json.Marshal(o.tags)
		if err != nil {
			return "", nil, goerr.Wrap(err, "failed to encode tag filter", goerr.T(ErrInvalidInput))
		}
		sb.WriteString(`
  AND NOT EXISTS (
    SELECT 1 FROM json_each(?) AS f
    WHERE f.value NOT IN (SELECT t.value FROM json_each(m.tags) AS t)
  )`)
		args = append(args, string(raw))
	}

	sb.WriteString(`
ORDER BY m.distance ASC, m.id ASC
LIMIT ?`)
	args = append(args, o.limit)
	return sb.String(), args, nil
}
