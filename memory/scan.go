package memory

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/viant/vecmem/vector"
)

const memoryColumns = `id, type, content, source, embedding, tags, confidence, created_at, updated_at`

// record receives one row. Fields are bound by column name, so statements
// may select columns in any order; unknown columns are discarded.
type record struct {
	id         string
	typ        string
	content    string
	source     string
	embedding  []byte
	tags       sql.NullString
	confidence float64
	createdAt  int64
	updatedAt  int64
	distance   sql.NullFloat64
}

func (r *record) dest(columns []string) []any {
	dest := make([]any, len(columns))
	for i, col := range columns {
		switch col {
		case "id":
			dest[i] = &r.id
		case "type":
			dest[i] = &r.typ
		case "content":
			dest[i] = &r.content
		case "source":
			dest[i] = &r.source
		case "embedding":
			dest[i] = &r.embedding
		case "tags":
			dest[i] = &r.tags
		case "confidence":
			dest[i] = &r.confidence
		case "created_at":
			dest[i] = &r.createdAt
		case "updated_at":
			dest[i] = &r.updatedAt
		case "distance":
			dest[i] = &r.distance
		default:
			dest[i] = new(any)
		}
	}
	return dest
}

func (r *record) match() (*Match, error) {
	vec, err := vector.Decode(r.embedding)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode embedding", goerr.V("id", r.id))
	}

	var tags []string
	if r.tags.Valid {
		if err := json.Unmarshal([]byte(r.tags.String), &tags); err != nil {
			return nil, goerr.Wrap(err, "failed to decode tags", goerr.V("id", r.id))
		}
		if len(tags) == 0 {
			tags = nil
		}
	}

	return &Match{
		Memory: &Memory{
			ID:         ID(r.id),
			Type:       r.typ,
			Content:    json.RawMessage(r.content),
			Source:     r.source,
			Embedding:  vec,
			Tags:       tags,
			Confidence: r.confidence,
			CreatedAt:  time.Unix(0, r.createdAt).UTC(),
			UpdatedAt:  time.Unix(0, r.updatedAt).UTC(),
		},
		Distance: r.distance.Float64,
	}, nil
}

func scanMatches(rows *sql.Rows) ([]*Match, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read columns")
	}

	matches := []*Match{}
	for rows.Next() {
		var r record
		if err := rows.Scan(r.dest(columns)...); err != nil {
			return nil, goerr.Wrap(err, "failed to scan row")
		}
		m, err := r.match()
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate rows")
	}
	return matches, nil
}
