package memory

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ID identifies a memory record.
type ID string

// NewID generates a new unique ID
func NewID() ID {
	return ID(uuid.New().String())
}

func (id ID) String() string { return string(id) }

// Memory is a stored record. Embedding is always derived from Content by the
// store, never supplied by callers.
type Memory struct {
	ID         ID              `json:"id"`
	Type       string          `json:"type"`
	Content    json.RawMessage `json:"content"`
	Source     string          `json:"source"`
	Embedding  []float32       `json:"embedding,omitempty"`
	Tags       []string        `json:"tags,omitempty"`
	Confidence float64         `json:"confidence"`
	CreatedAt  time.Time       `json:"created_at"`

	// UpdatedAt equals CreatedAt; records are never modified after creation.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMemory is the caller-supplied part of a record.
type NewMemory struct {
	Type string
	// Content must be valid JSON. It is stored byte for byte.
	Content    json.RawMessage
	Source     string
	Tags       []string
	Confidence float64
}

// Match is a search hit.
type Match struct {
	*Memory
	// Distance is the metric's distance to the query; lower is closer.
	Distance float64 `json:"distance"`
	// Similarity is Distance mapped back through the metric.
	Similarity float64 `json:"similarity"`
}
