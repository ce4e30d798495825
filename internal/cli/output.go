package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/viant/vecmem/memory"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// memoryView is the printed form of a memory. Content is decoded so YAML
// output shows a document instead of bytes; the embedding is left out.
type memoryView struct {
	ID         string    `json:"id" yaml:"id"`
	Type       string    `json:"type" yaml:"type"`
	Content    any       `json:"content" yaml:"content"`
	Source     string    `json:"source" yaml:"source"`
	Tags       []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Confidence float64   `json:"confidence" yaml:"confidence"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"updated_at"`
	Distance   *float64  `json:"distance,omitempty" yaml:"distance,omitempty"`
	Similarity *float64  `json:"similarity,omitempty" yaml:"similarity,omitempty"`
}

func newMemoryView(m *memory.Memory) (*memoryView, error) {
	var content any
	if err := json.Unmarshal(m.Content, &content); err != nil {
		return nil, goerr.Wrap(err, "failed to decode content", goerr.V("id", m.ID))
	}
	return &memoryView{
		ID:         m.ID.String(),
		Type:       m.Type,
		Content:    content,
		Source:     m.Source,
		Tags:       m.Tags,
		Confidence: m.Confidence,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

func newMatchViews(matches []*memory.Match) ([]*memoryView, error) {
	views := make([]*memoryView, 0, len(matches))
	for _, m := range matches {
		v, err := newMemoryView(m.Memory)
		if err != nil {
			return nil, err
		}
		distance, similarity := m.Distance, m.Similarity
		v.Distance = &distance
		v.Similarity = &similarity
		views = append(views, v)
	}
	return views, nil
}

// write prints v to w in the requested format
func write(w io.Writer, format string, v any) error {
	switch format {
	case "", formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return goerr.Wrap(err, "failed to marshal output")
		}
		fmt.Fprintf(w, "%s\n", string(data))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to marshal output")
		}
		if err := enc.Close(); err != nil {
			return goerr.Wrap(err, "failed to flush output")
		}
	default:
		return goerr.New("unsupported output format", goerr.V("format", format))
	}
	return nil
}
