package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/actuallystonmai/catalog-service/internal/domain"
)

// Document is a raw backend document: its id and the JSON source.
type Document struct {
	ID     string          `json:"id"`
	Source json.RawMessage `json:"source"`
}

// NewDocument marshals v as the source of a document with the given id.
func NewDocument(id string, v any) (Document, error) {
	src, err := json.Marshal(v)
	if err != nil {
		return Document{}, fmt.Errorf("marshal document %s: %w", id, err)
	}
	return Document{ID: id, Source: src}, nil
}

func (d Document) Decode(v any) error {
	if err := json.Unmarshal(d.Source, v); err != nil {
		return fmt.Errorf("decode document %s: %w", d.ID, err)
	}
	return nil
}

// Store reads documents from the search backend. Get returns
// domain.ErrNotFound when the document does not exist; an empty search
// result is not an error.
type Store interface {
	Get(ctx context.Context, index domain.Index, id string) (Document, error)
	Search(ctx context.Context, index domain.Index, req *Request) ([]Document, error)
}

// Indexer provisions indices and writes documents into them.
type Indexer interface {
	EnsureIndex(ctx context.Context, index domain.Index) error
	Index(ctx context.Context, index domain.Index, docs []Document) error
	Count(ctx context.Context, index domain.Index) (int, error)
}

// Backend is a search engine used both for reads and provisioning.
type Backend interface {
	Store
	Indexer
	Ping(ctx context.Context) error
	Close() error
}
