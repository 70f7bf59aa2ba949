package store

import (
	"context"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/layout"
)

// EmbeddedStore serves the compiled-in default layout under
// [layout.DefaultName].
type EmbeddedStore struct{}

// NewEmbeddedStore returns the store of built-in layouts.
func NewEmbeddedStore() EmbeddedStore { return EmbeddedStore{} }

// Load implements Store.
func (EmbeddedStore) Load(ctx context.Context, name string) (*layout.Document, error) {
	if err := errors.ValidateLayoutName(name); err != nil {
		return nil, err
	}
	if name != layout.DefaultName {
		return nil, notFound(name, nil)
	}
	return layout.Default()
}

// List implements Store.
func (EmbeddedStore) List(ctx context.Context) ([]string, error) {
	return []string{layout.DefaultName}, nil
}

var _ Store = EmbeddedStore{}
