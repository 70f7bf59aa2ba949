// Package store loads layout documents by name.
//
// This package defines the [Store] interface with implementations for
// different backends:
//   - [FileStore]: a directory of <name>.json files
//   - [EmbeddedStore]: the layout compiled into the binary
//   - [MongoStore]: one MongoDB document per layout, keyed by "name"
//   - [Multi]: several stores consulted in order
//
// Every backend reports failures with the same codes from pkg/errors:
// LAYOUT_NOT_FOUND when the name is unknown and LAYOUT_PARSE_ERROR when
// the stored document is malformed. Invalid names are rejected with
// INVALID_NAME before any backend is touched.
package store

import (
	"context"
	"slices"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/layout"
)

// Store is the read side of a layout backend.
type Store interface {
	// Load returns the named layout. The returned document belongs to the
	// caller.
	Load(ctx context.Context, name string) (*layout.Document, error)

	// List returns the names of all stored layouts, sorted.
	List(ctx context.Context) ([]string, error)
}

// Writer is implemented by stores that accept new layouts.
type Writer interface {
	Save(ctx context.Context, name string, doc *layout.Document) error
}

// notFound builds the LAYOUT_NOT_FOUND error shared by all backends.
func notFound(name string, cause error) error {
	if cause != nil {
		return errors.Wrap(errors.ErrCodeLayoutNotFound, cause, "layout %q not found", name)
	}
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %q not found", name)
}

// Multi consults each store in order and returns the first layout found.
// A LAYOUT_NOT_FOUND from one store moves on to the next; any other error
// stops the search.
type Multi []Store

// Load implements Store.
func (m Multi) Load(ctx context.Context, name string) (*layout.Document, error) {
	for _, s := range m {
		doc, err := s.Load(ctx, name)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, errors.ErrCodeLayoutNotFound) {
			return nil, err
		}
	}
	return nil, notFound(name, nil)
}

// List implements Store. Names present in several stores appear once.
func (m Multi) List(ctx context.Context) ([]string, error) {
	var all []string
	for _, s := range m {
		names, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, names...)
	}
	slices.Sort(all)
	return slices.Compact(all), nil
}

var _ Store = Multi(nil)
