package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/layout"
)

// FileStore reads layouts from <dir>/<name>.json.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory does not need
// to exist until a layout is loaded or saved.
func NewFileStore(dir string) (*FileStore, error) {
	if err := errors.ValidatePath(dir); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *FileStore) Dir() string { return s.dir }

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, name string) (*layout.Document, error) {
	if err := errors.ValidateLayoutName(name); err != nil {
		return nil, err
	}
	doc, err := layout.ImportJSON(s.path(name))
	if errors.Is(err, errors.ErrCodeLayoutNotFound) {
		return nil, notFound(name, err)
	}
	return doc, err
}

// List implements Store. A missing directory lists as empty.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(names)
	return names, nil
}

// Save implements Writer. Existing layouts are overwritten.
func (s *FileStore) Save(ctx context.Context, name string, doc *layout.Document) error {
	if err := errors.ValidateLayoutName(name); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(s.path(name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := layout.WriteJSON(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

var (
	_ Store  = (*FileStore)(nil)
	_ Writer = (*FileStore)(nil)
)
