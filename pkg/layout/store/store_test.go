package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/geometry"
	"github.com/matzehuels/combview/pkg/layout"
)

const squareJSON = `{"outline": [
  {"id": 0, "pos": [0, 0]}, {"id": 1, "pos": [10, 0]},
  {"id": 2, "pos": [10, 10]}, {"id": 3, "pos": [0, 10]}
]}`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFileStoreLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "square.json", squareJSON)
	writeFile(t, dir, "broken.json", `{"outline": [`)

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := s.Load(ctx, "square")
	if err != nil {
		t.Fatalf("Load(square): %v", err)
	}
	if len(doc.Outline) != 4 {
		t.Errorf("outline has %d vertices, want 4", len(doc.Outline))
	}

	tests := []struct {
		name string
		code errors.Code
	}{
		{"missing", errors.ErrCodeLayoutNotFound},
		{"broken", errors.ErrCodeLayoutParse},
		{"../etc/passwd", errors.ErrCodeInvalidName},
		{"", errors.ErrCodeInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Load(ctx, tt.name)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load(%q) error = %v, want %s", tt.name, err, tt.code)
			}
		})
	}
}

func TestFileStoreListAndSave(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "b.json", squareJSON)
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatal(err)
	}

	s, _ := NewFileStore(dir)
	doc, err := s.Load(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "a", doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"a", "b"}; !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}

	back, err := s.Load(ctx, "a")
	if err != nil {
		t.Fatalf("Load(a): %v", err)
	}
	if back.Outline[2].Pos != geometry.Pt(10, 10) {
		t.Errorf("saved layout changed: %v", back.Outline)
	}
}

func TestFileStoreMissingDir(t *testing.T) {
	s, _ := NewFileStore(filepath.Join(t.TempDir(), "nope"))
	names, err := s.List(context.Background())
	if err != nil || len(names) != 0 {
		t.Errorf("List() = %v, %v; want empty, nil", names, err)
	}
}

func TestFileStoreSaveRejectsInvalid(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	bad := &layout.Document{Screws: []layout.Screw{{Radius: -1}}}
	if err := s.Save(context.Background(), "bad", bad); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("Save() error = %v, want INVALID_LAYOUT", err)
	}
}

func TestEmbeddedStore(t *testing.T) {
	ctx := context.Background()
	s := NewEmbeddedStore()

	doc, err := s.Load(ctx, layout.DefaultName)
	if err != nil {
		t.Fatalf("Load(default): %v", err)
	}
	if len(doc.Outline) == 0 {
		t.Error("default layout has no outline")
	}
	if _, err := s.Load(ctx, "other"); !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("Load(other) error = %v, want LAYOUT_NOT_FOUND", err)
	}
	names, _ := s.List(ctx)
	if !slices.Equal(names, []string{layout.DefaultName}) {
		t.Errorf("List() = %v", names)
	}
}

func TestMulti(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "square.json", squareJSON)
	writeFile(t, dir, "broken.json", "{")
	fs, _ := NewFileStore(dir)
	m := Multi{fs, NewEmbeddedStore()}

	if _, err := m.Load(ctx, "square"); err != nil {
		t.Errorf("Load(square): %v", err)
	}
	if _, err := m.Load(ctx, layout.DefaultName); err != nil {
		t.Errorf("Load(default) should fall through to embedded store: %v", err)
	}
	if _, err := m.Load(ctx, "broken"); !errors.Is(err, errors.ErrCodeLayoutParse) {
		t.Errorf("Load(broken) error = %v, want LAYOUT_PARSE_ERROR", err)
	}
	if _, err := m.Load(ctx, "missing"); !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("Load(missing) error = %v, want LAYOUT_NOT_FOUND", err)
	}

	names, err := m.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"broken", layout.DefaultName, "square"}; !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
}
