package store

import (
	"context"
	stderrors "errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/geometry"
	"github.com/matzehuels/combview/pkg/layout"
)

// fakeCollection serves documents from memory, keyed by name.
type fakeCollection struct {
	docs     map[string]any
	replaced []any
	err      error
}

func (f *fakeCollection) FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult {
	name, _ := filter.(bson.M)["name"].(string)
	doc, ok := f.docs[name]
	if !ok {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(doc, nil, nil)
}

func (f *fakeCollection) Distinct(ctx context.Context, field string, filter any, opts ...*options.DistinctOptions) ([]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []any
	for name := range f.docs {
		out = append(out, name)
	}
	return out, nil
}

func (f *fakeCollection) ReplaceOne(ctx context.Context, filter, replacement any, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	f.replaced = append(f.replaced, replacement)
	return &mongo.UpdateResult{UpsertedCount: 1}, nil
}

func newFake() *fakeCollection {
	return &fakeCollection{docs: map[string]any{
		"square": bson.M{
			"name": "square",
			"outline": bson.A{
				bson.M{"id": 0, "pos": bson.A{0.0, 0.0}},
				bson.M{"id": 1, "pos": bson.A{10.0, 0.0}},
				bson.M{"id": 2, "pos": bson.A{10.0, 10.0}},
			},
			"actuators": bson.A{
				bson.M{"id": 4, "pos": bson.A{5.0, 5.0}, "radius": 2.0},
			},
		},
		"broken": bson.M{"name": "broken", "outline": "not a list"},
	}}
}

func TestMongoStoreLoad(t *testing.T) {
	ctx := context.Background()
	s := NewMongoStoreFromCollection(newFake())

	doc, err := s.Load(ctx, "square")
	if err != nil {
		t.Fatalf("Load(square): %v", err)
	}
	if len(doc.Outline) != 3 || doc.Outline[2].Pos != geometry.Pt(10, 10) {
		t.Errorf("outline = %v", doc.Outline)
	}
	if a := doc.Actuators[0]; a.ID != 4 || a.Radius != 2 {
		t.Errorf("actuator = %+v", a)
	}

	if _, err := s.Load(ctx, "missing"); !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("Load(missing) error = %v, want LAYOUT_NOT_FOUND", err)
	}
	if _, err := s.Load(ctx, "broken"); !errors.Is(err, errors.ErrCodeLayoutParse) {
		t.Errorf("Load(broken) error = %v, want LAYOUT_PARSE_ERROR", err)
	}
	if _, err := s.Load(ctx, "a/b"); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("Load(a/b) error = %v, want INVALID_NAME", err)
	}
}

func TestMongoStoreList(t *testing.T) {
	s := NewMongoStoreFromCollection(newFake())
	names, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "broken" || names[1] != "square" {
		t.Errorf("List() = %v", names)
	}

	failing := &fakeCollection{err: stderrors.New("boom")}
	if _, err := NewMongoStoreFromCollection(failing).List(context.Background()); err == nil {
		t.Error("List() should surface collection errors")
	}
}

func TestMongoStoreSave(t *testing.T) {
	fake := newFake()
	s := NewMongoStoreFromCollection(fake)
	doc := &layout.Document{Outline: []layout.Vertex{{ID: 0, Pos: geometry.Pt(1, 1)}}}
	if err := s.Save(context.Background(), "new", doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(fake.replaced) != 1 {
		t.Fatalf("ReplaceOne called %d times", len(fake.replaced))
	}
	rec, ok := fake.replaced[0].(record)
	if !ok || rec.Name != "new" || len(rec.Outline) != 1 {
		t.Errorf("replacement = %#v", fake.replaced[0])
	}
	if err := s.Close(context.Background()); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNewMongoStoreRequiresURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), MongoConfig{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewMongoStore() error = %v, want INVALID_INPUT", err)
	}
}
