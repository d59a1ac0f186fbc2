package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"classdraw/pkg/errors"
)

// storeCRUD exercises the Store contract against any backend.
func storeCRUD(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := Record{ID: "d1", Name: "billing", Source: "@startuml\n@enduml\n", CreatedAt: base, UpdatedAt: base}
	second := Record{ID: "d2", Name: "auth", Source: "@startuml\n@enduml\n", CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)}

	if err := s.Put(ctx, second); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, first); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "billing" || got.Source != first.Source {
		t.Errorf("Get = %+v", got)
	}

	// Put with an existing id replaces.
	renamed := first
	renamed.Name = "invoicing"
	renamed.UpdatedAt = base.Add(2 * time.Hour)
	if err := s.Put(ctx, renamed); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	got, _ = s.Get(ctx, "d1")
	if got.Name != "invoicing" {
		t.Errorf("replace lost: %+v", got)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "d1" || list[1].ID != "d2" {
		t.Errorf("List order = %+v", list)
	}

	if err := s.Delete(ctx, "d1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "d1"); !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("Get deleted = %v, want DIAGRAM_NOT_FOUND", err)
	}
	if err := s.Delete(ctx, "d1"); !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("double Delete = %v, want DIAGRAM_NOT_FOUND", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	storeCRUD(t, s)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "diagrams.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()
	storeCRUD(t, s)
}
