package collective

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	store := setupTestStore(t)
	blobs := setupTestBlobs(t)
	cache := newSummaryCache(store, time.Minute)
	return NewRepository(store, blobs, cache, zap.NewNop())
}

func TestRepoCreateThenList(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	id, err := r.Create(ctx, testArticle("", "Walking the Grid"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" {
		t.Fatal("Create should assign an id")
	}

	summaries, err := r.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("List count = %d, want 1", len(summaries))
	}
	got := summaries[0]
	if got.ID != id {
		t.Errorf("ID = %q, want %q", got.ID, id)
	}
	if got.Title != "Walking the Grid" {
		t.Errorf("Title = %q, want %q", got.Title, "Walking the Grid")
	}
	if len(got.Tags) != 2 {
		t.Errorf("Tags = %v, want 2 tags", got.Tags)
	}
}

func TestRepoGetByIDHydratesContent(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	a := testArticle("", "Hydrated")
	a.Content = "<p>the body</p>"
	id, err := r.Create(ctx, a)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := r.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Content != "<p>the body</p>" {
		t.Errorf("Content = %q, want %q", got.Content, "<p>the body</p>")
	}
}

func TestRepoGetByTitleSubstring(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	if _, err := r.Create(ctx, testArticle("", "Walking the Grid")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := r.Create(ctx, testArticle("", "Grid Systems")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	matches, err := r.GetByTitle(ctx, "grid")
	if err != nil {
		t.Fatalf("GetByTitle failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("GetByTitle count = %d, want 2", len(matches))
	}
	for _, m := range matches {
		if m.Content == "" {
			t.Errorf("match %q should carry its body", m.Title)
		}
	}
}

func TestRepoUpdateInvalidatesCache(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	id, err := r.Create(ctx, testArticle("", "Before"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// Warm the cache.
	if _, err := r.List(ctx); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	updated, err := r.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	updated.Title = "After"
	if err := r.Update(ctx, updated); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	summaries, err := r.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Title != "After" {
		t.Errorf("List after update = %+v, want the renamed article", summaries)
	}
}

func TestRepoDeleteRemovesEverywhere(t *testing.T) {
	r := setupTestRepo(t)
	ctx := context.Background()

	id, err := r.Create(ctx, testArticle("", "Doomed"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := r.List(ctx); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if err := r.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	summaries, err := r.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("List count = %d, want 0 after delete", len(summaries))
	}
	if _, err := r.GetByID(ctx, id); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	// The body blob is gone too.
	if _, err := r.blobs.Get(contentKeyFor(id)); err != ErrNotFound {
		t.Errorf("expected content blob removed, got %v", err)
	}
}
