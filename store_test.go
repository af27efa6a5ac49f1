package collective

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testArticle(id, title string) Article {
	return Article{
		ArticleSummary: ArticleSummary{
			ID:          id,
			Title:       title,
			Author:      "Max Chu",
			Journal:     "Field Notes",
			Medium:      "Essay",
			PublishDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			Tags:        []string{"cities", "maps"},
		},
		Content: "<p>body</p>",
	}
}

func TestCreateAndListArticle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.CreateArticle(ctx, testArticle("a1", "Walking the Grid"), "article_a1.html"); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	rows, err := s.ListArticles(ctx)
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ListArticles count = %d, want 1", len(rows))
	}

	got := rows[0]
	if got.Title != "Walking the Grid" {
		t.Errorf("Title = %q, want %q", got.Title, "Walking the Grid")
	}
	if got.Author != "Max Chu" {
		t.Errorf("Author = %q, want %q", got.Author, "Max Chu")
	}
	if got.Journal != "Field Notes" {
		t.Errorf("Journal = %q, want %q", got.Journal, "Field Notes")
	}
	if got.Medium != "Essay" {
		t.Errorf("Medium = %q, want %q", got.Medium, "Essay")
	}
	if got.ContentKey != "article_a1.html" {
		t.Errorf("ContentKey = %q, want %q", got.ContentKey, "article_a1.html")
	}
	if len(got.Tags) != 2 {
		t.Errorf("Tags = %v, want 2 tags", got.Tags)
	}
}

func TestListArticlesNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	older := testArticle("a1", "Older")
	older.PublishDate = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testArticle("a2", "Newer")
	newer.PublishDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := s.CreateArticle(ctx, older, "k1"); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if err := s.CreateArticle(ctx, newer, "k2"); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	rows, err := s.ListArticles(ctx)
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(rows) != 2 || rows[0].Title != "Newer" {
		t.Errorf("expected Newer first, got %+v", rows)
	}
}

func TestSlugCollisionCollapses(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first := testArticle("a1", "One")
	first.Author = "Max Chu"
	second := testArticle("a2", "Two")
	second.Author = "max chu"

	if err := s.CreateArticle(ctx, first, "k1"); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if err := s.CreateArticle(ctx, second, "k2"); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	tax, err := s.Taxonomy(ctx)
	if err != nil {
		t.Fatalf("Taxonomy failed: %v", err)
	}
	if len(tax.Authors) != 1 {
		t.Fatalf("Authors count = %d, want 1 (slug collision)", len(tax.Authors))
	}
	// Display name is last write wins.
	if tax.Authors[0].Label != "max chu" {
		t.Errorf("Author label = %q, want %q", tax.Authors[0].Label, "max chu")
	}
	if tax.Authors[0].Value != "max-chu" {
		t.Errorf("Author slug = %q, want %q", tax.Authors[0].Value, "max-chu")
	}
}

func TestSearchByTitle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.CreateArticle(ctx, testArticle("a1", "Walking the Grid"), "k1"); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if err := s.CreateArticle(ctx, testArticle("a2", "Grid Systems"), "k2"); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if err := s.CreateArticle(ctx, testArticle("a3", "Elsewhere"), "k3"); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	rows, err := s.SearchByTitle(ctx, "grid")
	if err != nil {
		t.Fatalf("SearchByTitle failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("SearchByTitle(grid) count = %d, want 2", len(rows))
	}

	rows, err = s.SearchByTitle(ctx, "GRID SYSTEMS")
	if err != nil {
		t.Fatalf("SearchByTitle failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("SearchByTitle(GRID SYSTEMS) count = %d, want 1", len(rows))
	}
}

func TestUpdateArticleReplacesTags(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a := testArticle("a1", "Original")
	if err := s.CreateArticle(ctx, a, "k1"); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	a.Title = "Renamed"
	a.Tags = []string{"archive"}
	if err := s.UpdateArticle(ctx, a); err != nil {
		t.Fatalf("UpdateArticle failed: %v", err)
	}

	got, err := s.GetArticle(ctx, "a1")
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("Title = %q, want %q", got.Title, "Renamed")
	}
	if len(got.Tags) != 1 || got.Tags[0] != "archive" {
		t.Errorf("Tags = %v, want [archive]", got.Tags)
	}
}

func TestUpdateArticleNotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.UpdateArticle(context.Background(), testArticle("missing", "Nope"))
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteArticle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a := testArticle("a1", "Doomed")
	a.CoverImage = "cover.jpg"
	if err := s.CreateArticle(ctx, a, "article_a1.html"); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	contentKey, coverImage, err := s.DeleteArticle(ctx, "a1")
	if err != nil {
		t.Fatalf("DeleteArticle failed: %v", err)
	}
	if contentKey != "article_a1.html" {
		t.Errorf("contentKey = %q, want %q", contentKey, "article_a1.html")
	}
	if coverImage != "cover.jpg" {
		t.Errorf("coverImage = %q, want %q", coverImage, "cover.jpg")
	}

	if _, err := s.GetArticle(ctx, "a1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	rows, err := s.ListArticles(ctx)
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("ListArticles count = %d, want 0 after delete", len(rows))
	}
}

func TestAddTaxonomyItem(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.AddTaxonomyItem(ctx, "journals", "Night Paper"); err != nil {
		t.Fatalf("AddTaxonomyItem failed: %v", err)
	}
	tax, err := s.Taxonomy(ctx)
	if err != nil {
		t.Fatalf("Taxonomy failed: %v", err)
	}
	if len(tax.Journals) != 1 || tax.Journals[0].Label != "Night Paper" {
		t.Errorf("Journals = %v, want [Night Paper]", tax.Journals)
	}
}

func TestAddTaxonomyItemRejectsUnknownKind(t *testing.T) {
	s := setupTestStore(t)

	err := s.AddTaxonomyItem(context.Background(), "articles; DROP TABLE articles", "x")
	if !errors.Is(err, ErrInvalidTaxonomy) {
		t.Errorf("expected ErrInvalidTaxonomy, got %v", err)
	}
}
