package collective

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository composes the SQL store and the blob store into article-level
// operations: the row carries metadata and the blob key, the blob holds
// the rich-text body. All mutations invalidate the summaries cache so the
// next listing observes the change.
type Repository struct {
	store *Store
	blobs *BlobStore
	cache *summaryCache
	log   *zap.Logger
}

// NewRepository wires a repository over the given store and blob store.
func NewRepository(store *Store, blobs *BlobStore, cache *summaryCache, log *zap.Logger) *Repository {
	return &Repository{store: store, blobs: blobs, cache: cache, log: log}
}

func contentKeyFor(id string) string {
	return "article_" + id + ".html"
}

// List returns all article summaries, newest publish date first, from the
// TTL cache.
func (r *Repository) List(ctx context.Context) ([]ArticleSummary, error) {
	return r.cache.Summaries(ctx)
}

// Taxonomy returns the cached author/journal/medium/tag entities.
func (r *Repository) Taxonomy(ctx context.Context) (Taxonomy, error) {
	return r.cache.Taxonomy(ctx)
}

// GetByTitle returns every article whose title contains the given
// substring, bodies included. The context cancels the lookup when the
// requesting page navigates away.
func (r *Repository) GetByTitle(ctx context.Context, title string) ([]Article, error) {
	rows, err := r.store.SearchByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	articles := make([]Article, 0, len(rows))
	for _, row := range rows {
		a, err := r.hydrate(row)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// GetByID returns one article with its body, or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id string) (Article, error) {
	row, err := r.store.GetArticle(ctx, id)
	if err != nil {
		return Article{}, err
	}
	return r.hydrate(row)
}

func (r *Repository) hydrate(row articleRow) (Article, error) {
	content, err := r.blobs.Get(row.ContentKey)
	if err != nil && err != ErrNotFound {
		return Article{}, fmt.Errorf("load content %s: %w", row.ContentKey, err)
	}
	return Article{ArticleSummary: row.ArticleSummary, Content: string(content)}, nil
}

// Create stores a new article: body blob first, then the row and its
// taxonomy in one transaction. A failed insert leaves upserted taxonomy
// rows behind; they are idempotent and harmless unreferenced.
func (r *Repository) Create(ctx context.Context, a Article) (string, error) {
	a.ID = uuid.NewString()
	if a.PublishDate.IsZero() {
		a.PublishDate = time.Now().UTC()
	}
	key := contentKeyFor(a.ID)
	if err := r.blobs.Put(key, []byte(a.Content)); err != nil {
		return "", fmt.Errorf("store content: %w", err)
	}
	if err := r.store.CreateArticle(ctx, a, key); err != nil {
		if derr := r.blobs.Delete(key); derr != nil {
			r.log.Warn("orphaned content blob after failed insert",
				zap.String("key", key), zap.Error(derr))
		}
		return "", err
	}
	r.cache.Invalidate()
	return a.ID, nil
}

// Update rewrites the body blob and the article row; tag associations are
// fully replaced, not diffed.
func (r *Repository) Update(ctx context.Context, a Article) error {
	if err := r.blobs.Put(contentKeyFor(a.ID), []byte(a.Content)); err != nil {
		return fmt.Errorf("store content: %w", err)
	}
	if err := r.store.UpdateArticle(ctx, a); err != nil {
		return err
	}
	r.cache.Invalidate()
	return nil
}

// Delete removes the article row and its tag associations, then attempts
// to delete the body and cover-image blobs. Blob cleanup is best-effort;
// a failure there does not undo the row deletion.
func (r *Repository) Delete(ctx context.Context, id string) error {
	contentKey, coverImage, err := r.store.DeleteArticle(ctx, id)
	if err != nil {
		return err
	}
	if err := r.blobs.Delete(contentKey); err != nil {
		r.log.Warn("delete content blob", zap.String("key", contentKey), zap.Error(err))
	}
	if coverImage != "" {
		if err := r.blobs.Delete(coverImage); err != nil {
			r.log.Warn("delete cover image blob", zap.String("key", coverImage), zap.Error(err))
		}
	}
	r.cache.Invalidate()
	return nil
}

// AddTaxonomyItem upserts a single taxonomy entry and invalidates the
// cached taxonomy.
func (r *Repository) AddTaxonomyItem(ctx context.Context, kind, name string) error {
	if err := r.store.AddTaxonomyItem(ctx, kind, name); err != nil {
		return err
	}
	r.cache.Invalidate()
	return nil
}
