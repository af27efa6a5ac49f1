package collective

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = sql.ErrNoRows

// ErrInvalidTaxonomy is returned when a taxonomy kind is not one of the
// four known tables. Caller-supplied kinds are never interpolated into
// SQL; they only select from this fixed set.
var ErrInvalidTaxonomy = errors.New("invalid taxonomy kind")

// taxonomyTables is the allowlist of taxonomy kinds to table names.
var taxonomyTables = map[string]string{
	"authors":  "authors",
	"journals": "journals",
	"mediums":  "mediums",
	"tags":     "tags",
}

// Store wraps a SQLite database holding articles and their taxonomy.
// Article bodies live in the blob store; rows carry the content key.
type Store struct {
	db *sql.DB
}

// articleRow is a summary joined with the body's blob key.
type articleRow struct {
	ArticleSummary
	ContentKey string
}

// NewStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write, busy timeout so writers wait instead
	// of failing with SQLITE_BUSY, synchronous=NORMAL is safe under WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS authors (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS journals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS mediums (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS tags (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS articles (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    author_id INTEGER NOT NULL REFERENCES authors(id),
    journal_id INTEGER NOT NULL REFERENCES journals(id),
    medium_id INTEGER NOT NULL REFERENCES mediums(id),
    publish_date TEXT NOT NULL,
    cover_image TEXT NOT NULL DEFAULT '',
    content_key TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS article_tags (
    article_id TEXT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    tag_id INTEGER NOT NULL REFERENCES tags(id),
    PRIMARY KEY (article_id, tag_id)
);
CREATE TABLE IF NOT EXISTS images (
    key TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_publish_date ON articles(publish_date);
CREATE INDEX IF NOT EXISTS idx_article_tags_tag ON article_tags(tag_id);
`)
	return err
}

// summaryQuery builds the joined listing select shared by all article
// reads: one row per article with taxonomy names resolved and tags
// concatenated.
func summaryQuery() sq.SelectBuilder {
	return sq.Select(
		"a.id", "a.title", "a.publish_date", "a.cover_image", "a.content_key",
		"au.name AS author", "j.name AS journal", "m.name AS medium",
		"GROUP_CONCAT(t.name) AS tags",
	).
		From("articles a").
		Join("authors au ON a.author_id = au.id").
		Join("journals j ON a.journal_id = j.id").
		Join("mediums m ON a.medium_id = m.id").
		LeftJoin("article_tags at ON a.id = at.article_id").
		LeftJoin("tags t ON at.tag_id = t.id").
		GroupBy("a.id").
		OrderBy("a.publish_date DESC")
}

func (s *Store) queryRows(ctx context.Context, b sq.SelectBuilder) ([]articleRow, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []articleRow
	for rows.Next() {
		r, err := scanArticleRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanArticleRow(rows *sql.Rows) (articleRow, error) {
	var r articleRow
	var date string
	var tags sql.NullString
	if err := rows.Scan(&r.ID, &r.Title, &date, &r.CoverImage, &r.ContentKey,
		&r.Author, &r.Journal, &r.Medium, &tags); err != nil {
		return articleRow{}, err
	}
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return articleRow{}, fmt.Errorf("parse publish date %q: %w", date, err)
	}
	r.PublishDate = t
	if tags.Valid && tags.String != "" {
		r.Tags = strings.Split(tags.String, ",")
	}
	return r, nil
}

// ListArticles returns every article summary, newest publish date first.
func (s *Store) ListArticles(ctx context.Context) ([]articleRow, error) {
	return s.queryRows(ctx, summaryQuery())
}

// SearchByTitle returns articles whose title contains the given substring,
// case-insensitively. Multiple matches are possible.
func (s *Store) SearchByTitle(ctx context.Context, title string) ([]articleRow, error) {
	pattern := "%" + strings.ToLower(title) + "%"
	return s.queryRows(ctx, summaryQuery().Where("LOWER(a.title) LIKE ?", pattern))
}

// GetArticle returns a single article row by id.
func (s *Store) GetArticle(ctx context.Context, id string) (articleRow, error) {
	rows, err := s.queryRows(ctx, summaryQuery().Where(sq.Eq{"a.id": id}))
	if err != nil {
		return articleRow{}, err
	}
	if len(rows) == 0 {
		return articleRow{}, ErrNotFound
	}
	return rows[0], nil
}

// upsertTaxonomy inserts name into table keyed by its slug, overwriting
// the display name on slug collision (last write wins), and returns the
// row id. The table name always comes from the fixed allowlist, never
// from request input.
func upsertTaxonomy(ctx context.Context, tx *sql.Tx, table, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO `+table+` (name, slug) VALUES (?, ?)
		 ON CONFLICT (slug) DO UPDATE SET name = excluded.name
		 RETURNING id`,
		name, Slugify(name)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert %s %q: %w", table, name, err)
	}
	return id, nil
}

// CreateArticle inserts the article row and its taxonomy in one
// transaction. Author, journal, medium and each tag are upserted by slug
// first; the article row then references their ids.
func (s *Store) CreateArticle(ctx context.Context, a Article, contentKey string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		authorID, journalID, mediumID, tagIDs, err := upsertArticleTaxonomy(ctx, tx, a)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO articles (id, title, author_id, journal_id, medium_id, publish_date, cover_image, content_key)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Title, authorID, journalID, mediumID,
			a.PublishDate.UTC().Format(time.RFC3339), a.CoverImage, contentKey); err != nil {
			return fmt.Errorf("insert article: %w", err)
		}
		return insertArticleTags(ctx, tx, a.ID, tagIDs)
	})
}

// UpdateArticle rewrites the article row and fully replaces its tag
// associations (delete-all-then-reinsert, not a diff).
func (s *Store) UpdateArticle(ctx context.Context, a Article) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		authorID, journalID, mediumID, tagIDs, err := upsertArticleTaxonomy(ctx, tx, a)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE articles SET title = ?, author_id = ?, journal_id = ?, medium_id = ?, publish_date = ?, cover_image = ?
			 WHERE id = ?`,
			a.Title, authorID, journalID, mediumID,
			a.PublishDate.UTC().Format(time.RFC3339), a.CoverImage, a.ID)
		if err != nil {
			return fmt.Errorf("update article: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = ?`, a.ID); err != nil {
			return fmt.Errorf("clear article tags: %w", err)
		}
		return insertArticleTags(ctx, tx, a.ID, tagIDs)
	})
}

// DeleteArticle removes the article row and its tag associations and
// returns the blob keys (content, cover image) for best-effort cleanup.
func (s *Store) DeleteArticle(ctx context.Context, id string) (contentKey, coverImage string, err error) {
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			`SELECT content_key, cover_image FROM articles WHERE id = ?`, id).
			Scan(&contentKey, &coverImage); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
		return err
	})
	return contentKey, coverImage, err
}

func upsertArticleTaxonomy(ctx context.Context, tx *sql.Tx, a Article) (authorID, journalID, mediumID int64, tagIDs []int64, err error) {
	if authorID, err = upsertTaxonomy(ctx, tx, "authors", a.Author); err != nil {
		return
	}
	if journalID, err = upsertTaxonomy(ctx, tx, "journals", a.Journal); err != nil {
		return
	}
	if mediumID, err = upsertTaxonomy(ctx, tx, "mediums", a.Medium); err != nil {
		return
	}
	for _, tag := range a.Tags {
		var id int64
		if id, err = upsertTaxonomy(ctx, tx, "tags", tag); err != nil {
			return
		}
		tagIDs = append(tagIDs, id)
	}
	return
}

func insertArticleTags(ctx context.Context, tx *sql.Tx, articleID string, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO article_tags (article_id, tag_id) VALUES (?, ?)`,
			articleID, tagID); err != nil {
			return fmt.Errorf("link tag: %w", err)
		}
	}
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Taxonomy fetches all four taxonomy tables in parallel, each ordered by
// display name.
func (s *Store) Taxonomy(ctx context.Context) (Taxonomy, error) {
	var t Taxonomy
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { t.Authors, err = s.listTaxonomy(ctx, "authors"); return })
	g.Go(func() (err error) { t.Journals, err = s.listTaxonomy(ctx, "journals"); return })
	g.Go(func() (err error) { t.Mediums, err = s.listTaxonomy(ctx, "mediums"); return })
	g.Go(func() (err error) { t.Tags, err = s.listTaxonomy(ctx, "tags"); return })
	if err := g.Wait(); err != nil {
		return Taxonomy{}, err
	}
	return t, nil
}

func (s *Store) listTaxonomy(ctx context.Context, table string) ([]MetadataItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, slug FROM `+table+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var items []MetadataItem
	for rows.Next() {
		var name, slug string
		if err := rows.Scan(&name, &slug); err != nil {
			return nil, err
		}
		items = append(items, MetadataItem{Label: name, Value: slug})
	}
	return items, rows.Err()
}

// AddTaxonomyItem upserts one taxonomy entry of the given kind. The kind
// is validated against the table allowlist.
func (s *Store) AddTaxonomyItem(ctx context.Context, kind, name string) error {
	table, ok := taxonomyTables[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTaxonomy, kind)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+table+` (name, slug) VALUES (?, ?)
		 ON CONFLICT (slug) DO UPDATE SET name = excluded.name`,
		name, Slugify(name))
	return err
}

// SaveImage records uploaded image metadata, keyed by content hash.
// Re-uploading identical bytes overwrites the same row.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO images (key, original_name, width, height, size, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		img.Key, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT key, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Key, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes an image metadata row.
func (s *Store) DeleteImage(key string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE key = ?`, key)
	return err
}
