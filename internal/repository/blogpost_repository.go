package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/codepulse/internal/domain"
)

// BlogPostRepository encapsulates blog post persistence including the
// post-category join table.
type BlogPostRepository interface {
	Create(ctx context.Context, post *domain.BlogPost, categoryIDs []string) error
	Update(ctx context.Context, post *domain.BlogPost, categoryIDs []string) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.BlogPost, error)
	GetByURLHandle(ctx context.Context, handle string) (*domain.BlogPost, error)
	List(ctx context.Context, limit, offset int) ([]domain.BlogPost, error)
}

type blogPostRepository struct {
	pool *pgxpool.Pool
}

// NewBlogPostRepository instantiates repository.
func NewBlogPostRepository(pool *pgxpool.Pool) BlogPostRepository {
	return &blogPostRepository{pool: pool}
}

const blogPostColumns = `id, title, short_description, content, featured_image_url,
        url_handle, author, is_visible, published_at, created_at, updated_at`

func (r *blogPostRepository) Create(ctx context.Context, post *domain.BlogPost, categoryIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO blog_posts (title, short_description, content, featured_image_url,
            url_handle, author, is_visible, published_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		post.Title,
		post.ShortDescription,
		post.Content,
		post.FeaturedImageURL,
		post.URLHandle,
		post.Author,
		post.IsVisible,
		post.PublishedAt,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return err
	}

	if err := r.replaceCategoryLinks(ctx, tx, post.ID, categoryIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	return r.loadCategories(ctx, post)
}

func (r *blogPostRepository) Update(ctx context.Context, post *domain.BlogPost, categoryIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE blog_posts SET title=$1, short_description=$2, content=$3,
            featured_image_url=$4, url_handle=$5, author=$6, is_visible=$7,
            published_at=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := tx.Exec(ctx, query,
		post.Title,
		post.ShortDescription,
		post.Content,
		post.FeaturedImageURL,
		post.URLHandle,
		post.Author,
		post.IsVisible,
		post.PublishedAt,
		post.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := r.replaceCategoryLinks(ctx, tx, post.ID, categoryIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	return r.loadCategories(ctx, post)
}

func (r *blogPostRepository) replaceCategoryLinks(ctx context.Context, tx pgx.Tx, postID string, categoryIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM blog_post_categories WHERE blog_post_id=$1`, postID); err != nil {
		return err
	}
	for _, categoryID := range categoryIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO blog_post_categories (blog_post_id, category_id) VALUES ($1,$2)`,
			postID, categoryID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *blogPostRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *blogPostRepository) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	return r.fetchSingle(ctx, `SELECT `+blogPostColumns+` FROM blog_posts WHERE id=$1`, id)
}

func (r *blogPostRepository) GetByURLHandle(ctx context.Context, handle string) (*domain.BlogPost, error) {
	return r.fetchSingle(ctx, `SELECT `+blogPostColumns+` FROM blog_posts WHERE url_handle=$1`, handle)
}

func (r *blogPostRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.BlogPost, error) {
	var post domain.BlogPost
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&post.ID,
		&post.Title,
		&post.ShortDescription,
		&post.Content,
		&post.FeaturedImageURL,
		&post.URLHandle,
		&post.Author,
		&post.IsVisible,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := r.loadCategories(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepository) List(ctx context.Context, limit, offset int) ([]domain.BlogPost, error) {
	if limit < 1 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + blogPostColumns + ` FROM blog_posts ORDER BY published_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.BlogPost
	for rows.Next() {
		var post domain.BlogPost
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.ShortDescription,
			&post.Content,
			&post.FeaturedImageURL,
			&post.URLHandle,
			&post.Author,
			&post.IsVisible,
			&post.PublishedAt,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		if err := r.loadCategories(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (r *blogPostRepository) loadCategories(ctx context.Context, post *domain.BlogPost) error {
	const query = `
        SELECT c.id, c.name, c.url_handle, c.created_at, c.updated_at
        FROM categories c
        JOIN blog_post_categories bpc ON bpc.category_id = c.id
        WHERE bpc.blog_post_id = $1
        ORDER BY c.name`

	rows, err := r.pool.Query(ctx, query, post.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	post.Categories = post.Categories[:0]
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.URLHandle,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return err
		}
		post.Categories = append(post.Categories, category)
	}
	return rows.Err()
}
