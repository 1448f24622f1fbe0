package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/codepulse/internal/domain"
)

// CategoryFilter captures admin list parameters.
type CategoryFilter struct {
	Query         string
	SortBy        string
	SortDirection string
	Page          int
	PageSize      int
}

// CategoryRepository encapsulates category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, filter CategoryFilter) ([]domain.Category, error)
	Count(ctx context.Context) (int64, error)
	ExistAll(ctx context.Context, ids []string) (bool, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository instantiates repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, url_handle)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		category.Name,
		category.URLHandle,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, url_handle=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, category.Name, category.URLHandle, category.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const query = `
        SELECT id, name, url_handle, created_at, updated_at
        FROM categories WHERE id=$1`

	var category domain.Category
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.URLHandle,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, filter CategoryFilter) ([]domain.Category, error) {
	query, args := buildCategoryListQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.URLHandle,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// buildCategoryListQuery assembles the filtered, sorted, paginated SELECT.
// Sort columns are whitelisted; anything else falls back to creation order.
func buildCategoryListQuery(filter CategoryFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, name, url_handle, created_at, updated_at FROM categories`)

	args := make([]any, 0, 3)
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		sb.WriteString(fmt.Sprintf(" WHERE name ILIKE $%d", len(args)))
	}

	column := ""
	switch strings.ToLower(filter.SortBy) {
	case "name":
		column = "name"
	case "url":
		column = "url_handle"
	}
	if column != "" {
		direction := "DESC"
		if strings.EqualFold(filter.SortDirection, "asc") {
			direction = "ASC"
		}
		sb.WriteString(" ORDER BY " + column + " " + direction)
	} else {
		sb.WriteString(" ORDER BY created_at DESC")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 100
	}
	args = append(args, pageSize)
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, (page-1)*pageSize)
	sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	return sb.String(), args
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	return count, err
}

func (r *categoryRepository) ExistAll(ctx context.Context, ids []string) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT id) FROM categories WHERE id = ANY($1)`, ids,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == int64(len(ids)), nil
}
