package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/codepulse/internal/domain"
)

// ImageRepository stores uploaded image metadata; blobs live in object storage.
type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) error
	List(ctx context.Context) ([]domain.Image, error)
}

type imageRepository struct {
	pool *pgxpool.Pool
}

// NewImageRepository returns a Postgres-backed implementation.
func NewImageRepository(pool *pgxpool.Pool) ImageRepository {
	return &imageRepository{pool: pool}
}

func (r *imageRepository) Create(ctx context.Context, image *domain.Image) error {
	const query = `
        INSERT INTO images (file_name, file_extension, title, url, storage_key)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		image.FileName,
		image.FileExtension,
		image.Title,
		image.URL,
		image.StorageKey,
	).Scan(&image.ID, &image.CreatedAt)
}

func (r *imageRepository) List(ctx context.Context) ([]domain.Image, error) {
	const query = `
        SELECT id, file_name, file_extension, title, url, storage_key, created_at
        FROM images ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.Image
	for rows.Next() {
		var image domain.Image
		if err := rows.Scan(
			&image.ID,
			&image.FileName,
			&image.FileExtension,
			&image.Title,
			&image.URL,
			&image.StorageKey,
			&image.CreatedAt,
		); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}
