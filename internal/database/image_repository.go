package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lporras/gedeon/internal/domain"
)

// ImageRepo implements domain.ImageRepository backed by PostgreSQL.
type ImageRepo struct {
	pool *pgxpool.Pool
}

func NewImageRepo(pool *pgxpool.Pool) *ImageRepo {
	return &ImageRepo{pool: pool}
}

func (r *ImageRepo) GetImage(ctx context.Context, id uuid.UUID) (*domain.ScheduleImage, error) {
	var img domain.ScheduleImage
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, url, created_at FROM schedule_images WHERE id = $1
	`, id).Scan(&img.ID, &img.Title, &img.URL, &img.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &img, nil
}
