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

const songColumns = `id, title, author, content, created_at, updated_at`

// SongRepo implements domain.SongRepository backed by PostgreSQL.
type SongRepo struct {
	pool *pgxpool.Pool
}

func NewSongRepo(pool *pgxpool.Pool) *SongRepo {
	return &SongRepo{pool: pool}
}

func scanSong(row pgx.Row) (*domain.Song, error) {
	var s domain.Song
	err := row.Scan(&s.ID, &s.Title, &s.Author, &s.Content, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SongRepo) GetSong(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	s, err := scanSong(r.pool.QueryRow(ctx, `
		SELECT `+songColumns+` FROM songs WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song: %w", err)
	}
	return s, nil
}

func (r *SongRepo) SearchSongs(ctx context.Context, query string, limit int) ([]domain.Song, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+songColumns+` FROM songs
		WHERE title ILIKE '%' || $1 || '%'
		ORDER BY title ASC
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search songs: %w", err)
	}
	defer rows.Close()

	var songs []domain.Song
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, *s)
	}
	return songs, rows.Err()
}
