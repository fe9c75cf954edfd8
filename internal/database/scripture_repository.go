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

const scriptureColumns = `id, book_id, chapter_num, verse_from, verse_to, bible_version, content, created_at`

// ScriptureRepo implements domain.ScriptureRepository backed by PostgreSQL.
type ScriptureRepo struct {
	pool *pgxpool.Pool
}

func NewScriptureRepo(pool *pgxpool.Pool) *ScriptureRepo {
	return &ScriptureRepo{pool: pool}
}

func scanScripture(row pgx.Row) (*domain.Scripture, error) {
	var s domain.Scripture
	err := row.Scan(&s.ID, &s.BookID, &s.ChapterNum, &s.VerseFrom, &s.VerseTo,
		&s.BibleVersion, &s.Content, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScriptureRepo) GetScripture(ctx context.Context, id uuid.UUID) (*domain.Scripture, error) {
	s, err := scanScripture(r.pool.QueryRow(ctx, `
		SELECT `+scriptureColumns+` FROM scriptures WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrScriptureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scripture: %w", err)
	}
	return s, nil
}

func (r *ScriptureRepo) SearchScriptures(ctx context.Context, query string, limit int) ([]domain.Scripture, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+scriptureColumns+` FROM scriptures
		WHERE book_id ILIKE '%' || $1 || '%' OR content ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search scriptures: %w", err)
	}
	defer rows.Close()

	var scriptures []domain.Scripture
	for rows.Next() {
		s, err := scanScripture(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scripture: %w", err)
		}
		scriptures = append(scriptures, *s)
	}
	return scriptures, rows.Err()
}

func (r *ScriptureRepo) CreateScripture(ctx context.Context, s *domain.Scripture) (*domain.Scripture, error) {
	created, err := scanScripture(r.pool.QueryRow(ctx, `
		INSERT INTO scriptures (book_id, chapter_num, verse_from, verse_to, bible_version, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+scriptureColumns,
		s.BookID, s.ChapterNum, s.VerseFrom, s.VerseTo, s.BibleVersion, s.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to create scripture: %w", err)
	}
	return created, nil
}
