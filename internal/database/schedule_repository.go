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

const entryColumns = `id, schedule_id, item_kind, item_id, position, created_at`

// ScheduleRepo implements domain.ScheduleRepository backed by PostgreSQL.
type ScheduleRepo struct {
	pool *pgxpool.Pool
}

func NewScheduleRepo(pool *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{pool: pool}
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var e domain.Entry
	var kind string
	err := row.Scan(&e.ID, &e.ScheduleID, &kind, &e.ItemID, &e.Position, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Kind = domain.ItemKind(kind)
	return &e, nil
}

func (r *ScheduleRepo) GetSchedule(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	var s domain.Schedule
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at FROM schedules WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &s, nil
}

func (r *ScheduleRepo) ListEntries(ctx context.Context, scheduleID uuid.UUID) ([]domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+` FROM schedule_entries
		WHERE schedule_id = $1 ORDER BY position ASC
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (r *ScheduleRepo) GetEntry(ctx context.Context, scheduleID, entryID uuid.UUID) (*domain.Entry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM schedule_entries
		WHERE schedule_id = $1 AND id = $2
	`, scheduleID, entryID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

// AddEntry appends at position = count(existing entries). The count and the
// insert run in one transaction so concurrent appends cannot collide.
func (r *ScheduleRepo) AddEntry(ctx context.Context, scheduleID uuid.UUID, kind domain.ItemKind, itemID uuid.UUID) (*domain.Entry, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schedules WHERE id = $1)`, scheduleID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check schedule: %w", err)
	}
	if !exists {
		return nil, domain.ErrScheduleNotFound
	}

	e, err := scanEntry(tx.QueryRow(ctx, `
		INSERT INTO schedule_entries (schedule_id, item_kind, item_id, position)
		VALUES ($1, $2, $3, (SELECT COUNT(*) FROM schedule_entries WHERE schedule_id = $1))
		RETURNING `+entryColumns,
		scheduleID, string(kind), itemID))
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return e, nil
}

// RemoveEntry deletes the entry. Scripture items are owned by their entry and
// are deleted in the same transaction; songs and images are shared and stay.
// Remaining positions are not renumbered.
func (r *ScheduleRepo) RemoveEntry(ctx context.Context, scheduleID, entryID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var kind string
	var itemID uuid.UUID
	err = tx.QueryRow(ctx, `
		DELETE FROM schedule_entries WHERE schedule_id = $1 AND id = $2
		RETURNING item_kind, item_id
	`, scheduleID, entryID).Scan(&kind, &itemID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEntryNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if domain.ItemKind(kind) == domain.KindScripture {
		if _, err := tx.Exec(ctx, `DELETE FROM scriptures WHERE id = $1`, itemID); err != nil {
			return fmt.Errorf("failed to cascade-delete scripture: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Reorder assigns position = index for each id in order, atomically. A
// partial list moves the listed entries to the front; unlisted entries keep
// their relative order after them, so the whole schedule is renumbered in one
// transaction. Any id not belonging to the schedule aborts the transaction.
func (r *ScheduleRepo) Reorder(ctx context.Context, scheduleID uuid.UUID, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	rows, err := tx.Query(ctx, `
		SELECT id FROM schedule_entries
		WHERE schedule_id = $1
		ORDER BY position
		FOR UPDATE
	`, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to lock entries: %w", err)
	}
	existing, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return fmt.Errorf("failed to scan entry ids: %w", err)
	}

	members := make(map[uuid.UUID]struct{}, len(existing))
	for _, entryID := range existing {
		members[entryID] = struct{}{}
	}

	listed := make(map[uuid.UUID]struct{}, len(orderedIDs))
	for _, entryID := range orderedIDs {
		if _, ok := members[entryID]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entryID)
		}
		listed[entryID] = struct{}{}
	}

	finalOrder := make([]uuid.UUID, 0, len(existing))
	finalOrder = append(finalOrder, orderedIDs...)
	for _, entryID := range existing {
		if _, ok := listed[entryID]; !ok {
			finalOrder = append(finalOrder, entryID)
		}
	}

	for index, entryID := range finalOrder {
		if _, err := tx.Exec(ctx, `
			UPDATE schedule_entries SET position = $1
			WHERE schedule_id = $2 AND id = $3
		`, index, scheduleID, entryID); err != nil {
			return fmt.Errorf("failed to update position: %w", err)
		}
	}

	return tx.Commit(ctx)
}
