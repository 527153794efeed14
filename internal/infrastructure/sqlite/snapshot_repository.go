package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zjrosen/plenum/internal/log"
	"github.com/zjrosen/plenum/internal/models"
)

const metaSavedAt = "saved_at"

// SnapshotRepository stores records as JSON rows keyed by collection and id.
type SnapshotRepository struct {
	db  *sql.DB
	now func() time.Time
}

func newSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db, now: time.Now}
}

// Save upserts records in one transaction and stamps the snapshot time.
func (r *SnapshotRepository) Save(ctx context.Context, records ...models.Record) error {
	if len(records) == 0 {
		return nil
	}
	now := r.now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (collection, id, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		model, err := toRecordModel(rec, now)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, model.Collection, model.ID, model.Data, model.UpdatedAt); err != nil {
			return fmt.Errorf("failed to save %s/%d: %w", model.Collection, model.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		metaSavedAt, strconv.FormatInt(now.Unix(), 10)); err != nil {
		return fmt.Errorf("failed to stamp snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	log.Debug(log.CatSnapshot, "records saved", "count", len(records))
	return nil
}

// Load decodes every stored record, ordered by collection then id. Rows of
// collections this build does not know are skipped.
func (r *SnapshotRepository) Load(ctx context.Context) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT collection, id, data, updated_at FROM records ORDER BY collection, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Record
	for rows.Next() {
		var m RecordModel
		if err := rows.Scan(&m.Collection, &m.ID, &m.Data, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec, err := m.toRecord()
		if errors.Is(err, models.ErrUnknownCollection) {
			log.Warn(log.CatSnapshot, "skipping unknown collection", "collection", m.Collection, "id", m.ID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s/%d: %w", m.Collection, m.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return out, nil
}

// Delete removes the given ids of collection and returns how many rows went.
func (r *SnapshotRepository) Delete(ctx context.Context, collection string, ids ...int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, collection)
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	return result.RowsAffected()
}

// Clear removes every record and the snapshot stamp.
func (r *SnapshotRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshot_meta WHERE key = ?`, metaSavedAt); err != nil {
		return fmt.Errorf("failed to clear snapshot stamp: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (r *SnapshotRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// SavedAt returns when Save last ran. ok is false for an empty snapshot.
func (r *SnapshotRepository) SavedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	var raw string
	err = r.db.QueryRowContext(ctx, `SELECT value FROM snapshot_meta WHERE key = ?`, metaSavedAt).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read snapshot stamp: %w", err)
	}
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("bad snapshot stamp %q: %w", raw, err)
	}
	return time.Unix(unix, 0), true, nil
}
