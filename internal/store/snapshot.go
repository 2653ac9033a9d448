package store

import (
	"context"
	"fmt"
	"time"
)

// SnapshotRow is one record destined for a snapshot table
type SnapshotRow struct {
	CompetitionCode *string   `db:"competition_code"`
	Payload         JSONB     `db:"payload"`
	FetchedAt       time.Time `db:"fetched_at"`
}

// ReplaceSnapshots replaces the entire contents of a snapshot table with the
// given rows. Delete and insert run in one transaction, so readers never
// observe the table mid-replacement; two overlapping replacements still
// last-write-win. Returns the number of rows inserted.
func (s *Store) ReplaceSnapshots(ctx context.Context, kind SnapshotKind, rows []SnapshotRow) (int64, error) {
	table, ok := snapshotTables[kind]
	if !ok {
		return 0, fmt.Errorf("unknown snapshot kind %q", kind)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin snapshot replacement: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
		s.logger.Error(ctx, "failed to clear snapshot table", err)
		return 0, fmt.Errorf("failed to clear %s: %w", table, err)
	}

	insert := fmt.Sprintf(
		`INSERT INTO %s (competition_code, payload, fetched_at) VALUES (:competition_code, :payload, :fetched_at)`,
		table)
	res, err := tx.NamedExecContext(ctx, insert, rows)
	if err != nil {
		s.logger.Error(ctx, "failed to insert snapshot rows", err)
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot insert result: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot replacement: %w", err)
	}
	return inserted, nil
}

// ListSnapshots returns the current snapshot rows for a kind
func (s *Store) ListSnapshots(ctx context.Context, kind SnapshotKind) ([]Snapshot, error) {
	table, ok := snapshotTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown snapshot kind %q", kind)
	}

	snapshots := []Snapshot{}
	query := fmt.Sprintf(`SELECT id, competition_code, payload, fetched_at FROM %s ORDER BY fetched_at DESC, id`, table)
	if err := s.db.SelectContext(ctx, &snapshots, query); err != nil {
		s.logger.Error(ctx, "failed to list snapshots", err)
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	return snapshots, nil
}

// CountSnapshots returns the number of rows currently in a snapshot table
func (s *Store) CountSnapshots(ctx context.Context, kind SnapshotKind) (int, error) {
	table, ok := snapshotTables[kind]
	if !ok {
		return 0, fmt.Errorf("unknown snapshot kind %q", kind)
	}
	var count int
	if err := s.db.GetContext(ctx, &count, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)); err != nil {
		s.logger.Error(ctx, "failed to count snapshots", err)
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}
