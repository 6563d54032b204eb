package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/meridian-grc/resilscore/pkg/maturity"
	"github.com/meridian-grc/resilscore/pkg/snapshot"
)

const uniqueViolation = "23505"

var _ snapshot.Store = (*DB)(nil)

func levelOf(n int) maturity.Level { return maturity.Level(n).Clamp() }

// Insert writes one snapshot. The unique index on (organization_id,
// vendor_id, snapshot_date) is the concurrency mechanism: a duplicate
// day maps to snapshot.ErrSnapshotExists.
func (db *DB) Insert(ctx context.Context, s *snapshot.Snapshot) error {
	pillarLevels, err := json.Marshal(s.PillarLevels)
	if err != nil {
		return fmt.Errorf("encoding pillar levels: %w", err)
	}
	pillarPcts, err := json.Marshal(s.PillarPercentages)
	if err != nil {
		return fmt.Errorf("encoding pillar percentages: %w", err)
	}
	gapCounts, err := json.Marshal(s.GapCounts)
	if err != nil {
		return fmt.Errorf("encoding gap counts: %w", err)
	}
	criticalGaps, err := json.Marshal(s.CriticalGaps)
	if err != nil {
		return fmt.Errorf("encoding critical gaps: %w", err)
	}
	var change []byte
	if s.ChangeFromPrevious != nil {
		if change, err = json.Marshal(s.ChangeFromPrevious); err != nil {
			return fmt.Errorf("encoding change: %w", err)
		}
	}

	_, err = db.Pool.Exec(ctx, `
        INSERT INTO snapshots (
            id, organization_id, vendor_id, framework, snapshot_date,
            overall_level, overall_percentage, pillar_levels, pillar_percentages,
            requirements_met, requirements_total, gap_counts, critical_gaps,
            estimated_remediation, change_from_previous, created_by, notes, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
    `, s.ID, s.OrganizationID, s.VendorID, s.Framework, s.Date,
		int(s.OverallLevel), s.OverallPercentage, pillarLevels, pillarPcts,
		s.RequirementsMet, s.RequirementsTotal, gapCounts, criticalGaps,
		s.EstimatedRemediation, change, s.CreatedBy, s.Notes, s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return snapshot.ErrSnapshotExists
		}
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

func (db *DB) Latest(ctx context.Context, orgID, vendorID string) (*snapshot.Snapshot, error) {
	row := db.Pool.QueryRow(ctx, selectSnapshot+`
        WHERE organization_id = $1 AND vendor_id = $2
        ORDER BY snapshot_date DESC
        LIMIT 1
    `, orgID, vendorID)
	s, err := scanSnapshot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, snapshot.ErrNotFound
	}
	return s, err
}

func (db *DB) Range(ctx context.Context, orgID, vendorID string, from, to time.Time) ([]snapshot.Snapshot, error) {
	rows, err := db.Pool.Query(ctx, selectSnapshot+`
        WHERE organization_id = $1 AND vendor_id = $2
          AND snapshot_date BETWEEN $3 AND $4
        ORDER BY snapshot_date ASC
    `, orgID, vendorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot range: %w", err)
	}
	defer rows.Close()

	var out []snapshot.Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (db *DB) AppendChange(ctx context.Context, e snapshot.ChangeLogEntry) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO changelog (
            id, snapshot_id, organization_id, vendor_id, occurred_at,
            previous_level, new_level, percentage_delta, summary
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `, e.ID, e.SnapshotID, e.OrganizationID, e.VendorID, e.OccurredAt,
		int(e.PreviousLevel), int(e.NewLevel), e.PercentageDelta, e.Summary)
	if err != nil {
		return fmt.Errorf("appending changelog entry: %w", err)
	}
	return nil
}

func (db *DB) Changes(ctx context.Context, orgID, vendorID string, limit int) ([]snapshot.ChangeLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx, `
        SELECT id, snapshot_id, organization_id, vendor_id, occurred_at,
               previous_level, new_level, percentage_delta, summary
        FROM changelog
        WHERE organization_id = $1 AND vendor_id = $2
        ORDER BY occurred_at DESC
        LIMIT $3
    `, orgID, vendorID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying changelog: %w", err)
	}
	defer rows.Close()

	var out []snapshot.ChangeLogEntry
	for rows.Next() {
		var e snapshot.ChangeLogEntry
		var prev, next int
		if err := rows.Scan(&e.ID, &e.SnapshotID, &e.OrganizationID, &e.VendorID,
			&e.OccurredAt, &prev, &next, &e.PercentageDelta, &e.Summary); err != nil {
			return nil, fmt.Errorf("scanning changelog entry: %w", err)
		}
		e.PreviousLevel, e.NewLevel = levelOf(prev), levelOf(next)
		out = append(out, e)
	}
	return out, rows.Err()
}

const selectSnapshot = `
        SELECT id, organization_id, vendor_id, framework, snapshot_date,
               overall_level, overall_percentage, pillar_levels, pillar_percentages,
               requirements_met, requirements_total, gap_counts, critical_gaps,
               estimated_remediation, change_from_previous, created_by, notes, created_at
        FROM snapshots
`

func scanSnapshot(row pgx.Row) (*snapshot.Snapshot, error) {
	var s snapshot.Snapshot
	var level int
	var pillarLevels, pillarPcts, gapCounts, criticalGaps, change []byte
	err := row.Scan(&s.ID, &s.OrganizationID, &s.VendorID, &s.Framework, &s.Date,
		&level, &s.OverallPercentage, &pillarLevels, &pillarPcts,
		&s.RequirementsMet, &s.RequirementsTotal, &gapCounts, &criticalGaps,
		&s.EstimatedRemediation, &change, &s.CreatedBy, &s.Notes, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.OverallLevel = levelOf(level)
	if err := json.Unmarshal(pillarLevels, &s.PillarLevels); err != nil {
		return nil, fmt.Errorf("decoding pillar levels: %w", err)
	}
	if err := json.Unmarshal(pillarPcts, &s.PillarPercentages); err != nil {
		return nil, fmt.Errorf("decoding pillar percentages: %w", err)
	}
	if err := json.Unmarshal(gapCounts, &s.GapCounts); err != nil {
		return nil, fmt.Errorf("decoding gap counts: %w", err)
	}
	if err := json.Unmarshal(criticalGaps, &s.CriticalGaps); err != nil {
		return nil, fmt.Errorf("decoding critical gaps: %w", err)
	}
	if len(change) > 0 {
		if err := json.Unmarshal(change, &s.ChangeFromPrevious); err != nil {
			return nil, fmt.Errorf("decoding change: %w", err)
		}
	}
	return &s, nil
}
