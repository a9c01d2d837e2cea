package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/redline/internal/compare"
)

// ErrRunNotFound is returned when a run token has no record.
var ErrRunNotFound = errors.New("run not found")

// ReadRun returns the run record for a token.
func (s *Store) ReadRun(ctx context.Context, token string) (Run, error) {
	var run Run
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT token, author, created_at, source_a, source_b, revision_count
		FROM runs
		WHERE token = ?
	`, token).Scan(&run.Token, &run.Author, &createdAt, &run.SourceA, &run.SourceB, &run.RevisionCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", token, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}

	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("read run: parse created_at: %w", err)
	}
	return run, nil
}

// ListRuns returns all run records ordered by token. Tokens are UUIDv7,
// so token order is creation order.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, author, created_at, source_a, source_b, revision_count
		FROM runs
		ORDER BY token ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.Token, &run.Author, &createdAt, &run.SourceA, &run.SourceB, &run.RevisionCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ListRevisions returns a run's revision records ordered by rev id, the
// order they were assigned in.
//
// Returns an empty slice (not nil) when the run recorded no revisions.
func (s *Store) ListRevisions(ctx context.Context, token string) ([]compare.Revision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rev_id, kind, author, date, text, path, properties
		FROM revisions
		WHERE run_token = ?
		ORDER BY rev_id ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	revs := []compare.Revision{}
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	return revs, nil
}

// CountByKind returns the number of revisions of each kind for a run.
func (s *Store) CountByKind(ctx context.Context, token string) (map[compare.RevisionKind]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*)
		FROM revisions
		WHERE run_token = ?
		GROUP BY kind
	`, token)
	if err != nil {
		return nil, fmt.Errorf("count revisions: %w", err)
	}
	defer rows.Close()

	counts := map[compare.RevisionKind]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[compare.RevisionKind(kind)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

func scanRevision(rows *sql.Rows) (compare.Revision, error) {
	var rev compare.Revision
	var kind, date, props string
	if err := rows.Scan(&rev.ID, &kind, &rev.Author, &date, &rev.Text, &rev.Path, &props); err != nil {
		return compare.Revision{}, fmt.Errorf("scan revision: %w", err)
	}
	rev.Kind = compare.RevisionKind(kind)

	var err error
	rev.Date, err = time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return compare.Revision{}, fmt.Errorf("parse revision date: %w", err)
	}

	var changed []string
	if err := json.Unmarshal([]byte(props), &changed); err != nil {
		return compare.Revision{}, fmt.Errorf("parse revision properties: %w", err)
	}
	if len(changed) > 0 {
		rev.ChangedProperties = changed
	}
	return rev, nil
}
