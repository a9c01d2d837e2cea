package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/redline/internal/compare"
)

// Run describes one comparison invocation for the audit log.
type Run struct {
	Token         string
	Author        string
	CreatedAt     time.Time
	SourceA       string
	SourceB       string
	RevisionCount int
}

// WriteRun inserts a run record and its revision records in one
// transaction. Uses ON CONFLICT DO NOTHING for idempotency - re-writing
// the same token (or the same rev id under it) is silently ignored, so
// the log never double-counts a retried invocation.
func (s *Store) WriteRun(ctx context.Context, run Run, revs []compare.Revision) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (token, author, created_at, source_a, source_b, revision_count)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`,
		run.Token,
		run.Author,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.SourceA,
		run.SourceB,
		run.RevisionCount,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	for _, rev := range revs {
		props, err := marshalProperties(rev.ChangedProperties)
		if err != nil {
			return fmt.Errorf("write run: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO revisions (run_token, rev_id, kind, author, date, text, path, properties)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(run_token, rev_id) DO NOTHING
		`,
			run.Token,
			rev.ID,
			string(rev.Kind),
			rev.Author,
			rev.Date.UTC().Format(time.RFC3339Nano),
			rev.Text,
			rev.Path,
			props,
		)
		if err != nil {
			return fmt.Errorf("write revision %d: %w", rev.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// marshalProperties serializes the changed-property list for the
// properties column. Nil and empty both store as "[]" so reads never see
// NULL.
func marshalProperties(props []string) (string, error) {
	if len(props) == 0 {
		return "[]", nil
	}
	out, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("marshal properties: %w", err)
	}
	return string(out), nil
}
