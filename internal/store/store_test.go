package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/redline/internal/compare"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "redline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(token string) Run {
	return Run{
		Token:         token,
		Author:        "reviewer",
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		SourceA:       "old.yaml",
		SourceB:       "new.yaml",
		RevisionCount: 2,
	}
}

func testRevisions() []compare.Revision {
	date := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []compare.Revision{
		{
			Kind:   compare.RevisionInserted,
			ID:     1,
			Author: "reviewer",
			Date:   date,
			Text:   "magic ",
			Path:   "para[0]/run[1]",
		},
		{
			Kind:              compare.RevisionFormatChanged,
			ID:                2,
			Author:            "reviewer",
			Date:              date,
			Text:              "Hello",
			Path:              "para[1]/run[0]",
			ChangedProperties: []string{"bold", "italic"},
		},
	}
}

func TestOpenAppliesPragmas(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redline.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestWriteAndReadRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	token := NewRunToken()
	require.NoError(t, s.WriteRun(ctx, testRun(token), testRevisions()))

	run, err := s.ReadRun(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, testRun(token), run)

	revs, err := s.ListRevisions(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, testRevisions(), revs)
}

func TestWriteRunIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	token := NewRunToken()
	require.NoError(t, s.WriteRun(ctx, testRun(token), testRevisions()))
	require.NoError(t, s.WriteRun(ctx, testRun(token), testRevisions()))

	revs, err := s.ListRevisions(ctx, token)
	require.NoError(t, err)
	assert.Len(t, revs, 2, "re-recording the same run must not duplicate rows")
}

func TestReadRunNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.ReadRun(context.Background(), "no-such-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRevisionsEmptyRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	token := NewRunToken()
	run := testRun(token)
	run.RevisionCount = 0
	require.NoError(t, s.WriteRun(ctx, run, nil))

	revs, err := s.ListRevisions(ctx, token)
	require.NoError(t, err)
	assert.NotNil(t, revs)
	assert.Empty(t, revs)
}

func TestListRunsOrderedByToken(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// UUIDv7 tokens sort by creation time.
	t1 := NewRunToken()
	t2 := NewRunToken()
	require.NoError(t, s.WriteRun(ctx, testRun(t2), nil))
	require.NoError(t, s.WriteRun(ctx, testRun(t1), nil))

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, t1, runs[0].Token)
	assert.Equal(t, t2, runs[1].Token)
}

func TestCountByKind(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	token := NewRunToken()
	require.NoError(t, s.WriteRun(ctx, testRun(token), testRevisions()))

	counts, err := s.CountByKind(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, map[compare.RevisionKind]int{
		compare.RevisionInserted:      1,
		compare.RevisionFormatChanged: 1,
	}, counts)
}

func TestNewRunTokenUnique(t *testing.T) {
	assert.NotEqual(t, NewRunToken(), NewRunToken())
}
