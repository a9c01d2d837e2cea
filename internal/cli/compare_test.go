package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const oldDoc = `
body:
  - paragraph:
      runs:
        - run: {text: "word1 word2 word3"}
`

const newDoc = `
body:
  - paragraph:
      runs:
        - run: {text: "word1 word2 magic word3"}
`

func TestCompareCommandJSON(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "old.yaml", oldDoc)
	b := writeDoc(t, dir, "new.yaml", newDoc)

	out, err := execute(t,
		"compare", a, b,
		"--format", "json",
		"--author", "reviewer",
		"--date", "2026-01-02T03:04:05Z",
	)
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   CompareResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Inserted)
	require.Len(t, resp.Data.Revisions, 1)
	assert.Equal(t, "magic ", resp.Data.Revisions[0].Text)
	assert.Equal(t, "reviewer", resp.Data.Revisions[0].Author)
}

func TestCompareCommandTextSummary(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "old.yaml", oldDoc)
	b := writeDoc(t, dir, "new.yaml", newDoc)

	out, err := execute(t, "compare", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "1 revision(s): 1 inserted, 0 deleted, 0 format-changed")
	assert.Contains(t, out, `"magic "`)
}

func TestCompareCommandWritesMergedDocument(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "old.yaml", oldDoc)
	b := writeDoc(t, dir, "new.yaml", newDoc)
	outPath := filepath.Join(dir, "merged.yaml")

	_, err := execute(t, "compare", a, b, "--out", outPath)
	require.NoError(t, err)

	merged, err := LoadDocument(outPath)
	require.NoError(t, err)
	require.Len(t, merged.Body, 1)

	// The merged document must itself report the same revision.
	revsOut, err := execute(t, "revisions", outPath)
	require.NoError(t, err)
	assert.Contains(t, revsOut, "inserted")
	assert.Contains(t, revsOut, `"magic "`)
}

func TestCompareCommandRecordsRun(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "old.yaml", oldDoc)
	b := writeDoc(t, dir, "new.yaml", newDoc)
	dbPath := filepath.Join(dir, "audit.db")

	out, err := execute(t, "compare", a, b, "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data CompareResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.Data.RunToken)

	runsOut, err := execute(t, "runs", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, runsOut, resp.Data.RunToken)

	detailOut, err := execute(t, "runs", resp.Data.RunToken, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, detailOut, `"magic "`)
}

func TestCompareCommandMissingInput(t *testing.T) {
	dir := t.TempDir()
	b := writeDoc(t, dir, "new.yaml", newDoc)

	_, err := execute(t, "compare", filepath.Join(dir, "absent.yaml"), b)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCompareCommandBadDateFlag(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "old.yaml", oldDoc)
	b := writeDoc(t, dir, "new.yaml", newDoc)

	_, err := execute(t, "compare", a, b, "--date", "yesterday")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootCommandRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "compare", "a", "b", "--format", "xml")
	require.Error(t, err)
}

func TestRunsCommandMissingDatabase(t *testing.T) {
	_, err := execute(t, "runs", "--db", filepath.Join(t.TempDir(), "absent.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
