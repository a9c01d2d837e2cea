package compare

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Golden coverage for the revision record shape: the JSON form is a
// public contract (audit consumers parse it), so a change here must be a
// deliberate one.
//
// To regenerate golden files, run:
//
//	go test ./internal/compare -update
func TestGoldenInsertWordRecords(t *testing.T) {
	a := mkDoc(mkPara(mkText("word1 word2 word3 word4 word5")))
	b := mkDoc(mkPara(mkText("word1 word2 magic word3 word4 word5")))

	merged, err := Compare(a, b, fixedSettings())
	require.NoError(t, err)

	revs, err := Revisions(merged, Settings{})
	require.NoError(t, err)

	data, err := json.MarshalIndent(revs, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "insert_word", data)
}

func TestGoldenMixedChangeRecords(t *testing.T) {
	a := mkDoc(
		mkPara(mkText("The quick brown fox. Stale sentence here.")),
		mkPara(mkText("Unchanged paragraph.")),
	)
	b := mkDoc(
		mkPara(mkText("The slow brown fox. Fresh sentence here.")),
		mkPara(mkText("Unchanged paragraph.")),
	)

	merged, err := Compare(a, b, fixedSettings())
	require.NoError(t, err)

	revs, err := Revisions(merged, Settings{})
	require.NoError(t, err)

	data, err := json.MarshalIndent(revs, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "mixed_change", data)
}
