package doc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromYAMLParsesDocument(t *testing.T) {
	src := `
body:
  - paragraph:
      runs:
        - run: {text: "Hello ", bold: true}
        - run: {text: "world"}
  - table:
      rows:
        - cells:
            - body:
                - paragraph:
                    runs:
                      - run: {text: "cell"}
`
	d, err := FromYAML([]byte(src))
	require.NoError(t, err)
	require.NoError(t, d.Validate())
	require.Len(t, d.Body, 2)

	p, ok := d.Body[0].(*Paragraph)
	require.True(t, ok)
	assert.Equal(t, "Hello world", p.PlainText())
	assert.True(t, p.Runs[0].(*Run).Props.Bold)

	tbl, ok := d.Body[1].(*Table)
	require.True(t, ok)
	require.Len(t, tbl.Rows, 1)
	require.Len(t, tbl.Rows[0].Cells, 1)
}

func TestFromYAMLRejectsAmbiguousBlock(t *testing.T) {
	_, err := FromYAML([]byte(`
body:
  - paragraph:
      runs: []
    table:
      rows: []
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both paragraph and table")
}

func TestFromYAMLRejectsEmptyBlock(t *testing.T) {
	_, err := FromYAML([]byte("body:\n  - {}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither paragraph nor table")
}

func TestYAMLRoundTripPreservesRevisionMarkup(t *testing.T) {
	date := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	prev := RunProps{Bold: false}
	d := &Document{Body: []Block{
		&Paragraph{
			Runs: []Inline{
				&Run{Text: "keep "},
				&InsertedRange{
					Rev:  Revision{ID: 1, Author: "reviewer", Date: date},
					Runs: []*Run{{Text: "new ", Props: RunProps{Italic: true}}},
				},
				&DeletedRange{
					Rev:  Revision{ID: 2, Author: "reviewer", Date: date},
					Runs: []*Run{{Text: "old "}},
				},
				&Run{
					Text:      "styled",
					Props:     RunProps{Bold: true},
					PrevProps: &prev,
					FormatRev: &Revision{ID: 3, Author: "reviewer", Date: date},
				},
				&Run{Object: &Object{Kind: "image", Ref: "rId4"}},
			},
			MarkInserted: &Revision{ID: 4, Author: "reviewer", Date: date},
		},
		&Table{Rows: []*Row{
			{
				Cells: []*Cell{{
					Body:     []Block{&Paragraph{Runs: []Inline{&Run{Text: "cell"}}}},
					Inserted: &Revision{ID: 5, Author: "reviewer", Date: date},
				}},
				Deleted: &Revision{ID: 6, Author: "reviewer", Date: date},
			},
		}},
	}}

	data, err := ToYAML(d)
	require.NoError(t, err)

	back, err := FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}
