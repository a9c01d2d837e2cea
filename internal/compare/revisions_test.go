package compare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/redline/internal/doc"
)

func validRev(id int) doc.Revision {
	return doc.Revision{ID: id, Author: "editor", Date: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestRevisionsOnHandAuthoredMarkup(t *testing.T) {
	prev := doc.RunProps{}
	d := mkDoc(
		&doc.Paragraph{
			Runs: []doc.Inline{
				mkText("keep "),
				&doc.InsertedRange{Rev: validRev(1), Runs: []*doc.Run{{Text: "added"}}},
				&doc.DeletedRange{Rev: validRev(2), Runs: []*doc.Run{{Text: "gone "}, {Text: "too"}}},
				&doc.Run{
					Text:      "styled",
					Props:     doc.RunProps{Italic: true, Size: 28},
					PrevProps: &prev,
					FormatRev: ptrRev(validRev(3)),
				},
			},
			MarkDeleted: ptrRev(validRev(4)),
		},
	)

	revs, err := Revisions(d, Settings{})
	require.NoError(t, err)
	require.Len(t, revs, 4)

	assert.Equal(t, RevisionInserted, revs[0].Kind)
	assert.Equal(t, "added", revs[0].Text)
	assert.Equal(t, "para[0]/run[1]", revs[0].Path)

	assert.Equal(t, RevisionDeleted, revs[1].Kind)
	assert.Equal(t, "gone too", revs[1].Text, "wrapper text concatenates its runs")

	assert.Equal(t, RevisionFormatChanged, revs[2].Kind)
	assert.Equal(t, []string{"italic", "size"}, revs[2].ChangedProperties)

	assert.Equal(t, RevisionDeleted, revs[3].Kind)
	assert.Equal(t, ParagraphMarkText, revs[3].Text)
	assert.Equal(t, "para[0]", revs[3].Path)
}

func TestRevisionsStructuralRowAndCell(t *testing.T) {
	d := mkDoc(&doc.Table{Rows: []*doc.Row{
		{
			Cells: []*doc.Cell{{
				Body:     []doc.Block{mkPara(mkText("x"))},
				Inserted: ptrRev(validRev(2)),
			}},
			Inserted: ptrRev(validRev(1)),
		},
	}})

	revs, err := Revisions(d, Settings{})
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, "table[0]/row[0]", revs[0].Path)
	assert.Equal(t, "table[0]/row[0]/cell[0]", revs[1].Path)
	assert.Empty(t, revs[0].Text, "structural revisions carry no text")
}

func TestRevisionsShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *doc.Document
	}{
		{
			name: "missing author",
			doc: mkDoc(mkPara(&doc.InsertedRange{
				Rev:  doc.Revision{ID: 1, Date: time.Now()},
				Runs: []*doc.Run{{Text: "x"}},
			})),
		},
		{
			name: "zero date",
			doc: mkDoc(mkPara(&doc.DeletedRange{
				Rev:  doc.Revision{ID: 1, Author: "editor"},
				Runs: []*doc.Run{{Text: "x"}},
			})),
		},
		{
			name: "missing id",
			doc: mkDoc(&doc.Paragraph{
				Runs:         []doc.Inline{mkText("x")},
				MarkInserted: &doc.Revision{Author: "editor", Date: time.Now()},
			}),
		},
		{
			name: "format mark without previous properties",
			doc: mkDoc(mkPara(&doc.Run{
				Text:      "x",
				FormatRev: ptrRev(validRev(1)),
			})),
		},
		{
			name: "row revision without metadata",
			doc: mkDoc(&doc.Table{Rows: []*doc.Row{{
				Cells:    []*doc.Cell{{Body: []doc.Block{mkPara(mkText("x"))}}},
				Inserted: &doc.Revision{},
			}}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Revisions(tt.doc, Settings{})
			require.Error(t, err)
			assert.True(t, IsUnrecognizedRevisionShape(err), "got %v", err)
		})
	}
}

func TestRevisionsDoesNotModifyTree(t *testing.T) {
	mk := func() *doc.Document {
		return mkDoc(mkPara(
			mkText("a "),
			&doc.InsertedRange{Rev: validRev(1), Runs: []*doc.Run{{Text: "b"}}},
		))
	}
	d := mk()
	_, err := Revisions(d, Settings{})
	require.NoError(t, err)
	assert.Equal(t, mk(), d)
}

func ptrRev(r doc.Revision) *doc.Revision {
	return &r
}
