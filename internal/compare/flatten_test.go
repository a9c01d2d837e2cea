package compare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/redline/internal/doc"
)

func TestSegmentText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []token
	}{
		{
			name: "words and spaces",
			in:   "hello  world",
			want: []token{
				{KindWord, "hello"},
				{KindSpace, "  "},
				{KindWord, "world"},
			},
		},
		{
			name: "punctuation splits one char at a time",
			in:   "a, b!?",
			want: []token{
				{KindWord, "a"},
				{KindPunct, ","},
				{KindSpace, " "},
				{KindWord, "b"},
				{KindPunct, "!"},
				{KindPunct, "?"},
			},
		},
		{
			name: "symbols count as punctuation",
			in:   "1+2",
			want: []token{
				{KindWord, "1"},
				{KindPunct, "+"},
				{KindWord, "2"},
			},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, segmentText(tt.in))
		})
	}
}

func TestFlattenEmitsSentinelsInOrder(t *testing.T) {
	d := &doc.Document{Body: []doc.Block{
		&doc.Paragraph{Runs: []doc.Inline{&doc.Run{Text: "a"}}},
		&doc.Table{Rows: []*doc.Row{
			{Cells: []*doc.Cell{
				{Body: []doc.Block{&doc.Paragraph{Runs: []doc.Inline{&doc.Run{Text: "b"}}}}},
			}},
		}},
	}}

	units, err := Flatten(d)
	require.NoError(t, err)

	kinds := make([]UnitKind, len(units))
	for i, u := range units {
		kinds[i] = u.Kind
	}
	assert.Equal(t, []UnitKind{
		KindWord, KindParaMark,
		KindWord, KindParaMark, KindCellMark, KindRowMark, KindTableMark,
	}, kinds)
}

func TestFlattenPaths(t *testing.T) {
	d := &doc.Document{Body: []doc.Block{
		&doc.Paragraph{Runs: []doc.Inline{
			&doc.Run{Text: "x"},
			&doc.Run{Text: "y"},
		}},
		&doc.Table{Rows: []*doc.Row{
			{Cells: []*doc.Cell{
				{Body: []doc.Block{&doc.Paragraph{Runs: []doc.Inline{&doc.Run{Text: "z"}}}}},
			}},
		}},
	}}

	units, err := Flatten(d)
	require.NoError(t, err)

	assert.Equal(t, "para[0]/run[0]", units[0].Path.String())
	assert.Equal(t, "para[0]/run[1]", units[1].Path.String())
	assert.Equal(t, "para[0]", units[2].Path.String())
	assert.Equal(t, "table[1]/row[0]/cell[0]/para[0]/run[0]", units[3].Path.String())
	assert.Equal(t, "table[1]/row[0]/cell[0]", units[5].Path.String(), "cell mark carries the cell path")
	assert.Equal(t, "table[1]", units[7].Path.String(), "table mark carries the table path")
}

func TestFlattenObjectIsSingleUnit(t *testing.T) {
	d := &doc.Document{Body: []doc.Block{
		&doc.Paragraph{Runs: []doc.Inline{
			&doc.Run{Object: &doc.Object{Kind: "image", Ref: "rId7"}},
		}},
	}}

	units, err := Flatten(d)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, KindObject, units[0].Kind)
	assert.Equal(t, "image:rId7", units[0].Content)
	require.NotNil(t, units[0].Object)
}

func TestFlattenDescendsIntoRevisionWrappers(t *testing.T) {
	rev := doc.Revision{ID: 1, Author: "x", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	d := &doc.Document{Body: []doc.Block{
		&doc.Paragraph{Runs: []doc.Inline{
			&doc.Run{Text: "a "},
			&doc.InsertedRange{Rev: rev, Runs: []*doc.Run{{Text: "b"}}},
		}},
	}}

	units, err := Flatten(d)
	require.NoError(t, err)

	var text string
	for _, u := range units {
		text += u.Content
	}
	assert.Equal(t, "a b", text, "wrapped runs participate as plain content")
}

func TestFlattenRejectsMalformedTree(t *testing.T) {
	d := &doc.Document{Body: []doc.Block{&doc.Table{}}}

	_, err := Flatten(d)
	require.Error(t, err)
	assert.True(t, IsMalformedDocument(err))
}

func TestFlattenRejectsIdentitylessObject(t *testing.T) {
	d := mkDoc(
		mkPara(mkText("lead-in")),
		mkPara(&doc.Run{Object: &doc.Object{}}),
	)

	_, err := Flatten(d)
	require.Error(t, err)
	assert.True(t, IsUnsupportedContent(err), "got %v", err)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "para[1]/run[0]", ce.Path)

	// An object with either half of its identity stays comparable.
	d = mkDoc(mkPara(&doc.Run{Object: &doc.Object{Ref: "rId9"}}))
	units, err := Flatten(d)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "unknown:rId9", units[0].Content)
}

func TestPathContainers(t *testing.T) {
	p := Path{}.
		child(StepTable, 0).
		child(StepRow, 1).
		child(StepCell, 2).
		child(StepParagraph, 3).
		child(StepRun, 4)

	assert.Equal(t, "table[0]/row[1]/cell[2]", p.containers().String())
	assert.Equal(t, "table[0]/row[1]/cell[2]", Path(p[:3]).containers().String(),
		"a cell mark's own path is all containers")
}
