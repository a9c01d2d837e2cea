package compare

import (
	"unicode"

	"github.com/roach88/redline/internal/doc"
)

// Flatten walks a document tree and emits its ordered comparison units.
//
// Concatenating the Content of the returned units reconstructs the
// document's visible text and object order exactly; sentinels contribute
// empty content but preserve block structure so that a paragraph split or
// an added row can be expressed as insertion/deletion of a sentinel.
//
// Pre-existing revision wrappers are flattened transparently (their runs
// participate as plain content) - accepting or rejecting revisions before
// comparison is an upstream normalization concern.
//
// Fails with a MALFORMED_DOCUMENT error if the tree violates structural
// invariants (see (*doc.Document).Validate) and with UNSUPPORTED_CONTENT
// if an embedded object carries no identity at all.
func Flatten(d *doc.Document) ([]Unit, error) {
	if err := d.Validate(); err != nil {
		return nil, NewMalformedDocumentError(err)
	}
	if err := checkSupported(d.Body, nil); err != nil {
		return nil, err
	}
	return flattenBlocks(d.Body, nil), nil
}

// checkSupported rejects embedded objects with neither kind nor ref.
// Identity is the only thing objects are compared by, so such an object
// would alias every other anonymous one instead of comparing atomically.
func checkSupported(blocks []doc.Block, base Path) error {
	for i, b := range blocks {
		switch v := b.(type) {
		case *doc.Paragraph:
			pp := base.child(StepParagraph, i)
			for j, in := range v.Runs {
				for _, r := range inlineRuns(in) {
					if r.Object != nil && r.Object.Kind == "" && r.Object.Ref == "" {
						return NewUnsupportedContentError(pp.child(StepRun, j).String())
					}
				}
			}
		case *doc.Table:
			tp := base.child(StepTable, i)
			for ri, row := range v.Rows {
				rp := tp.child(StepRow, ri)
				for ci, cell := range row.Cells {
					if err := checkSupported(cell.Body, rp.child(StepCell, ci)); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// inlineRuns returns the runs of an inline, unwrapping revision ranges.
func inlineRuns(in doc.Inline) []*doc.Run {
	switch v := in.(type) {
	case *doc.Run:
		return []*doc.Run{v}
	case *doc.InsertedRange:
		return v.Runs
	case *doc.DeletedRange:
		return v.Runs
	}
	return nil
}

func flattenBlocks(blocks []doc.Block, base Path) []Unit {
	var units []Unit
	for i, b := range blocks {
		units = append(units, flattenBlock(b, base, i)...)
	}
	return units
}

func flattenBlock(b doc.Block, base Path, index int) []Unit {
	switch v := b.(type) {
	case *doc.Paragraph:
		return flattenParagraph(v, base.child(StepParagraph, index))
	case *doc.Table:
		return flattenTable(v, base.child(StepTable, index))
	}
	return nil
}

// flattenParagraph emits the paragraph's content units followed by its
// closing paragraph-mark sentinel.
func flattenParagraph(p *doc.Paragraph, path Path) []Unit {
	var units []Unit
	for i, in := range p.Runs {
		runPath := path.child(StepRun, i)
		switch v := in.(type) {
		case *doc.Run:
			units = append(units, flattenRun(v, runPath)...)
		case *doc.InsertedRange:
			for _, r := range v.Runs {
				units = append(units, flattenRun(r, runPath)...)
			}
		case *doc.DeletedRange:
			for _, r := range v.Runs {
				units = append(units, flattenRun(r, runPath)...)
			}
		}
	}
	units = append(units, Unit{Kind: KindParaMark, Path: path})
	return units
}

func flattenTable(t *doc.Table, path Path) []Unit {
	var units []Unit
	for i, row := range t.Rows {
		units = append(units, flattenRow(row, path.child(StepRow, i))...)
	}
	units = append(units, Unit{Kind: KindTableMark, Path: path})
	return units
}

// flattenRow emits the row's cells followed by its closing row sentinel.
func flattenRow(row *doc.Row, path Path) []Unit {
	var units []Unit
	for j, cell := range row.Cells {
		units = append(units, flattenCell(cell, path.child(StepCell, j))...)
	}
	units = append(units, Unit{Kind: KindRowMark, Path: path})
	return units
}

// flattenCell emits the cell's block content followed by its closing
// cell sentinel.
func flattenCell(cell *doc.Cell, path Path) []Unit {
	units := flattenBlocks(cell.Body, path)
	units = append(units, Unit{Kind: KindCellMark, Path: path})
	return units
}

// flattenRun segments run text into word, whitespace, and punctuation
// units. Opaque objects become single units identified by Kind+Ref and
// are never partially diffed - an object the engine doesn't recognize
// still compares atomically by identity.
func flattenRun(r *doc.Run, path Path) []Unit {
	if r.Object != nil {
		return []Unit{{
			Kind:    KindObject,
			Content: r.Object.Identity(),
			Path:    path,
			Object:  r.Object,
		}}
	}
	var units []Unit
	for _, tok := range segmentText(r.Text) {
		units = append(units, Unit{
			Kind:    tok.kind,
			Content: tok.text,
			Props:   r.Props,
			Path:    path,
		})
	}
	return units
}

type token struct {
	kind UnitKind
	text string
}

// segmentText splits run text into the atomic diff grain: maximal word
// runs, maximal whitespace runs, and single punctuation/symbol characters.
// Recursion never goes below this grain - a changed word is reported
// whole, not character by character.
func segmentText(s string) []token {
	var toks []token
	var cur []rune
	var curKind UnitKind

	flush := func() {
		if len(cur) > 0 {
			toks = append(toks, token{kind: curKind, text: string(cur)})
			cur = cur[:0]
		}
	}

	for _, r := range s {
		k := runeKind(r)
		if k == KindPunct {
			flush()
			toks = append(toks, token{kind: KindPunct, text: string(r)})
			continue
		}
		if len(cur) > 0 && k != curKind {
			flush()
		}
		curKind = k
		cur = append(cur, r)
	}
	flush()
	return toks
}

func runeKind(r rune) UnitKind {
	switch {
	case unicode.IsSpace(r):
		return KindSpace
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return KindPunct
	default:
		return KindWord
	}
}
