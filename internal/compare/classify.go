package compare

import (
	"github.com/roach88/redline/internal/doc"
)

// classify aligns two validated documents and returns the classified
// merge of their flattened sequences, in output document order.
//
// Alignment is recursive by structural level: block sequences first
// (identity = block content hash), then for matched or paired tables the
// rows, cells, and cell bodies, bottoming out in a word-grain LCS over
// the units of paragraph regions. Content moved to a different structural
// position is delete-at-old + insert-at-new; there is no move detection.
func classify(a, b *doc.Document, s Settings) []Classified {
	c := &comparer{s: s, h: newHasher(s)}
	c.compareBlocks(a.Body, nil, b.Body, nil)
	return c.cls
}

type comparer struct {
	s   Settings
	h   *hasher
	cls []Classified
}

func (c *comparer) emit(u Unit, status Status) {
	c.cls = append(c.cls, Classified{Unit: u, Status: status})
}

func (c *comparer) emitAll(units []Unit, status Status) {
	for _, u := range units {
		c.emit(u, status)
	}
}

// compareBlocks aligns two block sequences living under the given base
// paths (document bodies or cell bodies).
func (c *comparer) compareBlocks(aBlocks []doc.Block, apath Path, bBlocks []doc.Block, bpath Path) {
	aUnits := make([][]Unit, len(aBlocks))
	aHashes := make([]string, len(aBlocks))
	for i, blk := range aBlocks {
		aUnits[i] = flattenBlock(blk, apath, i)
		aHashes[i] = c.h.contentHash(aUnits[i])
	}
	bUnits := make([][]Unit, len(bBlocks))
	bHashes := make([]string, len(bBlocks))
	for i, blk := range bBlocks {
		bUnits[i] = flattenBlock(blk, bpath, i)
		bHashes[i] = c.h.contentHash(bUnits[i])
	}

	script := alignHashes(aHashes, bHashes)
	walkScript(script,
		func(ai, bi int) {
			c.equalBlock(aBlocks[ai], aUnits[ai], apath, ai, bBlocks[bi], bUnits[bi], bpath, bi)
		},
		func(aIdx, bIdx []int) {
			c.compareRegion(aBlocks, aUnits, aIdx, apath, bBlocks, bUnits, bIdx, bpath)
		},
	)
}

// equalBlock handles a content-identical block pair. Without format
// detection the new block's units are all Unchanged; with it, a differing
// format hash sends paragraphs to the word-grain pass (which re-tags the
// differing spans FormatChanged) and tables into structural recursion so
// the change is localized to the affected cells.
func (c *comparer) equalBlock(ab doc.Block, au []Unit, apath Path, ai int, bb doc.Block, bu []Unit, bpath Path, bi int) {
	if !c.s.DetectFormatChanges || c.h.formatHash(au) == c.h.formatHash(bu) {
		c.emitAll(bu, Unchanged)
		return
	}
	switch bv := bb.(type) {
	case *doc.Paragraph:
		c.diffUnits(au, bu)
	case *doc.Table:
		at := ab.(*doc.Table)
		c.compareTables(at, apath.child(StepTable, ai), bv, bpath.child(StepTable, bi))
	}
}

// compareRegion handles a replace region of the block alignment: blocks
// present on only one side, or on both sides with different content.
//
// The region splits into maximal same-kind groups (paragraph runs and
// table runs) on each side; groups pair up positionally. Paired paragraph
// groups are diffed together at word grain - flattening the whole group
// lets a paragraph split surface as an inserted paragraph mark instead of
// a delete/reinsert of the text. Paired tables recurse structurally.
// Anything unpaired is a pure deletion or insertion of the whole subtree.
func (c *comparer) compareRegion(aBlocks []doc.Block, aUnits [][]Unit, aIdx []int, apath Path, bBlocks []doc.Block, bUnits [][]Unit, bIdx []int, bpath Path) {
	ga := groupByKind(aBlocks, aIdx)
	gb := groupByKind(bBlocks, bIdx)

	n := len(ga)
	if len(gb) > n {
		n = len(gb)
	}
	for k := 0; k < n; k++ {
		switch {
		case k < len(ga) && k < len(gb) && ga[k].para == gb[k].para:
			if ga[k].para {
				c.diffUnits(concatUnits(aUnits, ga[k].idx), concatUnits(bUnits, gb[k].idx))
			} else {
				c.pairTables(aBlocks, aUnits, ga[k].idx, apath, bBlocks, bUnits, gb[k].idx, bpath)
			}
		case k < len(ga) && k < len(gb):
			// Kind flip: old content out, new content in.
			c.emitAll(concatUnits(aUnits, ga[k].idx), Deleted)
			c.emitAll(concatUnits(bUnits, gb[k].idx), Inserted)
		case k < len(ga):
			c.emitAll(concatUnits(aUnits, ga[k].idx), Deleted)
		default:
			c.emitAll(concatUnits(bUnits, gb[k].idx), Inserted)
		}
	}
}

// pairTables pairs unmatched tables positionally and recurses into each
// pair; leftovers are whole-subtree insertions or deletions.
func (c *comparer) pairTables(aBlocks []doc.Block, aUnits [][]Unit, aIdx []int, apath Path, bBlocks []doc.Block, bUnits [][]Unit, bIdx []int, bpath Path) {
	n := len(aIdx)
	if len(bIdx) > n {
		n = len(bIdx)
	}
	for i := 0; i < n; i++ {
		switch {
		case i < len(aIdx) && i < len(bIdx):
			ai, bi := aIdx[i], bIdx[i]
			at := aBlocks[ai].(*doc.Table)
			bt := bBlocks[bi].(*doc.Table)
			c.compareTables(at, apath.child(StepTable, ai), bt, bpath.child(StepTable, bi))
		case i < len(aIdx):
			c.emitAll(aUnits[aIdx[i]], Deleted)
		default:
			c.emitAll(bUnits[bIdx[i]], Inserted)
		}
	}
}

// compareTables aligns two tables row by row.
func (c *comparer) compareTables(at *doc.Table, apath Path, bt *doc.Table, bpath Path) {
	aUnits := make([][]Unit, len(at.Rows))
	aHashes := make([]string, len(at.Rows))
	for i, row := range at.Rows {
		aUnits[i] = flattenRow(row, apath.child(StepRow, i))
		aHashes[i] = c.h.contentHash(aUnits[i])
	}
	bUnits := make([][]Unit, len(bt.Rows))
	bHashes := make([]string, len(bt.Rows))
	for i, row := range bt.Rows {
		bUnits[i] = flattenRow(row, bpath.child(StepRow, i))
		bHashes[i] = c.h.contentHash(bUnits[i])
	}

	script := alignHashes(aHashes, bHashes)
	walkScript(script,
		func(ai, bi int) {
			if c.s.DetectFormatChanges && c.h.formatHash(aUnits[ai]) != c.h.formatHash(bUnits[bi]) {
				c.compareRows(at.Rows[ai], apath.child(StepRow, ai), bt.Rows[bi], bpath.child(StepRow, bi))
				return
			}
			c.emitAll(bUnits[bi], Unchanged)
		},
		func(aIdx, bIdx []int) {
			n := len(aIdx)
			if len(bIdx) > n {
				n = len(bIdx)
			}
			for i := 0; i < n; i++ {
				switch {
				case i < len(aIdx) && i < len(bIdx):
					ai, bi := aIdx[i], bIdx[i]
					c.compareRows(at.Rows[ai], apath.child(StepRow, ai), bt.Rows[bi], bpath.child(StepRow, bi))
				case i < len(aIdx):
					c.emitAll(aUnits[aIdx[i]], Deleted)
				default:
					c.emitAll(bUnits[bIdx[i]], Inserted)
				}
			}
		},
	)
	c.emit(Unit{Kind: KindTableMark, Path: bpath}, Unchanged)
}

// compareRows aligns two paired rows cell by cell.
func (c *comparer) compareRows(ar *doc.Row, apath Path, br *doc.Row, bpath Path) {
	aUnits := make([][]Unit, len(ar.Cells))
	aHashes := make([]string, len(ar.Cells))
	for i, cell := range ar.Cells {
		aUnits[i] = flattenCell(cell, apath.child(StepCell, i))
		aHashes[i] = c.h.contentHash(aUnits[i])
	}
	bUnits := make([][]Unit, len(br.Cells))
	bHashes := make([]string, len(br.Cells))
	for i, cell := range br.Cells {
		bUnits[i] = flattenCell(cell, bpath.child(StepCell, i))
		bHashes[i] = c.h.contentHash(bUnits[i])
	}

	script := alignHashes(aHashes, bHashes)
	walkScript(script,
		func(ai, bi int) {
			if c.s.DetectFormatChanges && c.h.formatHash(aUnits[ai]) != c.h.formatHash(bUnits[bi]) {
				c.pairCells(ar.Cells[ai], apath.child(StepCell, ai), br.Cells[bi], bpath.child(StepCell, bi))
				return
			}
			c.emitAll(bUnits[bi], Unchanged)
		},
		func(aIdx, bIdx []int) {
			n := len(aIdx)
			if len(bIdx) > n {
				n = len(bIdx)
			}
			for i := 0; i < n; i++ {
				switch {
				case i < len(aIdx) && i < len(bIdx):
					ai, bi := aIdx[i], bIdx[i]
					c.pairCells(ar.Cells[ai], apath.child(StepCell, ai), br.Cells[bi], bpath.child(StepCell, bi))
				case i < len(aIdx):
					c.emitAll(aUnits[aIdx[i]], Deleted)
				default:
					c.emitAll(bUnits[bIdx[i]], Inserted)
				}
			}
		},
	)
	c.emit(Unit{Kind: KindRowMark, Path: bpath}, Unchanged)
}

// pairCells recurses into a paired cell's block content and closes it
// with an unchanged cell sentinel.
func (c *comparer) pairCells(ac *doc.Cell, apath Path, bc *doc.Cell, bpath Path) {
	c.compareBlocks(ac.Body, apath, bc.Body, bpath)
	c.emit(Unit{Kind: KindCellMark, Path: bpath}, Unchanged)
}

// diffUnits is the word-grain leaf of the recursion: an LCS over unit
// hashes. Matched pairs with differing resolved formatting re-tag to
// FormatChanged when detection is enabled, keeping the old side's
// property set for the revision record.
func (c *comparer) diffUnits(au, bu []Unit) {
	script := alignHashes(c.h.unitHashes(au), c.h.unitHashes(bu))
	for _, op := range script {
		switch op.Op {
		case OpEqual:
			ua, ub := au[op.A], bu[op.B]
			if c.s.DetectFormatChanges && !ua.Kind.IsSentinel() && ua.Kind != KindObject && !ua.Props.Equal(ub.Props) {
				old := ua.Props
				c.cls = append(c.cls, Classified{Unit: ub, Status: FormatChanged, OldProps: &old})
			} else {
				c.emit(ub, Unchanged)
			}
		case OpDelete:
			c.emit(au[op.A], Deleted)
		case OpInsert:
			c.emit(bu[op.B], Inserted)
		}
	}
}

// blockGroup is a maximal run of same-kind blocks within a replace
// region, identified by their indexes in the parent block slice.
type blockGroup struct {
	para bool
	idx  []int
}

func groupByKind(blocks []doc.Block, idxs []int) []blockGroup {
	var groups []blockGroup
	for _, i := range idxs {
		_, para := blocks[i].(*doc.Paragraph)
		if len(groups) > 0 && groups[len(groups)-1].para == para {
			g := &groups[len(groups)-1]
			g.idx = append(g.idx, i)
			continue
		}
		groups = append(groups, blockGroup{para: para, idx: []int{i}})
	}
	return groups
}

func concatUnits(units [][]Unit, idxs []int) []Unit {
	var out []Unit
	for _, i := range idxs {
		out = append(out, units[i]...)
	}
	return out
}
