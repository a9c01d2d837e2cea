package compare

import (
	"github.com/roach88/redline/internal/doc"
)

// synthesize rebuilds one valid document tree from a classified unit
// sequence.
//
// Contiguous Inserted units become a single insertion wrapper, contiguous
// Deleted units a single deletion wrapper, and FormatChanged spans become
// runs carrying their previous property set plus a format-change mark.
// Every wrapper gets author and date from the settings and a strictly
// increasing id from a counter scoped to this call, shared across all
// revision kinds so ids are unique within the output document.
//
// Nesting discipline: sentinel units drive container construction, so a
// wrapper can never span a paragraph, cell, or row boundary - an inserted
// paragraph mark closes the current wrapper and a fresh one opens in the
// following paragraph. Sentinels classified Inserted/Deleted surface as
// structural revisions on the paragraph mark, row, or cell instead of
// inline wrappers.
//
// When Settings.RetainDeletions is false, Deleted units (content and
// sentinels alike) are dropped: the output matches the new document with
// only insertions and format changes marked.
func synthesize(cls []Classified, s Settings) *doc.Document {
	syn := &synthesizer{
		s:      s,
		nextID: 1,
		frames: []*frame{{kind: frameBody}},
	}
	syn.para = newParaBuilder(syn)

	for _, cl := range cls {
		if cl.Status == Deleted && !s.RetainDeletions {
			continue
		}
		syn.process(cl)
	}
	syn.finish()

	return &doc.Document{Body: syn.frames[0].blocks}
}

type frameKind uint8

const (
	frameBody frameKind = iota
	frameTable
	frameRow
	frameCell
)

// frame is one open container during reconstruction. Body and cell
// frames collect blocks, table frames rows, row frames cells.
type frame struct {
	kind   frameKind
	blocks []doc.Block
	rows   []*doc.Row
	cells  []*doc.Cell
}

type synthesizer struct {
	s      Settings
	nextID int
	frames []*frame
	para   *paraBuilder
}

// newRev mints the next revision metadata value. Ids are assigned in
// synthesis order, so they increase strictly through the document.
func (syn *synthesizer) newRev() doc.Revision {
	rev := doc.Revision{ID: syn.nextID, Author: syn.s.Author, Date: syn.s.Date}
	syn.nextID++
	return rev
}

func (syn *synthesizer) newRevPtr() *doc.Revision {
	rev := syn.newRev()
	return &rev
}

func (syn *synthesizer) top() *frame {
	return syn.frames[len(syn.frames)-1]
}

func (syn *synthesizer) pop() *frame {
	f := syn.top()
	syn.frames = syn.frames[:len(syn.frames)-1]
	return f
}

// openTo opens container frames until the stack depth matches the unit's
// container chain. Closing is always explicit via sentinel units, so the
// stack only ever needs to grow here.
func (syn *synthesizer) openTo(chain Path) {
	for len(syn.frames)-1 < len(chain) {
		step := chain[len(syn.frames)-1]
		var k frameKind
		switch step.Kind {
		case StepTable:
			k = frameTable
		case StepRow:
			k = frameRow
		case StepCell:
			k = frameCell
		}
		syn.frames = append(syn.frames, &frame{kind: k})
	}
}

func (syn *synthesizer) process(cl Classified) {
	u := cl.Unit
	syn.openTo(u.Path.containers())

	switch u.Kind {
	case KindParaMark:
		syn.closeParagraph(cl.Status)
	case KindCellMark:
		syn.closeCell(cl.Status)
	case KindRowMark:
		syn.closeRow(cl.Status)
	case KindTableMark:
		syn.closeTable()
	default:
		syn.para.add(u, cl.Status, cl.OldProps)
	}
}

func (syn *synthesizer) closeParagraph(status Status) {
	p := syn.para.close()
	switch status {
	case Inserted:
		p.MarkInserted = syn.newRevPtr()
	case Deleted:
		p.MarkDeleted = syn.newRevPtr()
	}
	f := syn.top()
	f.blocks = append(f.blocks, p)
}

func (syn *synthesizer) closeCell(status Status) {
	// A dangling paragraph before a cell boundary means malformed
	// classification; close it defensively so the tree stays valid.
	syn.para.closeDanglingInto(syn.top())

	f := syn.pop()
	cell := &doc.Cell{Body: f.blocks}
	switch status {
	case Inserted:
		cell.Inserted = syn.newRevPtr()
	case Deleted:
		cell.Deleted = syn.newRevPtr()
	}
	row := syn.top()
	row.cells = append(row.cells, cell)
}

func (syn *synthesizer) closeRow(status Status) {
	f := syn.pop()
	row := &doc.Row{Cells: f.cells}
	switch status {
	case Inserted:
		row.Inserted = syn.newRevPtr()
	case Deleted:
		row.Deleted = syn.newRevPtr()
	}
	table := syn.top()
	table.rows = append(table.rows, row)
}

func (syn *synthesizer) closeTable() {
	f := syn.pop()
	t := &doc.Table{Rows: f.rows}
	parent := syn.top()
	parent.blocks = append(parent.blocks, t)
}

func (syn *synthesizer) finish() {
	syn.para.closeDanglingInto(syn.frames[0])
}

// paraBuilder accumulates inline content for the paragraph currently
// being rebuilt. Adjacent units with the same status and formatting merge
// into one run; adjacent runs with the same status merge under one
// wrapper.
type paraBuilder struct {
	syn       *synthesizer
	inlines   []doc.Inline
	curStatus Status
	curRuns   []*doc.Run
	curRun    *doc.Run
	curOld    *doc.RunProps
}

func newParaBuilder(syn *synthesizer) *paraBuilder {
	return &paraBuilder{syn: syn}
}

func (pb *paraBuilder) add(u Unit, status Status, old *doc.RunProps) {
	if status != pb.curStatus && (pb.curRun != nil || len(pb.curRuns) > 0) {
		pb.flushRun()
		pb.flushWrapper()
	}
	if pb.curRun != nil && !pb.sameRunShape(u, old) {
		pb.flushRun()
	}
	pb.curStatus = status

	if u.Kind == KindObject {
		pb.flushRun()
		pb.curRun = &doc.Run{Props: u.Props, Object: u.Object}
		pb.curOld = old
		pb.flushRun()
		return
	}

	if pb.curRun == nil {
		pb.curRun = &doc.Run{Props: u.Props}
		pb.curOld = old
	}
	pb.curRun.Text += u.Content
}

// sameRunShape reports whether the unit can join the open run: same
// resolved formatting, same old-formatting reference, and the open run
// holds text rather than an object.
func (pb *paraBuilder) sameRunShape(u Unit, old *doc.RunProps) bool {
	if pb.curRun.Object != nil || u.Kind == KindObject {
		return false
	}
	if !pb.curRun.Props.Equal(u.Props) {
		return false
	}
	switch {
	case pb.curOld == nil && old == nil:
		return true
	case pb.curOld != nil && old != nil:
		return pb.curOld.Equal(*old)
	default:
		return false
	}
}

// flushRun finalizes the open run. FormatChanged runs get their previous
// property set and a format-change mark with its own id here; Inserted
// and Deleted runs are parked until the wrapper closes.
func (pb *paraBuilder) flushRun() {
	if pb.curRun == nil {
		return
	}
	run := pb.curRun
	pb.curRun = nil

	switch pb.curStatus {
	case Unchanged:
		pb.inlines = append(pb.inlines, run)
	case FormatChanged:
		run.PrevProps = pb.curOld
		run.FormatRev = pb.syn.newRevPtr()
		pb.inlines = append(pb.inlines, run)
	case Inserted, Deleted:
		pb.curRuns = append(pb.curRuns, run)
	}
	pb.curOld = nil
}

// flushWrapper closes the open insertion/deletion wrapper, minting its
// revision id after the runs it covers were assembled.
func (pb *paraBuilder) flushWrapper() {
	if len(pb.curRuns) == 0 {
		return
	}
	runs := pb.curRuns
	pb.curRuns = nil

	switch pb.curStatus {
	case Inserted:
		pb.inlines = append(pb.inlines, &doc.InsertedRange{Rev: pb.syn.newRev(), Runs: runs})
	case Deleted:
		pb.inlines = append(pb.inlines, &doc.DeletedRange{Rev: pb.syn.newRev(), Runs: runs})
	}
}

// close finalizes the paragraph under construction and resets the builder.
func (pb *paraBuilder) close() *doc.Paragraph {
	pb.flushRun()
	pb.flushWrapper()
	p := &doc.Paragraph{Runs: pb.inlines}
	pb.inlines = nil
	return p
}

// closeDanglingInto closes a paragraph that has accumulated content but
// never saw its paragraph mark, appending it to the given frame.
func (pb *paraBuilder) closeDanglingInto(f *frame) {
	if pb.curRun == nil && len(pb.curRuns) == 0 && len(pb.inlines) == 0 {
		return
	}
	f.blocks = append(f.blocks, pb.close())
}
