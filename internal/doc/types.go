package doc

import "time"

// Document is the root of a document tree.
type Document struct {
	Body []Block
}

// Block is a sealed interface over block-level containers.
// Only *Paragraph and *Table implement it.
type Block interface {
	block()
}

// Table is an ordered list of rows.
type Table struct {
	Rows []*Row
}

func (*Table) block() {}

// Row is an ordered list of cells. Inserted/Deleted mark the whole row as
// a structural revision (a row added to or removed from the table).
type Row struct {
	Cells    []*Cell
	Inserted *Revision
	Deleted  *Revision
}

// Cell holds block content and, like Row, may carry a structural revision.
type Cell struct {
	Body     []Block
	Inserted *Revision
	Deleted  *Revision
}

// Paragraph is an ordered list of inline content. MarkInserted and
// MarkDeleted track revisions of the paragraph mark itself: an inserted
// mark means the paragraph break did not exist in the old version, a
// deleted mark means two old paragraphs were merged.
type Paragraph struct {
	Runs         []Inline
	MarkInserted *Revision
	MarkDeleted  *Revision
}

func (*Paragraph) block() {}

// Inline is a sealed interface over paragraph children.
// Only *Run, *InsertedRange, and *DeletedRange implement it.
type Inline interface {
	inline()
}

// Run is a span of content with uniform formatting.
//
// Exactly one of Text or Object is populated. A run whose PrevProps is
// non-nil records a format-only revision: Props holds the new, applied
// formatting and PrevProps the formatting before the change. FormatRev
// carries the revision metadata for that change.
type Run struct {
	Props     RunProps
	PrevProps *RunProps
	FormatRev *Revision
	Text      string
	Object    *Object
}

func (*Run) inline() {}

// InsertedRange wraps runs that exist only in the new version.
type InsertedRange struct {
	Rev  Revision
	Runs []*Run
}

func (*InsertedRange) inline() {}

// DeletedRange wraps runs that exist only in the old version.
type DeletedRange struct {
	Rev  Revision
	Runs []*Run
}

func (*DeletedRange) inline() {}

// Object is an opaque non-text element: an image, a field, a break, or
// anything else the engine treats atomically. Objects are compared by
// identity (Kind + Ref) and never partially diffed.
type Object struct {
	Kind string // "image", "field", "break", or adapter-specific
	Ref  string // relationship id, field code, or other stable identity
}

// Identity returns the comparison identity of the object.
func (o *Object) Identity() string {
	kind := o.Kind
	if kind == "" {
		kind = "unknown"
	}
	return kind + ":" + o.Ref
}

// Revision is the metadata stamped on every revision wrapper: who made
// the change, when, and a numeric id unique within one comparison run.
type Revision struct {
	ID     int
	Author string
	Date   time.Time
}

// PlainText returns the visible text of a run. Objects contribute nothing.
func (r *Run) PlainText() string {
	return r.Text
}

// PlainText concatenates the text of all runs in the paragraph, including
// runs inside insertion and deletion wrappers.
func (p *Paragraph) PlainText() string {
	var out string
	for _, in := range p.Runs {
		switch v := in.(type) {
		case *Run:
			out += v.Text
		case *InsertedRange:
			for _, r := range v.Runs {
				out += r.Text
			}
		case *DeletedRange:
			for _, r := range v.Runs {
				out += r.Text
			}
		}
	}
	return out
}
