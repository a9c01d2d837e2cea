package compare

import (
	"time"

	"github.com/roach88/redline/internal/doc"
)

// RevisionKind identifies the kind of a revision record.
type RevisionKind string

const (
	RevisionInserted      RevisionKind = "inserted"
	RevisionDeleted       RevisionKind = "deleted"
	RevisionFormatChanged RevisionKind = "format-changed"
)

// Revision is the flattened, structured description of one revision
// wrapper, the record an audit or reporting consumer depends on.
//
// ChangedProperties is populated only for format changes and uses the
// stable doc.TrackedProperties vocabulary. ParagraphMarkText is what
// paragraph-mark revisions report as Text.
type Revision struct {
	Kind              RevisionKind `json:"kind"`
	ID                int          `json:"id"`
	Author            string       `json:"author"`
	Date              time.Time    `json:"date"`
	Text              string       `json:"text,omitempty"`
	Path              string       `json:"path"`
	ChangedProperties []string     `json:"changed_properties,omitempty"`
}

// ParagraphMarkText is the Text reported for revisions of a paragraph
// mark itself (a paragraph split or merge). Structural row/cell
// revisions report empty text.
const ParagraphMarkText = "¶"

// Revisions walks a revision-annotated document tree and returns its
// revision records in document order.
//
// This is a pure projection: no alignment is re-run, so it works on the
// synthesizer's output and on externally authored revision markup alike.
// The settings parameter mirrors Compare's signature; no comparison-time
// option changes what extraction reports, so it is ignored.
// A wrapper missing a mandatory attribute (author, date, or id) fails the
// call with an UNRECOGNIZED_REVISION_SHAPE error; the tree itself is
// never modified.
func Revisions(d *doc.Document, _ Settings) ([]Revision, error) {
	if err := d.Validate(); err != nil {
		return nil, NewMalformedDocumentError(err)
	}
	e := &extractor{}
	if err := e.blocks(d.Body, nil); err != nil {
		return nil, err
	}
	return e.revs, nil
}

type extractor struct {
	revs []Revision
}

func (e *extractor) blocks(blocks []doc.Block, base Path) error {
	for i, b := range blocks {
		switch v := b.(type) {
		case *doc.Paragraph:
			if err := e.paragraph(v, base.child(StepParagraph, i)); err != nil {
				return err
			}
		case *doc.Table:
			if err := e.table(v, base.child(StepTable, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *extractor) paragraph(p *doc.Paragraph, path Path) error {
	for i, in := range p.Runs {
		rp := path.child(StepRun, i)
		switch v := in.(type) {
		case *doc.Run:
			if err := e.formatChange(v, rp); err != nil {
				return err
			}
		case *doc.InsertedRange:
			if err := checkRev(&v.Rev, rp); err != nil {
				return err
			}
			e.append(RevisionInserted, v.Rev, runsText(v.Runs), rp, nil)
		case *doc.DeletedRange:
			if err := checkRev(&v.Rev, rp); err != nil {
				return err
			}
			e.append(RevisionDeleted, v.Rev, runsText(v.Runs), rp, nil)
		}
	}
	if p.MarkInserted != nil {
		if err := checkRev(p.MarkInserted, path); err != nil {
			return err
		}
		e.append(RevisionInserted, *p.MarkInserted, ParagraphMarkText, path, nil)
	}
	if p.MarkDeleted != nil {
		if err := checkRev(p.MarkDeleted, path); err != nil {
			return err
		}
		e.append(RevisionDeleted, *p.MarkDeleted, ParagraphMarkText, path, nil)
	}
	return nil
}

// formatChange emits a record for a run carrying a format-change mark.
// A run with a previous property set but no mark (or the reverse) is a
// wrapper missing mandatory metadata.
func (e *extractor) formatChange(r *doc.Run, path Path) error {
	if r.FormatRev == nil && r.PrevProps == nil {
		return nil
	}
	if r.PrevProps == nil {
		return NewRevisionShapeError(path.String(), "previous properties")
	}
	if err := checkRev(r.FormatRev, path); err != nil {
		return err
	}
	changed := r.PrevProps.Diff(r.Props)
	e.append(RevisionFormatChanged, *r.FormatRev, r.Text, path, changed)
	return nil
}

func (e *extractor) table(t *doc.Table, path Path) error {
	for i, row := range t.Rows {
		rp := path.child(StepRow, i)
		if row.Inserted != nil {
			if err := checkRev(row.Inserted, rp); err != nil {
				return err
			}
			e.append(RevisionInserted, *row.Inserted, "", rp, nil)
		}
		if row.Deleted != nil {
			if err := checkRev(row.Deleted, rp); err != nil {
				return err
			}
			e.append(RevisionDeleted, *row.Deleted, "", rp, nil)
		}
		for j, cell := range row.Cells {
			cp := rp.child(StepCell, j)
			if cell.Inserted != nil {
				if err := checkRev(cell.Inserted, cp); err != nil {
					return err
				}
				e.append(RevisionInserted, *cell.Inserted, "", cp, nil)
			}
			if cell.Deleted != nil {
				if err := checkRev(cell.Deleted, cp); err != nil {
					return err
				}
				e.append(RevisionDeleted, *cell.Deleted, "", cp, nil)
			}
			if err := e.blocks(cell.Body, cp); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *extractor) append(kind RevisionKind, rev doc.Revision, text string, path Path, changed []string) {
	e.revs = append(e.revs, Revision{
		Kind:              kind,
		ID:                rev.ID,
		Author:            rev.Author,
		Date:              rev.Date,
		Text:              text,
		Path:              path.String(),
		ChangedProperties: changed,
	})
}

// checkRev validates the mandatory wrapper metadata.
func checkRev(rev *doc.Revision, path Path) error {
	switch {
	case rev == nil:
		return NewRevisionShapeError(path.String(), "metadata")
	case rev.Author == "":
		return NewRevisionShapeError(path.String(), "author")
	case rev.Date.IsZero():
		return NewRevisionShapeError(path.String(), "date")
	case rev.ID <= 0:
		return NewRevisionShapeError(path.String(), "id")
	}
	return nil
}

func runsText(runs []*doc.Run) string {
	var out string
	for _, r := range runs {
		out += r.Text
	}
	return out
}
