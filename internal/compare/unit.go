package compare

import (
	"fmt"
	"strings"

	"github.com/roach88/redline/internal/doc"
)

// UnitKind classifies a comparison unit.
type UnitKind uint8

const (
	// KindWord is a maximal run of non-space, non-punctuation characters.
	KindWord UnitKind = iota

	// KindSpace is a maximal run of whitespace.
	KindSpace

	// KindPunct is a single punctuation or symbol character.
	KindPunct

	// KindObject is an opaque non-text element compared by identity only.
	KindObject

	// KindParaMark is the sentinel closing a paragraph.
	KindParaMark

	// KindCellMark is the sentinel closing a table cell.
	KindCellMark

	// KindRowMark is the sentinel closing a table row.
	KindRowMark

	// KindTableMark is the sentinel closing a table.
	KindTableMark
)

// String returns the lower-case name of the kind.
func (k UnitKind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindSpace:
		return "space"
	case KindPunct:
		return "punct"
	case KindObject:
		return "object"
	case KindParaMark:
		return "para-mark"
	case KindCellMark:
		return "cell-mark"
	case KindRowMark:
		return "row-mark"
	case KindTableMark:
		return "table-mark"
	default:
		return "unknown"
	}
}

// IsSentinel reports whether the kind marks a container boundary rather
// than content.
func (k UnitKind) IsSentinel() bool {
	return k >= KindParaMark
}

// StepKind identifies a container level in an ancestry path.
type StepKind uint8

const (
	StepTable StepKind = iota
	StepRow
	StepCell
	StepParagraph
	StepRun
)

// String returns the lower-case name of the step kind.
func (k StepKind) String() string {
	switch k {
	case StepTable:
		return "table"
	case StepRow:
		return "row"
	case StepCell:
		return "cell"
	case StepParagraph:
		return "para"
	case StepRun:
		return "run"
	default:
		return "unknown"
	}
}

// PathStep is one container identity on an ancestry path: the container
// kind plus its child index within the parent.
type PathStep struct {
	Kind  StepKind
	Index int
}

// Path is the ordered list of container identities locating a unit within
// its document tree, from root to the unit's immediate container.
type Path []PathStep

// String renders the path as "table[0]/row[1]/cell[0]/para[2]/run[0]".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = fmt.Sprintf("%s[%d]", s.Kind, s.Index)
	}
	return strings.Join(parts, "/")
}

// child returns a new path extending p with one step. The receiver is
// never mutated; units must not share backing arrays.
func (p Path) child(kind StepKind, index int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = PathStep{Kind: kind, Index: index}
	return out
}

// containers returns the prefix of the path covering table/row/cell
// nesting only, i.e. the chain of structural containers above paragraph
// level. The synthesizer uses it to know which frames to open.
func (p Path) containers() Path {
	for i, s := range p {
		if s.Kind == StepParagraph || s.Kind == StepRun {
			return p[:i]
		}
	}
	return p
}

// Unit is the atomic comparison grain: a word, a whitespace run, a
// punctuation token, an opaque element, or a boundary sentinel.
//
// Units are produced fresh per comparison and owned by the flattened
// sequence; they are never shared across documents.
type Unit struct {
	Kind    UnitKind
	Content string       // token text; object identity; "" for sentinels
	Props   doc.RunProps // resolved formatting; zero for sentinels
	Path    Path
	Object  *doc.Object // set for KindObject only
}

// Status classifies a unit after alignment.
type Status uint8

const (
	Unchanged Status = iota
	Inserted
	Deleted
	FormatChanged
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Inserted:
		return "inserted"
	case Deleted:
		return "deleted"
	case FormatChanged:
		return "format-changed"
	default:
		return "unknown"
	}
}

// Classified is a comparison unit tagged with its alignment status.
//
// For Unchanged and FormatChanged the unit comes from the new document
// (its formatting is the one the output carries); OldProps holds the old
// document's formatting for FormatChanged. For Inserted the unit comes
// from the new document, for Deleted from the old one - that provenance
// is what lets the synthesizer pick the right wrapper.
type Classified struct {
	Unit     Unit
	Status   Status
	OldProps *doc.RunProps // FormatChanged only
}
