package doc

import (
	"fmt"
	"strings"
)

// TrackedProperties is the fixed vocabulary of formatting properties the
// engine compares, in the order changed-property lists are reported.
//
// The names are part of the public contract: callers key off them, so they
// must remain stable across versions.
var TrackedProperties = []string{
	"bold",
	"italic",
	"underline",
	"strike",
	"vertalign",
	"font",
	"size",
	"color",
	"lang",
}

// Vertical alignment values for RunProps.VertAlign.
const (
	VertAlignBaseline    = ""
	VertAlignSuperscript = "superscript"
	VertAlignSubscript   = "subscript"
)

// RunProps is the resolved formatting of a run as a fixed-shape value.
//
// One field per tracked property, normalized units: Size is in half-points,
// Color is a lower-case hex string without '#', Lang is a BCP 47 tag.
// Equality and diffing are structural so a new tracked property cannot be
// silently skipped - it must be added here, to TrackedProperties, and to
// Diff, which the props tests cross-check.
type RunProps struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	VertAlign string
	Font      string
	Size      int
	Color     string
	Lang      string
}

// Equal reports whether two property sets are identical.
func (p RunProps) Equal(o RunProps) bool {
	return p == o
}

// IsZero reports whether the props carry no formatting at all.
func (p RunProps) IsZero() bool {
	return p == RunProps{}
}

// Diff returns the names of tracked properties whose value differs between
// p and o, in TrackedProperties order. An empty slice means equal.
func (p RunProps) Diff(o RunProps) []string {
	var changed []string
	if p.Bold != o.Bold {
		changed = append(changed, "bold")
	}
	if p.Italic != o.Italic {
		changed = append(changed, "italic")
	}
	if p.Underline != o.Underline {
		changed = append(changed, "underline")
	}
	if p.Strike != o.Strike {
		changed = append(changed, "strike")
	}
	if p.VertAlign != o.VertAlign {
		changed = append(changed, "vertalign")
	}
	if p.Font != o.Font {
		changed = append(changed, "font")
	}
	if p.Size != o.Size {
		changed = append(changed, "size")
	}
	if p.Color != o.Color {
		changed = append(changed, "color")
	}
	if p.Lang != o.Lang {
		changed = append(changed, "lang")
	}
	return changed
}

// Signature returns a canonical string digest of the property set, used
// for format-sensitive hashing. Same props always produce the same
// signature; the field order matches TrackedProperties.
func (p RunProps) Signature() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bold=%t;italic=%t;underline=%t;strike=%t;vertalign=%s;font=%s;size=%d;color=%s;lang=%s",
		p.Bold, p.Italic, p.Underline, p.Strike, p.VertAlign, p.Font, p.Size, p.Color, p.Lang)
	return b.String()
}
