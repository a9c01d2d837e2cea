package compare

import (
	"time"

	"github.com/roach88/redline/internal/doc"
)

// Compare aligns the content of two document trees and returns a single
// tree encoding every difference as revision markup: insertion and
// deletion wrappers, format-change marks, and structural revisions on
// paragraph marks, rows, and cells.
//
// The old version is a, the new version is b. The output is the new
// document's content with deletions from a woven back in (unless
// s.RetainDeletions is false), suitable for serialization by a container
// adapter or projection through Revisions.
//
// Comparing a document to itself yields a tree with no revisions.
// Re-flattening the output and re-running the comparison reproduces the
// same classification - synthesis does not invent or lose content.
//
// Fails only on malformed or unsupported input; alignment and synthesis
// are total.
func Compare(a, b *doc.Document, s Settings) (*doc.Document, error) {
	if s.Author == "" {
		s.Author = DefaultSettings().Author
	}
	if s.Date.IsZero() {
		s.Date = time.Now().UTC()
	}
	for _, d := range []*doc.Document{a, b} {
		if err := d.Validate(); err != nil {
			return nil, NewMalformedDocumentError(err)
		}
		if err := checkSupported(d.Body, nil); err != nil {
			return nil, err
		}
	}
	return synthesize(classify(a, b, s), s), nil
}
