package compare

import "time"

// Settings is the immutable configuration for one comparison call.
// Passed by value; no shared mutable configuration exists between calls.
type Settings struct {
	// Author is stamped onto every generated revision.
	Author string

	// Date is stamped onto every generated revision. The zero value means
	// "wall-clock now at Compare entry"; tests pass a fixed date for
	// deterministic output.
	Date time.Time

	// DetectFormatChanges enables format-only change detection. When false,
	// matched pairs with identical text are always Unchanged regardless of
	// formatting differences.
	DetectFormatChanges bool

	// CaseInsensitive makes content equality case-folded. Revision text is
	// still emitted with original casing.
	CaseInsensitive bool

	// RetainDeletions keeps deleted content in the output tree inside
	// deletion wrappers. When false, deleted content is elided entirely.
	RetainDeletions bool
}

// DefaultSettings returns the settings a typical caller wants: format
// detection on, case-sensitive matching, deleted content retained, and
// the author marked as "redline".
func DefaultSettings() Settings {
	return Settings{
		Author:              "redline",
		DetectFormatChanges: true,
		RetainDeletions:     true,
	}
}
