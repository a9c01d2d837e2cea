// Package doc defines the in-memory document tree the comparison engine
// operates on.
//
// The tree mirrors the block/inline split of word-processing formats:
//
//	Document ⊃ Block (Paragraph | Table)
//	Table ⊃ Row ⊃ Cell ⊃ Block
//	Paragraph ⊃ Inline (Run | InsertedRange | DeletedRange)
//	Run ⊃ Text | Object
//
// Block, Inline, and run content are sealed interfaces - only the types in
// this package implement them. This keeps traversal exhaustive: a switch
// over the variants covers every shape the engine can encounter.
//
// Revision markup lives directly on the tree:
//   - InsertedRange / DeletedRange wrap runs that were added or removed
//   - Run.PrevProps + Run.FormatRev record a format-only change, keeping
//     the old property set alongside the new, already-applied one
//   - Paragraph.MarkInserted / MarkDeleted track the paragraph mark itself
//   - Row and Cell carry Inserted / Deleted for structural revisions
//
// Documents enter the engine fully resolved: every Run carries the
// effective RunProps for that run (style-sheet and numbering resolution is
// an upstream concern). Container parsing (.docx archives) is likewise
// external; see internal/docxio for the boundary adapter.
package doc
