// Package compare implements the document comparison engine: it aligns
// the content of two document trees, classifies every span as unchanged,
// inserted, deleted, or format-changed, and re-emits a single valid tree
// carrying that classification as revision markup.
//
// PIPELINE:
//
//  1. Flatten - each tree becomes an ordered sequence of atomic units
//     (words, whitespace, punctuation, opaque objects) plus sentinel units
//     for paragraph, cell, row, and table boundaries. Every unit carries
//     its ancestry path.
//  2. Hash - units and blocks get domain-separated SHA-256 content hashes
//     so alignment equality checks are O(1) and long identical stretches
//     can be anchored cheaply.
//  3. Align - a recursive, multi-grain alignment: blocks first, then
//     tables → rows → cells → blocks, bottoming out in a word-grain LCS
//     over the flattened units of paragraph regions. One generic LCS
//     routine serves every level, parameterized only by the hash sequence.
//  4. Detect format changes - matched units with identical text but
//     different resolved properties re-tag to FormatChanged, retaining the
//     old property set (only when Settings.DetectFormatChanges is on).
//  5. Synthesize - the classified sequence is rebuilt into one tree with
//     insertion/deletion wrappers and format-change marks, stamped with
//     author, date, and strictly increasing ids from a counter scoped to
//     the call.
//
// The extractor (Revisions) is independent of the pipeline: it projects
// any revision-annotated tree to a flat record list without re-running
// alignment.
//
// DETERMINISM:
//
// The whole computation is pure and single-threaded per call. No state
// survives across calls; ids restart at 1 each comparison. Ties between
// equal-cost alignments are broken the same way every run: common prefix
// and suffix first, then a DP backtrack that prefers long contiguous
// matches and emits deletions before insertions inside a replace region.
// Concurrent calls on independent inputs need no coordination.
package compare
