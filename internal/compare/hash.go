package compare

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content hashing. Version suffix enables future
// algorithm migration. The null byte separator prevents domain/data
// boundary ambiguity.
const (
	domainUnit  = "redline/unit/v1"
	domainBlock = "redline/block/v1"
)

// hasher computes the content hashes the alignment engine keys on.
//
// This is the optimization layer: hashes make equality checks O(1) and
// let the aligner anchor long identical stretches, but they never change
// classification - a hash is a pure function of normalized content (NFC,
// optionally case-folded) and unit kind, nothing else. Ancestry and
// formatting are deliberately excluded from the content hash; formatting
// enters only through the separate format-sensitive hash.
type hasher struct {
	caseInsensitive bool
	folder          cases.Caser
}

func newHasher(s Settings) *hasher {
	return &hasher{
		caseInsensitive: s.CaseInsensitive,
		folder:          cases.Fold(),
	}
}

// normalize applies NFC normalization and, when configured, Unicode case
// folding. All content equality in the engine goes through this.
func (h *hasher) normalize(s string) string {
	s = norm.NFC.String(s)
	if h.caseInsensitive {
		s = h.folder.String(s)
	}
	return s
}

// unitHash returns the content hash of one unit:
// SHA256(domain + 0x00 + kind + 0x00 + normalized content).
// Sentinels of the same kind always hash equal.
func (h *hasher) unitHash(u Unit) string {
	d := sha256.New()
	d.Write([]byte(domainUnit))
	d.Write([]byte{0x00, byte(u.Kind), 0x00})
	d.Write([]byte(h.normalize(u.Content)))
	return hex.EncodeToString(d.Sum(nil))
}

// unitHashes computes content hashes for a unit sequence.
func (h *hasher) unitHashes(units []Unit) []string {
	out := make([]string, len(units))
	for i := range units {
		out[i] = h.unitHash(units[i])
	}
	return out
}

// contentHash aggregates a unit sequence into one block-level hash.
// Two blocks with identical token sequences hash equal regardless of
// where they sit in their trees.
func (h *hasher) contentHash(units []Unit) string {
	d := sha256.New()
	d.Write([]byte(domainBlock))
	d.Write([]byte{0x00})
	for i := range units {
		d.Write([]byte(h.unitHash(units[i])))
		d.Write([]byte{0x00})
	}
	return hex.EncodeToString(d.Sum(nil))
}

// formatHash is contentHash with each unit's resolved formatting
// signature mixed in. Blocks that differ only in formatting share a
// contentHash but not a formatHash; the aligner uses that gap to decide
// when to descend for format-change detection.
func (h *hasher) formatHash(units []Unit) string {
	d := sha256.New()
	d.Write([]byte(domainBlock))
	d.Write([]byte{0x00})
	for i := range units {
		d.Write([]byte(h.unitHash(units[i])))
		d.Write([]byte{0x00})
		d.Write([]byte(units[i].Props.Signature()))
		d.Write([]byte{0x00})
	}
	return hex.EncodeToString(d.Sum(nil))
}

// index groups positions by hash, the "grouping" half of the hashing
// layer. The aligner consults it to locate candidate anchors when a
// sequence pair is too large for full dynamic programming.
type index struct {
	pos map[string][]int
}

func newIndex(hashes []string) *index {
	idx := &index{pos: make(map[string][]int, len(hashes))}
	for i, hash := range hashes {
		idx.pos[hash] = append(idx.pos[hash], i)
	}
	return idx
}

// positions returns the ascending positions at which hash occurs.
func (idx *index) positions(hash string) []int {
	return idx.pos[hash]
}
