package compare

// Op is one step of an edit script.
type Op uint8

const (
	// OpEqual pairs an element of the old sequence with one of the new.
	OpEqual Op = iota

	// OpDelete consumes an element present only in the old sequence.
	OpDelete

	// OpInsert consumes an element present only in the new sequence.
	OpInsert
)

// editOp references elements by absolute index into the original
// sequences: A for OpEqual/OpDelete, B for OpEqual/OpInsert.
type editOp struct {
	Op Op
	A  int
	B  int
}

// maxDPCells bounds the dynamic-programming table. Sequence pairs whose
// product exceeds it are split on hash anchors first; correctness is
// preserved either way, only optimality of the edit distance degrades on
// pathological inputs.
const maxDPCells = 1 << 21

// alignHashes computes a deterministic edit script between two sequences
// identified by their element hashes.
//
// The same routine serves every structural level of the comparison -
// blocks, rows, cells, and word-grain units - because element identity is
// fully captured by the hash (kind + normalized content).
//
// Determinism: common prefix and suffix are matched first, the DP
// backtrack takes an equal pair whenever it lies on an optimal path, and
// deletions are emitted before insertions inside a replace region. Ties
// between equal-cost alignments therefore always resolve the same way,
// favoring long contiguous matched runs over fragmented ones.
func alignHashes(a, b []string) []editOp {
	script := make([]editOp, 0, len(a)+len(b))
	alignInto(&script, a, b, 0, 0)
	return script
}

func alignInto(script *[]editOp, a, b []string, aoff, boff int) {
	// Common prefix.
	for len(a) > 0 && len(b) > 0 && a[0] == b[0] {
		*script = append(*script, editOp{Op: OpEqual, A: aoff, B: boff})
		a, b = a[1:], b[1:]
		aoff++
		boff++
	}

	// Common suffix: match lengths, emit after the middle is aligned.
	suffix := 0
	for len(a) > suffix && len(b) > suffix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}
	sa, sb := len(a)-suffix, len(b)-suffix
	ma, mb := a[:sa], b[:sb]

	switch {
	case len(ma) == 0 && len(mb) == 0:
		// Nothing between prefix and suffix.
	case len(ma) == 0:
		for j := range mb {
			*script = append(*script, editOp{Op: OpInsert, B: boff + j})
		}
	case len(mb) == 0:
		for i := range ma {
			*script = append(*script, editOp{Op: OpDelete, A: aoff + i})
		}
	case len(ma)*len(mb) <= maxDPCells:
		alignDP(script, ma, mb, aoff, boff)
	default:
		alignAnchored(script, ma, mb, aoff, boff)
	}

	for k := 0; k < suffix; k++ {
		*script = append(*script, editOp{Op: OpEqual, A: aoff + sa + k, B: boff + sb + k})
	}
}

// alignDP is the exact O(n·m) longest-common-subsequence path.
// dp[i][j] holds the LCS length of a[i:] and b[j:].
func alignDP(script *[]editOp, a, b []string, aoff, boff int) {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j] && dp[i][j] == dp[i+1][j+1]+1:
			*script = append(*script, editOp{Op: OpEqual, A: aoff + i, B: boff + j})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			// On ties, delete first: replace regions read old-then-new.
			*script = append(*script, editOp{Op: OpDelete, A: aoff + i})
			i++
		default:
			*script = append(*script, editOp{Op: OpInsert, B: boff + j})
			j++
		}
	}
	for ; i < n; i++ {
		*script = append(*script, editOp{Op: OpDelete, A: aoff + i})
	}
	for ; j < m; j++ {
		*script = append(*script, editOp{Op: OpInsert, B: boff + j})
	}
}

// maxAnchorOccurrences caps how many candidate positions per hash the
// anchor search inspects. Hashes more frequent than this (typically
// whitespace units) make poor anchors anyway.
const maxAnchorOccurrences = 64

// alignAnchored handles sequence pairs too large for the DP table: find
// the longest common contiguous stretch by hash equality, fix it as
// matched, and recurse on both halves. Without any common element the
// whole pair degrades to delete-all + insert-all, which is still a
// structurally valid classification.
func alignAnchored(script *[]editOp, a, b []string, aoff, boff int) {
	idx := newIndex(b)

	bestLen, bestA, bestB := 0, -1, -1
	for i := 0; i < len(a); i++ {
		positions := idx.positions(a[i])
		if len(positions) == 0 || len(positions) > maxAnchorOccurrences {
			continue
		}
		for _, j := range positions {
			if bestLen > 0 && (len(a)-i <= bestLen || len(b)-j <= bestLen) {
				continue
			}
			k := 0
			for i+k < len(a) && j+k < len(b) && a[i+k] == b[j+k] {
				k++
			}
			if k > bestLen {
				bestLen, bestA, bestB = k, i, j
			}
		}
		if bestLen > 0 {
			// Greedy skip keeps the scan near-linear on long matches.
			i += bestLen - 1
		}
	}

	if bestLen == 0 {
		for i := range a {
			*script = append(*script, editOp{Op: OpDelete, A: aoff + i})
		}
		for j := range b {
			*script = append(*script, editOp{Op: OpInsert, B: boff + j})
		}
		return
	}

	alignInto(script, a[:bestA], b[:bestB], aoff, boff)
	for k := 0; k < bestLen; k++ {
		*script = append(*script, editOp{Op: OpEqual, A: aoff + bestA + k, B: boff + bestB + k})
	}
	alignInto(script, a[bestA+bestLen:], b[bestB+bestLen:], aoff+bestA+bestLen, boff+bestB+bestLen)
}

// walkScript iterates an edit script, reporting matched pairs one at a
// time and maximal unmatched regions as index lists (old-side indexes
// first, new-side second).
func walkScript(script []editOp, onEqual func(ai, bi int), onRegion func(aIdx, bIdx []int)) {
	var regA, regB []int
	flush := func() {
		if len(regA) > 0 || len(regB) > 0 {
			onRegion(regA, regB)
			regA, regB = nil, nil
		}
	}
	for _, op := range script {
		switch op.Op {
		case OpEqual:
			flush()
			onEqual(op.A, op.B)
		case OpDelete:
			regA = append(regA, op.A)
		case OpInsert:
			regB = append(regB, op.B)
		}
	}
	flush()
}
