// Package charclass implements the range-merge and complement operations
// needed to build canonical character classes: `[a-zA-Z0-9]`-style inclusive
// lists collapse into a sorted, disjoint, non-adjacent range list, and `[^...]`
// negation is the complement of that list against the 7-bit ASCII universe.
package charclass

import (
	"sort"

	"github.com/coregx/regexc/internal/automaton"
)

// MaxByte is the highest byte value this compiler's character ranges may
// cover; ranges live in [0, MaxByte] per the 7-bit ASCII scope (spec §3).
const MaxByte = 127

// MergeRanges sorts ranges by Lo and merges any pair that overlaps or
// touches (next.Lo <= current.Hi+1), producing a canonical list: sorted
// ascending by Lo, pairwise disjoint, and non-adjacent. An empty input
// yields an empty result.
func MergeRanges(ranges []automaton.Range) []automaton.Range {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]automaton.Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })

	merged := make([]automaton.Range, 0, len(sorted))
	cur := sorted[0]
	for _, next := range sorted[1:] {
		if int(next.Lo) <= int(cur.Hi)+1 {
			if next.Hi > cur.Hi {
				cur.Hi = next.Hi
			}
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	merged = append(merged, cur)

	return merged
}

// Complement returns the complement of a canonical (merged) range list
// against [0, MaxByte]. The result is itself canonical.
func Complement(ranges []automaton.Range) []automaton.Range {
	var out []automaton.Range

	next := byte(0)
	for _, r := range ranges {
		if r.Lo > next {
			out = append(out, automaton.Range{Lo: next, Hi: r.Lo - 1})
		}
		if r.Hi == MaxByte {
			return out
		}
		next = r.Hi + 1
	}
	if next <= MaxByte {
		out = append(out, automaton.Range{Lo: next, Hi: MaxByte})
	}
	return out
}
