// Package minimize implements Hopcroft-flavored partition refinement over a
// DFA, producing the coarsest partition that respects the accept/non-accept
// split and the transition function (spec §4.5). Grounded on the
// worklist/fixed-point shape shared by nfa/composite_dfa.go's queue-draining
// subset construction loop, applied here to equivalence-class splitting
// instead of NFA-state-set expansion.
//
// split(B) is a fixed-point-iterated test rather than Hopcroft's
// O(n log n) splitter-queue algorithm: a state s is separated from a
// block's representative if, for some label in the representative's
// outgoing alphabet Σ_B, s's successor under that label lands in a
// different block than the representative's successor does (not merely
// outside B itself — comparing to membership in B is only a valid test
// once every block is already a congruence class, which doesn't hold
// mid-refinement). Spec §9 explicitly permits substituting the optimal
// algorithm without changing observable behavior; this build keeps the
// simpler fixed-point version (see DESIGN.md for the tradeoff).
package minimize

import (
	"sort"

	"github.com/coregx/regexc/internal/automaton"
	"github.com/coregx/regexc/internal/charclass"
)

// Minimize returns the minimal DFA equivalent to dfa: no two distinct states
// accept the same residual language (Myhill-Nerode).
func Minimize(dfa *automaton.Automaton) *automaton.Automaton {
	partition := initialPartition(dfa)

	for {
		next := refine(dfa, partition)
		if samePartition(partition, next) {
			partition = next
			break
		}
		partition = next
	}

	return build(dfa, partition)
}

// initialPartition splits states into accepting and non-accepting blocks,
// dropping whichever is empty.
func initialPartition(dfa *automaton.Automaton) [][]int {
	var accepting, other []int
	for i := 0; i < dfa.NumStates(); i++ {
		if dfa.IsAccepting(automaton.StateID(i)) {
			accepting = append(accepting, i)
		} else {
			other = append(other, i)
		}
	}

	var p [][]int
	if len(accepting) > 0 {
		p = append(p, accepting)
	}
	if len(other) > 0 {
		p = append(p, other)
	}
	return p
}

// blockIndex maps each state to the index of the block containing it.
func blockIndex(partition [][]int, numStates int) []int {
	idx := make([]int, numStates)
	for bi, block := range partition {
		for _, s := range block {
			idx[s] = bi
		}
	}
	return idx
}

// refine applies split to every block in partition and returns the union of
// the resulting sub-blocks.
func refine(dfa *automaton.Automaton, partition [][]int) [][]int {
	idx := blockIndex(partition, dfa.NumStates())

	var next [][]int
	for _, block := range partition {
		stayed, separated := split(dfa, block, idx)
		if len(stayed) > 0 {
			next = append(next, stayed)
		}
		if len(separated) > 0 {
			next = append(next, separated)
		}
	}
	return next
}

// split partitions block into the states that stay congruent with the
// block's representative (its first state) and those separated from it.
// Σ_B is the set of distinct outgoing labels observed from the
// representative; a state is separated out if, for some label in Σ_B, its
// successor under that label lands in a different block than the
// representative's successor does, it lacks a transition under a label the
// representative has, or it carries an outgoing label outside Σ_B.
func split(dfa *automaton.Automaton, block []int, idx []int) (stayed, separated []int) {
	if len(block) <= 1 {
		return block, nil
	}

	rep := dfa.State(automaton.StateID(block[0]))
	sigma := make(map[string]automaton.Label)
	repTarget := make(map[string]int)
	for _, e := range rep.Out {
		sigma[e.Label.Key()] = e.Label
		repTarget[e.Label.Key()] = idx[e.Dst]
	}

	for _, s := range block {
		if isSeparated(dfa, s, idx, sigma, repTarget) {
			separated = append(separated, s)
		} else {
			stayed = append(stayed, s)
		}
	}
	return stayed, separated
}

func isSeparated(dfa *automaton.Automaton, s int, idx []int, sigma map[string]automaton.Label, repTarget map[string]int) bool {
	st := dfa.State(automaton.StateID(s))

	ownLabels := make(map[string]automaton.Edge)
	for _, e := range st.Out {
		ownLabels[e.Label.Key()] = e
	}

	// Condition (b): an outgoing label not in Σ_B.
	for key := range ownLabels {
		if _, ok := sigma[key]; !ok {
			return true
		}
	}

	// Condition (a): for each label in Σ_B, the successor must land in the
	// same block as the representative's successor under that label;
	// lacking the transition entirely is treated the same way.
	for key := range sigma {
		e, ok := ownLabels[key]
		if !ok {
			return true
		}
		if idx[e.Dst] != repTarget[key] {
			return true
		}
	}

	return false
}

func samePartition(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	norm := func(p [][]int) []string {
		keys := make([]string, len(p))
		for i, block := range p {
			cp := append([]int(nil), block...)
			sort.Ints(cp)
			keys[i] = intsKey(cp)
		}
		sort.Strings(keys)
		return keys
	}
	ak, bk := norm(a), norm(b)
	for i := range ak {
		if ak[i] != bk[i] {
			return false
		}
	}
	return true
}

func intsKey(xs []int) string {
	s := ""
	for _, x := range xs {
		s += string(rune(x)) + ","
	}
	return s
}

// build constructs the minimized DFA from the final partition: one state
// per block, edges coalesced per (source-block, target-block) pair into a
// single RangeList edge per spec §4.5 step 2.
func build(dfa *automaton.Automaton, partition [][]int) *automaton.Automaton {
	idx := blockIndex(partition, dfa.NumStates())

	min := automaton.New()
	blockState := make([]automaton.StateID, len(partition))
	for bi, block := range partition {
		blockState[bi] = min.AddState()
		if dfa.IsAccepting(automaton.StateID(block[0])) {
			min.MakeAccepting(blockState[bi])
		}
	}
	min.SetStart(blockState[idx[dfa.Start()]])

	for bi, block := range partition {
		rep := dfa.State(automaton.StateID(block[0]))

		rangesByTarget := make(map[automaton.StateID][]automaton.Range)
		targetOrder := make([]automaton.StateID, 0)
		for _, e := range rep.Out {
			tgt := blockState[idx[e.Dst]]
			if _, ok := rangesByTarget[tgt]; !ok {
				targetOrder = append(targetOrder, tgt)
			}
			rangesByTarget[tgt] = append(rangesByTarget[tgt], e.Label.Ranges...)
		}

		for _, tgt := range targetOrder {
			merged := charclass.MergeRanges(rangesByTarget[tgt])
			min.AddTransition(blockState[bi], tgt, automaton.RangeListLabel(merged))
		}
	}

	return min
}
