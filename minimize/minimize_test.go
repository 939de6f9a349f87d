package minimize

import (
	"testing"

	"github.com/coregx/regexc/internal/automaton"
	"github.com/coregx/regexc/parser"
	"github.com/coregx/regexc/subset"
)

func accepts(a *automaton.Automaton, input string) bool {
	state := a.Start()
	for i := 0; i < len(input); i++ {
		c := input[i]
		next := automaton.Invalid
		for _, e := range a.Out(state) {
			if e.Label.Contains(c) {
				next = e.Dst
				break
			}
		}
		if next == automaton.Invalid {
			return false
		}
		state = next
	}
	return a.IsAccepting(state)
}

func buildMinDFA(t *testing.T, pattern string) *automaton.Automaton {
	t.Helper()
	nfa, err := parser.Parse(pattern)
	if err != nil {
		t.Fatalf("parse %q: %v", pattern, err)
	}
	return Minimize(subset.Build(nfa))
}

func TestMinimizePreservesLanguage(t *testing.T) {
	min := buildMinDFA(t, "a(b|c)*")
	for _, s := range []string{"a", "ab", "ac", "abcbc"} {
		if !accepts(min, s) {
			t.Errorf("expected %q to be accepted", s)
		}
	}
	for _, s := range []string{"", "b", "ad"} {
		if accepts(min, s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

// ac|b is a linear (non-looping) alternation whose blocks' successors leave
// the block immediately, the shape that exposes a minimizer comparing a
// successor's block to membership in the current block B instead of to the
// representative's own successor block.
func TestMinimizeLinearAlternationPreservesLanguage(t *testing.T) {
	min := buildMinDFA(t, "ac|b")
	for _, s := range []string{"ac", "b"} {
		if !accepts(min, s) {
			t.Errorf("expected %q to be accepted", s)
		}
	}
	for _, s := range []string{"", "a", "c", "ab", "abc"} {
		if accepts(min, s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestMinimizeExactRepeatPreservesLanguage(t *testing.T) {
	min := buildMinDFA(t, "a{3}")
	if !accepts(min, "aaa") {
		t.Error("expected aaa to be accepted")
	}
	for _, s := range []string{"aa", "aaaa"} {
		if accepts(min, s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestMinimizeEmailPatternPreservesLanguage(t *testing.T) {
	min := buildMinDFA(t, "[a-zA-Z0-9]+@[a-zA-Z0-9]+[.][a-z]+")
	if !accepts(min, "user@example.com") {
		t.Error("expected user@example.com to be accepted")
	}
	for _, s := range []string{"u@.tld", "", "user@example", "@example.com"} {
		if accepts(min, s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

// (a|a) denotes the same language as a and should collapse to the same
// state count once minimized, even though subset construction alone may
// produce redundant states for the duplicated alternation branch.
func TestMinimizeCollapsesRedundantAlternation(t *testing.T) {
	minA := buildMinDFA(t, "a")
	minDup := buildMinDFA(t, "(a|a)")

	if minDup.NumStates() != minA.NumStates() {
		t.Fatalf("expected (a|a) to minimize to the same state count as a: got %d want %d",
			minDup.NumStates(), minA.NumStates())
	}
}

func TestMinimizeNeverIncreasesStateCount(t *testing.T) {
	nfa, err := parser.Parse("a(b|c)*d{2,4}")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	dfa := subset.Build(nfa)
	min := Minimize(dfa)
	if min.NumStates() > dfa.NumStates() {
		t.Fatalf("expected minimization to not increase state count: dfa=%d min=%d",
			dfa.NumStates(), min.NumStates())
	}
}
