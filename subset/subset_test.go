package subset

import (
	"testing"

	"github.com/coregx/regexc/internal/automaton"
	"github.com/coregx/regexc/parser"
)

func accepts(dfa *automaton.Automaton, input string) bool {
	state := dfa.Start()
	for i := 0; i < len(input); i++ {
		c := input[i]
		next := automaton.Invalid
		for _, e := range dfa.Out(state) {
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
	return dfa.IsAccepting(state)
}

func buildDFA(t *testing.T, pattern string) *automaton.Automaton {
	t.Helper()
	nfa, err := parser.Parse(pattern)
	if err != nil {
		t.Fatalf("parse %q: %v", pattern, err)
	}
	return Build(nfa)
}

func TestBuildIsDeterministic(t *testing.T) {
	dfa := buildDFA(t, "a(b|c)*")
	for _, st := range dfa.States() {
		seen := make(map[byte]bool)
		for c := 0; c < 128; c++ {
			count := 0
			for _, e := range st.Out {
				if e.Label.Contains(byte(c)) {
					count++
				}
			}
			if count > 1 {
				t.Fatalf("state %d has multiple edges on byte %d", st.ID, c)
			}
			_ = seen
		}
	}
}

func TestBuildAcceptsExpectedStrings(t *testing.T) {
	dfa := buildDFA(t, "a(b|c)*")
	for _, s := range []string{"a", "ab", "ac", "abcbc"} {
		if !accepts(dfa, s) {
			t.Errorf("expected %q to be accepted", s)
		}
	}
	for _, s := range []string{"", "b", "ad", "abcd"} {
		if accepts(dfa, s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestBuildOverlappingClassesDisambiguated(t *testing.T) {
	// [a-m] and [g-z] overlap on [g-m]; the alphabet refinement must still
	// produce a single deterministic edge set.
	dfa := buildDFA(t, "[a-m]|[g-z]")
	for _, s := range []string{"a", "g", "m", "z"} {
		if !accepts(dfa, s) {
			t.Errorf("expected %q to be accepted", s)
		}
	}
	if accepts(dfa, "0") {
		t.Error("expected digit to be rejected")
	}
}

func TestBuildRepeatExact(t *testing.T) {
	dfa := buildDFA(t, "a{3}")
	if !accepts(dfa, "aaa") {
		t.Error("expected aaa to be accepted")
	}
	if accepts(dfa, "aa") || accepts(dfa, "aaaa") {
		t.Error("expected only exactly 3 a's to be accepted")
	}
}
