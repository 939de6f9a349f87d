// Package fragment is the Thompson NFA fragment builder: it consumes
// parser-driven construction calls ("emit literal", "union two fragments",
// "Kleene-star this fragment", ...) and produces NFA fragments with a single
// entry and single exit state each, per spec §4.3. It is grounded on
// nfa/builder.go's AddSplit/AddQuantifierSplit/AddEpsilon naming and on
// original_source/src/parser.rs's fragment-wiring for `*`, `?`, `+`.
package fragment

import (
	"errors"

	"github.com/coregx/regexc/internal/automaton"
	"github.com/coregx/regexc/internal/charclass"
)

// Sentinel semantic errors (spec §7).
var (
	ErrNegatedClassUnsupported = errors.New("fragment: negated character class not implemented")
	ErrEmptyClass              = errors.New("fragment: empty character class")
)

// Fragment is a sub-NFA with exactly one entry and one exit state.
// Combinators compose fragments by wiring epsilon edges between them;
// the terminal accept bit is only set on the very last fragment's exit by
// the caller (parser.Parse), and the start is set to the final entry.
type Fragment struct {
	Entry, Exit automaton.StateID
}

// Builder grows a shared Automaton via Thompson combinators.
type Builder struct {
	A *automaton.Automaton
}

// NewBuilder returns a Builder over a fresh, empty Automaton.
func NewBuilder() *Builder {
	return &Builder{A: automaton.New()}
}

// Literal builds `s1 --Range(c,c)--> s2`.
func (b *Builder) Literal(c byte) Fragment {
	s1 := b.A.AddState()
	s2 := b.A.AddState()
	b.A.AddTransition(s1, s2, automaton.RangeLabel(c, c))
	return Fragment{Entry: s1, Exit: s2}
}

// Wildcard builds `s1 --Range(0,127)--> s2`, matching any byte.
func (b *Builder) Wildcard() Fragment {
	s1 := b.A.AddState()
	s2 := b.A.AddState()
	b.A.AddTransition(s1, s2, automaton.RangeLabel(0, charclass.MaxByte))
	return Fragment{Entry: s1, Exit: s2}
}

// Class builds a character class fragment from a list of (possibly
// overlapping) ranges, merging them into a canonical disjoint set first.
// When negate is true the class matches the complement against [0,127]
// instead (spec §9 supplemented feature). A class that ends up matching
// nothing is a semantic error.
func (b *Builder) Class(ranges []automaton.Range, negate bool) (Fragment, error) {
	merged := charclass.MergeRanges(ranges)
	if negate {
		merged = charclass.Complement(merged)
	}
	if len(merged) == 0 {
		return Fragment{}, ErrEmptyClass
	}

	s1 := b.A.AddState()
	s2 := b.A.AddState()

	if len(merged) == 1 {
		b.A.AddTransition(s1, s2, automaton.RangeLabel(merged[0].Lo, merged[0].Hi))
	} else {
		b.A.AddTransition(s1, s2, automaton.RangeListLabel(merged))
	}

	return Fragment{Entry: s1, Exit: s2}, nil
}

// Concat builds `A.Exit --ε--> B.Entry`, fragment (A.Entry, B.Exit).
func (b *Builder) Concat(a, c Fragment) Fragment {
	b.A.AddETransition(a.Exit, c.Entry)
	return Fragment{Entry: a.Entry, Exit: c.Exit}
}

// Union builds the `A|B` alternation fragment.
func (b *Builder) Union(a, c Fragment) Fragment {
	s1 := b.A.AddState()
	s2 := b.A.AddState()

	b.A.AddETransition(s1, a.Entry)
	b.A.AddETransition(s1, c.Entry)
	b.A.AddETransition(a.Exit, s2)
	b.A.AddETransition(c.Exit, s2)

	return Fragment{Entry: s1, Exit: s2}
}

// Star builds the `A*` fragment (Kleene star).
func (b *Builder) Star(a Fragment) Fragment {
	s1 := b.A.AddState()
	s2 := b.A.AddState()

	b.A.AddETransition(s1, a.Entry)
	b.A.AddETransition(a.Exit, s2)
	b.A.AddETransition(a.Exit, a.Entry)
	b.A.AddETransition(s1, s2)

	return Fragment{Entry: s1, Exit: s2}
}

// Optional builds the `A?` fragment.
func (b *Builder) Optional(a Fragment) Fragment {
	s1 := b.A.AddState()
	s2 := b.A.AddState()

	b.A.AddETransition(s1, s2)
	b.A.AddETransition(s1, a.Entry)
	b.A.AddETransition(a.Exit, s2)

	return Fragment{Entry: s1, Exit: s2}
}

// Plus builds the `A+` fragment as `A A*`, cloning A's subgraph instead of
// introducing an epsilon cycle back through A itself (spec §4.3/§4.2).
func (b *Builder) Plus(a Fragment) Fragment {
	clonedEntry, clonedExit := b.A.CloneSubgraph(a.Entry, a.Exit)

	s1 := b.A.AddState()
	s2 := b.A.AddState()

	b.A.AddETransition(a.Exit, s1)
	b.A.AddETransition(s1, clonedEntry)
	b.A.AddETransition(clonedExit, s2)
	b.A.AddETransition(clonedExit, clonedEntry)
	b.A.AddETransition(s1, s2)

	return Fragment{Entry: a.Entry, Exit: s2}
}

// Repeat builds `A{n}`: the first copy is a itself, and n-1 further copies
// are produced via CloneSubgraph and concatenated (spec §4.3). n must be
// >= 0; n == 0 yields a fragment matching the empty string only.
func (b *Builder) Repeat(a Fragment, n int) Fragment {
	if n == 0 {
		s1 := b.A.AddState()
		s2 := b.A.AddState()
		b.A.AddETransition(s1, s2)
		return Fragment{Entry: s1, Exit: s2}
	}

	result := a
	for i := 1; i < n; i++ {
		entry, exit := b.A.CloneSubgraph(a.Entry, a.Exit)
		result = b.Concat(result, Fragment{Entry: entry, Exit: exit})
	}
	return result
}

// RepeatRange desugars the ranged quantifiers per spec §9:
//
//	A{m,n} ≡ A{m} A? A? ...  (n-m optional copies)
//	A{m,}  ≡ A{m} A*
//	A{,n}  ≡ A? A? ...        (n copies)
//
// min == nil means "0" (the `{,n}` form); max == nil means unbounded (the
// `{m,}` form).
func (b *Builder) RepeatRange(a Fragment, min, max *int) Fragment {
	m := 0
	if min != nil {
		m = *min
	}

	base := b.Repeat(a, m)
	if max == nil {
		tail := b.cloneFragment(a)
		star := b.Star(tail)
		if m == 0 {
			return star
		}
		return b.Concat(base, star)
	}

	n := *max
	result := base
	for i := m; i < n; i++ {
		opt := b.Optional(b.cloneFragment(a))
		result = b.Concat(result, opt)
	}
	return result
}

// cloneFragment returns an independent copy of a's subgraph.
func (b *Builder) cloneFragment(a Fragment) Fragment {
	entry, exit := b.A.CloneSubgraph(a.Entry, a.Exit)
	return Fragment{Entry: entry, Exit: exit}
}

// Finish sets the automaton's start and accept states from the top-level
// fragment and returns the completed NFA.
func (b *Builder) Finish(top Fragment) *automaton.Automaton {
	b.A.SetStart(top.Entry)
	b.A.MakeAccepting(top.Exit)
	return b.A
}
