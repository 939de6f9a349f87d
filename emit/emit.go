// Package emit linearizes a minimal DFA into a self-contained C translation
// unit implementing `int matches(char *input)` (spec §4.6, §6). The teacher
// corpus has no C backend to imitate directly (it targets Go execution, not
// code generation for an external language); this package is therefore the
// one piece of the pipeline built on the standard library only — see
// DESIGN.md for the justification. Its shape (one block of target-language
// text emitted per automaton state) is grounded on
// other_examples/838655f9_KromDaniel-regengo__internal-compiler-compiler.go.go's
// code-generation-compiler structure, adapted from Go-source generation to
// raw C text via strings.Builder.
package emit

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/regexc/internal/automaton"
)

// ErrEpsilonReachedEmitter indicates an ε edge survived into the minimal
// DFA, which should be impossible after subset construction (spec §7: a bug
// in upstream stages if observed).
var ErrEpsilonReachedEmitter = errors.New("emit: epsilon transition reached the emitter")

// StackHeader is the canonical stack.h the emitted translation unit depends
// on (spec §6 emitted-C contract).
const StackHeader = `#ifndef REGEXC_STACK_H
#define REGEXC_STACK_H

typedef struct {
    int *items;
    int top;
    int capacity;
} Stack;

void stack_init(Stack *s);
void push(Stack *s, int value);
void clear(Stack *s);

#endif
`

// Source linearizes the minimal DFA dfa into C source implementing
// `int matches(char *input)`. Returns an error (and no partial output, per
// spec §7) if an ε edge is found.
func Source(dfa *automaton.Automaton) (string, error) {
	if err := validate(dfa); err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString("#include \"stack.h\"\n\n")

	b.WriteString("int accepting[] = {")
	for i := 0; i < dfa.NumStates(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		if dfa.IsAccepting(automaton.StateID(i)) {
			b.WriteString("1")
		} else {
			b.WriteString("0")
		}
	}
	b.WriteString("};\n\n")

	b.WriteString("int matches(char *input) {\n")
	b.WriteString("    int state;\n")
	b.WriteString("    char c;\n")
	b.WriteString("    int cursor = 0;\n")
	b.WriteString("    Stack stack;\n")
	b.WriteString("    stack_init(&stack);\n")
	b.WriteString("    push(&stack, -1);\n")
	fmt.Fprintf(&b, "    goto s%d;\n\n", dfa.Start())

	for i := 0; i < dfa.NumStates(); i++ {
		id := automaton.StateID(i)
		fmt.Fprintf(&b, "s%d:\n", i)
		fmt.Fprintf(&b, "    state = %d;\n", i)
		b.WriteString("    if ((c = input[cursor++]) == '\\0') goto end;\n")
		if dfa.IsAccepting(id) {
			b.WriteString("    clear(&stack);\n")
		}
		fmt.Fprintf(&b, "    push(&stack, %d);\n", i)

		for _, e := range sortedEdges(dfa.Out(id)) {
			b.WriteString("    ")
			b.WriteString(guard(e.Label))
			fmt.Fprintf(&b, " goto s%d;\n", e.Dst)
		}

		b.WriteString("    goto end;\n\n")
	}

	b.WriteString("end:\n")
	b.WriteString("    return accepting[state];\n")
	b.WriteString("}\n")

	return b.String(), nil
}

func validate(dfa *automaton.Automaton) error {
	for _, st := range dfa.States() {
		for _, e := range st.Out {
			if e.Label.Kind == automaton.Empty {
				return ErrEpsilonReachedEmitter
			}
		}
	}
	return nil
}

// sortedEdges orders a state's outgoing edges deterministically: by target
// state id, then by label lexicographic order (spec §4.6).
func sortedEdges(edges []automaton.Edge) []automaton.Edge {
	out := make([]automaton.Edge, len(edges))
	copy(out, edges)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dst != out[j].Dst {
			return out[i].Dst < out[j].Dst
		}
		return out[i].Label.Key() < out[j].Label.Key()
	})
	return out
}

// guard renders the `if (...)` condition for a label (the always-true
// `if (1)` for the wildcard), per spec §4.6's guard-shape table. A range list
// holding a single range is rendered exactly like that range.
func guard(label automaton.Label) string {
	if label.Kind == automaton.RangeListKind && len(label.Ranges) == 1 {
		return guard(automaton.RangeLabel(label.Ranges[0].Lo, label.Ranges[0].Hi))
	}
	switch label.Kind {
	case automaton.RangeKind:
		r := label.Ranges[0]
		if r.Lo == 0 && r.Hi == 127 {
			return "if (1)"
		}
		if r.Lo == r.Hi {
			return fmt.Sprintf("if (c == %s)", charLit(r.Lo))
		}
		return fmt.Sprintf("if (c >= %s && c <= %s)", charLit(r.Lo), charLit(r.Hi))
	case automaton.RangeListKind:
		parts := make([]string, len(label.Ranges))
		for i, r := range label.Ranges {
			if r.Lo == r.Hi {
				parts[i] = fmt.Sprintf("c == %s", charLit(r.Lo))
			} else {
				parts[i] = fmt.Sprintf("(c >= %s && c <= %s)", charLit(r.Lo), charLit(r.Hi))
			}
		}
		return fmt.Sprintf("if (%s)", strings.Join(parts, " || "))
	default:
		return "if (0)"
	}
}

// charLit renders a byte as a C character literal, escaping the handful of
// characters that need it.
func charLit(c byte) string {
	switch c {
	case '\\':
		return "'\\\\'"
	case '\'':
		return "'\\''"
	case '\n':
		return "'\\n'"
	case '\r':
		return "'\\r'"
	case '\t':
		return "'\\t'"
	case '\v':
		return "'\\v'"
	case '\f':
		return "'\\f'"
	case 0:
		return "'\\0'"
	default:
		if c < 0x20 || c >= 0x7f {
			return fmt.Sprintf("'\\x%02x'", c)
		}
		return fmt.Sprintf("'%c'", c)
	}
}
