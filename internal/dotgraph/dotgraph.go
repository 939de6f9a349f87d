// Package dotgraph renders an automaton.Automaton as Graphviz DOT text for
// the three debug checkpoints spec §6 defines: the raw NFA, the subset-
// constructed DFA, and the minimized DFA. Accepting states render as
// doublecircle nodes; edge labels follow the label-rendering table in spec
// §6 (ε / 'c' / [a-b] / [a-bc-d...] / . for the full-byte wildcard range).
//
// Before emission, the graph's title (an arbitrary caller-supplied string,
// spec §6: one DOT file per pipeline stage) is checked against the DOT
// language's reserved words (graph, digraph, subgraph, node, edge, strict)
// using github.com/coregx/ahocorasick — the same multi-pattern automaton
// the teacher wires in for literal-alternation search — repurposed here as
// a fixed reserved-word scanner so a title can never collide with a keyword
// DOT's own grammar reserves.
package dotgraph

import (
	"fmt"
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/regexc/internal/automaton"
)

var reservedWords = []string{"graph", "digraph", "subgraph", "node", "edge", "strict"}

var reservedScanner *ahocorasick.Automaton

func init() {
	builder := ahocorasick.NewBuilder()
	for _, w := range reservedWords {
		builder.AddPattern([]byte(w))
	}
	auto, err := builder.Build()
	if err != nil {
		panic(fmt.Sprintf("dotgraph: building reserved-word automaton: %v", err))
	}
	reservedScanner = auto
}

// nodeName returns the DOT node identifier for state id. State identifiers
// are always "s" followed by digits, which can never collide with a DOT
// keyword, so no escaping is needed here (see safeTitle for the identifier
// that actually needs it: the caller-supplied graph title).
func nodeName(id automaton.StateID) string {
	return fmt.Sprintf("s%d", id)
}

// safeTitle returns title, escaped with a leading underscore if it
// contains a DOT keyword (a real risk since, unlike node names, callers
// may pass an arbitrary string as the graph title). The substring check is
// conservative by construction — it is Aho-Corasick's native multi-pattern
// substring search, not an exact-match lookup.
func safeTitle(title string) string {
	if reservedScanner.IsMatch([]byte(title)) {
		return "_" + title
	}
	return title
}

// Render produces the DOT source for a, with title used as the graph's
// comparison-friendly name (spec §6: one DOT file per pipeline stage).
func Render(a *automaton.Automaton, title string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "digraph %s {\n", safeTitle(title))
	b.WriteString("    rankdir=LR;\n")
	b.WriteString("    __start__ [shape=point];\n")

	for i := 0; i < a.NumStates(); i++ {
		id := automaton.StateID(i)
		shape := "circle"
		if a.IsAccepting(id) {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "    %s [shape=%s, label=%q];\n", nodeName(id), shape, fmt.Sprintf("%d", i))
	}

	fmt.Fprintf(&b, "    __start__ -> %s;\n", nodeName(a.Start()))

	for i := 0; i < a.NumStates(); i++ {
		id := automaton.StateID(i)
		for _, e := range a.Out(id) {
			fmt.Fprintf(&b, "    %s -> %s [label=%q];\n", nodeName(id), nodeName(e.Dst), e.Label.String())
		}
	}

	b.WriteString("}\n")
	return b.String()
}
