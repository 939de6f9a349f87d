// Package regexc compiles a regular expression into standalone C source
// implementing `int matches(char *input)`, by running the full scanner →
// parser → subset construction → minimization → emit pipeline (spec §3).
//
// Example:
//
//	src, err := regexc.Compile("a(b|c)*")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(src)
package regexc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/coregx/regexc/emit"
	"github.com/coregx/regexc/internal/automaton"
	"github.com/coregx/regexc/internal/dotgraph"
	"github.com/coregx/regexc/internal/dotproc"
	"github.com/coregx/regexc/minimize"
	"github.com/coregx/regexc/parser"
	"github.com/coregx/regexc/subset"
)

// Config controls pipeline debug behavior. The zero value runs the pipeline
// with no debug artifacts, matching spec §5's default CLI behavior.
type Config struct {
	debug    bool
	debugDir string
	dotPath  string
}

// CompileOption configures a Config (grounded on nfa/builder.go's
// BuildOption functional-option shape).
type CompileOption func(*Config)

// WithDebug enables emission of the three pipeline-stage DOT/PNG artifacts
// (spec §6).
func WithDebug(debug bool) CompileOption {
	return func(c *Config) { c.debug = debug }
}

// WithDebugDir sets the directory debug artifacts are written to. Defaults
// to the current working directory.
func WithDebugDir(dir string) CompileOption {
	return func(c *Config) { c.debugDir = dir }
}

// WithDotPath overrides the `dot` binary used to rasterize DOT text to PNG.
// Defaults to "dot" resolved via PATH.
func WithDotPath(path string) CompileOption {
	return func(c *Config) { c.dotPath = path }
}

func defaultConfig() Config {
	return Config{debugDir: ".", dotPath: "dot"}
}

// Stages exposes the intermediate automata of a single Compile call, for
// callers (chiefly the CLI) that need them to render debug output.
type Stages struct {
	NFA     *automaton.Automaton
	DFA     *automaton.Automaton
	MinDFA  *automaton.Automaton
	CSource string
}

// Compile runs the full pipeline over pattern and returns the generated C
// source.
func Compile(pattern string, opts ...CompileOption) (string, error) {
	stages, err := CompileStages(pattern, opts...)
	if err != nil {
		return "", err
	}
	return stages.CSource, nil
}

// CompileStages runs the full pipeline over pattern, returning every
// intermediate automaton alongside the final C source. When debug is
// enabled via WithDebug, it also renders the three checkpoint DOT/PNG
// artifacts into the configured debug directory (spec §6).
func CompileStages(pattern string, opts ...CompileOption) (*Stages, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	nfa, err := parser.Parse(pattern)
	if err != nil {
		return nil, fmt.Errorf("regexc: parsing pattern %q: %w", pattern, err)
	}

	dfa := subset.Build(nfa)
	minDFA := minimize.Minimize(dfa)

	src, err := emit.Source(minDFA)
	if err != nil {
		return nil, fmt.Errorf("regexc: emitting C source: %w", err)
	}

	stages := &Stages{NFA: nfa, DFA: dfa, MinDFA: minDFA, CSource: src}

	if cfg.debug {
		if err := renderDebugArtifacts(cfg, stages); err != nil {
			return nil, err
		}
	}

	return stages, nil
}

// renderDebugArtifacts writes stage1.dot/.png, stage2.dot/.png, and
// stage3.dot/.png for the NFA, DFA, and minimal DFA respectively.
func renderDebugArtifacts(cfg Config, stages *Stages) error {
	checkpoints := []struct {
		name string
		a    *automaton.Automaton
	}{
		{"stage1", stages.NFA},
		{"stage2", stages.DFA},
		{"stage3", stages.MinDFA},
	}

	for _, cp := range checkpoints {
		dot := dotgraph.Render(cp.a, cp.name)

		dotPath := filepath.Join(cfg.debugDir, cp.name+".dot")
		if err := os.WriteFile(dotPath, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("regexc: writing %s: %w", dotPath, err)
		}

		png, err := dotproc.RenderPNG(cfg.dotPath, dot)
		if err != nil {
			return fmt.Errorf("regexc: rendering %s: %w", cp.name, err)
		}

		pngPath := filepath.Join(cfg.debugDir, cp.name+".png")
		if err := os.WriteFile(pngPath, png, 0o644); err != nil {
			return fmt.Errorf("regexc: writing %s: %w", pngPath, err)
		}
	}

	return nil
}
