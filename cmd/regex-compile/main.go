// Command regex-compile runs the regexc pipeline over a single pattern
// argument and writes the generated C source to stdout (spec §5's CLI
// contract). With -d/--debug it additionally renders the NFA, DFA, and
// minimal-DFA stages as DOT and PNG files alongside the requested output.
//
// CLI flag parsing and diagnostic logging are grounded on
// projectdiscovery-alterx/internal/runner/runner.go's goflags.FlagSet usage
// and projectdiscovery-alterx/cmd/alterx/main.go's gologger.Fatal() error
// reporting convention.
package main

import (
	"fmt"
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	regexc "github.com/coregx/regexc"
)

type options struct {
	Pattern  string
	Debug    bool
	DebugDir string
	DotPath  string
	Verbose  bool
}

func parseFlags() *options {
	opts := &options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Compiles a regular expression into standalone C source.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Pattern, "pattern", "p", "", "regular expression to compile"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVarP(&opts.Debug, "debug", "d", false, "render NFA/DFA/minimal-DFA DOT and PNG artifacts"),
		flagSet.StringVar(&opts.DebugDir, "debug-dir", ".", "directory debug artifacts are written to"),
		flagSet.StringVar(&opts.DotPath, "dot-path", "dot", "path to the Graphviz dot binary"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not parse flags: %v", err)
	}

	if opts.Pattern == "" {
		for _, arg := range os.Args[1:] {
			if len(arg) > 0 && arg[0] != '-' {
				opts.Pattern = arg
				break
			}
		}
	}

	return opts
}

func main() {
	opts := parseFlags()

	if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	if opts.Pattern == "" {
		gologger.Fatal().Msgf("no pattern given: pass it positionally or with -p/--pattern")
	}

	compileOpts := []regexc.CompileOption{
		regexc.WithDebug(opts.Debug),
		regexc.WithDebugDir(opts.DebugDir),
		regexc.WithDotPath(opts.DotPath),
	}

	src, err := regexc.Compile(opts.Pattern, compileOpts...)
	if err != nil {
		gologger.Fatal().Msgf("compilation failed: %v", err)
	}

	fmt.Fprint(os.Stdout, src)
}
