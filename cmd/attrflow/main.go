/*
Attrflow computes a compatible local attribute-evaluation order for an
attribute grammar.

It reads a grammar's productions and semantic equations, computes the
transitive closure of inter-attribute dependencies, groups each
nonterminal's attributes into alternating inherited/synthesized runs, and
merges each production's per-occurrence group sequences into one
synchronized execution schedule, breaking residual deadlocks by splitting
groups where necessary.

Usage:

	attrflow [flags] [demo-name]

The flags are:

	-f, --file FILE
		Read the grammar from FILE instead of a built-in demo or stdin.

	-k, --dump KIND
		Which rendering to print: "dependencies", "order", or "groups".
		Defaults to the config file's dump_kind, or, if that is also
		unset, both the dependency and execution-order dumps.

	-g, --groups
		When dumping "groups", wrap the output to the configured width
		instead of printing one unbroken line per nonterminal.

	-c, --config FILE
		Use FILE instead of ~/.attrflow.toml for configuration.

	--cache FILE
		Reuse a prior analysis of this exact grammar text from FILE if
		present, and write this run's result there if not.

	-l, --list-demos
		List the names of the built-in demo grammars and exit.

A demo name that matches no built-in demo is ignored, as if none were given.
If no demo name or --file is given, the grammar is read from stdin: as an
interactive readline session if stdin is a terminal, or directly otherwise.
A blank line ends the grammar text.
*/
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/dekarrin/attrflow/internal/agcache"
	"github.com/dekarrin/attrflow/internal/agconfig"
	"github.com/dekarrin/attrflow/internal/agdemo"
	"github.com/dekarrin/attrflow/internal/agerrors"
	"github.com/dekarrin/attrflow/internal/agfmt"
	"github.com/dekarrin/attrflow/internal/aginput"
	"github.com/dekarrin/attrflow/internal/aglint"
	"github.com/dekarrin/attrflow/internal/agparse"
	"github.com/dekarrin/attrflow/internal/agrammar"
	"github.com/dekarrin/attrflow/internal/util"
	"github.com/dekarrin/attrflow/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitParseError indicates the grammar text could not be parsed.
	ExitParseError

	// ExitIOError indicates a problem reading input or the config/cache files.
	ExitIOError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	flagFile    = pflag.StringP("file", "f", "", "Read the grammar from this file")
	flagDump    = pflag.StringP("dump", "k", "", "Which rendering to print: dependencies, order, or groups")
	flagGroups  = pflag.BoolP("groups", "g", false, "Wrap the groups dump to the configured width")
	flagConfig  = pflag.StringP("config", "c", "", "Path to a TOML config file")
	flagCache   = pflag.String("cache", "", "Path to an analysis cache file")
	flagList    = pflag.BoolP("list-demos", "l", false, "List the built-in demo grammars and exit")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if *flagList {
		fmt.Println(util.MakeTextList(agdemo.Names()))
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		reportError(err)
		return
	}

	src, err := readGrammarSource(pflag.Arg(0))
	if err != nil {
		reportError(err)
		return
	}

	dumpKind := *flagDump
	if dumpKind == "" {
		dumpKind = cfg.DumpKind
	}

	if err := run(src, dumpKind, cfg); err != nil {
		reportError(err)
	}
}

func loadConfig() (agconfig.Config, error) {
	path := *flagConfig
	if path == "" {
		p, err := agconfig.DefaultPath()
		if err != nil {
			return agconfig.Default(), nil
		}
		path = p
	}
	return agconfig.Load(path)
}

// readGrammarSource resolves the grammar text to analyze: a named demo, an
// explicit file, or stdin (interactively or directly).
func readGrammarSource(demoArg string) (string, error) {
	if demoArg != "" {
		if d, ok := agdemo.Get(demoArg); ok {
			return d.Grammar, nil
		}
	}

	if *flagFile != "" {
		data, err := os.ReadFile(*flagFile)
		if err != nil {
			return "", agerrors.Wrap(err, "reading grammar file "+*flagFile)
		}
		return string(data), nil
	}

	return readStdinGrammar()
}

func readStdinGrammar() (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		reader := aginput.NewDirectReader(os.Stdin)
		defer reader.Close()
		return readGrammarLines(reader)
	}

	reader, err := aginput.NewInteractiveReader("grammar> ")
	if err != nil {
		return "", agerrors.Wrap(err, "starting interactive grammar input")
	}
	defer reader.Close()

	return readGrammarLines(reader)
}

// readGrammarLines drains reader one production line at a time until a
// blank line or an error (including io.EOF) ends it, matching agparse's own
// blank-line-terminates contract regardless of which LineReader is in use.
func readGrammarLines(reader aginput.LineReader) (string, error) {
	var src string
	for {
		line, err := reader.ReadLine()
		if err != nil {
			break
		}
		if line == "" {
			break
		}
		src += line + "\n"
	}
	return src, nil
}

func run(src, dumpKind string, cfg agconfig.Config) error {
	cachePath := *flagCache
	if cachePath == "" {
		cachePath = cfg.CacheFile
	}

	hash := agcache.HashSource(src)
	if cachePath != "" {
		if entry, err := agcache.Load(cachePath); err == nil && entry.SourceHash == hash {
			printDump(entry, dumpKind)
			return nil
		}
	}

	gr, err := agparse.ParseGrammarString(src)
	if err != nil {
		return err
	}

	if warning := aglint.DescribeUnreachable(gr); warning != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	deps, groups := analyze(gr, cfg)

	entry := agcache.Entry{
		SourceHash:      hash,
		Dependencies:    deps,
		ExecutionOrders: agfmt.DumpExecutionOrders(gr),
		Groups:          groups,
	}

	if cachePath != "" {
		if err := agcache.Save(cachePath, entry); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s\n", err)
		}
	}

	printDump(entry, dumpKind)
	return nil
}

// analyze runs the three passes and returns the dependency dump, taken right
// after transitive closure, and the groups dump, taken right after grouping:
// the later passes consume the edges and queued groups those dumps render.
func analyze(gr *agrammar.Grammar, cfg agconfig.Config) (deps, groups string) {
	gr.ComputeTransitiveClosure()
	deps = agfmt.DumpDependencies(gr)
	gr.ComputeAttributeGroups()
	groups = dumpGroups(gr, cfg)
	gr.DetermineCompatibleLocalExecutionOrders()
	return deps, groups
}

func dumpGroups(gr *agrammar.Grammar, cfg agconfig.Config) string {
	if *flagGroups {
		return agfmt.PrettyGroups(gr, cfg.WrapWidth)
	}
	return agfmt.DumpGroups(gr)
}

// printDump prints the selected rendering. An empty kind (no --dump flag
// and no dump_kind in the config file) prints both the dependency and
// execution-order dumps, not just one of them.
func printDump(entry agcache.Entry, kind string) {
	switch kind {
	case "dependencies":
		fmt.Print(entry.Dependencies)
	case "order":
		fmt.Print(entry.ExecutionOrders)
	case "groups":
		fmt.Print(entry.Groups)
	default:
		fmt.Print(entry.Dependencies)
		fmt.Print(entry.ExecutionOrders)
	}
}

func reportError(err error) {
	switch err.(type) {
	case *agerrors.ParseError:
		returnCode = ExitParseError
	default:
		returnCode = ExitIOError
	}
	if h, ok := err.(interface{ HumanMessage() string }); ok {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", h.HumanMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
}
