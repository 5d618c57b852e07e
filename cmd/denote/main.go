package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fuale/meaning/internal"
	"github.com/fuale/meaning/internal/config"
	"github.com/fuale/meaning/internal/lexer"
	"github.com/fuale/meaning/internal/parser"
	"github.com/fuale/meaning/internal/printer"
	"github.com/fuale/meaning/internal/repl"
	"github.com/fuale/meaning/internal/runner"
)

func main() {
	setupLogger()
	flags := setupFlags()

	cfg, err := config.Load(flags.Config)
	if err != nil {
		log.Fatalf("fail loading config: %s", err)
	}
	applyFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if cfg.Debug {
		internal.EnableDebug()
	}

	targets, err := cfg.ParsedTargets()
	if err != nil {
		log.Fatal(err)
	}

	if flags.Interactive {
		repl.Start(os.Stdout, repl.NewSession(targets, cfg.InitialEnv(), cfg.Run.MaxRounds))
		return
	}

	root, err := cfg.ParsedRoot()
	if err != nil {
		log.Fatal(err)
	}

	// Open file for reading, but not read entire file.
	src, err := os.Open(flags.Source)
	if err != nil {
		log.Fatalf("fail obtaining resource: %s", err)
	}

	// Don't forget to close the file.
	defer src.Close()

	// Main pipeline.

	// 1. Lexer. Splits the file into tokens, lazily:
	//    the parser pulls tokens as it needs them.
	lex := lexer.New(src, flags.Source)
	if cfg.Debug {
		lex.Trace(os.Stdout)
	}

	// 2. Parser. Parses the tokens into an AST.
	ast, err := parser.New(lex).Parse(root)
	if err != nil {
		log.Fatalf("fail parsing %s: %s", flags.Source, err)
	}
	internal.DebugBlock("AST", internal.Dump(ast))

	// 3. Printer. Renders the denotation of the AST once per target.
	out, err := printer.New(ast).PrintAll(targets)
	if err != nil {
		log.Fatal(err)
	}

	// 4. Write output.
	for _, t := range targets {
		ext, _ := printer.Extension(t)
		path, err := writeOutput(out[t], flags.Source, cfg.OutDir, ext)
		if err != nil {
			log.Fatalf("fail writing %s output: %s", t, err)
		}
		log.Printf("wrote %s", path)
		internal.DebugBlock("compiled to "+string(t), out[t])
	}

	// 5. Optionally run what was emitted.
	if flags.Run {
		for _, t := range targets {
			run(cfg, t, out[t])
		}
	}
}

func run(cfg *config.Config, t printer.Target, program string) {
	ex, err := runner.For(t)
	if err != nil {
		log.Fatal(err)
	}

	switch ex := ex.(type) {
	case *runner.Evaluator:
		ex.MaxRounds = cfg.Run.MaxRounds
	case *runner.Subprocess:
		for name, command := range cfg.Run.Interpreters {
			if target, _ := printer.ParseTarget(name); target == t {
				ex.Command = command
			}
		}
	}

	v, err := ex.Run(context.Background(), program, cfg.InitialEnv())
	if err != nil {
		log.Printf("%s: %s", t, err)
		return
	}
	fmt.Printf("%s => %s\n", t, runner.Format(v))
}

// Helper function to write output to file. The output is named after
// the source with its extension swapped, in outDir if one is set.
func writeOutput(value, source, outDir, extension string) (string, error) {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return "", err
		}
		base = filepath.Join(outDir, filepath.Base(base))
	}
	path := base + extension
	return path, os.WriteFile(path, []byte(value+"\n"), 0644)
}

// Helper function to setup logger, which makes it logs the filename and location.
func setupLogger() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}

type Flags struct {
	Source      string
	Config      string
	Targets     string
	OutDir      string
	Expression  bool
	Debug       bool
	Run         bool
	Interactive bool
}

// Helper function to get arguments and flags.
func setupFlags() Flags {
	var f Flags
	flag.StringVar(&f.Config, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	flag.StringVar(&f.Targets, "targets", "", "comma separated targets: "+targetList())
	flag.StringVar(&f.OutDir, "out", "", "directory for emitted files")
	flag.BoolVar(&f.Expression, "expr", false, "parse the source as an expression instead of a statement")
	flag.BoolVar(&f.Debug, "debug", false, "dump tokens, AST and output")
	flag.BoolVar(&f.Run, "run", false, "run each emitted program against run.env")
	flag.BoolVar(&f.Interactive, "i", false, "start the interactive prompt")
	flag.Parse()
	f.Source = flag.Arg(0)

	if f.Source == "" && !f.Interactive {
		fmt.Printf("Usage: %s [flags] <file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(22)
	}

	return f
}

// Flags win over the config file.
func applyFlags(cfg *config.Config, f Flags) {
	if f.Targets != "" {
		cfg.Targets = strings.Split(f.Targets, ",")
	}
	if f.OutDir != "" {
		cfg.OutDir = f.OutDir
	}
	if f.Expression {
		cfg.Root = parser.RootExpression.String()
	}
	if f.Debug {
		cfg.Debug = true
	}
}

func targetList() string {
	names := make([]string, 0)
	for _, t := range printer.Targets() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
