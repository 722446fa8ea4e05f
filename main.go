package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"gopkg.llgram.org/llpc/internal/exc"
	"gopkg.llgram.org/llpc/internal/grammar"
	"gopkg.llgram.org/llpc/internal/lexer"
	"gopkg.llgram.org/llpc/internal/ll"
	"gopkg.llgram.org/llpc/internal/parser"
)

type opts struct {
	Grammar     string
	GrammarText string
	Start       string
	DumpRules   bool
	Verbose     bool
	Prefix      bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &opts{}
	flags := pflag.NewFlagSet("llpc", pflag.PanicOnError)
	flags.StringVar(&op.Grammar, "grammar", "", "Grammar file: arrow notation, or YAML with a .yaml/.yml extension.")
	flags.StringVar(&op.GrammarText, "grammar-text", "", "Inline arrow-notation grammar, e.g. 'S → T | (S+T); T → a'.")
	flags.StringVar(&op.Start, "start", "", "Start symbol. Defaults to the head of the first rule.")
	flags.BoolVar(&op.DumpRules, "dump-rules", false, "Print the numbered rules and exit.")
	flags.BoolVar(&op.Verbose, "verbose", false, "Log enter/exit events for every dispatch and match.")
	flags.BoolVar(&op.Prefix, "prefix", false, "Accept any derivable prefix instead of requiring full consumption.")
	_ = flags.Parse(os.Args[1:])
	inputs := flags.Args()

	g, err := loadGrammar(op)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if op.Start != "" {
		g, err = grammar.WithStart(g, op.Start)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	if op.DumpRules {
		grammar.WriteRuleTable(os.Stdout, g)
		return
	}

	popts := []parser.Option{
		parser.OptionWithRequireEOF(!op.Prefix),
	}
	if op.Verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		popts = append(popts, parser.OptionWithVerbose(logger))
	}
	p, err := parser.New(g, popts...)
	if err != nil {
		panic(err)
	}

	code := 0
	for _, input := range inputs {
		if !parseOne(ctx, p, input) {
			code = 1
		}
	}
	os.Exit(code)
}

func parseOne(ctx context.Context, p *parser.Parser, input string) bool {
	reporter := exc.NewReporter(nil)
	tokens := lexer.New(reporter).Lex(ctx, "<arg>", input)
	res, err := p.Parse(ctx, "<arg>", tokens)
	if err != nil {
		for _, e := range reporter.Reported() {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		fmt.Fprintln(os.Stderr, err.Error())
		return false
	}
	fmt.Println(formatTrace(res.Trace))
	return true
}

func formatTrace(trace []int) string {
	parts := make([]string, 0, len(trace))
	for _, n := range trace {
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	return strings.Join(parts, " ")
}

func loadGrammar(op *opts) (*ll.Grammar, error) {
	if op.GrammarText != "" {
		return grammar.Parse("<inline>", op.GrammarText)
	}
	if op.Grammar == "" {
		return nil, fmt.Errorf("no grammar: use --grammar or --grammar-text")
	}
	body, err := os.ReadFile(op.Grammar)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(op.Grammar, ".yaml") || strings.HasSuffix(op.Grammar, ".yml") {
		return grammar.ParseYAML(op.Grammar, body)
	}
	return grammar.Parse(op.Grammar, string(body))
}
