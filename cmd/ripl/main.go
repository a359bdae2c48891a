package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/darilrt/ripl/internal/config"
	"github.com/darilrt/ripl/internal/frontend"
	"github.com/darilrt/ripl/internal/parser"
	"github.com/darilrt/ripl/internal/server"
	"github.com/darilrt/ripl/internal/types"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
)

type Option struct {
	Config string `short:"c" long:"config" description:"[OPTIONAL] Config file (YAML or JSON)" required:"false"`
	Format string `short:"f" long:"format" description:"[OPTIONAL] Output format: sexpr, json, yaml or pp" required:"false"`
	Tokens bool   `short:"t" long:"tokens" description:"[OPTIONAL] Print the token stream instead of the AST"`
	Strict bool   `long:"strict" description:"[OPTIONAL] Reject tokens left over after the expression"`
	Debug  bool   `long:"debug" description:"[OPTIONAL] Log every parser production"`
	Listen string `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port to serve the parse API" required:"false"`
	Args   struct {
		Files []string `positional-arg-name:"FILE" description:"Source files (stdin when omitted)"`
	} `positional-args:"yes"`
}

type input struct {
	name   string
	source string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opt Option
	flagParser := flags.NewParser(&opt, flags.Default)
	_, err := flagParser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		} else {
			flagParser.WriteHelp(stdout)
			return 1
		}
	}

	cfg, err := loadConfig(&opt)
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}
	if cfg.Listen != "" && len(opt.Args.Files) != 0 {
		flagParser.WriteHelp(stdout)
		return 1
	}

	var opts []parser.Option
	if cfg.Strict {
		opts = append(opts, parser.WithStrictEnd())
	}

	// server mode
	if cfg.Listen != "" {
		if cfg.Debug {
			opts = append(opts, parser.WithDebugOutput())
		}
		if err := serveParses(cfg.Listen, opts); err != nil {
			log.Printf("failed to serve: %v", err)
			return 1
		}
		return 0
	}

	inputs, err := readInputs(opt.Args.Files, stdin)
	if err != nil {
		log.Printf("failed to read source: %v", err)
		return 1
	}

	outputs := make([][]byte, len(inputs))
	debugLogs := make([]bytes.Buffer, len(inputs))
	eg := errgroup.Group{}
	for i, in := range inputs {
		i := i
		in := in
		eg.Go(func() error {
			inOpts := opts
			if cfg.Debug {
				inOpts = append(opts[:len(opts):len(opts)], parser.WithDebugWriter(&debugLogs[i]))
			}
			out, err := process(in, cfg, opt.Tokens, inOpts, stdout)
			if err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}
			outputs[i] = out
			return nil
		})
	}
	err = eg.Wait()
	for i := range debugLogs {
		if _, werr := stderr.Write(debugLogs[i].Bytes()); werr != nil {
			log.Printf("failed to write debug log: %v", werr)
		}
	}
	if err != nil {
		var exception types.Exception
		if errors.As(err, &exception) {
			if _, err = fmt.Fprintln(stderr, err.Error()); err != nil {
				log.Printf("failed to dump parse error: %v", err)
			}
			if err = dumpJSON(stderr, exception.Exception()); err != nil {
				log.Printf("failed to dump parse error as JSON: %v", err)
			}
		} else {
			log.Printf("failed to parse: %v", err)
		}
		return 1
	}

	for _, out := range outputs {
		if _, err := stdout.Write(out); err != nil {
			log.Printf("failed to write output: %v", err)
			return 1
		}
	}
	return 0
}

func loadConfig(opt *Option) (config.Config, error) {
	cfg := config.Default()
	if opt.Config != "" {
		var err error
		cfg, err = config.LoadFile(opt.Config)
		if err != nil {
			return config.Config{}, err
		}
	}

	if opt.Format != "" {
		cfg.Format = opt.Format
	}
	if opt.Strict {
		cfg.Strict = true
	}
	if opt.Debug {
		cfg.Debug = true
	}
	if opt.Listen != "" {
		cfg.Listen = opt.Listen
	}
	return cfg, cfg.Validate()
}

func readInputs(files []string, stdin io.Reader) ([]input, error) {
	if len(files) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("io.ReadAll: %w", err)
		}
		return []input{{name: "<stdin>", source: string(b)}}, nil
	}

	inputs := make([]input, len(files))
	for i, filePath := range files {
		b, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("os.ReadFile(%q): %w", filePath, err)
		}
		inputs[i] = input{name: filePath, source: string(b)}
	}
	return inputs, nil
}

// process renders one input. w is only inspected to decide on colors.
func process(in input, cfg config.Config, dumpTokens bool, opts []parser.Option, w io.Writer) ([]byte, error) {
	var b strings.Builder
	if dumpTokens {
		tokens := frontend.Tokenize(in.source)
		if cfg.Format == config.FormatSExpr {
			for _, tok := range tokens {
				fmt.Fprintf(&b, "%s %s\n", tok, tok.Location)
			}
			return []byte(b.String()), nil
		}
		return render(tokens, cfg.Format, w)
	}

	tree, err := frontend.Parse(in.source, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Format == config.FormatSExpr {
		return []byte(tree.String() + "\n"), nil
	}
	return render(tree, cfg.Format, w)
}

func render(v any, format string, w io.Writer) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		return encodeJSON(v, isTerminal(w))
	case config.FormatYAML:
		return encodeYAML(v)
	case config.FormatPP:
		var b strings.Builder
		printer := pp.New()
		printer.SetColoringEnabled(isTerminal(w))
		if _, err := printer.Fprintln(&b, v); err != nil {
			return nil, fmt.Errorf("pp.Fprintln: %w", err)
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

func serveParses(listen string, opts []parser.Option) error {
	srv := http.Server{
		Handler: server.NewHTTPHandler(opts...),
		Addr:    listen,
	}

	log.Printf("Listen HTTP on %s", listen)
	if err := srv.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

func dumpJSON(w io.Writer, v any) error {
	b, err := encodeJSON(v, isTerminal(w))
	if err != nil {
		return err
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	return nil
}

func encodeJSON(v any, colorize bool) ([]byte, error) {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if colorize {
		opts = append(opts, json.Colorize(json.DefaultColorScheme))
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}
	return append(b, '\n'), nil
}

// encodeYAML goes through JSON so nodes keep their tagged JSON shape.
func encodeYAML(v any) ([]byte, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	var generic any
	if err = json.Unmarshal(jsonBytes, &generic); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	yamlBytes, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("yaml.Marshal: %w", err)
	}
	return yamlBytes, nil
}
