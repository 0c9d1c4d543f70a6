// Command inkwell converts Markdown to HTML, AST, or Markdown using the
// github.com/inkwell-md/inkwell/md package.
//
// For general information about the Markdown implementation used by this
// command, see github.com/inkwell-md/inkwell/md.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-md/inkwell/extension"
	_ "github.com/inkwell-md/inkwell/extension/frontmatter"
	"github.com/inkwell-md/inkwell/internal/cache"
	"github.com/inkwell-md/inkwell/internal/config"
	"github.com/inkwell-md/inkwell/md"
)

type options struct {
	Verbose    bool     `short:"v" long:"verbose" description:"enable debug logging"`
	Parser     string   `short:"p" long:"parser" description:"logical parser name" default:"default"`
	Renderer   string   `short:"r" long:"renderer" description:"renderer: html, ast, or markdown" default:"html"`
	Extensions []string `short:"e" long:"extension" description:"named extension to apply (repeatable)"`
	Output     string   `short:"o" long:"output" description:"write result to this file instead of stdout"`
	Cache      string   `long:"cache" description:"directory holding a conversion cache"`

	Document string
}

var log = logrus.New()

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opts options
	parser := flags.NewParser(&opts, flags.Default&^flags.PrintErrors)
	parser.Usage = "[-h] [-v] [-p PARSER] [-r RENDERER] [-e EXT]... [-o OUTPUT] [document]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			return 0
		}
		printError(err)
		return 2
	}
	if len(rest) > 1 {
		printError(fmt.Errorf("inkwell: too many positional arguments: %v", rest))
		return 2
	}
	if len(rest) == 1 {
		opts.Document = rest[0]
	}

	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cwd, err := os.Getwd()
	if err != nil {
		printError(err)
		return 1
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		printError(fmt.Errorf("inkwell: load config: %w", err))
		return 1
	}
	applyConfigDefaults(&opts, cfg)

	if opts.Parser != "" && opts.Parser != "default" {
		printError(fmt.Errorf("inkwell: unknown parser %q (this build registers only the default CommonMark parser)", opts.Parser))
		return 2
	}
	kind, err := rendererKind(opts.Renderer)
	if err != nil {
		printError(err)
		return 2
	}

	exts := make([]md.Extension, 0, len(opts.Extensions))
	for _, name := range opts.Extensions {
		ext, err := extension.Resolve(name, cfg.Options[name])
		if err != nil {
			printError(err)
			return 1
		}
		log.WithField("extension", name).Info("resolved extension")
		exts = append(exts, ext)
	}

	text, err := readInput(opts.Document)
	if err != nil {
		printError(err)
		return 1
	}

	var conv *cache.Cache
	if opts.Cache != "" {
		conv, err = cache.Open(cacheFile(opts.Cache))
		if err != nil {
			printError(err)
			return 1
		}
		defer conv.Close()
	}

	out, err := convert(text, kind, exts, opts.Extensions, conv)
	if err != nil {
		printError(err)
		return 1
	}

	if err := writeOutput(opts.Output, out); err != nil {
		printError(err)
		return 1
	}
	return 0
}

func applyConfigDefaults(opts *options, cfg config.File) {
	if !isSet(opts.Parser, "default") && cfg.Parser != "" {
		opts.Parser = cfg.Parser
	}
	if !isSet(opts.Renderer, "html") && cfg.Renderer != "" {
		opts.Renderer = cfg.Renderer
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = cfg.Extensions
	}
}

// isSet reports whether a flag's value differs from its default, i.e.
// looks like it was given on the command line. go-flags has no clean "was this flag passed"
// query on its own when a default is in play, so this CLI treats "still
// equal to its default" as "the config file may override it" — flags that
// are explicitly set to their default value are indistinguishable from
// unset ones, which is an accepted, documented limitation of this CLI.
func isSet(value, defaultValue string) bool {
	return value != defaultValue
}

func rendererKind(name string) (md.RendererKind, error) {
	switch name {
	case "html", "":
		return md.HTML, nil
	case "ast":
		return md.AST, nil
	case "markdown":
		return md.Markdown, nil
	default:
		return "", fmt.Errorf("inkwell: unknown renderer %q", name)
	}
}

func readInput(document string) (string, error) {
	if document == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("inkwell: read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(document)
	if err != nil {
		return "", fmt.Errorf("inkwell: read %s: %w", document, err)
	}
	return string(data), nil
}

func convert(text string, kind md.RendererKind, exts []md.Extension, extNames []string, conv *cache.Cache) (string, error) {
	var key cache.Key
	if conv != nil {
		key = cache.Key{Renderer: string(kind), Extensions: extNames, Input: []byte(text)}
		if result, ok, err := conv.Get(key); err != nil {
			log.WithError(err).Warn("cache lookup failed")
		} else if ok {
			log.Debug("cache hit")
			return result, nil
		} else {
			log.Debug("cache miss")
		}
	}

	p := md.DefaultParser()
	for _, ext := range exts {
		if err := p.Use(ext); err != nil {
			return "", err
		}
	}
	doc, err := p.Parse(text)
	if err != nil {
		return "", err
	}
	rendered, err := p.Render(doc, kind)
	if err != nil {
		return "", err
	}

	result, err := stringify(rendered)
	if err != nil {
		return "", err
	}

	if conv != nil {
		if err := conv.Put(key, result); err != nil {
			log.WithError(err).Warn("cache write failed")
		}
	}
	return result, nil
}

// stringify turns a Render result into text suitable for writeOutput: the
// HTML and Markdown renderers already return a string, but the AST
// renderer returns a generic map/slice tree (per §6's on-AST contract),
// which this CLI surfaces as JSON.
func stringify(rendered any) (string, error) {
	if s, ok := rendered.(string); ok {
		return s, nil
	}
	data, err := json.MarshalIndent(rendered, "", "  ")
	if err != nil {
		return "", fmt.Errorf("inkwell: marshal AST: %w", err)
	}
	return string(data) + "\n", nil
}

func writeOutput(path, result string) error {
	if path == "" {
		_, err := fmt.Print(result)
		return err
	}
	return os.WriteFile(path, []byte(result), 0644)
}

func cacheFile(dir string) string {
	return filepath.Join(dir, "inkwell-cache.db")
}

func printError(err error) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "\x1b[31minkwell: error:\x1b[0m %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "inkwell: error: %v\n", err)
}
