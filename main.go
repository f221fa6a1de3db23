package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/tidwall/pretty"

	"github.com/mcncl/jsonexplorer/internal/config"
	"github.com/mcncl/jsonexplorer/internal/errors"
	"github.com/mcncl/jsonexplorer/internal/explorer"
	"github.com/mcncl/jsonexplorer/internal/formatter"
	"github.com/mcncl/jsonexplorer/internal/models"
	"github.com/mcncl/jsonexplorer/internal/parser"
	"github.com/mcncl/jsonexplorer/internal/renderer"
	"github.com/mcncl/jsonexplorer/internal/resolver"
	"github.com/mcncl/jsonexplorer/internal/toggle"
	"github.com/mcncl/jsonexplorer/internal/tui"
)

// CLI defines the command-line interface
var CLI struct {
	Input   string  `help:"Path to input file. If not specified, reads from stdin or explores a demo document." short:"i" type:"path"`
	Config  string  `help:"Path to config file. Defaults to the nearest .jsonexplorer.yml." short:"c" type:"path"`
	Prefix  *string `help:"Root prefix added to paths chosen from the tree (default res.)."`
	Indent  int     `help:"Spaces per nesting level in the tree (default 4)."`
	Debug   bool    `help:"Enable debug logging." short:"d"`
	Version bool    `help:"Show version information." short:"v"`

	Explore ExploreCmd `cmd:"" default:"withargs" help:"Browse the document interactively."`
	Resolve ResolveCmd `cmd:"" help:"Print the value at a property path."`
	Render  RenderCmd  `cmd:"" help:"Print the document as a tree."`
	Toggle  ToggleCmd  `cmd:"" help:"Operate the custom checkboxes of an HTML document."`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

// stdout is where command output goes
var stdout io.Writer = os.Stdout

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("jsonexplorer"),
		kong.Description("Explore a JSON document and pick property paths from it"),
		kong.UsageOnError(),
	)

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("jsonexplorer version %s\n", Version)
		return
	}

	runCtx, err := newContext()
	if err != nil {
		fail(err)
	}
	debugf(runCtx, "command %q, config prefix %q, indent %d", ctx.Command(), runCtx.Config.PathPrefix, runCtx.Config.Render.IndentWidth)

	if err := ctx.Run(runCtx); err != nil {
		fail(err)
	}
}

func fail(err error) {
	// Use our custom error handling to provide user-friendly error messages
	fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
	fmt.Fprintf(os.Stderr, "\nFor help, run: jsonexplorer --help\n")
	os.Exit(1)
}

// newContext loads the config file and applies command-line overrides
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{
		PathPrefix:  CLI.Prefix,
		IndentWidth: CLI.Indent,
		Format:      CLI.Resolve.Format,
		Color:       CLI.Render.Color,
		Debug:       CLI.Debug,
	})
	if err != nil {
		return nil, err
	}

	ctx := &Context{Debug: cfg.Dev.Debug, Config: cfg}
	if configPath != "" {
		debugf(ctx, "loaded config from %s", configPath)
	}
	return ctx, nil
}

func debugf(ctx *Context, format string, args ...any) {
	if ctx == nil || !ctx.Debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
}

// ExploreCmd runs the interactive explorer
type ExploreCmd struct{}

func (c *ExploreCmd) Run(ctx *Context) error {
	ir, err := parseInput(ctx)
	if err != nil {
		return err
	}

	piped, err := stdinPiped()
	if err != nil {
		return err
	}

	return tui.Run(newExplorer(ctx, ir), tui.Options{
		Styles:     renderer.NewStyles(palette(ctx.Config)),
		IsActivate: ctx.Config.Keys.IsActivate,
		InputTTY:   piped && CLI.Input == "",
	})
}

// ResolveCmd prints the value at a property path
type ResolveCmd struct {
	Path     string `arg:"" optional:"" help:"Property path, e.g. res.fields[0].value. Empty selects the whole document."`
	Format   string `help:"Output format: text, json or yaml." short:"f"`
	JSONPath bool   `help:"Also print the RFC 9535 normalized path of the value." name:"jsonpath"`
	Query    string `help:"Evaluate an RFC 9535 JSONPath expression instead of a property path." short:"q"`
}

func (c *ResolveCmd) Run(ctx *Context) error {
	ir, err := parseInput(ctx)
	if err != nil {
		return err
	}

	if c.Query != "" {
		return c.runQuery(ctx, ir.Root)
	}

	e := newExplorer(ctx, ir)
	e.SetPath(c.Path)
	value, resolveErr := e.Value()
	if resolveErr != nil {
		// A missing value is not a failure; it prints as an empty line
		debugf(ctx, "resolve %q: %v", c.Path, resolveErr)
	}

	out, err := formatter.NewFormatter().Format(value, resolveErr, formatter.Format(ctx.Config.Output.Format))
	if err != nil {
		return errors.NewOutputError("failed to format value", err)
	}

	if c.JSONPath && resolveErr == nil {
		normalized, err := resolver.JSONPath(ir.Root, resolver.StripPrefix(c.Path, e.Prefix()))
		if err != nil {
			return err
		}
		if err := writeOutput(normalized); err != nil {
			return err
		}
	}

	return writeOutput(out)
}

func (c *ResolveCmd) runQuery(ctx *Context, root models.JSONValue) error {
	nodes, err := resolver.Query(root, c.Query)
	if err != nil {
		return err
	}
	debugf(ctx, "query %q selected %d node(s)", c.Query, len(nodes))

	data, err := nodes.MarshalJSON()
	if err != nil {
		return errors.NewOutputError("failed to encode query result", err)
	}
	return writeOutput(strings.TrimSpace(string(pretty.Pretty(data))))
}

// RenderCmd prints the tree
type RenderCmd struct {
	Color   bool `help:"Colour keys and values."`
	Targets bool `help:"List the selectable paths instead of the tree."`
}

func (c *RenderCmd) Run(ctx *Context) error {
	ir, err := parseInput(ctx)
	if err != nil {
		return err
	}

	e := newExplorer(ctx, ir)
	if c.Targets {
		var b strings.Builder
		for _, t := range e.Targets() {
			fmt.Fprintf(&b, "%s%s\t%s\n", e.Prefix(), t.Path, formatter.Literal(t.Value))
		}
		return writeOutput(strings.TrimSuffix(b.String(), "\n"))
	}

	lines := e.Tree()
	debugf(ctx, "rendered %d line(s)", len(lines))
	if ctx.Config.Render.Color {
		return writeOutput(renderer.NewStyles(palette(ctx.Config)).Text(lines, ""))
	}
	return writeOutput(renderer.Text(lines))
}

// ToggleCmd applies user events to the checkbox pairs of an HTML document
type ToggleCmd struct {
	Events []string `help:"Events applied in order: native:click, companion:click, native:key:<key>, companion:key:<key>." short:"e" name:"event"`
	Pair   int      `help:"Index of the pair the events go to; -1 means every pair." default:"-1"`
	State  bool     `help:"Print the state of each pair instead of the document."`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	events := make([]toggle.Event, 0, len(c.Events))
	for _, s := range c.Events {
		ev, err := toggle.ParseEvent(s)
		if err != nil {
			return err
		}
		events = append(events, ev)
	}

	data, err := readHTML()
	if err != nil {
		return err
	}

	doc, err := toggle.Load(bytes.NewReader(data), ctx.Config.Keys.IsToggle)
	if err != nil {
		return err
	}

	pairs := doc.Pairs()
	debugf(ctx, "found %d checkbox pair(s)", len(pairs))
	if c.Pair >= 0 {
		if c.Pair >= len(pairs) {
			return errors.NewToggleError(fmt.Sprintf("pair %d out of range, document has %d", c.Pair, len(pairs)), errors.ErrNoCheckboxPairs)
		}
		pairs = pairs[c.Pair : c.Pair+1]
	}

	for _, ev := range events {
		for i, p := range pairs {
			handled := p.Dispatch(ev)
			debugf(ctx, "pair %d: %s handled=%t", i, ev, handled)
		}
	}

	if c.State {
		var b strings.Builder
		for i, p := range doc.Pairs() {
			native, companion := p.State()
			fmt.Fprintf(&b, "%d\tchecked=%t\t%s=%q\n", i, native, toggle.AriaChecked, companion)
		}
		return writeOutput(strings.TrimSuffix(b.String(), "\n"))
	}

	html, err := doc.HTML()
	if err != nil {
		return err
	}
	return writeOutput(html)
}

func newExplorer(ctx *Context, ir models.IntermediateRepresentation) *explorer.Explorer {
	return explorer.New(ir.Root, explorer.Options{
		Prefix:      ctx.Config.PathPrefix,
		IndentWidth: ctx.Config.Render.IndentWidth,
		IsActivate:  ctx.Config.Keys.IsActivate,
	})
}

func palette(cfg *config.Config) renderer.Palette {
	return renderer.Palette{
		Key:      cfg.Theme.Key,
		Target:   cfg.Theme.Target,
		Selected: cfg.Theme.Selected,
		String:   cfg.Theme.String,
		Number:   cfg.Theme.Number,
		Literal:  cfg.Theme.Literal,
		Muted:    cfg.Theme.Muted,
	}
}

// parseInput reads JSON from file or stdin, falling back to the demo document
func parseInput(ctx *Context) (models.IntermediateRepresentation, error) {
	if CLI.Input != "" {
		debugf(ctx, "reading %s", CLI.Input)
		return parser.ParseFile(CLI.Input)
	}

	data, piped, err := readStdin()
	if err != nil {
		return models.IntermediateRepresentation{}, err
	}
	if !piped {
		debugf(ctx, "no input given, using the demo document")
		return parser.ParseBytes(explorer.DemoDocument)
	}

	if len(data) == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return parser.ParseBytes(data)
}

// readHTML reads the document for the toggle command. There is no demo page.
func readHTML() ([]byte, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NewInputError(fmt.Sprintf("file not found: %s", CLI.Input), errors.ErrFileNotFound)
			}
			return nil, errors.NewInputError(fmt.Sprintf("failed to read file '%s'", CLI.Input), err)
		}
		return data, nil
	}

	data, piped, err := readStdin()
	if err != nil {
		return nil, err
	}
	if !piped || len(data) == 0 {
		return nil, errors.NewInputError("no HTML input provided, use --input or pipe a document", errors.ErrEmptyInput)
	}
	return data, nil
}

func stdinPiped() (bool, error) {
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return false, errors.NewInputError("failed to access stdin", err)
	}
	return stdinInfo.Mode()&os.ModeCharDevice == 0, nil
}

// readStdin returns piped stdin. An interactive terminal is reported as not piped.
func readStdin() ([]byte, bool, error) {
	piped, err := stdinPiped()
	if err != nil || !piped {
		return nil, false, err
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, true, errors.NewInputError("failed to read from stdin", err)
	}
	return data, true, nil
}

// writeOutput writes text to stdout
func writeOutput(text string) error {
	if _, err := fmt.Fprintln(stdout, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
