package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/menugen/gen"
	"github.com/ardnew/menugen/log"
)

// Gen compiles a menu description into C initializer source.
type Gen struct {
	Output   string `default:"-" help:"Output file or '-' for stdout."                       placeholder:"FILE" short:"o" type:"path"`
	Template string `            help:"Record template replacing the built-in C template." placeholder:"FILE" short:"t" type:"existingfile"`
	NoHeader bool   `            help:"Omit the include header."`
	NoFooter bool   `            help:"Omit the menu_root binding."`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, err := readMenu(ctx, g.Source)
	if err != nil {
		return err
	}

	opts := []gen.Option{gen.WithLogger(log.Default())}

	if g.Template != "" {
		text, err := os.ReadFile(g.Template)
		if err != nil {
			return ErrReadTemplate.Wrap(err).With(slog.String("file", g.Template))
		}

		r, err := gen.ParseTemplate(string(text))
		if err != nil {
			return ErrReadTemplate.Wrap(err).With(slog.String("file", g.Template))
		}

		opts = append(opts, gen.WithRenderer(r))
	}

	if g.NoHeader {
		opts = append(opts, gen.WithHeader(""))
	}

	if g.NoFooter {
		opts = append(opts, gen.WithFooter(""))
	}

	var buf bytes.Buffer

	if err := gen.New(opts...).Generate(ctx, &buf, root); err != nil {
		return err
	}

	if err := writeOutput(ctx, g.Output, buf.Bytes()); err != nil {
		return err
	}

	log.DebugContext(ctx, "wrote menu source",
		slog.String("output", g.Output),
		slog.Int("items", root.Count()),
	)

	return nil
}
