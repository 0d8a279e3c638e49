package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/menugen/log"
	"github.com/ardnew/menugen/menu"
)

// stdioSource is the special source or output indicating stdin or stdout.
const stdioSource = "-"

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Input controls how every command reads a menu description.
type Input struct {
	// Root is the top-level key holding the root menu item.
	Root string

	// YAML forces YAML decoding. Sources named *.yaml or *.yml are always
	// decoded as YAML.
	YAML bool
}

type (
	inputKey  struct{}
	stdioKey  struct{}
	stdioPair struct {
		in  io.Reader
		out io.Writer
	}
)

// WithInput returns a new context.Context carrying the input settings.
func WithInput(ctx context.Context, in Input) context.Context {
	return context.WithValue(ctx, inputKey{}, in)
}

func inputFrom(ctx context.Context) Input {
	in, _ := ctx.Value(inputKey{}).(Input)

	return in
}

// WithStdio returns a new context.Context in which the source "-" reads
// from in and the output "-" writes to out.
func WithStdio(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, stdioKey{}, stdioPair{in: in, out: out})
}

func stdioFrom(ctx context.Context) stdioPair {
	p, _ := ctx.Value(stdioKey{}).(stdioPair)

	if p.in == nil {
		p.in = os.Stdin
	}

	if p.out == nil {
		p.out = os.Stdout
	}

	return p
}

// stdout returns the writer commands print to.
func stdout(ctx context.Context) io.Writer { return stdioFrom(ctx).out }

// isYAML reports whether source should be decoded as YAML.
func isYAML(in Input, source string) bool {
	if in.YAML {
		return true
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		return true
	}

	return false
}

// readSource returns the full content of source, or of stdin for "-".
func readSource(ctx context.Context, source string) ([]byte, error) {
	if source == stdioSource || source == "" {
		data, err := io.ReadAll(stdioFrom(ctx).in)
		if err != nil {
			return nil, ErrOpenSource.Wrap(err).With(slog.String("source", "stdin"))
		}

		return data, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).With(slog.String("source", source))
	}

	return data, nil
}

// readMenu reads and parses the menu description in source.
func readMenu(ctx context.Context, source string) (*menu.Item, error) {
	data, err := readSource(ctx, source)
	if err != nil {
		return nil, err
	}

	in := inputFrom(ctx)
	opts := []menu.Option{
		menu.WithRootKey(in.Root),
		menu.WithLogger(log.Default()),
	}

	parse := menu.Parse
	if isYAML(in, source) {
		parse = menu.ParseYAML
	}

	root, err := parse(ctx, data, opts...)
	if err != nil {
		return nil, menu.WrapError(err).With(slog.String("source", source))
	}

	log.DebugContext(ctx, "read menu",
		slog.String("source", source),
		slog.String("root", root.Label),
		slog.Int("items", root.Count()),
	)

	return root, nil
}

// writeOutput writes data to output, or to stdout for "-". A file is only
// created once data is complete.
func writeOutput(ctx context.Context, output string, data []byte) error {
	if output == stdioSource || output == "" {
		if _, err := stdout(ctx).Write(data); err != nil {
			return ErrWriteOutput.Wrap(err).With(slog.String("output", "stdout"))
		}

		return nil
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("output", output))
	}

	return nil
}
