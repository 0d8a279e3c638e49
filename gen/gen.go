package gen

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/ardnew/menugen/log"
	"github.com/ardnew/menugen/menu"
)

// Identifier prefixes.
const (
	ItemPrefix       = "menu_item_"
	OperationPrefix  = "operation_"
	ConditionsPrefix = "conditions_"
)

// DefaultHeader is written once before the first record.
const DefaultHeader = `
#include "menu/common/menu_core.h"

// Generated menu structure
`

// DefaultFooter is written once after the last record.
const DefaultFooter = `
const menu_item_t* const menu_root = &menu_item_0;
`

// maxCount is the largest element count the runtime can store (uint8).
const maxCount = math.MaxUint8

// Predefined errors (sentinel values).
var (
	ErrNilRoot       = menu.NewError("no root menu item")
	ErrCountOverflow = menu.NewError("element count exceeds runtime limit")
	ErrRender        = menu.NewError("failed to render record")
	ErrTemplate      = menu.NewError("invalid record template")
)

// Record is everything a [Renderer] needs to write one item.
type Record struct {
	Item *menu.Item

	// Name is the item's identifier, menu_item_<N>.
	Name string

	// Parent is the identifier of the enclosing item, empty for the root.
	Parent string

	// Children are the identifiers of the item's children in document
	// order. Each was written before this record.
	Children []string

	// Operation and Conditions label the item's payloads. They are empty
	// when the payload is absent.
	Operation  string
	Conditions string
}

// Renderer writes the source text of one record.
type Renderer interface {
	Render(w io.Writer, rec Record) error
}

// RendererFunc adapts a function to the [Renderer] interface.
type RendererFunc func(w io.Writer, rec Record) error

// Render calls f(w, rec).
func (f RendererFunc) Render(w io.Writer, rec Record) error { return f(w, rec) }

// Option configures a [Generator].
type Option func(*Generator)

// WithRenderer sets the record renderer.
func WithRenderer(r Renderer) Option {
	return func(g *Generator) {
		if r != nil {
			g.renderer = r
		}
	}
}

// WithHeader sets the text written before the first record.
func WithHeader(s string) Option {
	return func(g *Generator) { g.header = s }
}

// WithFooter sets the text written after the last record.
func WithFooter(s string) Option {
	return func(g *Generator) { g.footer = s }
}

// WithLogger sets the logger receiving generation diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// Generator emits a menu tree as C source.
type Generator struct {
	renderer Renderer
	header   string
	footer   string
	logger   log.Logger
}

// New returns a Generator using the default template renderer, header, and
// footer unless overridden by opts.
func New(opts ...Option) *Generator {
	g := &Generator{
		renderer: NewTemplateRenderer(),
		header:   DefaultHeader,
		footer:   DefaultFooter,
		logger:   log.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Generate writes the header, one record per item of root in post-order,
// and the footer to w. Nothing is written to w unless every record renders;
// an error from w itself is returned unchanged.
func (g *Generator) Generate(ctx context.Context, w io.Writer, root *menu.Item) error {
	if root == nil {
		return ErrNilRoot
	}

	var buf bytes.Buffer

	buf.WriteString(g.header)

	counter := 0
	if _, err := g.emit(ctx, &buf, root, "", &counter); err != nil {
		return err
	}

	buf.WriteString(g.footer)

	g.logger.DebugContext(ctx, "generated menu",
		slog.Int("records", counter),
		slog.Int("bytes", buf.Len()),
	)

	_, err := w.Write(buf.Bytes())

	return err
}

// emit names item from *counter, emits its subtree, and returns its name.
func (g *Generator) emit(
	ctx context.Context, buf *bytes.Buffer, item *menu.Item, parent string, counter *int,
) (string, error) {
	name := ItemPrefix + strconv.Itoa(*counter)
	*counter++

	if err := checkCounts(item, name); err != nil {
		return "", err
	}

	children := make([]string, 0, len(item.Children))

	for _, child := range item.Children {
		childName, err := g.emit(ctx, buf, child, name, counter)
		if err != nil {
			return "", err
		}

		children = append(children, childName)
	}

	rec := Record{
		Item:     item,
		Name:     name,
		Parent:   parent,
		Children: children,
	}

	// Payload labels take the counter value at emission time.
	if item.Operation != nil {
		rec.Operation = OperationPrefix + strconv.Itoa(*counter)
	}

	if item.Conditions != nil {
		rec.Conditions = ConditionsPrefix + strconv.Itoa(*counter)

		if nested := nestedGroups(item.Conditions); nested > 0 {
			g.logger.WarnContext(ctx, "nested rule groups have no runtime form",
				slog.String("item", name),
				slog.String("label", item.Label),
				slog.Int("groups", nested),
			)
		}
	}

	if err := g.renderer.Render(buf, rec); err != nil {
		return "", ErrRender.Wrap(err).With(slog.String("item", name))
	}

	g.logger.TraceContext(ctx, "emitted record",
		slog.String("name", name),
		slog.String("parent", parent),
		slog.Int("children", len(children)),
	)

	return name, nil
}

func checkCounts(item *menu.Item, name string) error {
	over := func(field string, n int) error {
		return ErrCountOverflow.With(
			slog.String("item", name),
			slog.String("field", field),
			slog.Int("count", n),
			slog.Int("max", maxCount),
		)
	}

	if n := len(item.Children); n > maxCount {
		return over("children", n)
	}

	if c := item.Conditions; c != nil && len(c.Rules) > maxCount {
		return over("rules", len(c.Rules))
	}

	if op := item.Operation; op != nil {
		if n := len(op.Inputs); n > maxCount {
			return over("inputs", n)
		}

		for _, in := range op.Inputs {
			if n := len(in.Options); n > maxCount {
				return over("options", n)
			}
		}
	}

	return nil
}

// nestedGroups counts the top-level rules of c that are groups.
func nestedGroups(c *menu.Conditions) int {
	n := 0

	for _, r := range c.Rules {
		if _, ok := r.(menu.RuleGroup); ok {
			n++
		}
	}

	return n
}
