package cmd

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/menugen/gen"
	"github.com/ardnew/menugen/menu"
)

// Preview renders the screens a menu produces: the navigation list of each
// submenu and the display content of each operation phase.
type Preview struct {
	Phase string `default:"" enum:",precondition,input,confirm,action,result,postcondition" help:"Only show this lifecycle phase."`
	Item  string `            help:"Only show the item with this generated name (e.g. menu_item_3)." placeholder:"NAME"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the preview command.
func (p *Preview) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	phases, err := p.phases()
	if err != nil {
		return err
	}

	root, err := readMenu(ctx, p.Source)
	if err != nil {
		return err
	}

	w := stdout(ctx)
	style := newPreviewStyle(w)

	var screens []string

	for v := range root.Walk() {
		name := gen.ItemPrefix + strconv.Itoa(v.Index)
		if p.Item != "" && p.Item != name {
			continue
		}

		if content, ok := v.Item.DisplayContent(); ok && p.Phase == "" {
			screens = append(screens, style.screen(name+" navigate", content, 0))
		}

		op := v.Item.Operation
		if op == nil {
			continue
		}

		for _, phase := range phases {
			content, ok := op.DisplayContent(phase)
			if !ok {
				continue
			}

			cursor := 0
			if phase == menu.PhaseConfirm && !op.Confirm.Default {
				cursor = 1
			}

			screens = append(screens, style.screen(name+" "+phase.String(), content, cursor))
		}
	}

	if len(screens) == 0 {
		return nil
	}

	_, err = io.WriteString(w, strings.Join(screens, "\n\n")+"\n")
	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("output", "stdout"))
	}

	return nil
}

func (p *Preview) phases() ([]menu.Phase, error) {
	if p.Phase == "" {
		var all []menu.Phase
		for phase := range menu.Phases() {
			all = append(all, phase)
		}

		return all, nil
	}

	phase, ok := menu.ParsePhase(p.Phase)
	if !ok {
		return nil, ErrUnknownPhase.With(slog.String("phase", p.Phase))
	}

	return []menu.Phase{phase}, nil
}

type previewStyle struct {
	caption  lipgloss.Style
	title    lipgloss.Style
	message  lipgloss.Style
	selected lipgloss.Style
	option   lipgloss.Style
	box      lipgloss.Style
}

func newPreviewStyle(w io.Writer) previewStyle {
	r := lipgloss.NewRenderer(w)

	return previewStyle{
		caption:  r.NewStyle().Faint(true),
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		message:  r.NewStyle(),
		selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		option:   r.NewStyle().Foreground(lipgloss.Color("7")),
		box:      r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// screen renders content in a box under caption, with the marker on the
// selectable element at index cursor.
func (s previewStyle) screen(caption string, content menu.DisplayContent, cursor int) string {
	lines := []string{s.title.Render(content.Title)}
	sel := 0

	for _, e := range content.Elements {
		if !e.Selectable {
			lines = append(lines, s.message.Render(e.Text))

			continue
		}

		if sel == cursor {
			lines = append(lines, s.selected.Render(string(e.Marker)+" "+e.Text))
		} else {
			lines = append(lines, s.option.Render("  "+e.Text))
		}

		sel++
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.caption.Render(caption),
		s.box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)),
	)
}
