package menu

import "strconv"

// DefaultMarker is the selection marker of a display element.
const DefaultMarker = '>'

// ProcessingText is shown while the action runs.
const ProcessingText = "Processing..."

// DisplayContent is what a screen shows for one item or lifecycle phase.
// It is derived on demand and never stored in the tree.
type DisplayContent struct {
	Title    string
	Elements []Element
}

// Element is one line of a [DisplayContent].
type Element struct {
	Kind       ElementKind
	Text       string
	Selectable bool
	Marker     rune
}

func message(text string) Element {
	return Element{Kind: ElementMessage, Text: text, Marker: DefaultMarker}
}

func selectable(kind ElementKind, text string) Element {
	return Element{Kind: kind, Text: text, Selectable: true, Marker: DefaultMarker}
}

// DisplayContent returns the navigation screen of a submenu: one selectable
// list element per child, titled by the item label. Items of other types
// have no navigation content and return false.
func (item *Item) DisplayContent() (DisplayContent, bool) {
	if item == nil || item.Type != TypeSubmenu {
		return DisplayContent{}, false
	}

	content := DisplayContent{
		Title:    item.Label,
		Elements: make([]Element, 0, len(item.Children)),
	}

	for _, child := range item.Children {
		content.Elements = append(content.Elements, selectable(ElementList, child.Label))
	}

	return content, true
}

// DisplayContent returns the screen shown during phase p, titled by the
// action name. It returns false when the sub-config backing p is absent.
// [PhaseAction] always has content.
func (op *Operation) DisplayContent(p Phase) (DisplayContent, bool) {
	if op == nil {
		return DisplayContent{}, false
	}

	var elems []Element

	switch p {
	case PhasePrecondition:
		if op.Precondition == nil {
			return DisplayContent{}, false
		}

		elems = []Element{message(op.Precondition.Message)}

	case PhaseInput:
		if len(op.Inputs) == 0 {
			return DisplayContent{}, false
		}

		n := len(op.Inputs)
		for i, in := range op.Inputs {
			if n > 1 {
				elems = append(elems, message(
					"Input "+strconv.Itoa(i+1)+" of "+strconv.Itoa(n)))
			}

			elems = append(elems, selectable(ElementInput, deref(in.Prompt)))
		}

	case PhaseConfirm:
		if op.Confirm == nil {
			return DisplayContent{}, false
		}

		elems = []Element{
			message(op.Confirm.Message),
			selectable(ElementSelection, op.Confirm.TrueText),
			selectable(ElementSelection, op.Confirm.FalseText),
		}

	case PhaseAction:
		elems = []Element{message(ProcessingText)}

	case PhaseResult:
		if op.Result == nil {
			return DisplayContent{}, false
		}

		elems = []Element{message(op.Result.Message)}

		switch op.Result.Mode {
		case ResultAcknowledge:
			ok := DefaultResultOKText
			if op.Result.OKText != nil && *op.Result.OKText != "" {
				ok = *op.Result.OKText
			}

			elems = append(elems, selectable(ElementSelection, ok))

		case ResultTimed:
		}

	case PhasePostcondition:
		if op.Postcondition == nil {
			return DisplayContent{}, false
		}

		elems = []Element{message(op.Postcondition.Message)}

	default:
		return DisplayContent{}, false
	}

	return DisplayContent{Title: op.Action, Elements: elems}, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
