package menu

import "iter"

// Type is the behavior of a menu item.
type Type int

const (
	// TypeAction executes an operation when selected.
	TypeAction Type = iota

	// TypeSubmenu contains child items.
	TypeSubmenu

	// TypeDisplay shows information without an action.
	TypeDisplay
)

var typeNames = [...]string{
	TypeAction:  "action",
	TypeSubmenu: "submenu",
	TypeDisplay: "display",
}

// String returns the grammar spelling of the type.
func (t Type) String() string { return enumString(typeNames[:], int(t)) }

// ParseType parses the grammar spelling of a menu type.
func ParseType(s string) (Type, bool) { return enumParse[Type](typeNames[:], s) }

// InputKind is the kind of value collected by an operation input.
type InputKind int

const (
	// InputRange collects a number between bounds.
	InputRange InputKind = iota

	// InputOptions collects one of a fixed list of choices.
	InputOptions

	// InputCustom delegates collection to a handler.
	InputCustom
)

var inputKindNames = [...]string{
	InputRange:   "range",
	InputOptions: "options",
	InputCustom:  "custom",
}

func (k InputKind) String() string { return enumString(inputKindNames[:], int(k)) }

// ParseInputKind parses the grammar spelling of an input kind.
func ParseInputKind(s string) (InputKind, bool) {
	return enumParse[InputKind](inputKindNames[:], s)
}

// ResultMode controls how long an operation result stays on screen.
type ResultMode int

const (
	// ResultTimed dismisses the result after a timeout.
	ResultTimed ResultMode = iota

	// ResultAcknowledge waits for the user to dismiss the result.
	ResultAcknowledge
)

var resultModeNames = [...]string{
	ResultTimed:       "timed",
	ResultAcknowledge: "acknowledge",
}

func (m ResultMode) String() string { return enumString(resultModeNames[:], int(m)) }

// ParseResultMode parses the grammar spelling of a result mode.
func ParseResultMode(s string) (ResultMode, bool) {
	return enumParse[ResultMode](resultModeNames[:], s)
}

// Match combines the rules of a condition.
type Match int

const (
	// MatchAll requires every rule to hold.
	MatchAll Match = iota

	// MatchAny requires at least one rule to hold.
	MatchAny
)

var matchNames = [...]string{
	MatchAll: "all",
	MatchAny: "any",
}

func (m Match) String() string { return enumString(matchNames[:], int(m)) }

// ParseMatch parses the grammar spelling of a match mode.
func ParseMatch(s string) (Match, bool) { return enumParse[Match](matchNames[:], s) }

// Phase is one stage of an operation's lifecycle.
type Phase int

const (
	PhasePrecondition Phase = iota
	PhaseInput
	PhaseConfirm
	PhaseAction
	PhaseResult
	PhasePostcondition
)

var phaseNames = [...]string{
	PhasePrecondition:  "precondition",
	PhaseInput:         "input",
	PhaseConfirm:       "confirm",
	PhaseAction:        "action",
	PhaseResult:        "result",
	PhasePostcondition: "postcondition",
}

func (p Phase) String() string { return enumString(phaseNames[:], int(p)) }

// ParsePhase parses a phase name.
func ParsePhase(s string) (Phase, bool) { return enumParse[Phase](phaseNames[:], s) }

// Phases returns an iterator over all phases in lifecycle order.
func Phases() iter.Seq[Phase] {
	return func(yield func(Phase) bool) {
		for p := range phaseNames {
			if !yield(Phase(p)) {
				return
			}
		}
	}
}

// ElementKind is the role of a display element.
type ElementKind int

const (
	ElementMessage ElementKind = iota
	ElementInput
	ElementSelection
	ElementList
)

var elementKindNames = [...]string{
	ElementMessage:   "message",
	ElementInput:     "input",
	ElementSelection: "selection",
	ElementList:      "list",
}

func (k ElementKind) String() string { return enumString(elementKindNames[:], int(k)) }

func enumString(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}

	return names[i]
}

func enumParse[E ~int](names []string, s string) (E, bool) {
	for i, name := range names {
		if name == s {
			return E(i), true
		}
	}

	return 0, false
}
