package menu

// Operation is the behavior attached to an action item. Every sub-config is
// optional and independent of the others.
type Operation struct {
	Action        string
	Precondition  *Hook
	Inputs        []*Input
	Confirm       *Confirm
	Result        *Result
	Postcondition *Hook
}

// Hook is a handler run before or after the action.
type Hook struct {
	Handler string
	Message string
	Args    map[string]any
}

// Input describes one value collected before the action runs.
type Input struct {
	Kind        InputKind
	Default     string
	Prompt      *string
	Wrap        bool
	LivePreview bool

	// InputRange
	Range *Range

	// InputOptions
	Options          []string
	OptionConditions map[string]*Conditions

	// InputCustom
	Handler       *string
	DisplayValues []string
}

// Range bounds a numeric input. The runtime stores each field as int16.
type Range struct {
	Min  int
	Max  int
	Step int
}

// Confirm is a yes/no dialog shown before the action.
type Confirm struct {
	Message    string
	TimeoutSec int
	Default    bool
	TrueText   string
	FalseText  string
}

// Result is the message shown after the action.
type Result struct {
	Message    string
	Mode       ResultMode
	TimeoutSec int
	OKText     *string
}

// Defaults for optional fields.
const (
	DefaultConfirmTrueText  = "Yes"
	DefaultConfirmFalseText = "No"
	DefaultConfirmChoice    = true
	DefaultResultOKText     = "OK"
	DefaultRangeStep        = 1
)
