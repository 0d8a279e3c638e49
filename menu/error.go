package menu

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Predefined errors (sentinel values).
var (
	ErrReadInput     = NewError("failed to read input")
	ErrInvalidJSON   = NewError("invalid JSON document")
	ErrInvalidYAML   = NewError("invalid YAML document")
	ErrMissingRoot   = NewError("root menu item not found")
	ErrMissingField  = NewError("missing required field")
	ErrInvalidValue  = NewError("invalid value")
	ErrInvalidType   = NewError("invalid field type")
	ErrInvalidRange  = NewError("invalid range")
	ErrEvalCondition = NewError("condition evaluation failed")
)

// Error is an error carrying structured logging attributes. It implements
// both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error       // wrapped error (for errors.Unwrap)
	attrs []slog.Attr // attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError returns err as an *Error, wrapping it if necessary.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

// Error implements the error interface as "<msg>: <cause>", omitting
// whichever part is empty, followed by attributes in key=value form.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	s := strings.Join(part, ": ")

	if len(e.attrs) > 0 {
		kv := make([]string, len(e.attrs))
		for i, a := range e.attrs {
			kv[i] = a.String()
		}

		s += " (" + strings.Join(kv, ", ") + ")"
	}

	return s
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel as e, so that values
// derived from a sentinel with [Error.With] still match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || len(t.attrs) > 0 {
		return false
	}

	return e.msg != "" && e.msg == t.msg
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{msg: e.msg, err: e.err, attrs: newAttrs}
}

// Attr returns the value of the first attribute named key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

// invalidValue reports a value outside a closed set, suggesting the closest
// valid spellings.
func invalidValue(path, field, value string, valid []string) *Error {
	err := ErrInvalidValue.With(
		slog.String("path", path),
		slog.String("field", field),
		slog.String("value", value),
		slog.String("valid", strings.Join(valid, "|")),
	)

	if hint := suggest(value, valid); hint != "" {
		err = err.With(slog.String("hint", hint))
	}

	return err
}

func suggest(value string, valid []string) string {
	if value == "" {
		return ""
	}

	value = strings.ToLower(value)

	// abbreviation: "sub" -> "submenu"
	if matches := fuzzy.Find(value, valid); len(matches) > 0 {
		return matches[0].Str
	}

	// decoration: "actions" -> "action"
	for _, v := range valid {
		if len(fuzzy.Find(v, []string{value})) > 0 {
			return v
		}
	}

	return ""
}
