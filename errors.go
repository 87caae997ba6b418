package xrtr

import "fmt"

// Kind classifies a failure raised by the tree, per spec.md §7.
type Kind uint8

const (
	// KindInvalidPath marks a malformed route or lookup path: empty,
	// whitespace-only, missing the leading separator, trailing separator
	// on a non-root path, consecutive separators, or an empty
	// parameter/catch-all name.
	KindInvalidPath Kind = iota + 1

	// KindInvalidConfig marks a malformed variable/separator assignment,
	// or an attempt to change either after the tree already holds a node.
	KindInvalidConfig

	// KindConflictingParameter marks a parameter or catch-all child that
	// already exists at a position under a different name, or a
	// parameter/catch-all name repeated within one inserted path.
	KindConflictingParameter

	// KindEndpointConflict marks an endpoint already bound at a node for
	// one of the methods being inserted.
	KindEndpointConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalidPath:
		return "InvalidPath"
	case KindInvalidConfig:
		return "InvalidConfig"
	case KindConflictingParameter:
		return "ConflictingParameter"
	case KindEndpointConflict:
		return "EndpointConflict"
	default:
		return "Unknown"
	}
}

// Error is the single error type the tree raises. Kind lets callers branch
// with errors.Is against the sentinel values below without string matching.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Msg
}

// Is reports whether target is an *Error of the same Kind, so that
// errors.Is(err, ErrInvalidPath) works regardless of message text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel values usable with errors.Is(err, xrtr.ErrInvalidPath) and friends.
// Their Msg fields are not meant to be inspected; construct specific failures
// with the unexported helpers below instead.
var (
	ErrInvalidPath          = &Error{Kind: KindInvalidPath}
	ErrInvalidConfig        = &Error{Kind: KindInvalidConfig}
	ErrConflictingParameter = &Error{Kind: KindConflictingParameter}
	ErrEndpointConflict     = &Error{Kind: KindEndpointConflict}
)

func invalidPathf(format string, args ...any) error {
	return &Error{Kind: KindInvalidPath, Msg: fmt.Sprintf(format, args...)}
}

func invalidConfigf(format string, args ...any) error {
	return &Error{Kind: KindInvalidConfig, Msg: fmt.Sprintf(format, args...)}
}

func conflictingParameterf(format string, args ...any) error {
	return &Error{Kind: KindConflictingParameter, Msg: fmt.Sprintf(format, args...)}
}

func endpointConflictf(format string, args ...any) error {
	return &Error{Kind: KindEndpointConflict, Msg: fmt.Sprintf(format, args...)}
}
