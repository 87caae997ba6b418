package xrtr

import "strings"

// sentinelMarker is an unexported type: no code outside this package can
// construct a value of it, so the only way to obtain one is Tree.Sentinel.
// It is a single package-level value, not one per Tree, matching spec.md
// §3's "process-local" framing rather than a per-instance marker.
type sentinelMarker struct{}

var sentinelValue = &sentinelMarker{}

// Tree is an in-memory radix-tree router (spec.md §2-§4). A Tree is not
// safe for concurrent Insert/SetVariable/SetSeparator calls, but concurrent
// Get/MethodsFor reads are safe once all inserts have finished, since they
// never mutate tree state (spec.md §5).
type Tree struct {
	root      *node
	variable  byte
	separator byte
	frozen    bool
}

// New builds a Tree. variable and separator may each be 0 to take the
// default (':' and '/' respectively, spec.md §4.2); a non-zero value is
// validated exactly as SetVariable/SetSeparator would.
func New(variable, separator byte) (*Tree, error) {
	t := &Tree{root: &node{kind: nodeRoot}, variable: DefaultVariable, separator: DefaultSeparator}
	if variable != 0 {
		if err := t.SetVariable(variable); err != nil {
			return nil, err
		}
	}
	if separator != 0 {
		if err := t.SetSeparator(separator); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Config reports the tree's current variable and separator bytes.
func (t *Tree) Config() (variable, separator byte) {
	return t.variable, t.separator
}

// SetVariable changes the byte that marks a parameter segment. 0 resets to
// DefaultVariable. It fails once the tree holds any inserted route
// (spec.md §4.2's freeze-after-first-insert rule).
func (t *Tree) SetVariable(b byte) error {
	if t.frozen {
		return invalidConfigf("variable cannot change once the tree contains a node")
	}
	if b == 0 {
		b = DefaultVariable
	}
	if b == catchallRune {
		return invalidConfigf("variable must not be %q", string(catchallRune))
	}
	if b == t.separator {
		return invalidConfigf("variable must differ from separator")
	}
	t.variable = b
	return nil
}

// SetSeparator changes the byte that delimits segments. 0 resets to
// DefaultSeparator. Same freeze rule as SetVariable.
func (t *Tree) SetSeparator(b byte) error {
	if t.frozen {
		return invalidConfigf("separator cannot change once the tree contains a node")
	}
	if b == 0 {
		b = DefaultSeparator
	}
	if b == catchallRune {
		return invalidConfigf("separator must not be %q", string(catchallRune))
	}
	if b == t.variable {
		return invalidConfigf("separator must differ from variable")
	}
	t.separator = b
	return nil
}

// Sentinel returns the marker Get returns when a path matches a node that
// has no endpoint for the requested method but does have one for another
// (spec.md §3, §8 property 5). It compares equal only to itself.
func (t *Tree) Sentinel() any {
	return sentinelValue
}

// Insert validates path and binds value at the node it names for every
// method in methods. noConflict selects which of the node's two bindings
// the value is added to: false appends to methods (an EndpointConflict
// error if any method already has an endpoint there), true appends to
// noConflictMethods (middlewares, which may freely accumulate).
//
// The path is validated before any node is touched. Parameter, catch-all
// and endpoint conflicts are detected during the walk, but only on nodes
// that already existed, before any new node is attached, so a rejected
// Insert never leaves a partial tree (spec.md §7).
func (t *Tree) Insert(path string, value any, methods []string, noConflict bool) error {
	if len(methods) == 0 {
		return invalidPathf("insert requires at least one method")
	}

	trimmed := strings.Trim(path, asciiWhitespace)
	if _, err := parsePath(path, t.variable, t.separator); err != nil {
		return err
	}

	t.frozen = true

	if len(trimmed) == 1 { // root route
		return t.root.bind(value, methods, noConflict)
	}
	return t.root.insert(trimmed, value, methods, noConflict, t.variable, t.separator)
}

// walk descends from the root along path, collecting the middleware bound
// for method at every node entered (spec.md §4.2's accumulation rule), and
// reports the terminal node and extracted parameter values. matched is
// false when no node in the tree corresponds to path at all.
func (t *Tree) walk(path, method string) (terminal *node, params map[string]string, middlewares []any, matched bool) {
	n := t.root
	remaining := path
	if remaining == byteStr(t.separator) {
		remaining = ""
	}

	for {
		if mw, ok := n.noConflictMethods[method]; ok {
			middlewares = append(middlewares, mw...)
		}

		if remaining == "" {
			return n, params, middlewares, true
		}

		// A literal child is taken only when its whole prefix matches;
		// otherwise the parameter/catch-all children of this node are tried.
		// Once descended, the walk never comes back up (no backtracking).
		if idx := n.literalChildIndex(remaining[0]); idx >= 0 {
			child := n.children[idx]
			if strings.HasPrefix(remaining, child.prefix) {
				n = child
				remaining = remaining[len(child.prefix):]
				continue
			}
		}

		if n.paramChild != nil {
			value, rest := splitLookupSegment(remaining, t.separator)
			if params == nil {
				params = make(map[string]string)
			}
			params[n.paramChild.paramName] = value
			n = n.paramChild
			remaining = rest
			continue
		}

		if n.catchallChild != nil {
			if params == nil {
				params = make(map[string]string)
			}
			params[n.catchallChild.paramName] = remaining
			n = n.catchallChild
			if mw, ok := n.noConflictMethods[method]; ok {
				middlewares = append(middlewares, mw...)
			}
			return n, params, middlewares, true
		}

		return nil, nil, nil, false
	}
}

func splitLookupSegment(remaining string, separator byte) (value, rest string) {
	if end := strings.IndexByte(remaining, separator); end >= 0 {
		return remaining[:end], remaining[end:]
	}
	return remaining, ""
}

// Get looks up path for method (spec.md §4.2). It returns:
//   - (nil, nil, nil) if path matches nothing in the tree, or matches a
//     node with no endpoint bound for method and none for any other method
//     either (a pure-middleware or otherwise endpoint-less node);
//   - (Sentinel(), nil, nil) if path matches a node that has an endpoint
//     bound for some other method, but none for method (spec.md §8
//     property 5 — method-not-allowed, never triggered by a middleware-only
//     binding);
//   - otherwise (endpoint, accumulated middlewares, extracted parameters).
func (t *Tree) Get(path, method string) (any, []any, map[string]string) {
	n, params, middlewares, matched := t.walk(path, method)
	if !matched {
		return nil, nil, nil
	}
	if v, ok := n.methods[method]; ok {
		return v, middlewares, params
	}
	if len(n.methods) > 0 {
		return sentinelValue, nil, nil
	}
	return nil, nil, nil
}

// MethodsFor reports the set of methods with an endpoint bound at path,
// independent of any particular method (spec.md §4.2). An empty result
// means either path doesn't match anything, or it matches a node with no
// endpoint bound at all.
func (t *Tree) MethodsFor(path string) map[string]struct{} {
	n, _, _, matched := t.walk(path, "")
	out := make(map[string]struct{})
	if !matched {
		return out
	}
	for m := range n.methods {
		out[m] = struct{}{}
	}
	return out
}

// String renders the whole tree for debugging (spec.md §6), adapted from
// the original implementation's node repr rather than reproduced verbatim.
func (t *Tree) String() string {
	return "Tree{variable: " + byteStr(t.variable) + ", separator: " + byteStr(t.separator) + ", root: " + t.root.String() + "}"
}
