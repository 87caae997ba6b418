package xrtr

import "strings"

// segmentKind tags what a segment binds to during insert/lookup.
type segmentKind uint8

const (
	segLiteral segmentKind = iota
	segParameter
	segCatchall
)

// segment is one path-segment worth of tokenized route, per spec.md §4.1.
type segment struct {
	kind segmentKind
	text string // literal text, or the parameter/catch-all name
}

const asciiWhitespace = " \t\n\r\v\f"

// parsePath tokenizes path into an ordered list of segments, using variable
// to recognize parameter segments and separator to split them. It rejects
// anything spec.md §4.1 calls invalid, returning *Error{Kind: KindInvalidPath},
// except a parameter/catch-all name repeated within the path, which returns
// *Error{Kind: KindConflictingParameter}.
//
// The root route (the single character separator) parses to an empty
// segment list.
func parsePath(path string, variable, separator byte) ([]segment, error) {
	trimmed := strings.Trim(path, asciiWhitespace)
	if trimmed == "" {
		return nil, invalidPathf("path is empty")
	}
	if trimmed[0] != separator {
		return nil, invalidPathf("path %q must start with %q", path, byteStr(separator))
	}
	if len(trimmed) > 1 && trimmed[len(trimmed)-1] == separator {
		return nil, invalidPathf("path %q must not end with %q", path, byteStr(separator))
	}
	if len(trimmed) == 1 {
		return nil, nil // root route
	}

	raw := strings.Split(trimmed[1:], byteStr(separator))
	segments := make([]segment, 0, len(raw))
	seenParams := make(map[string]struct{}, len(raw))

	for i, part := range raw {
		if part == "" {
			return nil, invalidPathf("path %q contains consecutive %q", path, byteStr(separator))
		}

		switch part[0] {
		case variable:
			name := part[1:]
			if name == "" {
				return nil, invalidPathf("path %q has an empty parameter name", path)
			}
			if err := checkDuplicateParam(seenParams, name, path); err != nil {
				return nil, err
			}
			segments = append(segments, segment{kind: segParameter, text: name})
		case catchallRune:
			name := part[1:]
			if name == "" {
				return nil, invalidPathf("path %q has an empty catch-all name", path)
			}
			if i != len(raw)-1 {
				return nil, invalidPathf("path %q: catch-all %q must be the last segment", path, part)
			}
			if err := checkDuplicateParam(seenParams, name, path); err != nil {
				return nil, err
			}
			segments = append(segments, segment{kind: segCatchall, text: name})
		default:
			if strings.IndexByte(part, variable) >= 0 || strings.IndexByte(part, catchallRune) >= 0 {
				return nil, invalidPathf("path %q: literal segment %q must not contain %q or %q", path, part, byteStr(variable), string(catchallRune))
			}
			segments = append(segments, segment{kind: segLiteral, text: part})
		}
	}

	return segments, nil
}

func checkDuplicateParam(seen map[string]struct{}, name, path string) error {
	if _, ok := seen[name]; ok {
		return conflictingParameterf("path %q: parameter %q used more than once", path, name)
	}
	seen[name] = struct{}{}
	return nil
}
