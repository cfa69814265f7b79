// Package fieldpath locates a nested scalar inside a decoded message by
// walking an ordered list of field names.
package fieldpath

import (
	"fmt"
	"strings"

	errspkg "github.com/drblury/protostamp/internal/runtime/errors"
)

// DefaultSeparator splits path strings when no separator is configured.
const DefaultSeparator = "."

// Node is the minimal view of a decoded message the navigator needs: one
// lookup for message-typed fields and one for unsigned-integer scalars. Both
// report a missing field as an error rather than a zero value.
type Node interface {
	Sub(field string) (Node, error)
	Uint64(field string) (uint64, error)
}

// Path is an immutable, non-empty sequence of field names, parsed once at
// extractor initialization and shared read-only across calls.
type Path struct {
	elems []string
}

// Parse splits raw on sep (DefaultSeparator when empty) into a Path.
// Splitting is literal with no escaping, so a field name that contains the
// separator cannot be expressed. An empty raw string, or one that yields an
// empty element, is a configuration error.
func Parse(raw, sep string) (Path, error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	if raw == "" {
		return Path{}, &errspkg.ConfigurationError{Reason: "timestamp field path is empty"}
	}
	elems := strings.Split(raw, sep)
	for _, e := range elems {
		if e == "" {
			return Path{}, &errspkg.ConfigurationError{
				Reason: fmt.Sprintf("timestamp field path %q has an empty element", raw),
			}
		}
	}
	return Path{elems: elems}, nil
}

// Len reports the number of path elements.
func (p Path) Len() int { return len(p.elems) }

// Elems returns a copy of the path elements.
func (p Path) Elems() []string {
	out := make([]string, len(p.elems))
	copy(out, p.elems)
	return out
}

func (p Path) String() string { return strings.Join(p.elems, DefaultSeparator) }

// Navigate descends one sub-message per non-terminal path element and
// resolves the terminal element as an unsigned 64-bit scalar on the node it
// reached. A single-element path does zero descents and resolves directly on
// root. Any missing field along the way fails the call.
func Navigate(root Node, p Path) (uint64, error) {
	if len(p.elems) == 0 {
		return 0, &errspkg.ConfigurationError{Reason: "timestamp field path is empty"}
	}
	node := root
	for _, field := range p.elems[:len(p.elems)-1] {
		next, err := node.Sub(field)
		if err != nil {
			return 0, err
		}
		node = next
	}
	return node.Uint64(p.elems[len(p.elems)-1])
}
