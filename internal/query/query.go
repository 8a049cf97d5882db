// Package query resolves nested query-term structures into a flat list of raw terms.
package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Node is either a scalar term or a composite of further nodes.
type Node struct {
	value    string
	children []Node
	scalar   bool
}

// Term returns a scalar node holding s.
func Term(s string) Node {
	return Node{value: s, scalar: true}
}

// Terms returns a composite node with one scalar child per string.
func Terms(ss ...string) Node {
	children := make([]Node, len(ss))
	for i, s := range ss {
		children[i] = Term(s)
	}
	return Node{children: children}
}

// List returns a composite node of the given children.
func List(children ...Node) Node {
	return Node{children: children}
}

// IsScalar reports whether n holds a single term.
func (n Node) IsScalar() bool {
	return n.scalar
}

// Value returns the term of a scalar node, or "" for a composite.
func (n Node) Value() string {
	return n.value
}

// Children returns the children of a composite node.
func (n Node) Children() []Node {
	return n.children
}

// Resolve flattens nodes depth-first into their scalar terms, in order.
func Resolve(nodes ...Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = resolve(n, out)
	}
	return out
}

func resolve(n Node, out []string) []string {
	if n.scalar {
		return append(out, n.value)
	}
	for _, child := range n.children {
		out = resolve(child, out)
	}
	return out
}

// FromValue converts an arbitrary Go value into a Node.
// Strings become terms; slices and maps become composites. Map entries are
// visited in sorted key order since Go maps carry no order of their own.
// Any other value becomes a term formatted with %v.
func FromValue(v any) Node {
	switch val := v.(type) {
	case Node:
		return val
	case string:
		return Term(val)
	case []string:
		return Terms(val...)
	case []Node:
		return List(val...)
	case []any:
		children := make([]Node, len(val))
		for i, item := range val {
			children[i] = FromValue(item)
		}
		return List(children...)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		children := make([]Node, len(keys))
		for i, k := range keys {
			children[i] = FromValue(val[k])
		}
		return List(children...)
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		children := make([]Node, len(keys))
		for i, k := range keys {
			children[i] = Term(val[k])
		}
		return List(children...)
	case nil:
		return Term("")
	default:
		return Term(fmt.Sprintf("%v", val))
	}
}

// ParseJSON decodes a JSON value into a Node, keeping the order of object keys.
// Strings become terms and objects or arrays become composites. Numbers are
// kept in their JSON spelling, booleans are formatted as text and null is the
// empty term.
func ParseJSON(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := parseValue(dec)
	if err != nil {
		return Node{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Node{}, fmt.Errorf("unexpected data after query terms")
	}
	return n, nil
}

func parseValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, fmt.Errorf("failed to read query terms: %w", err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			return parseComposite(dec, false)
		case '{':
			return parseComposite(dec, true)
		default:
			return Node{}, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case string:
		return Term(t), nil
	case json.Number:
		return Term(t.String()), nil
	case nil:
		return Term(""), nil
	default:
		return Term(fmt.Sprintf("%v", t)), nil
	}
}

func parseComposite(dec *json.Decoder, object bool) (Node, error) {
	children := make([]Node, 0)
	for dec.More() {
		if object {
			// keys are not terms; only values are searched
			if _, err := dec.Token(); err != nil {
				return Node{}, fmt.Errorf("failed to read object key: %w", err)
			}
		}
		child, err := parseValue(dec)
		if err != nil {
			return Node{}, err
		}
		children = append(children, child)
	}
	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return Node{}, fmt.Errorf("failed to read query terms: %w", err)
	}
	return List(children...), nil
}
