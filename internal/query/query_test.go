package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  []string
	}{
		{"no arguments", nil, []string{}},
		{"single term", []Node{Term("alice")}, []string{"alice"}},
		{"variadic terms", []Node{Term("a"), Term("b"), Term("c")}, []string{"a", "b", "c"}},
		{"flat list", []Node{Terms("a", "b", "c")}, []string{"a", "b", "c"}},
		{
			"nested list",
			[]Node{List(Terms("a", "b"), Term("c"))},
			[]string{"a", "b", "c"},
		},
		{
			"deeply nested",
			[]Node{List(List(List(Term("a")), Term("b")), Terms()), Term("c")},
			[]string{"a", "b", "c"},
		},
		{"multi-word term is kept verbatim", []Node{Term("alice in wonderland")}, []string{"alice in wonderland"}},
		{"empty composite", []Node{List()}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.nodes...))
		})
	}
}

func TestResolve_NestingDoesNotChangeOrder(t *testing.T) {
	nested := Resolve(List(Terms("a", "b"), Term("c")))
	flat := Resolve(Term("a"), Term("b"), Term("c"))
	assert.Equal(t, flat, nested)
	assert.Equal(t, []string{"a", "b", "c"}, flat)
}

func TestNodeAccessors(t *testing.T) {
	n := Term("x")
	assert.True(t, n.IsScalar())
	assert.Equal(t, "x", n.Value())

	l := Terms("a", "b")
	assert.False(t, l.IsScalar())
	assert.Len(t, l.Children(), 2)
}

func TestFromValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"string", "alice", []string{"alice"}},
		{"string slice", []string{"a", "b"}, []string{"a", "b"}},
		{"mixed any slice", []any{"a", []any{"b", []string{"c"}}, "d"}, []string{"a", "b", "c", "d"}},
		{"map sorted by key", map[string]any{"z": "last", "a": "first", "m": []any{"mid"}}, []string{"first", "mid", "last"}},
		{"string map", map[string]string{"b": "two", "a": "one"}, []string{"one", "two"}},
		{"number", 42, []string{"42"}},
		{"nil", nil, []string{""}},
		{"node passthrough", Terms("x", "y"), []string{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(FromValue(tt.value)))
		})
	}
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"string", `"alice"`, []string{"alice"}},
		{"array", `["alice", "rabbit"]`, []string{"alice", "rabbit"}},
		{"nested arrays", `[["a", "b"], "c"]`, []string{"a", "b", "c"}},
		{"object keeps key order", `{"z": "first", "a": ["second", {"k": "third"}]}`, []string{"first", "second", "third"}},
		{"numbers keep spelling", `[1, 2.50]`, []string{"1", "2.50"}},
		{"booleans and null", `[true, null]`, []string{"true", ""}},
		{"empty array", `[]`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseJSON([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, Resolve(n))
		})
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	for _, data := range []string{``, `[`, `["a",`, `{"a"}`, `"a" "b"`, `nope`} {
		_, err := ParseJSON([]byte(data))
		assert.Error(t, err, "input %q", data)
	}
}
