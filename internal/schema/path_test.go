package schema

import (
	"testing"

	"github.com/simonhull/firebird-suite/nest/internal/document"
	"github.com/stretchr/testify/assert"
)

func TestPathLocation(t *testing.T) {
	assert.Equal(t, "root", Path{}.Location())
	assert.Equal(t, "services -> api -> 0", Path{
		{Key: "services"},
		{Key: "api"},
		{Index: 0, IsIndex: true},
	}.Location())
}

func TestPathCompare(t *testing.T) {
	a := Path{{Key: "a"}}
	ab := Path{{Key: "a"}, {Key: "b"}}
	b := Path{{Key: "b"}}
	idx2 := Path{{Key: "a"}, {Index: 2, IsIndex: true}}
	idx10 := Path{{Key: "a"}, {Index: 10, IsIndex: true}}

	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, Path{}.Compare(a))
	assert.Equal(t, -1, a.Compare(ab))
	assert.Equal(t, -1, ab.Compare(b))
	assert.Equal(t, -1, idx2.Compare(idx10))
	assert.Equal(t, -1, idx10.Compare(ab))
	assert.Equal(t, 1, b.Compare(a))
}

func TestInstancePath(t *testing.T) {
	doc := document.Object{
		"a/b":  document.Object{},
		"x y":  document.Object{},
		"list": document.Array{document.Null{}, document.Object{"7": document.Null{}}},
	}

	assert.Equal(t, Path{}, instancePath(doc, ""))
	assert.Equal(t, Path{{Key: "a/b"}}, instancePath(doc, "/a~1b"))
	assert.Equal(t, Path{{Key: "x y"}}, instancePath(doc, "/x%20y"))
	assert.Equal(t, Path{
		{Key: "list"},
		{Index: 1, IsIndex: true},
		{Key: "7"},
	}, instancePath(doc, "/list/1/7"))
	assert.Equal(t, Path{{Key: "missing"}, {Key: "0"}}, instancePath(doc, "/missing/0"))
}

func TestKeywordOf(t *testing.T) {
	tests := []struct {
		name     string
		location string
		keyword  string
		trailing int
		ok       bool
	}{
		{name: "root keyword", location: "/required", keyword: "required", ok: true},
		{name: "under property", location: "/properties/a/required", keyword: "required", ok: true},
		{name: "property named properties", location: "/properties/properties/required", keyword: "required", ok: true},
		{name: "property named definitions", location: "/properties/definitions/type", keyword: "type", ok: true},
		{name: "property named dependencies", location: "/properties/dependencies/required", keyword: "required", ok: true},
		{name: "property named patternProperties", location: "/properties/patternProperties/minProperties", keyword: "minProperties", ok: true},
		{name: "property named type", location: "/properties/type", ok: false},
		{name: "false subschema by index", location: "/items/0", ok: false},
		{name: "items single schema", location: "/items/type", keyword: "type", ok: true},
		{name: "allOf branch", location: "/allOf/1/required", keyword: "required", ok: true},
		{name: "anyOf itself", location: "/anyOf", keyword: "anyOf", ok: true},
		{name: "through ref", location: "/properties/a/$ref/maxLength", keyword: "maxLength", ok: true},
		{name: "additionalProperties", location: "/additionalProperties", keyword: "additionalProperties", ok: true},
		{name: "array dependency", location: "/dependencies/a/0", keyword: "dependencies", trailing: 2, ok: true},
		{name: "schema dependency", location: "/dependencies/a/required", keyword: "required", ok: true},
		{name: "unknown keyword", location: "/properties/a/x-custom", keyword: "x-custom", ok: false},
		{name: "empty", location: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tokens := pointerTokens(tt.location)
			kw, trailing, ok := keywordOf(tokens)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.keyword, kw)
				assert.Equal(t, tt.trailing, trailing)
			}
		})
	}
}

func TestTrimPointer(t *testing.T) {
	assert.Equal(t, "/dependencies", trimPointer("/dependencies/a/0", 2))
	assert.Equal(t, "/required", trimPointer("/required", 0))
	assert.Equal(t, "", trimPointer("/a", 3))
}

func TestLookupAndStringify(t *testing.T) {
	raw, err := Decode([]byte(`{"properties": {"a/b": {"enum": ["x", 2]}}}`), ".json")
	assert.NoError(t, err)

	v, ok := lookup(raw, "/properties/a~1b/enum")
	assert.True(t, ok)
	assert.Equal(t, `["x",2]`, stringify(v))

	_, ok = lookup(raw, "/properties/missing")
	assert.False(t, ok)
}
