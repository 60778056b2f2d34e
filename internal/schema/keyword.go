package schema

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// draft7Keywords are the keywords reported as the failing validator.
var draft7Keywords = map[string]bool{
	"$ref": true, "type": true, "enum": true, "const": true,
	"multipleOf": true, "maximum": true, "exclusiveMaximum": true,
	"minimum": true, "exclusiveMinimum": true,
	"maxLength": true, "minLength": true, "pattern": true, "format": true,
	"items": true, "additionalItems": true, "maxItems": true, "minItems": true,
	"uniqueItems": true, "contains": true,
	"maxProperties": true, "minProperties": true, "required": true,
	"properties": true, "patternProperties": true, "additionalProperties": true,
	"dependencies": true, "propertyNames": true,
	"if": true, "then": true, "else": true,
	"allOf": true, "anyOf": true, "oneOf": true, "not": true,
	"contentEncoding": true, "contentMediaType": true,
}

// namedSubschemas hold user-chosen names, never keywords, as direct children.
var namedSubschemas = map[string]bool{
	"properties":        true,
	"patternProperties": true,
	"definitions":       true,
	"dependencies":      true,
}

// indexedSubschemas hold arrays of subschemas.
var indexedSubschemas = map[string]bool{
	"allOf": true,
	"anyOf": true,
	"oneOf": true,
	"items": true,
}

// subschemaKeywords are directly followed by a subschema, so the next token
// is a keyword again. $ref continues into the referenced schema.
var subschemaKeywords = map[string]bool{
	"$ref":                 true,
	"additionalProperties": true,
	"additionalItems":      true,
	"contains":             true,
	"propertyNames":        true,
	"not":                  true,
	"if":                   true,
	"then":                 true,
	"else":                 true,
}

// keywordOf walks a keyword location and returns the last token in a keyword
// position, plus how many tokens follow it. Names under properties and the
// like, and subschema indexes, are never keywords; a location ending on one
// (a false subschema) has no keyword.
func keywordOf(tokens []string) (keyword string, trailing int, ok bool) {
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		next := i + 1

		switch {
		case namedSubschemas[tok] && next < len(tokens):
			next++
			// Array-form property dependencies fail at dependencies/<name>/<i>
			if tok == "dependencies" && next < len(tokens) && isIndex(tokens[next]) {
				return tok, len(tokens) - next + 1, true
			}
		case indexedSubschemas[tok] && next < len(tokens) && isIndex(tokens[next]):
			next++
		case subschemaKeywords[tok]:
		default:
			return tok, len(tokens) - next, draft7Keywords[tok]
		}

		if next >= len(tokens) {
			if next > i+1 {
				return "", 0, false
			}
			return tok, 0, draft7Keywords[tok]
		}
		i = next
	}
	return "", 0, false
}

func isIndex(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// trimPointer drops the last n tokens of a JSON pointer.
func trimPointer(pointer string, n int) string {
	for ; n > 0; n-- {
		i := strings.LastIndexByte(pointer, '/')
		if i < 0 {
			return ""
		}
		pointer = pointer[:i]
	}
	return pointer
}

// resources maps a resource base URL to the schema node that declared it.
type resources map[string]any

// index records every subschema carrying an $id so keyword locations inside
// embedded resources can be resolved.
func (r resources) index(base string, node any) {
	switch n := node.(type) {
	case map[string]any:
		if id, ok := n["$id"].(string); ok && !strings.HasPrefix(id, "#") {
			if resolved, err := resolveBase(base, id); err == nil {
				base = resolved
				r[base] = n
			}
		}
		for key, child := range n {
			switch key {
			case "enum", "const", "default", "examples":
				continue
			}
			r.index(base, child)
		}
	case []any:
		for _, child := range n {
			r.index(base, child)
		}
	}
}

func resolveBase(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	resolved := b.ResolveReference(u)
	resolved.Fragment = ""
	return resolved.String(), nil
}

// splitLocation separates an absolute keyword location into base URL and fragment.
func splitLocation(loc string) (base, fragment string) {
	if i := strings.IndexByte(loc, '#'); i >= 0 {
		return loc[:i], loc[i+1:]
	}
	return loc, ""
}

// lookup resolves a JSON pointer inside a decoded schema.
func lookup(node any, pointer string) (any, bool) {
	raw, decoded := pointerTokens(pointer)
	for i, tok := range decoded {
		switch n := node.(type) {
		case map[string]any:
			child, ok := n[tok]
			if !ok {
				child, ok = n[raw[i]]
			}
			if !ok {
				return nil, false
			}
			node = child
		case []any:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(n) {
				return nil, false
			}
			node = n[idx]
		default:
			return nil, false
		}
	}
	return node, true
}

// truthy mirrors the emptiness rule used for document leaves.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// stringify renders a keyword value: strings verbatim, everything else as compact JSON.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
