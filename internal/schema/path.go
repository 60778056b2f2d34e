package schema

import (
	"cmp"
	"net/url"
	"strconv"
	"strings"

	"github.com/simonhull/firebird-suite/nest/internal/document"
)

// RootLocation is the location reported for violations at the document root.
const RootLocation = "root"

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path locates a node inside a document.
type Path []Segment

// Location joins the segments with " -> ", or returns RootLocation for the root.
func (p Path) Location() string {
	if len(p) == 0 {
		return RootLocation
	}
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.String()
	}
	return strings.Join(parts, " -> ")
}

// Compare orders paths segment by segment; a prefix sorts first.
// Indexes sort numerically, keys lexically, and an index sorts before a key.
func (p Path) Compare(other Path) int {
	for i := 0; i < len(p) && i < len(other); i++ {
		if c := compareSegments(p[i], other[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(p), len(other))
}

func compareSegments(a, b Segment) int {
	switch {
	case a.IsIndex && b.IsIndex:
		return cmp.Compare(a.Index, b.Index)
	case a.IsIndex:
		return -1
	case b.IsIndex:
		return 1
	default:
		return strings.Compare(a.Key, b.Key)
	}
}

// pointerTokens splits a JSON pointer (optionally percent-encoded, as found in
// URI fragments) into raw and decoded tokens.
func pointerTokens(pointer string) (raw, decoded []string) {
	if pointer == "" {
		return nil, nil
	}
	raw = strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	decoded = make([]string, len(raw))
	for i, tok := range raw {
		decoded[i] = decodeToken(tok)
	}
	return raw, decoded
}

func decodeToken(tok string) string {
	if unescaped, err := url.PathUnescape(tok); err == nil {
		tok = unescaped
	}
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}

// instancePath converts an instance location into a Path, using the document
// to tell array indexes from object keys.
func instancePath(doc document.Value, pointer string) Path {
	raw, decoded := pointerTokens(pointer)
	if len(decoded) == 0 {
		return Path{}
	}

	path := make(Path, 0, len(decoded))
	node := doc
	for i, tok := range decoded {
		switch n := node.(type) {
		case document.Array:
			if idx, err := strconv.Atoi(tok); err == nil && idx >= 0 && idx < len(n) {
				path = append(path, Segment{Index: idx, IsIndex: true})
				node = n[idx]
				continue
			}
		case document.Object:
			if child, ok := n[tok]; ok {
				path = append(path, Segment{Key: tok})
				node = child
				continue
			}
			if child, ok := n[raw[i]]; ok {
				path = append(path, Segment{Key: raw[i]})
				node = child
				continue
			}
		}
		path = append(path, Segment{Key: tok})
		node = nil
	}
	return path
}
