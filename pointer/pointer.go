// Package pointer implements RFC 6901 JSON Pointers and their URI
// fragment encoding.
package pointer

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// Pointer is an ordered sequence of JSON Pointer segments.
//
// A segment is either an object key, the literal "-" (array append), or a
// decimal array index. Pointer is immutable; Append and Child return a new
// value with its own copy of the segments.
type Pointer struct {
	segments []string
}

// Root is the empty pointer, addressing the whole document.
var Root = Pointer{}

// Append returns a new Pointer with seg appended.
func (p Pointer) Append(seg string) Pointer {
	segments := make([]string, len(p.segments), len(p.segments)+1)
	copy(segments, p.segments)
	segments = append(segments, seg)
	return Pointer{segments: segments}
}

// Child is Append for an array index.
func (p Pointer) Child(idx int) Pointer {
	return p.Append(strconv.Itoa(idx))
}

// Segments returns the pointer's segments. The returned slice must not be
// modified.
func (p Pointer) Segments() []string {
	return p.segments
}

// IsRoot reports whether p addresses the document root.
func (p Pointer) IsRoot() bool {
	return len(p.segments) == 0
}

// Equal reports whether p and other address the same location.
func (p Pointer) Equal(other Pointer) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, seg := range p.segments {
		if seg != other.segments[i] {
			return false
		}
	}
	return true
}

var escapeReplacer = strings.NewReplacer("~", "~0", "/", "~1")
var unescapeReplacer = strings.NewReplacer("~1", "/", "~0", "~")

func escape(seg string) string {
	if !strings.ContainsAny(seg, "~/") {
		return seg
	}
	return escapeReplacer.Replace(seg)
}

func unescape(seg string) string {
	if !strings.Contains(seg, "~") {
		return seg
	}
	return unescapeReplacer.Replace(seg)
}

// String renders p in RFC 6901 string syntax, e.g. "/a/b~1c/0".
func (p Pointer) String() string {
	if p.IsRoot() {
		return ""
	}
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(escape(seg))
	}
	return b.String()
}

// Fragment renders p as a URI fragment, e.g. "#/a/b~1c/0".
func (p Pointer) Fragment() string {
	return "#" + p.String()
}

// Parse parses the RFC 6901 string form of a JSON Pointer (without a
// leading "#").
func Parse(s string) (Pointer, error) {
	if s == "" {
		return Root, nil
	}
	if s[0] != '/' {
		return Pointer{}, errors.Errorf("invalid pointer %q: must start with '/'", s)
	}
	parts := strings.Split(s[1:], "/")
	segments := make([]string, len(parts))
	for i, part := range parts {
		segments[i] = unescape(part)
	}
	return Pointer{segments: segments}, nil
}

// ParseFragment parses the URI-fragment form ("#/a/b") of a JSON Pointer.
func ParseFragment(s string) (Pointer, error) {
	s = strings.TrimPrefix(s, "#")
	return Parse(s)
}
