package cssfeatures

import (
	"regexp"
	"strings"
)

var hyphenBoundary = regexp.MustCompile(`([a-z])-([a-z])`)

// CSSToDOM converts a kebab-case CSS property name to its camel-case DOM
// form, e.g. box-sizing becomes boxSizing. A leading hyphen is dropped.
func CSSToDOM(name string) string {
	s := hyphenBoundary.ReplaceAllStringFunc(name, func(m string) string {
		return m[:1] + strings.ToUpper(m[2:])
	})
	return strings.TrimPrefix(s, "-")
}

// DOMToCSS converts a camel-case DOM property name to kebab-case, e.g.
// boxSizing becomes box-sizing. The lowercase ms vendor prefix gets its
// leading hyphen back: msTransform becomes -ms-transform.
func DOMToCSS(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('-')
			b.WriteByte(c + ('a' - 'A'))
			continue
		}
		b.WriteByte(c)
	}
	s := b.String()
	if strings.HasPrefix(s, "ms-") {
		s = "-" + s
	}
	return s
}

func capitalize(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
