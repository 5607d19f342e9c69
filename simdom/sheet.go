package simdom

import (
	"errors"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/leodido/cssfeatures"
)

// Computed values of the base properties when nothing sets them.
var initialValues = map[string]string{
	"position": "static",
	"display":  "block",
	"overflow": "visible",
}

// resolve computes property (kebab-case) for el: matching #id rules of
// every attached stylesheet in document order, then the inline style, then
// the initial value.
func (w *Window) resolve(el *Element, property string) string {
	property = strings.ToLower(strings.TrimSpace(property))
	value := ""

	if el.id != "" && el.Attached() {
		for _, text := range w.doc.styleSheets() {
			sheet, err := parser.Parse(text)
			if err != nil {
				continue
			}
			value = w.cascade(sheet.Rules, "#"+el.id, property, value)
		}
	}

	if el.style != nil {
		if v := el.style.values[cssfeatures.CSSToDOM(property)]; v != "" {
			value = v
		}
	}

	if value == "" {
		value = initialValues[property]
	}
	return value
}

func (w *Window) cascade(rules []*css.Rule, selector, property, value string) string {
	for _, r := range rules {
		switch r.Kind {
		case css.QualifiedRule:
			if !matchesSelector(r.Selectors, selector) {
				continue
			}
			for _, d := range r.Declarations {
				if strings.EqualFold(d.Property, property) {
					value = d.Value
				}
			}
		case css.AtRule:
			if strings.TrimPrefix(strings.ToLower(r.Name), "@") != "supports" {
				continue
			}
			if !w.profile.SupportsRule {
				continue
			}
			if ok, err := w.profile.evalSupports(r.Prelude); err == nil && ok {
				value = w.cascade(r.Rules, selector, property, value)
			}
		}
	}
	return value
}

func matchesSelector(selectors []string, selector string) bool {
	for _, s := range selectors {
		if strings.TrimSpace(s) == selector {
			return true
		}
	}
	return false
}

var errSupportsSyntax = errors.New("malformed @supports condition")

// evalSupports evaluates an @supports prelude such as
// "((flex-basis:1px) or (-webkit-flex-basis:1px))".
func (p *Profile) evalSupports(prelude string) (bool, error) {
	c := &condition{src: prelude, profile: p}
	ok, err := c.parse()
	if err != nil {
		return false, err
	}
	c.skipSpace()
	if c.pos != len(c.src) {
		return false, errSupportsSyntax
	}
	return ok, nil
}

type condition struct {
	src     string
	pos     int
	profile *Profile
}

func (c *condition) skipSpace() {
	for c.pos < len(c.src) && strings.ContainsRune(" \t\r\n", rune(c.src[c.pos])) {
		c.pos++
	}
}

// keyword consumes word when it appears at the cursor followed by a space
// or an opening parenthesis.
func (c *condition) keyword(word string) bool {
	c.skipSpace()
	end := c.pos + len(word)
	if end >= len(c.src) || !strings.EqualFold(c.src[c.pos:end], word) {
		return false
	}
	if next := c.src[end]; next != ' ' && next != '(' && next != '\t' && next != '\n' {
		return false
	}
	c.pos = end
	return true
}

func (c *condition) parse() (bool, error) {
	result, err := c.term()
	if err != nil {
		return false, err
	}
	for {
		switch {
		case c.keyword("or"):
			rhs, err := c.term()
			if err != nil {
				return false, err
			}
			result = result || rhs
		case c.keyword("and"):
			rhs, err := c.term()
			if err != nil {
				return false, err
			}
			result = result && rhs
		default:
			return result, nil
		}
	}
}

func (c *condition) term() (bool, error) {
	if c.keyword("not") {
		v, err := c.term()
		return !v, err
	}
	c.skipSpace()
	if c.pos >= len(c.src) || c.src[c.pos] != '(' {
		return false, errSupportsSyntax
	}

	depth, end := 0, -1
	for i := c.pos; i < len(c.src) && end < 0; i++ {
		switch c.src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end = i
			}
		}
	}
	if end < 0 {
		return false, errSupportsSyntax
	}
	inner := strings.TrimSpace(c.src[c.pos+1 : end])
	c.pos = end + 1

	if strings.HasPrefix(inner, "(") || strings.HasPrefix(strings.ToLower(inner), "not ") {
		return c.profile.evalSupports(inner)
	}
	property, value, ok := strings.Cut(inner, ":")
	if !ok {
		return false, nil
	}
	return c.profile.supports(property, value), nil
}
