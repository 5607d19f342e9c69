package cssfeatures

import (
	"fmt"
	"strings"
)

// nativeQuery asks the browser itself whether any of props accepts value.
// known is false when the host has neither CSS.supports nor @supports, in
// which case the caller falls back to probing the style declaration.
func (e *engine) nativeQuery(props []string, value string) (supported, known bool) {
	if e.win.HasCSSSupports() {
		for i := len(props) - 1; i >= 0; i-- {
			if e.win.CSSSupports(DOMToCSS(props[i]), value) {
				return true, true
			}
		}
		return false, true
	}

	if e.win.HasSupportsRule() {
		conditions := make([]string, 0, len(props))
		for i := len(props) - 1; i >= 0; i-- {
			conditions = append(conditions, fmt.Sprintf("(%s:%s)", DOMToCSS(props[i]), value))
		}
		rule := fmt.Sprintf("@supports (%s) { #%s { position: absolute; } }", strings.Join(conditions, " or "), injectID)
		inconclusive := false
		supported := e.inject(rule, func(node Element, _ string) bool {
			position, ok := e.computedStyle(node, "", "position")
			if !ok {
				inconclusive = true
				return false
			}
			return position == "absolute"
		}, 0, nil)
		if inconclusive {
			return false, false
		}
		return supported, true
	}

	return false, false
}

// computedStyle resolves prop on el. ok is false when nothing could be
// resolved, including the null getComputedStyle result returned inside
// hidden frames by some engines.
func (e *engine) computedStyle(el Element, pseudo, prop string) (string, bool) {
	cs, ok := e.win.ComputedStyle(el, pseudo)
	if ok {
		if cs == nil {
			e.log.Warn("getComputedStyle returned null, detection results may be inaccurate",
				"element", el.NodeName(), "property", prop)
			return "", false
		}
		return cs.PropertyValue(prop), true
	}

	if pseudo != "" {
		return "", false
	}
	if cur, ok := el.(CurrentStyler); ok {
		return cur.CurrentStyle(prop)
	}
	return "", false
}
