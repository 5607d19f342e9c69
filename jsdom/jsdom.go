//go:build js && wasm

package jsdom

import (
	"fmt"
	"syscall/js"

	"github.com/leodido/cssfeatures"
)

// Valuer is implemented by every wrapper in this package.
type Valuer interface {
	JSValue() js.Value
}

func absent(v js.Value) bool {
	return v.IsUndefined() || v.IsNull()
}

func isObject(v js.Value) bool {
	t := v.Type()
	return t == js.TypeObject || t == js.TypeFunction
}

// has is the `in` operator.
func has(v js.Value, name string) bool {
	if !isObject(v) {
		return false
	}
	return js.Global().Get("Reflect").Call("has", v, name).Bool()
}

// member looks name up on v. Functions come back as cssfeatures.Func,
// called against the receiver they are given, or v when it is not a
// jsdom wrapper.
func member(v js.Value, name string) (any, bool) {
	if !has(v, name) {
		return nil, false
	}
	m := v.Get(name)
	if m.Type() != js.TypeFunction {
		return m, true
	}
	return cssfeatures.Func(func(this cssfeatures.Object, args ...any) any {
		recv := v
		if jv, ok := this.(Valuer); ok {
			recv = jv.JSValue()
		}
		return m.Call("call", append([]any{recv}, args...)...)
	}), true
}

func unwrap(n cssfeatures.Node) js.Value {
	if jv, ok := n.(Valuer); ok {
		return jv.JSValue()
	}
	panic(fmt.Sprintf("jsdom: foreign node %T", n))
}

// Window wraps a window object.
type Window struct {
	v js.Value
}

// Global returns the window the program runs in.
func Global() *Window {
	return &Window{v: js.Global()}
}

// Wrap wraps an arbitrary window object, such as an iframe's contentWindow.
func Wrap(v js.Value) *Window {
	return &Window{v: v}
}

func (w *Window) JSValue() js.Value { return w.v }

func (w *Window) Member(name string) (any, bool) {
	return member(w.v, name)
}

func (w *Window) Document() cssfeatures.Document {
	d := w.v.Get("document")
	if absent(d) {
		return nil
	}
	return &Document{v: d}
}

func (w *Window) HasCSSSupports() bool {
	css := w.v.Get("CSS")
	return has(css, "supports") && css.Get("supports").Type() == js.TypeFunction
}

func (w *Window) CSSSupports(property, value string) bool {
	return w.v.Get("CSS").Call("supports", property, value).Bool()
}

func (w *Window) HasSupportsRule() bool {
	return has(w.v, "CSSSupportsRule")
}

func (w *Window) ComputedStyle(el cssfeatures.Element, pseudo string) (cssfeatures.ComputedStyle, bool) {
	if !has(w.v, "getComputedStyle") {
		return nil, false
	}
	var p any
	if pseudo != "" {
		p = pseudo
	}
	cs := w.v.Call("getComputedStyle", unwrap(el), p)
	if absent(cs) {
		return nil, true
	}
	return computed{v: cs}, true
}

type computed struct {
	v js.Value
}

func (c computed) PropertyValue(name string) string {
	return c.v.Call("getPropertyValue", name).String()
}

// Document wraps a document object.
type Document struct {
	v js.Value
}

func (d *Document) JSValue() js.Value { return d.v }

func (d *Document) DocumentElement() cssfeatures.Element {
	return wrapElement(d.v.Get("documentElement"))
}

func (d *Document) Body() cssfeatures.Element {
	return wrapElement(d.v.Get("body"))
}

func (d *Document) CreateElement(tag string) cssfeatures.Element {
	return wrapElement(d.v.Call("createElement", tag))
}

func (d *Document) CreateElementNS(namespace, tag string) cssfeatures.Element {
	return wrapElement(d.v.Call("createElementNS", namespace, tag))
}

func (d *Document) CreateTextNode(data string) cssfeatures.Node {
	return &Text{v: d.v.Call("createTextNode", data)}
}

const elementNode = 1

func wrapElement(v js.Value) cssfeatures.Element {
	if absent(v) || v.Get("nodeType").Int() != elementNode {
		return nil
	}
	return &Element{v: v}
}

// Text wraps a text node.
type Text struct {
	v js.Value
}

func (t *Text) JSValue() js.Value { return t.v }

func (t *Text) ParentNode() cssfeatures.Element {
	return wrapElement(t.v.Get("parentNode"))
}

// Element wraps an element.
type Element struct {
	v js.Value
}

func (e *Element) JSValue() js.Value { return e.v }

func (e *Element) ParentNode() cssfeatures.Element {
	return wrapElement(e.v.Get("parentNode"))
}

func (e *Element) Member(name string) (any, bool) {
	return member(e.v, name)
}

func (e *Element) NodeName() string {
	return e.v.Get("nodeName").String()
}

func (e *Element) ID() string {
	return e.v.Get("id").String()
}

func (e *Element) SetID(id string) {
	e.v.Set("id", id)
}

func (e *Element) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *Element) Style() cssfeatures.Style {
	s := e.v.Get("style")
	if absent(s) {
		return nil
	}
	return &Style{v: s}
}

func (e *Element) AppendChild(child cssfeatures.Node) {
	e.v.Call("appendChild", unwrap(child))
}

func (e *Element) RemoveChild(child cssfeatures.Node) {
	e.v.Call("removeChild", unwrap(child))
}

// ClassName goes through the class attribute, since className is an
// SVGAnimatedString on SVG elements.
func (e *Element) ClassName() string {
	c := e.v.Call("getAttribute", "class")
	if absent(c) {
		return ""
	}
	return c.String()
}

func (e *Element) SetClassName(name string) {
	e.v.Call("setAttribute", "class", name)
}

func (e *Element) OffsetHeight() float64 {
	h := e.v.Get("offsetHeight")
	if h.Type() != js.TypeNumber {
		return 0
	}
	return h.Float()
}

func (e *Element) SetStyleSheetCSSText(css string) bool {
	ss := e.v.Get("styleSheet")
	if absent(ss) {
		return false
	}
	ss.Set("cssText", css)
	return true
}

func (e *Element) CurrentStyle(property string) (string, bool) {
	cs := e.v.Get("currentStyle")
	if absent(cs) {
		return "", false
	}
	v := cs.Get(cssfeatures.CSSToDOM(property))
	if absent(v) {
		return "", false
	}
	return v.String(), true
}

// Style wraps a CSSStyleDeclaration.
type Style struct {
	v js.Value
}

func (s *Style) JSValue() js.Value { return s.v }

func (s *Style) Property(name string) (string, bool) {
	if !has(s.v, name) {
		return "", false
	}
	v := s.v.Get(name)
	if absent(v) {
		return "", true
	}
	return v.String(), true
}

// SetProperty assigns through Reflect.set, so an engine throwing on an
// invalid value is reported as an error.
func (s *Style) SetProperty(name, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jerr, ok := r.(js.Error); ok {
				err = jerr
				return
			}
			err = fmt.Errorf("jsdom: set %s: %v", name, r)
		}
	}()
	js.Global().Get("Reflect").Call("set", s.v, name, value)
	return nil
}
