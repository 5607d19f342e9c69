// Package simdom implements the cssfeatures host interfaces in memory.
//
// A [Window] simulates a browser described by a [Profile]: which style
// properties and values it recognizes, whether it has CSS.supports or
// understands @supports rules, and the historical quirks the detection
// engine works around (hidden-frame getComputedStyle returning null,
// rejected style assignments, legacy styleSheet.cssText, SVG documents,
// documents without a body). Injected stylesheets are parsed and applied
// when computed styles are read, so the @supports path runs end to end.
//
// The window also counts what the engine did to it ([Document.Created],
// [Document.LayoutReads], [Window.SupportsCalls]), which tests use as spies.
package simdom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leodido/cssfeatures"
)

// Window is a simulated browser window.
type Window struct {
	profile       *Profile
	doc           *Document
	supportsCalls int
}

// New creates a window with a fresh document for p.
func New(p *Profile) *Window {
	if p == nil {
		p = &Profile{}
	}
	w := &Window{profile: p}
	d := &Document{win: w, created: map[string]int{}}
	w.doc = d

	if p.SVG {
		d.root = d.newElement(svgNamespace, "svg")
	} else {
		d.root = d.newElement("", "html")
	}
	d.root.class = p.RootClass

	if !p.NoBody {
		d.body = d.newElement("", "body")
		d.root.AppendChild(d.body)
	}
	return w
}

const svgNamespace = "http://www.w3.org/2000/svg"

// Profile returns the profile the window simulates.
func (w *Window) Profile() *Profile {
	return w.profile
}

// Doc returns the concrete document.
func (w *Window) Doc() *Document {
	return w.doc
}

// SupportsCalls returns how many times CSS.supports was called.
func (w *Window) SupportsCalls() int {
	return w.supportsCalls
}

// Call is what a simulated window method returns: the method name, the
// receiver it was invoked on and its arguments.
type Call struct {
	Method string
	This   cssfeatures.Object
	Args   []any
}

func (w *Window) Member(name string) (any, bool) {
	v, ok := w.profile.Globals[name]
	if !ok {
		return nil, false
	}
	if v == "function" {
		return cssfeatures.Func(func(this cssfeatures.Object, args ...any) any {
			return Call{Method: name, This: this, Args: args}
		}), true
	}
	return v, true
}

func (w *Window) Document() cssfeatures.Document {
	return w.doc
}

func (w *Window) HasCSSSupports() bool {
	return w.profile.CSSSupports
}

func (w *Window) CSSSupports(property, value string) bool {
	w.supportsCalls++
	return w.profile.supports(property, value)
}

func (w *Window) HasSupportsRule() bool {
	return w.profile.SupportsRule
}

func (w *Window) ComputedStyle(el cssfeatures.Element, _ string) (cssfeatures.ComputedStyle, bool) {
	if w.profile.NoComputedStyle {
		return nil, false
	}
	if w.profile.HiddenFrame {
		return nil, true
	}
	e, ok := el.(*Element)
	if !ok {
		return nil, true
	}
	return computed{win: w, el: e}, true
}

type computed struct {
	win *Window
	el  *Element
}

func (c computed) PropertyValue(name string) string {
	return c.win.resolve(c.el, name)
}

// Document is a simulated document.
type Document struct {
	win         *Window
	root        *Element
	body        *Element
	created     map[string]int
	layoutReads int
}

func (d *Document) newElement(ns, tag string) *Element {
	tag = strings.ToLower(tag)
	d.created[tag]++
	e := &Element{doc: d, ns: ns, tag: tag, attrs: map[string]string{}}
	if !slices.Contains(d.win.profile.StylelessTags, tag) {
		e.style = &Style{profile: d.win.profile, values: map[string]string{}}
	}
	return e
}

func (d *Document) DocumentElement() cssfeatures.Element {
	return d.root
}

func (d *Document) Body() cssfeatures.Element {
	if d.body == nil {
		return nil
	}
	return d.body
}

func (d *Document) CreateElement(tag string) cssfeatures.Element {
	return d.newElement("", tag)
}

func (d *Document) CreateElementNS(namespace, tag string) cssfeatures.Element {
	return d.newElement(namespace, tag)
}

func (d *Document) CreateTextNode(data string) cssfeatures.Node {
	return &Text{Data: data}
}

// Root returns the concrete root element.
func (d *Document) Root() *Element {
	return d.root
}

// BodyElement returns the concrete body, or nil.
func (d *Document) BodyElement() *Element {
	return d.body
}

// Created returns how many elements with tag were created.
func (d *Document) Created(tag string) int {
	return d.created[strings.ToLower(tag)]
}

// LayoutReads returns how many times a layout was forced.
func (d *Document) LayoutReads() int {
	return d.layoutReads
}

// styleSheets returns the text of every style element attached to the document.
func (d *Document) styleSheets() []string {
	var sheets []string
	var walk func(e *Element)
	walk = func(e *Element) {
		if e.tag == "style" {
			sheets = append(sheets, e.sheetText())
		}
		for _, c := range e.children {
			if ce, ok := c.(*Element); ok {
				walk(ce)
			}
		}
	}
	walk(d.root)
	return sheets
}

// parentSetter is implemented by every simulated node.
type parentSetter interface {
	setParent(p *Element)
	parent() *Element
}

// Text is a simulated text node.
type Text struct {
	Data string
	p    *Element
}

func (t *Text) ParentNode() cssfeatures.Element {
	if t.p == nil {
		return nil
	}
	return t.p
}

func (t *Text) setParent(p *Element) { t.p = p }
func (t *Text) parent() *Element     { return t.p }

// Element is a simulated element.
type Element struct {
	doc      *Document
	ns       string
	tag      string
	id       string
	class    string
	attrs    map[string]string
	style    *Style
	children []cssfeatures.Node
	p        *Element
	cssText  string
}

func (e *Element) setParent(p *Element) { e.p = p }
func (e *Element) parent() *Element     { return e.p }

func (e *Element) ParentNode() cssfeatures.Element {
	if e.p == nil {
		return nil
	}
	return e.p
}

// Member reports no members: simulated elements expose only the DOM
// interface.
func (e *Element) Member(string) (any, bool) {
	return nil, false
}

func (e *Element) NodeName() string {
	if e.ns == svgNamespace {
		return e.tag
	}
	return strings.ToUpper(e.tag)
}

func (e *Element) ID() string {
	return e.id
}

func (e *Element) SetID(id string) {
	e.id = id
}

func (e *Element) SetAttribute(name, value string) {
	e.attrs[name] = value
}

// Attribute returns an attribute set through SetAttribute.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) Style() cssfeatures.Style {
	if e.style == nil {
		return nil
	}
	return e.style
}

// InlineStyle returns the concrete style declaration, or nil.
func (e *Element) InlineStyle() *Style {
	return e.style
}

func (e *Element) AppendChild(child cssfeatures.Node) {
	n, ok := child.(parentSetter)
	if !ok {
		panic(fmt.Sprintf("simdom: foreign node %T", child))
	}
	if old := n.parent(); old != nil {
		old.RemoveChild(child)
	}
	n.setParent(e)
	e.children = append(e.children, child)
}

func (e *Element) RemoveChild(child cssfeatures.Node) {
	i := slices.Index(e.children, child)
	if i < 0 {
		panic("simdom: node is not a child of this element")
	}
	e.children = slices.Delete(e.children, i, i+1)
	child.(parentSetter).setParent(nil)
}

// Children returns the child nodes.
func (e *Element) Children() []cssfeatures.Node {
	return slices.Clone(e.children)
}

func (e *Element) ClassName() string {
	return e.class
}

func (e *Element) SetClassName(name string) {
	e.class = name
}

func (e *Element) OffsetHeight() float64 {
	e.doc.layoutReads++
	return 0
}

// SetStyleSheetCSSText implements the legacy styleSheet.cssText path for
// style elements when the profile asks for it.
func (e *Element) SetStyleSheetCSSText(css string) bool {
	if e.tag != "style" || !e.doc.win.profile.LegacyStyleSheet {
		return false
	}
	e.cssText = css
	return true
}

// CurrentStyle implements the legacy currentStyle lookup for profiles
// without getComputedStyle.
func (e *Element) CurrentStyle(property string) (string, bool) {
	if !e.doc.win.profile.NoComputedStyle {
		return "", false
	}
	return e.doc.win.resolve(e, cssfeatures.DOMToCSS(property)), true
}

// Attached reports whether the element is in the document tree.
func (e *Element) Attached() bool {
	for n := e; n != nil; n = n.p {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

func (e *Element) sheetText() string {
	if e.cssText != "" {
		return e.cssText
	}
	var b strings.Builder
	for _, c := range e.children {
		if t, ok := c.(*Text); ok {
			b.WriteString(t.Data)
		}
	}
	return b.String()
}

// Style is a simulated inline style declaration.
type Style struct {
	profile *Profile
	values  map[string]string
}

func (s *Style) Property(name string) (string, bool) {
	if !s.profile.knows(name) {
		return "", false
	}
	return s.values[name], true
}

func (s *Style) SetProperty(name, value string) error {
	if !s.profile.knows(name) {
		return nil
	}
	if value == "" {
		delete(s.values, name)
		return nil
	}
	if s.profile.accepts(name, value) {
		s.values[name] = value
		return nil
	}
	if s.profile.RejectAssign {
		return fmt.Errorf("simdom: invalid argument %q for %s", value, name)
	}
	return nil
}

// Values returns a copy of the values set on the declaration.
func (s *Style) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
