package cssfeatures

// The engine reaches the browser only through the interfaces below.
// Package jsdom implements them on top of syscall/js, package simdom
// implements them in memory for tests and offline runs.

// Object is a host object whose members can be looked up by name,
// with the semantics of the JavaScript `in` operator.
type Object interface {
	// Member returns the member value and whether the object has it at all.
	// Methods are returned as [Func].
	Member(name string) (any, bool)
}

// Func is a host method. this is the receiver it runs against.
type Func func(this Object, args ...any) any

// BoundFunc is a [Func] whose receiver has been fixed.
type BoundFunc func(args ...any) any

// Node is anything that can be appended to an [Element].
type Node interface {
	// ParentNode returns the parent element, or nil when detached.
	ParentNode() Element
}

// Element is the subset of a DOM element used by the engine.
type Element interface {
	Node
	Object

	NodeName() string
	ID() string
	SetID(id string)
	SetAttribute(name, value string)

	// Style returns the inline style declaration, or nil for elements
	// without a style interface (e.g. unknown tags in strict XML documents).
	Style() Style

	AppendChild(child Node)
	RemoveChild(child Node)

	// ClassName reads the class attribute. For SVG roots this is the
	// animated baseVal.
	ClassName() string
	SetClassName(name string)

	// OffsetHeight reads the layout height, forcing a layout pass.
	OffsetHeight() float64
}

// Style is a live CSS style declaration keyed by camel-case property name.
type Style interface {
	// Property returns the current value; ok is false when the declaration
	// does not know the property at all.
	Property(name string) (value string, ok bool)
	// SetProperty assigns a value. Old engines reject some assignments
	// outright; that is reported as an error.
	SetProperty(name, value string) error
}

// LegacyStyleSheet is implemented by style elements that take their rules
// through styleSheet.cssText instead of child text nodes.
type LegacyStyleSheet interface {
	// SetStyleSheetCSSText reports false when the element has no styleSheet.
	SetStyleSheetCSSText(css string) bool
}

// CurrentStyler is implemented by elements exposing the legacy
// currentStyle object, used when the window has no getComputedStyle.
type CurrentStyler interface {
	CurrentStyle(property string) (string, bool)
}

// ComputedStyle is a resolved style declaration, keyed by kebab-case name.
type ComputedStyle interface {
	PropertyValue(name string) string
}

// Document is the subset of the DOM document used by the engine.
type Document interface {
	DocumentElement() Element
	// Body returns nil while the document has no body yet.
	Body() Element
	CreateElement(tag string) Element
	CreateElementNS(namespace, tag string) Element
	CreateTextNode(data string) Node
}

// Window is the global object of the host page.
type Window interface {
	Object

	Document() Document

	// HasCSSSupports reports whether CSS.supports exists.
	HasCSSSupports() bool
	CSSSupports(property, value string) bool

	// HasSupportsRule reports whether the @supports at-rule is understood
	// (CSSSupportsRule exists).
	HasSupportsRule() bool

	// ComputedStyle wraps getComputedStyle. ok is false when the window
	// has no getComputedStyle; a nil style with ok true is the null result
	// some engines return inside hidden frames.
	ComputedStyle(el Element, pseudo string) (cs ComputedStyle, ok bool)
}

const svgNamespace = "http://www.w3.org/2000/svg"
