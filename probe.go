package cssfeatures

import (
	"strings"

	"github.com/charmbracelet/log"
)

// engine holds everything the probes share for the lifetime of a detector.
type engine struct {
	win     Window
	doc     Document
	root    Element
	isSVG   bool
	log     *log.Logger
	cssom   []string
	dom     []string
	scratch *scratchPool
}

func newEngine(win Window, cfg Config, logger *log.Logger) (*engine, error) {
	if win == nil {
		return nil, ErrNoDocument
	}
	doc := win.Document()
	if doc == nil || doc.DocumentElement() == nil {
		return nil, ErrNoDocument
	}
	e := &engine{
		win:   win,
		doc:   doc,
		root:  doc.DocumentElement(),
		log:   logger,
		cssom: cfg.cssomPrefixes(),
		dom:   cfg.domPrefixes(),
	}
	e.isSVG = strings.EqualFold(e.root.NodeName(), "svg")
	e.scratch = newScratchPool(e)
	return e, nil
}

// createElement creates tag in the document's namespace.
func (e *engine) createElement(tag string) Element {
	if e.isSVG {
		return e.doc.CreateElementNS(svgNamespace, tag)
	}
	return e.doc.CreateElement(tag)
}

// propConfig holds the configuration for a style property probe.
type propConfig struct {
	value         string
	hasValue      bool
	skipValueTest bool
}

// PropOption configures a style property probe.
type PropOption func(*propConfig)

// WithValue also requires the property to accept value. An empty value is
// never accepted, matching CSS.supports.
func WithValue(value string) PropOption {
	return func(c *propConfig) {
		c.value = value
		c.hasValue = true
	}
}

// SkipValueTest accepts the property on presence alone when the browser
// has no native support query, instead of assigning the value and
// checking that it sticks.
func SkipValueTest() PropOption {
	return func(c *propConfig) {
		c.skipValueTest = true
	}
}

type probeMode int

const (
	modeBool probeMode = iota
	// modePfx returns the matched property name instead of true.
	modePfx
)

// styleCandidates lists prop, every CSSOM-prefixed variant, then prop again.
func (e *engine) styleCandidates(prop string) []string {
	uc := capitalize(prop)
	props := make([]string, 0, len(e.cssom)+2)
	props = append(props, prop)
	for _, p := range e.cssom {
		props = append(props, p+uc)
	}
	return append(props, prop)
}

// domCandidates lists prop and every DOM-prefixed variant.
func (e *engine) domCandidates(prop string) []string {
	uc := capitalize(prop)
	props := make([]string, 0, len(e.dom)+1)
	props = append(props, prop)
	for _, p := range e.dom {
		props = append(props, p+uc)
	}
	return props
}

// testPropsAll probes prop and its vendor-prefixed variants on the
// scratch style declaration. The first candidate that matches wins.
func (e *engine) testPropsAll(prop string, mode probeMode, opts ...PropOption) Value {
	cfg := &propConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return e.testProps(e.styleCandidates(prop), mode, cfg)
}

func (e *engine) testProps(props []string, mode probeMode, cfg *propConfig) Value {
	miss := BoolValue(false)

	if cfg.hasValue {
		if supported, known := e.nativeQuery(props, cfg.value); known {
			return BoolValue(supported)
		}
	}

	h := e.scratch.acquire(e)
	defer h.release()
	if h.style == nil {
		return miss
	}

	for _, prop := range props {
		if strings.Contains(prop, "-") {
			prop = CSSToDOM(prop)
		}
		before, ok := h.style.Property(prop)
		if !ok {
			continue
		}

		if cfg.skipValueTest || !cfg.hasValue {
			return matched(prop, mode)
		}

		// Old engines reject unsupported values by raising; that is the
		// same as the value not sticking.
		attemptAssign(h.style, prop, cfg.value)
		after, _ := h.style.Property(prop)
		attemptAssign(h.style, prop, before)
		if after != before {
			return matched(prop, mode)
		}
	}
	return miss
}

func matched(prop string, mode probeMode) Value {
	if mode == modePfx {
		return NameValue(prop)
	}
	return BoolValue(true)
}

// testDOMProps looks props up on obj. Methods come back bound to bind, or
// to obj when bind is nil. With nameOnly the matched name is returned.
func testDOMProps(props []string, obj, bind Object, nameOnly bool) (any, bool) {
	for _, prop := range props {
		item, ok := obj.Member(prop)
		if !ok {
			continue
		}
		if nameOnly {
			return prop, true
		}
		if fn, ok := item.(Func); ok {
			this := bind
			if this == nil {
				this = obj
			}
			return BoundFunc(func(args ...any) any {
				return fn(this, args...)
			}), true
		}
		return item, true
	}
	return nil, false
}

func (e *engine) testAllProps(prop string, opts ...PropOption) bool {
	return e.testPropsAll(prop, modeBool, opts...).Supported()
}

// prefixed falls back to prop itself when a native query answered, since
// the native query cannot tell which candidate matched.
func (e *engine) prefixed(prop string, opts ...PropOption) (string, bool) {
	v := e.testPropsAll(prop, modePfx, opts...)
	if name, ok := v.Name(); ok {
		return name, name != ""
	}
	if v.Supported() {
		return prop, true
	}
	return "", false
}

func (e *engine) prefixedDOM(prop string, obj, bind Object) (any, bool) {
	if obj == nil {
		return nil, false
	}
	return testDOMProps(e.domCandidates(prop), obj, bind, false)
}

func (e *engine) prefixedName(prop string, obj Object) (string, bool) {
	if obj == nil {
		return "", false
	}
	name, ok := testDOMProps(e.domCandidates(prop), obj, nil, true)
	if !ok {
		return "", false
	}
	return name.(string), true
}
