package cssfeatures

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Test computes the value of one detect.
type Test func() Value

// Recorder records the value of name on behalf of an async detect.
type Recorder func(name string, v Value) error

// AsyncTest runs in registration order but records its own results,
// possibly after the pass, through record.
type AsyncTest func(record Recorder)

// testOptions holds the configuration of a registered detect.
type testOptions struct {
	aliases []string
}

// TestOption configures a registered detect.
type TestOption func(*testOptions)

// WithAliases records the same value under additional names.
func WithAliases(aliases ...string) TestOption {
	return func(o *testOptions) {
		o.aliases = append(o.aliases, aliases...)
	}
}

type test struct {
	keys  []string
	fn    Test
	async AsyncTest
}

// Detector is a one-shot detection pass: detects are registered, then
// [Detector.Run] evaluates each of them once and returns the results.
type Detector struct {
	eng     *engine
	config  Config
	log     *log.Logger
	tests   []test
	names   map[string]struct{}
	cleanup []func()
	closed  bool
}

// New creates a detector for the page behind win.
func New(win Window, opts ...Option) (*Detector, error) {
	dc := &detectorConfig{config: DefaultConfig(), logger: defaultLogger()}
	for _, opt := range opts {
		opt(dc)
	}
	if dc.logger == nil {
		dc.logger = discardLogger()
	}

	e, err := newEngine(win, dc.config, dc.logger)
	if err != nil {
		return nil, err
	}

	d := &Detector{
		eng:    e,
		config: dc.config,
		log:    dc.logger,
		names:  map[string]struct{}{},
	}
	d.onCleanup(e.scratch.releaseElem)
	// The style declaration belongs to the probe element, so it is
	// released first.
	d.onCleanupFirst(e.scratch.releaseStyle)
	return d, nil
}

func (d *Detector) onCleanup(fn func()) {
	d.cleanup = append(d.cleanup, fn)
}

func (d *Detector) onCleanupFirst(fn func()) {
	d.cleanup = append([]func(){fn}, d.cleanup...)
}

// validateName checks a lowercase flat or parent.child name.
func validateName(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	parts := strings.Split(key, ".")
	if len(parts) > 2 {
		return fmt.Errorf("%w: %q nests deeper than parent.child", ErrInvalidName, key)
	}
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidName, key)
		}
	}
	return nil
}

// Register adds a detect named name. Names are case-insensitive.
// A dotted name (parent.child) requires parent to be registered first.
func (d *Detector) Register(name string, fn Test, opts ...TestOption) error {
	if d.closed {
		return ErrClosed
	}
	if fn == nil {
		return ErrNilTest
	}

	o := &testOptions{}
	for _, opt := range opts {
		opt(o)
	}

	keys := make([]string, 0, 1+len(o.aliases))
	for _, n := range append([]string{name}, o.aliases...) {
		key := strings.ToLower(n)
		if err := validateName(key); err != nil {
			return err
		}
		if parent, _, dotted := strings.Cut(key, "."); dotted {
			if _, ok := d.names[parent]; !ok {
				return fmt.Errorf("%w: %q before %q", ErrMissingParent, key, parent)
			}
		}
		keys = append(keys, key)
	}

	for _, key := range keys {
		d.names[key] = struct{}{}
	}
	d.tests = append(d.tests, test{keys: keys, fn: fn})
	return nil
}

// RegisterValue adds a detect whose value is already known.
func (d *Detector) RegisterValue(name string, v Value, opts ...TestOption) error {
	return d.Register(name, func() Value { return v }, opts...)
}

// RegisterAsync adds a nameless detect. It runs in registration order and
// records its results itself.
func (d *Detector) RegisterAsync(fn AsyncTest) error {
	if d.closed {
		return ErrClosed
	}
	if fn == nil {
		return ErrNilTest
	}
	d.tests = append(d.tests, test{async: fn})
	return nil
}

// Run evaluates every registered detect exactly once, in registration
// order, writes the classes onto the root element and releases the
// scratch elements. Run can be called once; afterwards the detector
// returns [ErrClosed].
func (d *Detector) Run() (*Features, error) {
	if d.closed {
		return nil, ErrClosed
	}
	d.closed = true
	defer d.runCleanup()

	f := newFeatures(d.eng, d.config)
	for _, t := range d.tests {
		if t.async != nil {
			t.async(f.recorder())
			continue
		}

		v := t.fn()

		f.mu.Lock()
		for _, key := range t.keys {
			if _, err := f.record(key, v); err != nil {
				f.mu.Unlock()
				return nil, fmt.Errorf("record %s: %w", key, err)
			}
		}
		f.mu.Unlock()
		d.log.Debug("feature detected", "name", t.keys[0], "value", v)
	}

	f.seal()
	return f, nil
}

func (d *Detector) runCleanup() {
	for _, fn := range d.cleanup {
		fn()
	}
	d.cleanup = nil
}

// Window returns the window the detector probes.
func (d *Detector) Window() Window {
	return d.eng.win
}

// TestAllProps reports whether the style property prop, in camel or kebab
// case, is recognized in unprefixed or any vendor-prefixed form.
//
//	d.TestAllProps("boxSizing")                                // true
//	d.TestAllProps("display", cssfeatures.WithValue("penguin")) // false
//	d.TestAllProps("shapeOutside", cssfeatures.WithValue("content-box"), cssfeatures.SkipValueTest())
func (d *Detector) TestAllProps(prop string, opts ...PropOption) bool {
	return d.eng.testAllProps(prop, opts...)
}

// Prefixed returns the form of the style property prop the browser
// recognizes, e.g. WebkitFlexBasis. When a native support query answered
// the question the candidate is unknown, and prop itself is returned.
func (d *Detector) Prefixed(prop string, opts ...PropOption) (string, bool) {
	return d.eng.prefixed(prop, opts...)
}

// PrefixedDOM resolves prop, in unprefixed or any DOM-prefixed form, on obj
// (e.g. requestAnimationFrame on the window). Methods come back as a
// [BoundFunc] bound to bind, or to obj when bind is nil.
func (d *Detector) PrefixedDOM(prop string, obj, bind Object) (any, bool) {
	return d.eng.prefixedDOM(prop, obj, bind)
}

// PrefixedName returns which form of prop obj has, without reading it.
func (d *Detector) PrefixedName(prop string, obj Object) (string, bool) {
	return d.eng.prefixedName(prop, obj)
}
