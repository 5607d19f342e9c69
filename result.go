package cssfeatures

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Features holds the results of a detection pass, in execution order.
// Results recorded by the pass itself never change afterwards; async
// detects may add results later, which is why access is synchronized.
type Features struct {
	mu        sync.Mutex
	results   *orderedmap.OrderedMap[string, ProbeResult]
	classes   []string
	listeners map[string][]func(Value)
	sealed    bool

	config Config
	cssom  []string
	dom    []string
	eng    *engine
}

func newFeatures(e *engine, cfg Config) *Features {
	return &Features{
		results:   orderedmap.New[string, ProbeResult](),
		listeners: map[string][]func(Value){},
		config:    cfg,
		cssom:     slices.Clone(e.cssom),
		dom:       slices.Clone(e.dom),
		eng:       e,
	}
}

// record stores v under key and returns the class token for it.
// The caller must hold f.mu.
func (f *Features) record(key string, v Value) (string, error) {
	parent, child, dotted := strings.Cut(key, ".")
	if !dotted {
		if prev, ok := f.results.Get(key); ok && prev.IsGroup() {
			prev.Value = v
			f.results.Set(key, prev)
		} else {
			f.results.Set(key, ProbeResult{Value: v})
		}
	} else {
		pr, ok := f.results.Get(parent)
		if !ok {
			return "", ErrMissingParent
		}
		f.results.Set(parent, pr.withSub(child, v))
	}
	token := classToken(key, v)
	f.classes = append(f.classes, token)
	return token, nil
}

// lookup resolves a flat or dotted key. The caller must hold f.mu.
func (f *Features) lookup(key string) (Value, bool) {
	parent, child, dotted := strings.Cut(strings.ToLower(key), ".")
	pr, ok := f.results.Get(parent)
	if !ok {
		return Value{}, false
	}
	if !dotted {
		return pr.Value, true
	}
	return pr.Sub(child)
}

// seal writes the classes recorded so far onto the root element.
func (f *Features) seal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	setClasses(f.eng.root, f.config, f.classes)
	f.sealed = true
}

// recorder returns the callback handed to async detects.
func (f *Features) recorder() Recorder {
	return func(name string, v Value) error {
		key := strings.ToLower(name)
		if err := validateName(key); err != nil {
			return err
		}

		f.mu.Lock()
		if _, exists := f.lookup(key); f.sealed && exists {
			f.mu.Unlock()
			return fmt.Errorf("%w: %q", ErrAlreadyRecorded, key)
		}
		token, err := f.record(key, v)
		if err != nil {
			f.mu.Unlock()
			return err
		}
		if f.sealed {
			appendClasses(f.eng.root, f.config, []string{token})
		}
		pending := f.listeners[key]
		delete(f.listeners, key)
		f.mu.Unlock()

		f.eng.log.Debug("async feature recorded", "name", key, "value", v)
		for _, cb := range pending {
			cb(v)
		}
		return nil
	}
}

// Result returns the result recorded for name (case-insensitive).
func (f *Features) Result(name string) (ProbeResult, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results.Get(strings.ToLower(name))
}

// Value returns the value recorded for a flat or dotted (parent.child) name.
func (f *Features) Value(name string) (Value, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookup(name)
}

// Supported reports whether name was recorded with a truthy value.
func (f *Features) Supported(name string) bool {
	v, ok := f.Value(name)
	return ok && v.Supported()
}

// Names returns the recorded top-level names in execution order.
func (f *Features) Names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, f.results.Len())
	for pair := f.results.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Classes returns the class tokens in execution order, without prefix.
func (f *Features) Classes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.classes)
}

// Config returns the configuration the pass ran with.
func (f *Features) Config() Config {
	return f.config
}

// CSSOMPrefixes returns the vendor prefixes in CSSOM casing.
func (f *Features) CSSOMPrefixes() []string {
	return slices.Clone(f.cssom)
}

// DOMPrefixes returns the vendor prefixes in DOM casing.
func (f *Features) DOMPrefixes() []string {
	return slices.Clone(f.dom)
}

// On calls cb with the value of name. Known values are delivered
// immediately; values of pending async detects are delivered when they
// are recorded.
func (f *Features) On(name string, cb func(Value)) {
	key := strings.ToLower(name)
	f.mu.Lock()
	v, ok := f.lookup(key)
	if !ok {
		f.listeners[key] = append(f.listeners[key], cb)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	cb(v)
}

// TestAllProps probes an additional style property after the pass, with
// the same engine. See [Detector.TestAllProps].
func (f *Features) TestAllProps(prop string, opts ...PropOption) bool {
	return f.eng.testAllProps(prop, opts...)
}

// Prefixed resolves the recognized form of a style property after the pass.
// See [Detector.Prefixed].
func (f *Features) Prefixed(prop string, opts ...PropOption) (string, bool) {
	return f.eng.prefixed(prop, opts...)
}

// PrefixedDOM resolves a DOM member after the pass. See [Detector.PrefixedDOM].
func (f *Features) PrefixedDOM(prop string, obj, bind Object) (any, bool) {
	return f.eng.prefixedDOM(prop, obj, bind)
}

func (f *Features) MarshalJSON() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return json.Marshal(struct {
		Features      *orderedmap.OrderedMap[string, ProbeResult] `json:"features"`
		Classes       []string                                    `json:"classes"`
		Config        Config                                      `json:"config"`
		CSSOMPrefixes []string                                    `json:"cssomPrefixes"`
		DOMPrefixes   []string                                    `json:"domPrefixes"`
	}{f.results, f.classes, f.config, f.cssom, f.dom})
}
