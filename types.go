package cssfeatures

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrClosed is returned when registering or running after the
	// detection pass has completed.
	ErrClosed = errors.New("detection pass already completed")
	// ErrInvalidName is returned for empty names or names nested deeper
	// than parent.child.
	ErrInvalidName = errors.New("invalid feature name")
	// ErrMissingParent is returned when a dotted name is registered before
	// its parent.
	ErrMissingParent = errors.New("parent feature not registered")
	// ErrNoDocument is returned when the window exposes no document.
	ErrNoDocument = errors.New("window has no document")
	// ErrNilTest is returned when registering a nil test function.
	ErrNilTest = errors.New("nil test")
	// ErrAlreadyRecorded is returned when an async detect records a name the
	// completed pass already holds.
	ErrAlreadyRecorded = errors.New("feature already recorded")
)

// Value is the outcome of a single detect: a boolean, or the resolved
// property name for detects that ask for the prefixed form.
type Value struct {
	name  string
	b     bool
	isStr bool
}

// BoolValue wraps a boolean outcome.
func BoolValue(b bool) Value {
	return Value{b: b}
}

// NameValue wraps a resolved property name. An empty name is falsy.
func NameValue(name string) Value {
	return Value{name: name, isStr: true}
}

// Supported reports the truthiness of the value.
func (v Value) Supported() bool {
	if v.isStr {
		return v.name != ""
	}
	return v.b
}

// Name returns the resolved property name, if the value carries one.
func (v Value) Name() (string, bool) {
	return v.name, v.isStr
}

func (v Value) String() string {
	if v.isStr {
		return v.name
	}
	return strconv.FormatBool(v.b)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isStr {
		return json.Marshal(v.name)
	}
	return json.Marshal(v.b)
}

// ProbeResult is the recorded outcome of one feature. It is either a leaf,
// or a group that also carries the results of dotted sub-detects
// (parent.child).
type ProbeResult struct {
	Value Value
	sub   *orderedmap.OrderedMap[string, Value]
}

// Supported reports the truthiness of the feature's own value.
func (r ProbeResult) Supported() bool {
	return r.Value.Supported()
}

// IsGroup reports whether sub-results are attached.
func (r ProbeResult) IsGroup() bool {
	return r.sub != nil
}

// Sub returns the value recorded for parent.name.
func (r ProbeResult) Sub(name string) (Value, bool) {
	if r.sub == nil {
		return Value{}, false
	}
	return r.sub.Get(name)
}

// SubNames returns sub-result names in recording order.
func (r ProbeResult) SubNames() []string {
	if r.sub == nil {
		return nil
	}
	names := make([]string, 0, r.sub.Len())
	for pair := r.sub.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// withSub returns a group copy of r with name set to v.
func (r ProbeResult) withSub(name string, v Value) ProbeResult {
	sub := orderedmap.New[string, Value]()
	if r.sub != nil {
		for pair := r.sub.Oldest(); pair != nil; pair = pair.Next() {
			sub.Set(pair.Key, pair.Value)
		}
	}
	sub.Set(name, v)
	return ProbeResult{Value: r.Value, sub: sub}
}

func (r ProbeResult) MarshalJSON() ([]byte, error) {
	if r.sub == nil {
		return json.Marshal(r.Value)
	}
	return json.Marshal(struct {
		Value Value                                 `json:"value"`
		Sub   *orderedmap.OrderedMap[string, Value] `json:"sub"`
	}{r.Value, r.sub})
}

// FeatureError represents an error when a required feature is unsupported.
type FeatureError struct {
	Feature string
	Reason  string
	Err     error
}

func (e *FeatureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feature %s: %s: %v", e.Feature, e.Reason, e.Err)
	}
	return fmt.Sprintf("feature %s: %s", e.Feature, e.Reason)
}

func (e *FeatureError) Unwrap() error {
	return e.Err
}

// Feature identifies a detect of the built-in catalog.
type Feature int

const (
	// FeatureFlexbox is the current flexible box layout (flex-basis).
	FeatureFlexbox Feature = iota
	// FeatureFlexboxLegacy is the 2009 box-* syntax.
	FeatureFlexboxLegacy
	// FeatureFlexboxTweener is the 2011 in-between syntax (flex-align).
	FeatureFlexboxTweener
	// FeatureFlexWrap is flex-wrap, which some flexbox engines lack.
	FeatureFlexWrap
	// FeatureBoxSizing is box-sizing.
	FeatureBoxSizing
	// FeatureCSSTransforms is 2D transforms.
	FeatureCSSTransforms
	// FeatureCSSTransitions is transitions.
	FeatureCSSTransitions
	// FeatureCSSAnimations is keyframe animations.
	FeatureCSSAnimations
	// FeatureRequestAnimationFrame is window.requestAnimationFrame, in any
	// prefixed form.
	FeatureRequestAnimationFrame
)

var featureNames = map[Feature]string{
	FeatureFlexbox:               "flexbox",
	FeatureFlexboxLegacy:         "flexboxlegacy",
	FeatureFlexboxTweener:        "flexboxtweener",
	FeatureFlexWrap:              "flexwrap",
	FeatureBoxSizing:             "boxsizing",
	FeatureCSSTransforms:         "csstransforms",
	FeatureCSSTransitions:        "csstransitions",
	FeatureCSSAnimations:         "cssanimations",
	FeatureRequestAnimationFrame: "requestanimationframe",
}

func (f Feature) String() string {
	if name, ok := featureNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Feature(%d)", f)
}

// FeatureValues returns every catalog feature in declaration order.
func FeatureValues() []Feature {
	values := make([]Feature, 0, len(featureNames))
	for f := FeatureFlexbox; f <= FeatureRequestAnimationFrame; f++ {
		values = append(values, f)
	}
	return values
}

// FeatureNames returns the names of every catalog feature in declaration order.
func FeatureNames() []string {
	values := FeatureValues()
	names := make([]string, 0, len(values))
	for _, f := range values {
		names = append(names, f.String())
	}
	return names
}
