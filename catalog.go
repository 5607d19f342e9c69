package cssfeatures

import (
	"fmt"
	"slices"
)

// detect describes one built-in catalog entry. Style detects probe property
// with value; DOM detects look property up on the window.
type detect struct {
	feature  Feature
	property string
	value    string
	dom      bool
	aliases  []string
}

var catalog = []detect{
	{feature: FeatureFlexbox, property: "flexBasis", value: "1px"},
	{feature: FeatureFlexboxLegacy, property: "boxDirection", value: "reverse"},
	{feature: FeatureFlexboxTweener, property: "flexAlign", value: "end"},
	{feature: FeatureFlexWrap, property: "flexWrap", value: "wrap"},
	{feature: FeatureBoxSizing, property: "boxSizing", value: "border-box"},
	{feature: FeatureCSSTransforms, property: "transform", value: "scale(1)"},
	{feature: FeatureCSSTransitions, property: "transition", value: "all"},
	{feature: FeatureCSSAnimations, property: "animationName", value: "a"},
	{feature: FeatureRequestAnimationFrame, property: "requestAnimationFrame", dom: true, aliases: []string{"raf"}},
}

func lookupDetect(f Feature) (detect, bool) {
	for _, c := range catalog {
		if c.feature == f {
			return c, true
		}
	}
	return detect{}, false
}

func (c detect) test(e *engine) Test {
	if c.dom {
		return func() Value {
			_, ok := e.prefixedDOM(c.property, e.win, nil)
			return BoolValue(ok)
		}
	}
	return func() Value {
		return e.testPropsAll(c.property, modeBool, WithValue(c.value), SkipValueTest())
	}
}

// RegisterCatalog registers the built-in detects for features, in catalog
// order, or the whole catalog when no feature is given. Unknown features
// are ignored.
func (d *Detector) RegisterCatalog(features ...Feature) error {
	for _, c := range catalog {
		if len(features) > 0 && !slices.Contains(features, c.feature) {
			continue
		}
		if err := d.Register(c.feature.String(), c.test(d.eng), WithAliases(c.aliases...)); err != nil {
			return fmt.Errorf("register %s: %w", c.feature, err)
		}
	}
	return nil
}

// Detect runs the whole built-in catalog against win and returns the
// results. Classes are written onto the root element per the options.
func Detect(win Window, opts ...Option) (*Features, error) {
	d, err := New(win, opts...)
	if err != nil {
		return nil, err
	}
	if err := d.RegisterCatalog(); err != nil {
		return nil, err
	}
	return d.Run()
}
