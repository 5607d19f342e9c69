package cssfeatures

import (
	"fmt"
	"slices"
)

// Check runs the catalog detects for required and returns a *[FeatureError]
// for the first unsupported feature, or nil if all are supported.
// Check leaves the root element's classes untouched.
func Check(win Window, required []Feature, opts ...Option) error {
	seen := map[Feature]struct{}{}
	features := make([]Feature, 0, len(required))
	for _, f := range required {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		features = append(features, f)
	}
	if len(features) == 0 {
		return nil
	}

	opts = append(slices.Clone(opts), WithClasses(false), WithJSClass(false))
	d, err := New(win, opts...)
	if err != nil {
		return fmt.Errorf("create detector: %w", err)
	}
	if err := d.RegisterCatalog(features...); err != nil {
		return err
	}
	sf, err := d.Run()
	if err != nil {
		return fmt.Errorf("run detects: %w", err)
	}

	for _, f := range features {
		result, known := sf.Result(f.String())
		if !known {
			return &FeatureError{Feature: f.String(), Reason: "unknown feature"}
		}
		if !result.Supported() {
			return &FeatureError{
				Feature: f.String(),
				Reason:  sf.Diagnose(f),
			}
		}
	}
	return nil
}

// Diagnose returns a reason string explaining why a catalog feature is not
// supported.
func (f *Features) Diagnose(feat Feature) string {
	c, ok := lookupDetect(feat)
	if !ok {
		return "not supported"
	}
	if result, known := f.Result(feat.String()); known && result.Supported() {
		return "supported"
	}

	if c.dom {
		if len(f.dom) == 0 {
			return fmt.Sprintf("window has no %s (vendor prefixes disabled)", c.property)
		}
		return fmt.Sprintf("window has no %s in any vendor-prefixed form", c.property)
	}
	if len(f.cssom) == 0 {
		return fmt.Sprintf("%s does not accept %q (vendor prefixes disabled)", DOMToCSS(c.property), c.value)
	}
	return fmt.Sprintf("no unprefixed or vendor-prefixed form of %s accepts %q", DOMToCSS(c.property), c.value)
}
