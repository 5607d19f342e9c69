package cssfeatures_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/leodido/cssfeatures"
	"github.com/leodido/cssfeatures/simdom"
)

func TestCheck(t *testing.T) {
	webkit := &simdom.Profile{
		RootClass:  "no-js",
		Properties: map[string][]string{"WebkitFlexBasis": nil, "boxSizing": nil},
		Globals:    map[string]string{"webkitRequestAnimationFrame": "function"},
	}

	tests := []struct {
		name        string
		profile     *simdom.Profile
		required    []cssfeatures.Feature
		opts        []cssfeatures.Option
		wantFeature string
		wantReason  string
	}{
		{
			name:     "all supported",
			profile:  webkit,
			required: []cssfeatures.Feature{cssfeatures.FeatureFlexbox, cssfeatures.FeatureBoxSizing, cssfeatures.FeatureRequestAnimationFrame},
		},
		{
			name:     "nothing required",
			profile:  &simdom.Profile{},
			required: nil,
		},
		{
			name:        "first missing style feature",
			profile:     webkit,
			required:    []cssfeatures.Feature{cssfeatures.FeatureFlexbox, cssfeatures.FeatureCSSTransforms, cssfeatures.FeatureFlexWrap},
			wantFeature: "csstransforms",
			wantReason:  `no unprefixed or vendor-prefixed form of transform accepts "scale(1)"`,
		},
		{
			name:        "prefixes disabled",
			profile:     webkit,
			required:    []cssfeatures.Feature{cssfeatures.FeatureFlexbox},
			opts:        []cssfeatures.Option{cssfeatures.WithPrefixes(false)},
			wantFeature: "flexbox",
			wantReason:  `flex-basis does not accept "1px" (vendor prefixes disabled)`,
		},
		{
			name:        "missing dom feature",
			profile:     &simdom.Profile{},
			required:    []cssfeatures.Feature{cssfeatures.FeatureRequestAnimationFrame},
			wantFeature: "requestanimationframe",
			wantReason:  "window has no requestAnimationFrame in any vendor-prefixed form",
		},
		{
			name:        "unknown feature",
			profile:     webkit,
			required:    []cssfeatures.Feature{cssfeatures.FeatureBoxSizing, cssfeatures.Feature(99)},
			wantFeature: "Feature(99)",
			wantReason:  "unknown feature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := simdom.New(tt.profile)
			opts := append([]cssfeatures.Option{cssfeatures.WithLogger(nil)}, tt.opts...)
			err := cssfeatures.Check(w, tt.required, opts...)

			if tt.wantFeature == "" {
				if err != nil {
					t.Fatalf("Check() error = %v", err)
				}
			} else {
				var fe *cssfeatures.FeatureError
				if !errors.As(err, &fe) {
					t.Fatalf("Check() error = %v, want *FeatureError", err)
				}
				if fe.Feature != tt.wantFeature {
					t.Errorf("Feature = %q, want %q", fe.Feature, tt.wantFeature)
				}
				if fe.Reason != tt.wantReason {
					t.Errorf("Reason = %q, want %q", fe.Reason, tt.wantReason)
				}
			}

			if got := w.Doc().Root().ClassName(); got != tt.profile.RootClass {
				t.Errorf("root class = %q, Check must not write classes", got)
			}
		})
	}
}

func TestCheck_DeduplicatesAndKeepsOptions(t *testing.T) {
	w := simdom.New(&simdom.Profile{Properties: map[string][]string{"boxSizing": nil}})
	opts := make([]cssfeatures.Option, 1, 4)
	opts[0] = cssfeatures.WithLogger(nil)

	required := []cssfeatures.Feature{cssfeatures.FeatureBoxSizing, cssfeatures.FeatureBoxSizing}
	if err := cssfeatures.Check(w, required, opts...); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if opts[:cap(opts)][1] != nil {
		t.Error("Check wrote into the caller's option slice")
	}
}

func TestDiagnose(t *testing.T) {
	w := simdom.New(&simdom.Profile{Properties: map[string][]string{"boxSizing": nil}})
	sf, err := cssfeatures.Detect(w, cssfeatures.WithLogger(nil))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		feature cssfeatures.Feature
		want    string
	}{
		{cssfeatures.FeatureBoxSizing, "supported"},
		{cssfeatures.FeatureFlexboxLegacy, `no unprefixed or vendor-prefixed form of box-direction accepts "reverse"`},
		{cssfeatures.FeatureCSSAnimations, `no unprefixed or vendor-prefixed form of animation-name accepts "a"`},
		{cssfeatures.FeatureRequestAnimationFrame, "window has no requestAnimationFrame in any vendor-prefixed form"},
		{cssfeatures.Feature(42), "not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.feature.String(), func(t *testing.T) {
			if got := sf.Diagnose(tt.feature); got != tt.want {
				t.Errorf("Diagnose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeatures_String(t *testing.T) {
	d, _ := newDetector(t, &simdom.Profile{Properties: map[string][]string{"WebkitFlexBasis": nil}})
	_ = d.Register("flexbox", func() cssfeatures.Value {
		return cssfeatures.BoolValue(d.TestAllProps("flexBasis"))
	})
	_ = d.Register("flexbox.pfx", func() cssfeatures.Value {
		name, _ := d.Prefixed("flexBasis")
		return cssfeatures.NameValue(name)
	})
	_ = d.Register("grid", constant(false))

	sf, err := d.Run()
	if err != nil {
		t.Fatal(err)
	}
	s := sf.String()

	for _, want := range []string{
		"Features:\n",
		"  flexbox: yes\n",
		"    flexbox.pfx: yes (WebkitFlexBasis)\n",
		"  grid: no\n",
		"Vendor Prefixes:\n",
		"  CSSOM: Moz O ms Webkit\n",
		"  DOM: moz o ms webkit\n",
		"Classes: flexbox flexbox-pfx no-grid\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in:\n%s", want, s)
		}
	}
}

func TestFeatures_StringNoPrefixes(t *testing.T) {
	d, _ := newDetector(t, &simdom.Profile{}, cssfeatures.WithPrefixes(false))
	sf, err := d.Run()
	if err != nil {
		t.Fatal(err)
	}
	if s := sf.String(); !strings.Contains(s, "  CSSOM: (none)\n") || !strings.Contains(s, "  DOM: (none)\n") {
		t.Errorf("String() = %q", s)
	}
}
