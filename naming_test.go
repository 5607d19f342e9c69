package cssfeatures

import "testing"

func TestCSSToDOM(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"box-sizing", "boxSizing"},
		{"flex-basis", "flexBasis"},
		{"-webkit-flex-basis", "webkitFlexBasis"},
		{"-ms-transform", "msTransform"},
		{"animation-name", "animationName"},
		{"display", "display"},
		{"boxSizing", "boxSizing"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CSSToDOM(tt.in); got != tt.want {
				t.Errorf("CSSToDOM(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDOMToCSS(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"boxSizing", "box-sizing"},
		{"WebkitFlexBasis", "-webkit-flex-basis"},
		{"MozBoxDirection", "-moz-box-direction"},
		{"OTransform", "-o-transform"},
		{"msFlexAlign", "-ms-flex-align"},
		{"transform", "transform"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := DOMToCSS(tt.in); got != tt.want {
				t.Errorf("DOMToCSS(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNamingRoundTrip(t *testing.T) {
	for _, name := range []string{"box-sizing", "flex-basis", "transform", "animation-name", "flex-wrap"} {
		if got := DOMToCSS(CSSToDOM(name)); got != name {
			t.Errorf("DOMToCSS(CSSToDOM(%q)) = %q", name, got)
		}
	}
}

func TestCapitalize(t *testing.T) {
	if got := capitalize("flexBasis"); got != "FlexBasis" {
		t.Errorf("capitalize() = %q", got)
	}
	if got := capitalize(""); got != "" {
		t.Errorf("capitalize(\"\") = %q", got)
	}
}
