package simdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalSupports(t *testing.T) {
	p := &Profile{Properties: map[string][]string{
		"flexBasis":       nil,
		"WebkitTransform": nil,
	}}

	tests := []struct {
		prelude string
		want    bool
		wantErr bool
	}{
		{prelude: "(flex-basis:1px)", want: true},
		{prelude: "(flex-basis: 1px)", want: true},
		{prelude: "(-moz-flex-basis:1px)", want: false},
		{prelude: "((-moz-flex-basis:1px) or (flex-basis:1px))", want: true},
		{prelude: "(-moz-flex-basis:1px) or (-o-flex-basis:1px)", want: false},
		{prelude: "(flex-basis:1px) and (-webkit-transform:scale(1))", want: true},
		{prelude: "(flex-basis:1px) and (transform:scale(1))", want: false},
		{prelude: "not (transform:scale(1))", want: true},
		{prelude: "not ((flex-basis:1px) or (transform:none))", want: false},
		{prelude: "(flex-basis:1px)or(transform:none)", want: true},
		{prelude: "(unknown-syntax)", want: false},
		{prelude: "flex-basis:1px", wantErr: true},
		{prelude: "((flex-basis:1px)", wantErr: true},
		{prelude: "(flex-basis:1px) junk", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.prelude, func(t *testing.T) {
			got, err := p.evalSupports(tt.prelude)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// attach builds <div id=id> with a style element holding css inside the body.
func attach(w *Window, id, css string) *Element {
	d := w.Doc()
	div := d.CreateElement("div").(*Element)
	div.SetID(id)
	style := d.CreateElement("style").(*Element)
	style.AppendChild(d.CreateTextNode(css))
	div.AppendChild(style)
	d.BodyElement().AppendChild(div)
	return div
}

func TestResolveSupportsRule(t *testing.T) {
	const rule = "@supports ((flex-basis:1px) or (-webkit-flex-basis:1px)) { #probe { position: absolute; } }"

	tests := []struct {
		name    string
		profile *Profile
		want    string
	}{
		{
			name:    "condition holds",
			profile: &Profile{SupportsRule: true, Properties: map[string][]string{"WebkitFlexBasis": nil}},
			want:    "absolute",
		},
		{
			name:    "condition fails",
			profile: &Profile{SupportsRule: true},
			want:    "static",
		},
		{
			name:    "engine ignores @supports",
			profile: &Profile{Properties: map[string][]string{"flexBasis": nil}},
			want:    "static",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(tt.profile)
			div := attach(w, "probe", rule)

			cs, ok := w.ComputedStyle(div, "")
			require.True(t, ok)
			require.NotNil(t, cs)
			assert.Equal(t, tt.want, cs.PropertyValue("position"))
		})
	}
}

func TestResolveCascade(t *testing.T) {
	w := New(&Profile{})
	div := attach(w, "box", "#other { display: none; } #box { display: inline; } #box { display: none; }")

	cs, _ := w.ComputedStyle(div, "")
	assert.Equal(t, "none", cs.PropertyValue("display"), "later rule wins")

	require.NoError(t, div.InlineStyle().SetProperty("display", "inline-block"))
	assert.Equal(t, "inline-block", cs.PropertyValue("display"), "inline style wins")

	assert.Equal(t, "visible", cs.PropertyValue("overflow"), "initial value")
}

func TestResolveDetachedElement(t *testing.T) {
	w := New(&Profile{SupportsRule: true})
	div := attach(w, "box", "#box { position: fixed; }")
	cs, _ := w.ComputedStyle(div, "")
	assert.Equal(t, "fixed", cs.PropertyValue("position"))

	w.Doc().BodyElement().RemoveChild(div)
	assert.Equal(t, "static", cs.PropertyValue("position"))
}

func TestResolveLegacyStyleSheet(t *testing.T) {
	w := New(&Profile{LegacyStyleSheet: true, NoComputedStyle: true})
	d := w.Doc()

	div := d.CreateElement("div").(*Element)
	div.SetID("box")
	style := d.CreateElement("style").(*Element)
	assert.True(t, style.SetStyleSheetCSSText("#box { position: relative; }"))
	div.AppendChild(style)
	d.BodyElement().AppendChild(div)

	_, ok := w.ComputedStyle(div, "")
	assert.False(t, ok, "no getComputedStyle")

	v, ok := div.CurrentStyle("position")
	require.True(t, ok)
	assert.Equal(t, "relative", v)
}
