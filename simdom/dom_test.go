package simdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leodido/cssfeatures"
)

func TestNewDocument(t *testing.T) {
	w := New(&Profile{RootClass: "no-js"})
	d := w.Doc()

	root := d.Root()
	assert.Equal(t, "HTML", root.NodeName())
	assert.Equal(t, "no-js", root.ClassName())
	require.NotNil(t, d.Body())
	assert.Same(t, root, d.BodyElement().ParentNode())
	assert.Nil(t, root.ParentNode())
}

func TestNewSVGDocumentWithoutBody(t *testing.T) {
	w := New(&Profile{SVG: true, NoBody: true})
	d := w.Doc()

	assert.Equal(t, "svg", d.Root().NodeName())
	assert.Nil(t, d.Body(), "an absent body must be a nil interface")
	assert.Empty(t, d.Root().Children())
}

func TestNilProfile(t *testing.T) {
	w := New(nil)
	require.NotNil(t, w.Profile())
	assert.False(t, w.HasCSSSupports())
}

func TestAppendAndRemove(t *testing.T) {
	w := New(&Profile{})
	d := w.Doc()
	a := d.CreateElement("div").(*Element)
	b := d.CreateElement("div").(*Element)
	text := d.CreateTextNode("x")

	a.AppendChild(text)
	assert.Same(t, a, text.ParentNode())

	b.AppendChild(text)
	assert.Empty(t, a.Children(), "appending moves the node")
	assert.Len(t, b.Children(), 1)

	b.RemoveChild(text)
	assert.Nil(t, text.ParentNode())
	assert.Panics(t, func() { b.RemoveChild(text) })

	assert.False(t, a.Attached())
	d.BodyElement().AppendChild(a)
	assert.True(t, a.Attached())
}

func TestCreatedAndLayoutSpies(t *testing.T) {
	w := New(&Profile{})
	d := w.Doc()
	assert.Equal(t, 1, d.Created("html"))
	assert.Equal(t, 1, d.Created("body"))

	d.CreateElement("DIV")
	d.CreateElementNS(svgNamespace, "tspan")
	assert.Equal(t, 1, d.Created("div"))
	assert.Equal(t, 1, d.Created("tspan"))

	d.Root().OffsetHeight()
	d.Root().OffsetHeight()
	assert.Equal(t, 2, d.LayoutReads())
}

func TestStylelessTags(t *testing.T) {
	w := New(&Profile{StylelessTags: []string{"cssfeatures"}})
	el := w.Doc().CreateElement("cssfeatures")
	assert.Nil(t, el.Style(), "a missing style must be a nil interface")
	assert.NotNil(t, w.Doc().CreateElement("samp").Style())
}

func TestStyleAssignment(t *testing.T) {
	tests := []struct {
		name      string
		profile   *Profile
		property  string
		value     string
		wantKnown bool
		wantValue string
		wantErr   bool
	}{
		{
			name:      "accepted value sticks",
			profile:   &Profile{Properties: map[string][]string{"boxSizing": {"border-box"}}},
			property:  "boxSizing",
			value:     "border-box",
			wantKnown: true,
			wantValue: "border-box",
		},
		{
			name:      "unaccepted value is ignored",
			profile:   &Profile{Properties: map[string][]string{"boxSizing": {"border-box"}}},
			property:  "boxSizing",
			value:     "padding-box",
			wantKnown: true,
		},
		{
			name:      "unaccepted value raises",
			profile:   &Profile{RejectAssign: true, Properties: map[string][]string{"boxSizing": {"border-box"}}},
			property:  "boxSizing",
			value:     "padding-box",
			wantKnown: true,
			wantErr:   true,
		},
		{
			name:      "empty list accepts anything",
			profile:   &Profile{Properties: map[string][]string{"transform": nil}},
			property:  "transform",
			value:     "scale(1)",
			wantKnown: true,
			wantValue: "scale(1)",
		},
		{
			name:     "unknown property",
			profile:  &Profile{},
			property: "flexBasis",
			value:    "1px",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.profile).Doc().CreateElement("div").Style()
			err := s.SetProperty(tt.property, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			got, known := s.Property(tt.property)
			assert.Equal(t, tt.wantKnown, known)
			assert.Equal(t, tt.wantValue, got)
		})
	}
}

func TestStyleClear(t *testing.T) {
	s := New(&Profile{}).Doc().CreateElement("div").(*Element).InlineStyle()
	require.NoError(t, s.SetProperty("overflow", "hidden"))
	assert.Equal(t, map[string]string{"overflow": "hidden"}, s.Values())
	require.NoError(t, s.SetProperty("overflow", ""))
	assert.Empty(t, s.Values())
}

func TestWindowMembers(t *testing.T) {
	w := New(&Profile{Globals: map[string]string{
		"webkitRequestAnimationFrame": "function",
		"devicePixelRatio":            "2",
	}})

	_, ok := w.Member("requestAnimationFrame")
	assert.False(t, ok)

	v, ok := w.Member("devicePixelRatio")
	require.True(t, ok)
	assert.Equal(t, "2", v)

	m, ok := w.Member("webkitRequestAnimationFrame")
	require.True(t, ok)
	fn, ok := m.(cssfeatures.Func)
	require.True(t, ok)
	call := fn(w, 1).(Call)
	assert.Equal(t, "webkitRequestAnimationFrame", call.Method)
	assert.Same(t, w, call.This)
	assert.Equal(t, []any{1}, call.Args)
}

func TestCSSSupportsCounts(t *testing.T) {
	w := New(&Profile{CSSSupports: true, Properties: map[string][]string{"flexBasis": nil}})
	assert.True(t, w.CSSSupports("flex-basis", "1px"))
	assert.False(t, w.CSSSupports("-webkit-flex-basis", "1px"))
	assert.Equal(t, 2, w.SupportsCalls())
}

func TestHiddenFrame(t *testing.T) {
	w := New(&Profile{HiddenFrame: true})
	cs, ok := w.ComputedStyle(w.Doc().Root(), "")
	assert.True(t, ok)
	assert.Nil(t, cs)
}
