package cssfeatures

import "testing"

// classRoot records class writes; every other Element method is unused.
type classRoot struct {
	Element
	class  string
	writes int
}

func (r *classRoot) ClassName() string { return r.class }

func (r *classRoot) SetClassName(name string) {
	r.class = name
	r.writes++
}

func TestSetClasses(t *testing.T) {
	classes := []string{"flexbox", "no-boxsizing"}

	tests := []struct {
		name       string
		initial    string
		cfg        Config
		classes    []string
		want       string
		wantWrites int
	}{
		{
			name:       "swap and append",
			initial:    "no-js",
			cfg:        DefaultConfig(),
			classes:    classes,
			want:       "js flexbox no-boxsizing",
			wantWrites: 1,
		},
		{
			name:       "swap keeps neighbours",
			initial:    "page no-js wide",
			cfg:        Config{EnableJSClass: true},
			want:       "page js wide",
			wantWrites: 1,
		},
		{
			name:       "prefix",
			initial:    "cf-no-js",
			cfg:        Config{ClassPrefix: "cf-", EnableClasses: true, EnableJSClass: true},
			classes:    classes,
			want:       "cf-js cf-flexbox cf-no-boxsizing",
			wantWrites: 1,
		},
		{
			name:       "unprefixed no-js is left alone with a prefix",
			initial:    "no-js",
			cfg:        Config{ClassPrefix: "cf-", EnableJSClass: true},
			want:       "no-js",
			wantWrites: 0,
		},
		{
			name:       "no-js inside another word",
			initial:    "xno-js no-jsx",
			cfg:        Config{EnableJSClass: true},
			want:       "xno-js no-jsx",
			wantWrites: 0,
		},
		{
			name:       "classes disabled still swaps",
			initial:    "no-js",
			cfg:        Config{EnableJSClass: true},
			classes:    classes,
			want:       "js",
			wantWrites: 1,
		},
		{
			name:       "everything disabled",
			initial:    "no-js",
			cfg:        Config{},
			classes:    classes,
			want:       "no-js",
			wantWrites: 0,
		},
		{
			name:       "no classes to append",
			initial:    "js",
			cfg:        DefaultConfig(),
			want:       "js",
			wantWrites: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &classRoot{class: tt.initial}
			setClasses(root, tt.cfg, tt.classes)
			if root.class != tt.want {
				t.Errorf("class = %q, want %q", root.class, tt.want)
			}
			if root.writes != tt.wantWrites {
				t.Errorf("writes = %d, want %d", root.writes, tt.wantWrites)
			}
		})
	}
}

func TestAppendClasses(t *testing.T) {
	root := &classRoot{class: "js flexbox"}
	appendClasses(root, Config{ClassPrefix: "cf-", EnableClasses: true}, []string{"webp"})
	if want := "js flexbox cf-webp"; root.class != want {
		t.Errorf("class = %q, want %q", root.class, want)
	}

	appendClasses(root, Config{}, []string{"ignored"})
	if root.writes != 1 {
		t.Errorf("writes = %d, want 1", root.writes)
	}
}

func TestClassToken(t *testing.T) {
	tests := []struct {
		key  string
		v    Value
		want string
	}{
		{"flexbox", BoolValue(true), "flexbox"},
		{"flexbox", BoolValue(false), "no-flexbox"},
		{"b.c", BoolValue(true), "b-c"},
		{"b.c", BoolValue(false), "no-b-c"},
		{"pfx", NameValue("WebkitFlexBasis"), "pfx"},
		{"pfx", NameValue(""), "no-pfx"},
	}
	for _, tt := range tests {
		if got := classToken(tt.key, tt.v); got != tt.want {
			t.Errorf("classToken(%q, %v) = %q, want %q", tt.key, tt.v, got, tt.want)
		}
	}
}
