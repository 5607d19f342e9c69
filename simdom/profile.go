package simdom

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leodido/cssfeatures"
)

//go:embed profiles/*.yaml
var builtinFS embed.FS

// ErrUnknownProfile is returned when a profile name matches neither a
// built-in profile nor a file.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile describes the browser a [Window] simulates.
type Profile struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`

	// Properties maps camel-case style properties (WebkitFlexBasis) to the
	// values they accept. An empty list accepts any non-empty value.
	Properties map[string][]string `yaml:"properties" json:"properties"`

	// CSSSupports exposes window.CSS.supports.
	CSSSupports bool `yaml:"cssSupports" json:"cssSupports"`
	// SupportsRule makes injected @supports rules conditional.
	SupportsRule bool `yaml:"supportsRule" json:"supportsRule"`
	// NoComputedStyle removes getComputedStyle; elements expose currentStyle.
	NoComputedStyle bool `yaml:"noComputedStyle" json:"noComputedStyle"`
	// HiddenFrame makes getComputedStyle return null.
	HiddenFrame bool `yaml:"hiddenFrame" json:"hiddenFrame"`
	// NoBody starts the document without a body element.
	NoBody bool `yaml:"noBody" json:"noBody"`
	// SVG makes the root element <svg>.
	SVG bool `yaml:"svg" json:"svg"`
	// StylelessTags lists tags whose elements have no style declaration.
	StylelessTags []string `yaml:"stylelessTags" json:"stylelessTags"`
	// LegacyStyleSheet makes style elements take rules through styleSheet.cssText.
	LegacyStyleSheet bool `yaml:"legacyStyleSheet" json:"legacyStyleSheet"`
	// RejectAssign makes assigning an unaccepted value fail.
	RejectAssign bool `yaml:"rejectAssign" json:"rejectAssign"`

	// Globals lists window members. The value "function" makes a method.
	Globals map[string]string `yaml:"globals" json:"globals"`

	// RootClass is the initial class attribute of the root element.
	RootClass string `yaml:"rootClass" json:"rootClass"`
}

// Properties every simulated engine knows regardless of profile.
var baseProperties = map[string][]string{
	"overflow":   {"visible", "hidden", "scroll", "auto"},
	"position":   {"static", "relative", "absolute", "fixed"},
	"display":    {"block", "inline", "inline-block", "none"},
	"background": nil,
}

func (p *Profile) values(name string) ([]string, bool) {
	if v, ok := p.Properties[name]; ok {
		return v, true
	}
	v, ok := baseProperties[name]
	return v, ok
}

// knows reports whether name exists on a style declaration.
func (p *Profile) knows(name string) bool {
	_, ok := p.values(name)
	return ok
}

// accepts reports whether assigning value to the known property name sticks.
func (p *Profile) accepts(name, value string) bool {
	allowed, ok := p.values(name)
	if !ok || value == "" {
		return false
	}
	return len(allowed) == 0 || slices.Contains(allowed, value)
}

// supports answers CSS.supports(property, value) for a kebab-case property.
func (p *Profile) supports(property, value string) bool {
	name := cssfeatures.CSSToDOM(strings.TrimSpace(property))
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return false
	}
	if p.knows(name) {
		return p.accepts(name, value)
	}
	// -webkit-flex-basis maps to webkitFlexBasis, profiles spell WebkitFlexBasis
	alt := strings.ToUpper(name[:1]) + name[1:]
	return p.knows(alt) && p.accepts(alt, value)
}

// LoadProfile reads a profile from a YAML or JSON file, chosen by extension.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	p, err := parseProfile(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

func parseProfile(data []byte, ext string) (*Profile, error) {
	var p Profile
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// BuiltinProfile returns the embedded profile called name.
func BuiltinProfile(name string) (*Profile, error) {
	data, err := builtinFS.ReadFile("profiles/" + name + ".yaml")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
		}
		return nil, err
	}
	p, err := parseProfile(data, ".yaml")
	if err != nil {
		return nil, fmt.Errorf("parse builtin profile %s: %w", name, err)
	}
	return p, nil
}

// ProfileNames returns the names of the embedded profiles, sorted.
func ProfileNames() []string {
	entries, err := builtinFS.ReadDir("profiles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(names)
	return names
}

// OpenProfile resolves ref as a built-in profile name first, then as a file path.
func OpenProfile(ref string) (*Profile, error) {
	if slices.Contains(ProfileNames(), ref) {
		return BuiltinProfile(ref)
	}
	if _, err := os.Stat(ref); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, ref)
	}
	return LoadProfile(ref)
}
