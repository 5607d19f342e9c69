package cssfeatures

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// vendorPrefixes is the CSSOM casing of the known vendor prefixes.
// Microsoft uses a lowercase ms where the others capitalize.
const vendorPrefixes = "Moz O ms Webkit"

// Config holds the settings of a detection pass.
type Config struct {
	// ClassPrefix is prepended to every class written onto the root element.
	ClassPrefix string `yaml:"classPrefix" json:"classPrefix"`
	// EnableClasses writes one class per result onto the root element.
	EnableClasses bool `yaml:"enableClasses" json:"enableClasses"`
	// EnableJSClass swaps no-js for js on the root element. It applies
	// even when EnableClasses is false.
	EnableJSClass bool `yaml:"enableJSClass" json:"enableJSClass"`
	// UsePrefixes probes vendor-prefixed variants of each property.
	UsePrefixes bool `yaml:"usePrefixes" json:"usePrefixes"`
}

// DefaultConfig returns the settings used when no option overrides them.
func DefaultConfig() Config {
	return Config{
		EnableClasses: true,
		EnableJSClass: true,
		UsePrefixes:   true,
	}
}

// cssomPrefixes returns the prefixes in CSSOM casing (Moz, O, ms, Webkit).
func (c Config) cssomPrefixes() []string {
	if !c.UsePrefixes {
		return []string{}
	}
	return strings.Fields(vendorPrefixes)
}

// domPrefixes returns the prefixes in DOM casing (moz, o, ms, webkit).
func (c Config) domPrefixes() []string {
	if !c.UsePrefixes {
		return []string{}
	}
	return strings.Fields(strings.ToLower(vendorPrefixes))
}

// detectorConfig holds the configuration for a detector.
type detectorConfig struct {
	config Config
	logger *log.Logger
}

// Option configures a [Detector].
type Option func(*detectorConfig)

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(dc *detectorConfig) {
		dc.config = c
	}
}

// WithClassPrefix sets the prefix of the classes written onto the root element.
func WithClassPrefix(prefix string) Option {
	return func(dc *detectorConfig) {
		dc.config.ClassPrefix = prefix
	}
}

// WithClasses toggles writing result classes onto the root element.
func WithClasses(enabled bool) Option {
	return func(dc *detectorConfig) {
		dc.config.EnableClasses = enabled
	}
}

// WithJSClass toggles the no-js to js swap.
func WithJSClass(enabled bool) Option {
	return func(dc *detectorConfig) {
		dc.config.EnableJSClass = enabled
	}
}

// WithPrefixes toggles probing of vendor-prefixed variants.
func WithPrefixes(enabled bool) Option {
	return func(dc *detectorConfig) {
		dc.config.UsePrefixes = enabled
	}
}

// WithLogger sets the logger. By default only warnings are emitted, to stderr.
func WithLogger(l *log.Logger) Option {
	return func(dc *detectorConfig) {
		dc.logger = l
	}
}

func defaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "cssfeatures",
		Level:  log.WarnLevel,
	})
}

// discardLogger replaces a nil logger.
func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
