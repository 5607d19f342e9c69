package cssfeatures

import (
	"regexp"
	"strings"
)

// setClasses swaps no-js for js and appends classes to the root element's
// class attribute, each with the configured prefix. The js swap happens
// even when EnableClasses is off.
func setClasses(root Element, cfg Config, classes []string) {
	className := root.ClassName()
	original := className
	prefix := cfg.ClassPrefix

	if cfg.EnableJSClass {
		reJS := regexp.MustCompile(`(^|\s)` + regexp.QuoteMeta(prefix) + `no-js(\s|$)`)
		className = reJS.ReplaceAllString(className, "${1}"+prefix+"js${2}")
	}

	if cfg.EnableClasses && len(classes) > 0 {
		className += " " + prefix + strings.Join(classes, " "+prefix)
	}

	if className != original {
		root.SetClassName(className)
	}
}

// appendClasses adds classes recorded after the pass, without the js swap.
func appendClasses(root Element, cfg Config, classes []string) {
	if !cfg.EnableClasses || len(classes) == 0 {
		return
	}
	prefix := cfg.ClassPrefix
	root.SetClassName(root.ClassName() + " " + prefix + strings.Join(classes, " "+prefix))
}

// classToken is the class written for a result key: dots become hyphens,
// unsupported results get a no- prefix.
func classToken(key string, v Value) string {
	token := strings.ReplaceAll(key, ".", "-")
	if !v.Supported() {
		return "no-" + token
	}
	return token
}
