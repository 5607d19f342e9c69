//go:build js && wasm

// Command cssfeatures-wasm runs the built-in detects in the page that loads
// it and publishes the results as a global cssfeatures object:
//
//	cssfeatures.flexbox                        // true
//	cssfeatures.classes                        // ["flexbox", "no-flexboxtweener", ...]
//	cssfeatures.testAllProps("shapeOutside", "content-box")
//	cssfeatures.prefixed("flexBasis")          // "WebkitFlexBasis" or false
//	cssfeatures.on("flexbox", function (v) { ... })
//	cssfeatures._config.classPrefix            // ""
//	cssfeatures._cssomPrefixes                 // ["Moz", "O", "ms", "Webkit"]
package main

import (
	"os"
	"syscall/js"

	"github.com/charmbracelet/log"

	"github.com/leodido/cssfeatures"
	"github.com/leodido/cssfeatures/jsdom"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "cssfeatures",
		Level:  log.WarnLevel,
	})

	sf, err := cssfeatures.Detect(jsdom.Global(), cssfeatures.WithLogger(logger))
	if err != nil {
		logger.Error("detection failed", "err", err)
		return
	}
	js.Global().Set("cssfeatures", export(sf))

	select {}
}

func toJS(v cssfeatures.Value) any {
	if name, ok := v.Name(); ok && name != "" {
		return name
	}
	return v.Supported()
}

// export builds the global object. Groups become Boolean objects carrying
// their sub-results as properties.
func export(sf *cssfeatures.Features) js.Value {
	obj := js.Global().Get("Object").New()

	for _, name := range sf.Names() {
		r, _ := sf.Result(name)
		if !r.IsGroup() {
			obj.Set(name, toJS(r.Value))
			continue
		}
		group := js.Global().Get("Boolean").New(r.Supported())
		for _, sub := range r.SubNames() {
			v, _ := r.Sub(sub)
			group.Set(sub, toJS(v))
		}
		obj.Set(name, group)
	}

	obj.Set("classes", jsStrings(sf.Classes()))

	cfg := sf.Config()
	obj.Set("_config", map[string]any{
		"classPrefix":   cfg.ClassPrefix,
		"enableClasses": cfg.EnableClasses,
		"enableJSClass": cfg.EnableJSClass,
		"usePrefixes":   cfg.UsePrefixes,
	})
	obj.Set("_cssomPrefixes", jsStrings(sf.CSSOMPrefixes()))
	obj.Set("_domPrefixes", jsStrings(sf.DOMPrefixes()))

	obj.Set("testAllProps", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return false
		}
		return sf.TestAllProps(args[0].String(), propOptions(args[1:])...)
	}))

	obj.Set("prefixed", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return false
		}
		name, ok := sf.Prefixed(args[0].String(), propOptions(args[1:])...)
		if !ok {
			return false
		}
		return name
	}))

	obj.Set("on", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 2 || args[1].Type() != js.TypeFunction {
			return nil
		}
		cb := args[1]
		sf.On(args[0].String(), func(v cssfeatures.Value) {
			cb.Invoke(toJS(v))
		})
		return nil
	}))

	return obj
}

// jsStrings converts ss for js.ValueOf, which only accepts []any.
func jsStrings(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// propOptions reads (value, skipValueTest) arguments.
func propOptions(args []js.Value) []cssfeatures.PropOption {
	var opts []cssfeatures.PropOption
	if len(args) > 0 && !args[0].IsUndefined() && !args[0].IsNull() {
		opts = append(opts, cssfeatures.WithValue(args[0].String()))
	}
	if len(args) > 1 && args[1].Truthy() {
		opts = append(opts, cssfeatures.SkipValueTest())
	}
	return opts
}
