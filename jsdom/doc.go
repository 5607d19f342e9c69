// Package jsdom implements the cssfeatures host interfaces on top of
// syscall/js, for programs compiled with GOOS=js GOARCH=wasm and loaded
// into a page.
//
//	sf, err := cssfeatures.Detect(jsdom.Global())
//
// Member lookups follow the JavaScript `in` operator (Reflect.has), methods
// are invoked with Function.prototype.call so they can be bound to another
// receiver, and style assignments go through Reflect.set so that engines
// throwing on invalid values surface an error instead of aborting the
// program.
package jsdom
