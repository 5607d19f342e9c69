// Package cssfeatures provides runtime CSS and DOM feature detection for
// web documents.
//
// This package probes the browser a Go program runs in (GOOS=js
// GOARCH=wasm, see package jsdom) and reports which CSS properties and DOM
// members it natively recognizes, as named results and as marker classes on
// the root element (flexbox / no-flexbox), so pages can be progressively
// enhanced. It reports declared support only: it does not test that a
// feature works correctly and does not polyfill anything.
//
// # Detection Strategy
//
// Each probe covers a property and all its vendor-prefixed variants
// (Moz, O, ms, Webkit), first match wins:
//   - CSS.supports, when a value is given and the browser has it
//   - an @supports rule injected into the document, checked through the
//     computed style of a throwaway element
//   - presence of the property on a scratch style declaration
//   - assigning the value and checking that it sticks
//
// # Quick Check
//
// Validate that required features are available:
//
//	err := cssfeatures.Check(win, []cssfeatures.Feature{cssfeatures.FeatureFlexbox})
//	if err != nil {
//	    var fe *cssfeatures.FeatureError
//	    if errors.As(err, &fe) {
//	        log.Fatalf("browser not ready: %s: %s", fe.Feature, fe.Reason)
//	    }
//	    log.Fatal(err)
//	}
//
// # Full Detection
//
// Run the built-in catalog and write classes onto the root element:
//
//	sf, err := cssfeatures.Detect(win)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sf.Supported("flexbox"))
//	fmt.Println(sf) // human-readable summary
//
// # Custom Detects
//
// A [Detector] runs detects in registration order, exactly once each:
//
//	d, _ := cssfeatures.New(win, cssfeatures.WithClassPrefix("cf-"))
//	d.Register("shapes", func() cssfeatures.Value {
//	    return cssfeatures.BoolValue(d.TestAllProps("shapeOutside", cssfeatures.WithValue("content-box")))
//	})
//	d.Register("shapes.margin", func() cssfeatures.Value {
//	    return cssfeatures.BoolValue(d.TestAllProps("shapeMargin"))
//	})
//	sf, _ := d.Run()
//
// A dotted name (parent.child) requires its parent to be registered
// earlier; the parent's [ProbeResult] then becomes a group carrying the
// child. Names nest at most two levels. After [Detector.Run] the detector
// is closed and further registrations fail with [ErrClosed].
package cssfeatures
