package cssfeatures

// Inject exposes the injection helper to the external tests.
func Inject(d *Detector, rule string, test func(Element, string) bool, nodes int, ids []string) bool {
	return d.eng.inject(rule, test, nodes, ids)
}

// ScratchReleased reports whether the shared probe element and style are gone.
func ScratchReleased(d *Detector) bool {
	return d.eng.scratch.elem == nil && d.eng.scratch.style == nil
}

// AttemptAssign exposes attemptAssign.
func AttemptAssign(s Style, key, value string) bool {
	return attemptAssign(s, key, value)
}
