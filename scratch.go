package cssfeatures

// probeTag names the throwaway element most probes run against.
const probeTag = "cssfeatures"

// styleFallbackTags are tried in order when a transient style handle is
// needed. Unknown tags have no style interface in some SVG and strict
// XHTML documents, so two rarely used inline tags back the probe tag up.
var styleFallbackTags = []string{probeTag, "tspan", "samp"}

// scratchPool owns the shared probe element and its style declaration.
type scratchPool struct {
	elem  Element
	style Style
}

func newScratchPool(e *engine) *scratchPool {
	p := &scratchPool{elem: e.createElement(probeTag)}
	if p.elem != nil {
		p.style = p.elem.Style()
	}
	return p
}

// releaseStyle drops the shared style declaration. It must run before
// releaseElem.
func (p *scratchPool) releaseStyle() {
	p.style = nil
}

func (p *scratchPool) releaseElem() {
	p.elem = nil
}

// styleHandle is a style declaration lent to one probing call.
type styleHandle struct {
	elem  Element
	style Style
	owned bool
}

// release drops a handle built for a single call. Borrowed shared handles
// are left to the cleanup queue.
func (h *styleHandle) release() {
	if !h.owned {
		return
	}
	h.elem = nil
	h.style = nil
}

// acquire lends the shared style declaration, or builds a transient one
// once the shared handle has been released.
func (p *scratchPool) acquire(e *engine) *styleHandle {
	if p.style != nil {
		return &styleHandle{elem: p.elem, style: p.style}
	}
	h := &styleHandle{owned: true}
	for _, tag := range styleFallbackTags {
		h.elem = e.createElement(tag)
		if h.elem == nil {
			continue
		}
		if h.style = h.elem.Style(); h.style != nil {
			break
		}
	}
	return h
}

// attemptAssign sets key to value and reports whether the engine accepted
// the assignment. A rejected assignment counts as having no effect.
func attemptAssign(s Style, key, value string) bool {
	if s == nil {
		return false
	}
	return s.SetProperty(key, value) == nil
}
