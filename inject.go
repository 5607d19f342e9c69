package cssfeatures

import "strconv"

// injectID is the id of the container built by inject. Injected rules
// target it as #cssfeatures.
const injectID = "cssfeatures"

// body returns the document body, or a detached stand-in when the document
// has none yet. Injecting into a fake body after load does not work, so
// the real one is always preferred.
func (e *engine) body() (Element, bool) {
	if b := e.doc.Body(); b != nil {
		return b, false
	}
	tag := "body"
	if e.isSVG {
		tag = "svg"
	}
	return e.createElement(tag), true
}

// inject attaches a container element and a style element carrying rule to
// the document, calls test against the container and removes everything
// it added. nodes extra child divs are created, with ids taken from ids or
// generated as cssfeatures1..N.
func (e *engine) inject(rule string, test func(el Element, rule string) bool, nodes int, ids []string) bool {
	div := e.createElement("div")
	body, fake := e.body()

	// One node per test to avoid false positives.
	for n := nodes; n > 0; n-- {
		node := e.createElement("div")
		if i := n - 1; i < len(ids) {
			node.SetID(ids[i])
		} else {
			node.SetID(injectID + strconv.Itoa(n))
		}
		div.AppendChild(node)
	}

	style := e.createElement("style")
	style.SetAttribute("type", "text/css")
	style.SetID("s" + injectID)

	// Inside a real body the style goes into the container, so removing
	// the container is a single relayout.
	if fake {
		body.AppendChild(style)
	} else {
		div.AppendChild(style)
	}
	body.AppendChild(div)

	if ls, ok := style.(LegacyStyleSheet); !ok || !ls.SetStyleSheetCSSText(rule) {
		style.AppendChild(e.doc.CreateTextNode(rule))
	}
	div.SetID(injectID)

	var docOverflow string
	if fake {
		bs := body.Style()
		attemptAssign(bs, "background", "")
		attemptAssign(bs, "overflow", "hidden")
		docOverflow, _ = e.rootStyleProperty("overflow")
		attemptAssign(e.root.Style(), "overflow", "hidden")
		e.root.AppendChild(body)
	}

	defer func() {
		if fake {
			if parent := body.ParentNode(); parent != nil {
				parent.RemoveChild(body)
			}
			attemptAssign(e.root.Style(), "overflow", docOverflow)
			// Kinetic scrolling stays disabled on some mobile engines
			// unless layout is recalculated here.
			_ = e.root.OffsetHeight()
			return
		}
		if parent := div.ParentNode(); parent != nil {
			parent.RemoveChild(div)
		}
	}()

	return test(div, rule)
}

func (e *engine) rootStyleProperty(name string) (string, bool) {
	s := e.root.Style()
	if s == nil {
		return "", false
	}
	return s.Property(name)
}
