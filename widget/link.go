package widget

// LinkResult is a navigable link found at a document offset.
type LinkResult interface {
	// SourceOffset is an offset inside the linked text.
	SourceOffset() int
	// Execute follows the link.
	Execute()
}

// LinkGenerator decides which document offsets are links. The widget asks
// it on ctrl+hover (to underline) and ctrl+click (to execute).
type LinkGenerator interface {
	LinkAt(m *Model, offset int) (LinkResult, bool)
}

// SetLinkGenerator installs g. Nil disables links.
func (m *Model) SetLinkGenerator(g LinkGenerator) {
	m.links = g
	m.clearHoverLink()
}

func (m *Model) LinkGenerator() LinkGenerator { return m.links }

// HoverLink returns the underlined link span, if any.
func (m *Model) HoverLink() (start, end int, ok bool) {
	return m.hoverLink.start, m.hoverLink.end, m.hoverLink.ok
}

func (m *Model) linkAt(offset int) (LinkResult, bool) {
	if m.links == nil {
		return nil, false
	}
	return m.links.LinkAt(m, offset)
}

func (m *Model) setHoverLink(offset int) {
	res, ok := m.linkAt(offset)
	if !ok {
		m.clearHoverLink()
		return
	}
	next := span{start: res.SourceOffset(), end: res.SourceOffset() + 1, ok: true}
	if tok, ok := m.TokenAt(res.SourceOffset()); ok {
		next.start, next.end = tok.Start, tok.End
	}
	if next != m.hoverLink {
		m.hoverLink = next
		m.rebuildContent()
	}
}

func (m *Model) clearHoverLink() {
	if m.hoverLink.ok {
		m.hoverLink = span{}
		m.rebuildContent()
	}
}
