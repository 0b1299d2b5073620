package surface

import (
	"github.com/iw2rmb/sketcharea/lexer"
	"github.com/iw2rmb/sketcharea/widget"
)

// ReferencePrefix starts every reference anchor.
const ReferencePrefix = "Reference/"

// TokenSource finds the token covering a document offset.
type TokenSource interface {
	TokenAt(offset int) (lexer.Token, bool)
}

// ReferenceTable names the reference page of a lexeme.
type ReferenceTable interface {
	Reference(lexeme string) (string, bool)
}

// DocViewer shows a reference page. It handles its own failures.
type DocViewer interface {
	ShowReference(anchor string)
}

// NavigableReference links a token to a reference page.
type NavigableReference struct {
	SourceOffset int
	TargetAnchor string
	// Resolved reports whether the keyword table named the page. Links
	// made for bare data types, variables and functions are unresolved and
	// their page may not exist.
	Resolved bool

	docs DocViewer
}

// Execute shows the target page.
func (r NavigableReference) Execute() {
	if r.docs == nil {
		return
	}
	log.Debugf("open reference: %s", r.TargetAnchor)
	r.docs.ShowReference(r.TargetAnchor)
}

// ReferenceLinkResolver turns tokens into reference links.
type ReferenceLinkResolver struct {
	tokens TokenSource
	refs   ReferenceTable
	docs   DocViewer
}

func NewReferenceLinkResolver(tokens TokenSource, refs ReferenceTable, docs DocViewer) ReferenceLinkResolver {
	return ReferenceLinkResolver{tokens: tokens, refs: refs, docs: docs}
}

// ResolveAt returns the link for the token at offset. A token is a link
// when the keyword table names its page or it is a data type, variable or
// function. ResolveAt has no side effects.
func (r ReferenceLinkResolver) ResolveAt(offset int) (NavigableReference, bool) {
	if r.tokens == nil {
		return NavigableReference{}, false
	}
	tok, ok := r.tokens.TokenAt(offset)
	if !ok {
		return NavigableReference{}, false
	}

	var ref string
	if r.refs != nil {
		ref, _ = r.refs.Reference(tok.Lexeme)
	}
	if ref == "" {
		switch tok.Kind {
		case lexer.KindDataType, lexer.KindVariable, lexer.KindFunction:
		default:
			return NavigableReference{}, false
		}
	}

	target := ref
	if target == "" {
		target = tok.Lexeme
	}
	return NavigableReference{
		SourceOffset: offset,
		TargetAnchor: ReferencePrefix + target,
		Resolved:     ref != "",
		docs:         r.docs,
	}, true
}

type linkGenerator struct {
	resolver ReferenceLinkResolver
}

func (g linkGenerator) LinkAt(_ *widget.Model, offset int) (widget.LinkResult, bool) {
	ref, ok := g.resolver.ResolveAt(offset)
	if !ok {
		return nil, false
	}
	return referenceLink{ref: ref}, true
}

type referenceLink struct {
	ref NavigableReference
}

func (l referenceLink) SourceOffset() int { return l.ref.SourceOffset }

func (l referenceLink) Execute() { l.ref.Execute() }
