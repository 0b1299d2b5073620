package lexer

import (
	"sort"
	"sync"
)

// Syntax style names understood by the default registry.
const (
	SyntaxStyleNone      = "text/plain"
	SyntaxStyleCPlusPlus = "text/cpp"
)

// Factory builds a fresh TokenMaker.
type Factory func() TokenMaker

// Registry maps syntax style names to token maker factories.
type Registry struct {
	mu     sync.RWMutex
	makers map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{makers: make(map[string]Factory)}
	r.PutMapping(SyntaxStyleNone, func() TokenMaker { return plainTokenMaker{} })
	r.PutMapping(SyntaxStyleCPlusPlus, func() TokenMaker { return NewChromaTokenMaker("cpp", nil) })
	return r
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by widgets that
// are not configured with their own.
func DefaultRegistry() *Registry { return defaultRegistry }

// PutMapping registers f for style, replacing any previous mapping.
func (r *Registry) PutMapping(style string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f == nil {
		delete(r.makers, style)
		return
	}
	r.makers[style] = f
}

// New builds the token maker registered for style.
func (r *Registry) New(style string) (TokenMaker, bool) {
	r.mu.RLock()
	f, ok := r.makers[style]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return f(), true
}

// Styles lists the registered style names in sorted order.
func (r *Registry) Styles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.makers))
	for s := range r.makers {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

type plainTokenMaker struct{}

func (plainTokenMaker) Tokens(string) []Token { return nil }
