package models

// ContextKind tags the shape of a resolved context so every consumer handles
// each case explicitly instead of sniffing for empty strings.
type ContextKind int

const (
	ContextEmpty ContextKind = iota
	ContextText
	ContextStructured
)

// Context is the bounded, request-scoped data bundle handed to the generation
// collaborator alongside the user's text. It is never persisted.
type Context struct {
	Kind   ContextKind
	Text   string
	Fields map[string]string
}

// EmptyContext reports that no context applies; the composer omits the
// context block entirely for it.
func EmptyContext() Context {
	return Context{Kind: ContextEmpty}
}

// TextContext wraps a preformatted context block.
func TextContext(text string) Context {
	return Context{Kind: ContextText, Text: text}
}

// StructuredContext wraps labeled context fields rendered by the composer.
func StructuredContext(fields map[string]string) Context {
	return Context{Kind: ContextStructured, Fields: fields}
}

// IsEmpty reports whether the context carries no data at all.
func (c Context) IsEmpty() bool {
	switch c.Kind {
	case ContextText:
		return c.Text == ""
	case ContextStructured:
		return len(c.Fields) == 0
	default:
		return true
	}
}
