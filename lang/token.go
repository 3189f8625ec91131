package lang

import "fmt"

// Position locates a token or error within the template source.
type Position struct {
	Offset int // byte offset from the start of the source
	Line   int // 1-based line number
	Column int // 1-based column number
}

// String returns the position formatted as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Kind classifies a token.
type Kind int

const (
	// KindIdent is a run of letters, digits, and underscores starting with
	// a letter or underscore.
	KindIdent Kind = iota

	// KindLiteral is a numeric, string, or char literal.
	KindLiteral

	// KindPunct is any single character not covered by another kind.
	KindPunct

	// KindGroupOpen is an opening group delimiter: "(", "[", or "{".
	KindGroupOpen

	// KindGroupClose is a closing group delimiter: ")", "]", or "}".
	KindGroupClose
)

// String returns a string representation of the token kind.
func (k Kind) String() string {
	switch k {
	case KindIdent:
		return "Ident"
	case KindLiteral:
		return "Literal"
	case KindPunct:
		return "Punct"
	case KindGroupOpen:
		return "GroupOpen"
	case KindGroupClose:
		return "GroupClose"
	default:
		return "Unknown"
	}
}

// Bracket identifies the bracket style of a group delimiter token.
type Bracket int

const (
	BracketParen  Bracket = iota // ( )
	BracketSquare                // [ ]
	BracketBrace                 // { }
)

// Open returns the opening delimiter character for the bracket style.
func (b Bracket) Open() string {
	switch b {
	case BracketSquare:
		return "["
	case BracketBrace:
		return "{"
	default:
		return "("
	}
}

// Close returns the closing delimiter character for the bracket style.
func (b Bracket) Close() string {
	switch b {
	case BracketSquare:
		return "]"
	case BracketBrace:
		return "}"
	default:
		return ")"
	}
}

// String returns a string representation of the bracket style.
func (b Bracket) String() string {
	switch b {
	case BracketSquare:
		return "Square"
	case BracketBrace:
		return "Brace"
	default:
		return "Paren"
	}
}

// Token is a single lexical unit of the template source.
//
// Text holds the exact source characters, including quotes for string and
// char literals. Joint reports whether the joint modifier '~' immediately
// preceded the token, which suppresses the separator normally inserted
// before it during rendering.
type Token struct {
	Kind    Kind
	Bracket Bracket // valid only for KindGroupOpen and KindGroupClose
	Text    string
	Joint   bool
	Pos     Position
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsIdent reports whether the token is the identifier with the given name.
func (t Token) IsIdent(name string) bool {
	return t.Is(KindIdent, name)
}

// IsPunct reports whether the token is the punctuation with the given text.
func (t Token) IsPunct(text string) bool {
	return t.Is(KindPunct, text)
}

// String returns the token formatted for diagnostics.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}
