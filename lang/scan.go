package lang

import (
	"log/slog"
	"unicode"
	"unicode/utf8"
)

// joint is the modifier character that suppresses the separator normally
// inserted before the following token during rendering. It produces no
// output token of its own.
const joint = '~'

// Scan converts template source text into an ordered token sequence.
// It is a pure function: the same input always yields the same tokens.
func Scan(src string) ([]Token, error) {
	s := &scanner{input: []byte(src), line: 1, col: 1}

	return s.scan()
}

// scanner holds the tokenizer state.
type scanner struct {
	input []byte
	pos   int
	line  int
	col   int

	tokens []Token
	joint  bool // a '~' directly precedes the next token
}

func (s *scanner) scan() ([]Token, error) {
	for {
		err := s.skipSpaceAndComments()
		if err != nil {
			return nil, err
		}

		if s.eof() {
			return s.tokens, nil
		}

		pos := s.position()
		ch := s.peek()

		switch {
		case ch == joint:
			s.advance()

			s.joint = true

		case isIdentStart(ch):
			s.emit(KindIdent, s.scanIdent(), pos)

		case isDigit(ch):
			s.emit(KindLiteral, s.scanNumber(), pos)

		case ch == '-' && s.startsNegativeNumber():
			start := s.pos
			s.advance() // consume '-'
			s.scanNumber()
			s.emit(KindLiteral, string(s.input[start:s.pos]), pos)

		case ch == '"' || ch == '\'':
			text, err := s.scanQuoted(ch)
			if err != nil {
				return nil, err
			}

			s.emit(KindLiteral, text, pos)

		case ch == '(' || ch == '[' || ch == '{':
			s.advance()
			s.emitGroup(KindGroupOpen, ch, pos)

		case ch == ')' || ch == ']' || ch == '}':
			s.advance()
			s.emitGroup(KindGroupClose, ch, pos)

		default:
			s.advance()
			s.emit(KindPunct, string(ch), pos)
		}
	}
}

// emit appends a token, consuming any pending joint modifier.
func (s *scanner) emit(kind Kind, text string, pos Position) {
	s.tokens = append(s.tokens, Token{
		Kind:  kind,
		Text:  text,
		Joint: s.joint,
		Pos:   pos,
	})
	s.joint = false
}

func (s *scanner) emitGroup(kind Kind, ch rune, pos Position) {
	var bracket Bracket

	switch ch {
	case '(', ')':
		bracket = BracketParen
	case '[', ']':
		bracket = BracketSquare
	case '{', '}':
		bracket = BracketBrace
	}

	s.tokens = append(s.tokens, Token{
		Kind:    kind,
		Bracket: bracket,
		Text:    string(ch),
		Joint:   s.joint,
		Pos:     pos,
	})
	s.joint = false
}

// scanIdent consumes an identifier and returns its text.
func (s *scanner) scanIdent() string {
	start := s.pos

	for !s.eof() && isIdentContinue(s.peek()) {
		s.advance()
	}

	return string(s.input[start:s.pos])
}

// scanNumber consumes a numeric literal: digits, an optional fraction, and
// an optional exponent. A '.' is consumed only when a digit follows it, so
// range punctuation like "0..5" is left intact.
func (s *scanner) scanNumber() string {
	start := s.pos

	for !s.eof() && isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.advance() // '.'

		for !s.eof() && isDigit(s.peek()) {
			s.advance()
		}
	}

	if ch := s.peek(); ch == 'e' || ch == 'E' {
		next := s.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(s.peekAt(2))) {
			s.advance() // 'e'

			if ch := s.peek(); ch == '+' || ch == '-' {
				s.advance()
			}

			for !s.eof() && isDigit(s.peek()) {
				s.advance()
			}
		}
	}

	return string(s.input[start:s.pos])
}

// startsNegativeNumber reports whether a '-' at the current position begins
// a negative numeric literal rather than a binary minus. The sign form is
// taken only when a digit follows directly and the previous token cannot
// end an operand.
func (s *scanner) startsNegativeNumber() bool {
	if !isDigit(s.peekAt(1)) {
		return false
	}

	if len(s.tokens) == 0 {
		return true
	}

	switch prev := s.tokens[len(s.tokens)-1]; prev.Kind {
	case KindIdent, KindLiteral, KindGroupClose:
		return false
	default:
		return true
	}
}

// scanQuoted consumes a string or char literal, including the quotes.
func (s *scanner) scanQuoted(quote rune) (string, error) {
	start := s.pos
	openPos := s.position()

	s.advance() // opening quote

	for !s.eof() {
		ch := s.peek()

		if ch == '\\' {
			s.advance()

			if !s.eof() {
				s.advance() // escaped char
			}

			continue
		}

		if ch == quote {
			s.advance() // closing quote

			return string(s.input[start:s.pos]), nil
		}

		if ch == '\n' {
			break
		}

		s.advance()
	}

	kind := "string"
	if quote == '\'' {
		kind = "char"
	}

	return "", ErrSyntax.
		WithPosition(openPos).
		With(slog.String("literal", kind)).
		Wrapf("unterminated %s literal", kind)
}

func (s *scanner) skipSpaceAndComments() error {
	for {
		for !s.eof() && unicode.IsSpace(s.peek()) {
			s.advance()
		}

		if s.peek() == '/' && s.peekAt(1) == '/' {
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}

			continue
		}

		if s.peek() == '/' && s.peekAt(1) == '*' {
			openPos := s.position()

			s.advance()
			s.advance()

			closed := false

			for !s.eof() {
				if s.peek() == '*' && s.peekAt(1) == '/' {
					s.advance()
					s.advance()

					closed = true

					break
				}

				s.advance()
			}

			if !closed {
				return ErrSyntax.
					WithPosition(openPos).
					Wrapf("unterminated block comment")
			}

			continue
		}

		return nil
	}
}

// Helper methods

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(s.input[s.pos:])

	return r
}

// peekAt returns the rune n runes past the current position.
func (s *scanner) peekAt(n int) rune {
	pos := s.pos

	for ; n > 0 && pos < len(s.input); n-- {
		_, size := utf8.DecodeRune(s.input[pos:])
		pos += size
	}

	if pos >= len(s.input) {
		return 0
	}

	r, _ := utf8.DecodeRune(s.input[pos:])

	return r
}

func (s *scanner) advance() {
	if s.eof() {
		return
	}

	r, size := utf8.DecodeRune(s.input[s.pos:])

	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) position() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.col,
	}
}

// Character classification

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
