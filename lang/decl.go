package lang

import (
	"log/slog"
	"strconv"
)

// noneMarker is the identifier declaring an explicitly-empty value.
const noneMarker = "NONE"

// maxRangeLen bounds eager range expansion so a typo like 0..=18446744073709551615
// fails instead of exhausting memory.
const maxRangeLen = 1 << 20

// parseDecls consumes the leading run of `let &name = <values> ;` statements
// and returns the variable table along with the remaining body tokens.
//
// Brace-wrapped values are expanded eagerly against the variables declared
// so far, so a declaration can only reference names above it (no forward
// references).
func parseDecls(tokens []Token, maxDepth int) (*Table, []Token, error) {
	p := &declParser{tokens: tokens, table: NewTable(), maxDepth: maxDepth}

	for p.atDecl() {
		err := p.parseDecl()
		if err != nil {
			return nil, nil, err
		}
	}

	return p.table, p.tokens[p.idx:], nil
}

// declParser holds the declaration parser state.
type declParser struct {
	tokens   []Token
	idx      int
	table    *Table
	maxDepth int
}

// atDecl reports whether the next tokens begin a declaration.
func (p *declParser) atDecl() bool {
	return p.peek().IsIdent("let") && p.peekAt(1).IsPunct("&")
}

// parseDecl consumes one declaration: let &name = <value-source> ;
func (p *declParser) parseDecl() error {
	p.advance() // let
	p.advance() // &

	name := p.next()
	if name.Kind != KindIdent {
		return ErrSyntax.
			WithPosition(name.Pos).
			Wrapf("expected variable name, found %q", name.Text)
	}

	if eq := p.next(); !eq.IsPunct("=") {
		return ErrSyntax.
			WithPosition(eq.Pos).
			With(slog.String("name", name.Text)).
			Wrapf("expected '=', found %q", eq.Text)
	}

	values, err := p.parseValueSource(name)
	if err != nil {
		return err
	}

	if sep := p.next(); !sep.IsPunct(";") {
		return ErrSyntax.
			WithPosition(sep.Pos).
			With(slog.String("name", name.Text)).
			Wrapf("expected ';', found %q", sep.Text)
	}

	return p.table.declare(&Variable{
		Name:   name.Text,
		Values: values,
		Pos:    name.Pos,
	})
}

// parseValueSource consumes one of: a bracketed value list, a single
// brace-wrapped value, an integer range, or the NONE marker.
func (p *declParser) parseValueSource(name Token) ([]Value, error) {
	tok := p.peek()

	switch {
	case tok.Kind == KindGroupOpen && tok.Bracket == BracketSquare:
		return p.parseValueList()

	case tok.Kind == KindGroupOpen && tok.Bracket == BracketBrace:
		inner, err := p.group()
		if err != nil {
			return nil, err
		}

		val, err := p.braceValue(inner)
		if err != nil {
			return nil, err
		}

		return []Value{val}, nil

	case tok.IsIdent(noneMarker):
		p.advance()

		return []Value{{}}, nil

	case tok.Kind == KindLiteral:
		return p.parseRange()

	default:
		return nil, ErrSyntax.
			WithPosition(tok.Pos).
			With(slog.String("name", name.Text)).
			Wrapf("expected value list, range, or %s, found %q",
				noneMarker, tok.Text)
	}
}

// parseValueList consumes [ value (, value)* ] into one Value per element.
func (p *declParser) parseValueList() ([]Value, error) {
	open := p.peek()

	elems, err := p.splitList()
	if err != nil {
		return nil, err
	}

	values := make([]Value, 0, len(elems))

	for _, elem := range elems {
		val, err := p.elementValue(elem, open)
		if err != nil {
			return nil, err
		}

		values = append(values, val)
	}

	if len(values) == 0 {
		return nil, ErrSyntax.
			WithPosition(open.Pos).
			Wrapf("empty value list")
	}

	return values, nil
}

// splitList consumes a bracketed group and splits its content on top-level
// commas.
func (p *declParser) splitList() ([][]Token, error) {
	inner, err := p.group()
	if err != nil {
		return nil, err
	}

	if len(inner) == 0 {
		return nil, nil
	}

	var (
		elems [][]Token
		start int
		depth int
	)

	for i, tok := range inner {
		switch tok.Kind {
		case KindGroupOpen:
			depth++
		case KindGroupClose:
			depth--
		case KindPunct:
			if depth == 0 && tok.Text == "," {
				elems = append(elems, inner[start:i])
				start = i + 1
			}
		}
	}

	// A trailing comma leaves an empty final element; drop it.
	if last := inner[start:]; len(last) > 0 || len(elems) == 0 {
		elems = append(elems, last)
	}

	return elems, nil
}

// elementValue converts one list element into a Value. An element must be a
// single token, the NONE marker, or a single bracketed group; brace groups
// substitute only their interior, any other group keeps its delimiters.
func (p *declParser) elementValue(elem []Token, open Token) (Value, error) {
	switch {
	case len(elem) == 0:
		return nil, ErrSyntax.
			WithPosition(open.Pos).
			Wrapf("empty value in list")

	case len(elem) == 1 && elem[0].IsIdent(noneMarker):
		return Value{}, nil

	case len(elem) == 1:
		return Value{elem[0]}, nil
	}

	first, last := elem[0], elem[len(elem)-1]
	whole := first.Kind == KindGroupOpen &&
		last.Kind == KindGroupClose &&
		matchingClose(elem) == len(elem)-1

	if !whole {
		return nil, ErrSyntax.
			WithPosition(first.Pos).
			Wrapf("multi-token value must be wrapped in {...}")
	}

	if first.Bracket == BracketBrace {
		return p.braceValue(elem[1 : len(elem)-1])
	}

	return Value(elem), nil
}

// braceValue parses brace content as a body against the variables declared
// so far and expands it eagerly; the concatenated copies become one value.
// This is what lets a declaration fan out over an earlier one:
//
//	let &var    = [a, b, c];
//	let &branch = { *var => *var, };
//
// gives branch a single value holding all three arms.
func (p *declParser) braceValue(inner []Token) (Value, error) {
	body, err := parseBody(inner, p.table, p.maxDepth)
	if err != nil {
		return nil, err
	}

	out, err := expand(p.table, body)
	if err != nil {
		return nil, err
	}

	return Value(out), nil
}

// parseRange consumes low..high or low..=high into a list of decimal
// literal values.
func (p *declParser) parseRange() ([]Value, error) {
	low, err := p.bound()
	if err != nil {
		return nil, err
	}

	dots := p.peek()
	if !dots.IsPunct(".") || !p.peekAt(1).IsPunct(".") {
		return nil, ErrSyntax.
			WithPosition(dots.Pos).
			Wrapf("expected '..', found %q", dots.Text)
	}

	p.advance()
	p.advance()

	inclusive := p.peek().IsPunct("=")
	if inclusive {
		p.advance()
	}

	highTok := p.peek()

	high, err := p.bound()
	if err != nil {
		return nil, err
	}

	switch {
	case high < low:
		return nil, ErrTypeMismatch.
			WithPosition(highTok.Pos).
			Wrapf("descending range %d..%d", low, high)

	case !inclusive && high == low:
		return nil, ErrTypeMismatch.
			WithPosition(highTok.Pos).
			Wrapf("empty range %d..%d", low, high)
	}

	count := high - low
	if inclusive {
		count++
	}

	if count > maxRangeLen {
		return nil, ErrTypeMismatch.
			WithPosition(highTok.Pos).
			With(slog.Uint64("count", count)).
			Wrapf("range spans %d values (limit %d)", count, maxRangeLen)
	}

	values := make([]Value, 0, count)
	for i := range count {
		text := strconv.FormatUint(low+i, 10)
		values = append(values, Value{{
			Kind: KindLiteral,
			Text: text,
			Pos:  highTok.Pos,
		}})
	}

	return values, nil
}

// bound consumes one range bound, which must be a base-10 unsigned 64-bit
// integer literal.
func (p *declParser) bound() (uint64, error) {
	tok := p.next()

	if tok.Kind != KindLiteral {
		return 0, ErrTypeMismatch.
			WithPosition(tok.Pos).
			Wrapf("range bound must be an unsigned integer, found %q", tok.Text)
	}

	n, err := strconv.ParseUint(tok.Text, 10, 64)
	if err != nil {
		return 0, ErrTypeMismatch.
			WithPosition(tok.Pos).
			With(slog.String("bound", tok.Text)).
			Wrapf("range bound %q is not an unsigned 64-bit integer", tok.Text)
	}

	return n, nil
}

// group consumes a balanced delimiter group starting at the current token
// and returns the tokens strictly inside it. Every close must match the
// kind of the innermost open, so a mix like [ (a] ] fails here rather than
// slipping through as a value.
func (p *declParser) group() ([]Token, error) {
	open := p.next()
	start := p.idx
	stack := []Token{open}

	for !p.eof() {
		tok := p.next()

		switch tok.Kind {
		case KindGroupOpen:
			stack = append(stack, tok)

		case KindGroupClose:
			top := stack[len(stack)-1]
			if tok.Bracket != top.Bracket {
				return nil, ErrSyntax.
					WithPosition(tok.Pos).
					Wrapf("mismatched delimiter: %q opened at %s, closed by %q",
						top.Text, top.Pos, tok.Text)
			}

			stack = stack[:len(stack)-1]

			if len(stack) == 0 {
				return p.tokens[start : p.idx-1], nil
			}
		}
	}

	return nil, ErrSyntax.
		WithPosition(open.Pos).
		Wrapf("unterminated group %q", open.Text)
}

func (p *declParser) peek() Token {
	return p.peekAt(0)
}

func (p *declParser) peekAt(n int) Token {
	if p.idx+n >= len(p.tokens) {
		return Token{Kind: KindPunct, Pos: p.endPosition()}
	}

	return p.tokens[p.idx+n]
}

func (p *declParser) next() Token {
	tok := p.peek()
	p.advance()

	return tok
}

func (p *declParser) advance() {
	if p.idx < len(p.tokens) {
		p.idx++
	}
}

func (p *declParser) eof() bool {
	return p.idx >= len(p.tokens)
}

// endPosition approximates the position just past the final token, used
// when a declaration is cut short by the end of input.
func (p *declParser) endPosition() Position {
	if len(p.tokens) == 0 {
		return Position{Line: 1, Column: 1}
	}

	last := p.tokens[len(p.tokens)-1]
	last.Pos.Offset += len(last.Text)
	last.Pos.Column += len(last.Text)

	return last.Pos
}

// matchingClose returns the index of the delimiter closing the group opened
// at elem[0], or -1 when the group never closes within elem or a close does
// not match the kind of its innermost open.
func matchingClose(elem []Token) int {
	var stack []Bracket

	for i, tok := range elem {
		switch tok.Kind {
		case KindGroupOpen:
			stack = append(stack, tok.Bracket)

		case KindGroupClose:
			if len(stack) == 0 || tok.Bracket != stack[len(stack)-1] {
				return -1
			}

			stack = stack[:len(stack)-1]

			if len(stack) == 0 {
				return i
			}
		}
	}

	return -1
}
