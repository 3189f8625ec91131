package lang

import "log/slog"

// refMarker is the punctuation introducing a variable reference.
const refMarker = "*"

// NodeType indicates what a body node holds.
type NodeType int

const (
	// NodeToken is a plain token copied verbatim into the output.
	NodeToken NodeType = iota

	// NodeRef is a variable reference substituted during expansion.
	NodeRef

	// NodeBlock is a nested child block with its own expansion scope.
	NodeBlock
)

// String returns a string representation of the node type.
func (nt NodeType) String() string {
	switch nt {
	case NodeToken:
		return "Token"
	case NodeRef:
		return "Ref"
	case NodeBlock:
		return "Block"
	default:
		return "Unknown"
	}
}

// Ref is a reference to a declared variable.
type Ref struct {
	Name  string
	Pos   Position // position of the reference marker
	Joint bool     // glue the first substituted token to the previous one
}

// Node is one element of a Block: a plain token, a variable reference, or a
// nested child block. Exactly one field is meaningful based on Type.
type Node struct {
	Type  NodeType
	Token Token  // for NodeToken
	Ref   *Ref   // for NodeRef
	Block *Block // for NodeBlock
}

// Block is an ordered sequence of nodes forming one expansion scope. The
// top-level body is a Block without delimiters; child blocks record the
// group delimiter tokens that enclosed them in the source.
type Block struct {
	Nodes []Node

	// Open and Close are the delimiter tokens for child blocks. They are
	// zero for the top-level body, which Delimited reports.
	Open  Token
	Close Token

	delimited bool
}

// Delimited reports whether the block is enclosed in group delimiters.
func (b *Block) Delimited() bool { return b.delimited }

// parseBody consumes tokens into a Block tree, checking every variable
// reference against the table so unknown names fail here with a precise
// source position rather than during expansion.
func parseBody(tokens []Token, table *Table, maxDepth int) (*Block, error) {
	p := &bodyParser{tokens: tokens, table: table, maxDepth: maxDepth}

	block, err := p.parseBlock(0, Token{})
	if err != nil {
		return nil, err
	}

	if !p.eof() {
		// Only a stray closing delimiter can stop the top-level walk.
		tok := p.peek()

		return nil, ErrSyntax.
			WithPosition(tok.Pos).
			Wrapf("unexpected %q", tok.Text)
	}

	return block, nil
}

// bodyParser holds the body parser state.
type bodyParser struct {
	tokens   []Token
	idx      int
	table    *Table
	maxDepth int
}

// parseBlock consumes nodes until the closing delimiter matching open, or
// until the end of input at depth 0.
func (p *bodyParser) parseBlock(depth int, open Token) (*Block, error) {
	if depth > p.maxDepth {
		return nil, ErrMaxDepth.
			WithPosition(open.Pos).
			With(slog.Int("max_depth", p.maxDepth))
	}

	block := &Block{}

	for !p.eof() {
		tok := p.peek()

		switch tok.Kind {
		case KindGroupOpen:
			p.advance()

			child, err := p.parseBlock(depth+1, tok)
			if err != nil {
				return nil, err
			}

			block.Nodes = append(block.Nodes, Node{Type: NodeBlock, Block: child})

		case KindGroupClose:
			if depth == 0 {
				// Let the caller report the stray delimiter.
				return block, nil
			}

			if tok.Bracket != open.Bracket {
				return nil, ErrSyntax.
					WithPosition(tok.Pos).
					With(slog.String("opened", open.Text)).
					Wrapf("mismatched delimiter: %q opened at %s, closed by %q",
						open.Text, open.Pos, tok.Text)
			}

			p.advance()

			block.Open = open
			block.Close = tok
			block.delimited = true

			return block, nil

		default:
			node, err := p.parseNode()
			if err != nil {
				return nil, err
			}

			block.Nodes = append(block.Nodes, node)
		}
	}

	if depth > 0 {
		return nil, ErrSyntax.
			WithPosition(open.Pos).
			Wrapf("unterminated group %q", open.Text)
	}

	return block, nil
}

// parseNode consumes a single token or variable reference.
func (p *bodyParser) parseNode() (Node, error) {
	tok := p.next()

	if !tok.IsPunct(refMarker) {
		return Node{Type: NodeToken, Token: tok}, nil
	}

	// A reference is the marker directly followed by an identifier, with no
	// intervening space. "a * b" stays three plain tokens.
	ident, ok := p.adjacentIdent(tok)
	if !ok {
		return Node{Type: NodeToken, Token: tok}, nil
	}

	if _, declared := p.table.Lookup(ident.Text); !declared {
		return Node{}, undeclared(ident.Text, tok.Pos, p.table.Names())
	}

	p.advance() // consume the identifier

	return Node{
		Type: NodeRef,
		Ref: &Ref{
			Name:  ident.Text,
			Pos:   tok.Pos,
			Joint: tok.Joint,
		},
	}, nil
}

// adjacentIdent returns the identifier token directly following the marker
// token in the source, if any.
func (p *bodyParser) adjacentIdent(marker Token) (Token, bool) {
	if p.eof() {
		return Token{}, false
	}

	next := p.peek()
	if next.Kind != KindIdent {
		return Token{}, false
	}

	if next.Pos.Offset != marker.Pos.Offset+len(marker.Text) {
		return Token{}, false
	}

	return next, true
}

func (p *bodyParser) peek() Token {
	if p.eof() {
		return Token{}
	}

	return p.tokens[p.idx]
}

func (p *bodyParser) next() Token {
	tok := p.peek()
	p.advance()

	return tok
}

func (p *bodyParser) advance() {
	if !p.eof() {
		p.idx++
	}
}

func (p *bodyParser) eof() bool {
	return p.idx >= len(p.tokens)
}
