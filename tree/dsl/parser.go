package dsl

import (
	"github.com/systree-xyz/go-systree/tree"
)

// Parser is a recursive-descent parser over a token slice. Parsing is
// single pass with one token of lookahead and no error recovery.
type Parser struct {
	toks []Token
	i    int
}

// NewParser creates a parser over a pre-lexed token stream. The stream
// must end with an EOF token, as produced by Tokenize.
func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

// Parse tokenizes and parses a complete tree, then runs the depth pass
// from the root. This is the compiler-facing entry point.
func Parse(input string) (*tree.Tree, error) {
	p := NewParser(Tokenize(input))
	t, err := p.ParseTree()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, &ParseError{Err: ErrExpectedComma, Span: tok.Span}
	}
	t.SetDepthRoot()
	return t, nil
}

func (p *Parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *Parser) next() Token {
	tok := p.peek()
	if p.i < len(p.toks)-1 {
		p.i++
	}
	return tok
}

// ParseTree parses branch (',' branch)* ','? and stops before EOF or a
// closing brace. Depths are not assigned; Parse does that at the root.
func (p *Parser) ParseTree() (*tree.Tree, error) {
	if tok := p.peek(); tok.Type == TokenEOF || tok.Type == TokenRBrace {
		return nil, &ParseError{Err: ErrEmptyTree, Span: tok.Span}
	}
	var branches []*tree.Branch
	for {
		br, sawComma, err := p.parseBranch()
		if err != nil {
			return nil, err
		}
		branches = append(branches, br)
		tok := p.peek()
		if tok.Type == TokenEOF || tok.Type == TokenRBrace {
			break
		}
		if !sawComma {
			return nil, &ParseError{Err: ErrExpectedComma, Span: tok.Span}
		}
	}
	return tree.New(branches...), nil
}

// parseBranch parses value ('=>' (branch | '{' tree '}'))? and then an
// optional trailing comma. The comma consumed after an arm chain is the
// innermost branch's: `a => b => c,` flags c's leaf, not the chain root.
// The returned bool reports whether any comma was consumed, which the
// tree loop uses to enforce separators between branches.
func (p *Parser) parseBranch() (*tree.Branch, bool, error) {
	v, err := p.parseValue()
	if err != nil {
		return nil, false, err
	}

	if p.peek().Type != TokenArrow {
		br := tree.NewLeaf(v)
		return br, p.eatComma(br), nil
	}
	p.next()

	if p.peek().Type == TokenLBrace {
		p.next()
		sub, err := p.ParseTree()
		if err != nil {
			return nil, false, err
		}
		if tok := p.peek(); tok.Type != TokenRBrace {
			return nil, false, &ParseError{Err: ErrExpectedBrace, Span: tok.Span}
		}
		p.next()
		br := tree.NewSubtree(v, sub)
		return br, p.eatComma(br), nil
	}

	child, sawComma, err := p.parseBranch()
	if err != nil {
		return nil, false, err
	}
	return tree.NewArm(v, child), sawComma, nil
}

// parseValue parses a dotted identifier path with an optional verbatim
// call-argument group.
func (p *Parser) parseValue() (*tree.Value, error) {
	tok := p.peek()
	if tok.Type != TokenIdent {
		return nil, identError(tok)
	}
	p.next()

	expr := tok.Literal
	span := tok.Span
	for p.peek().Type == TokenDot {
		p.next()
		seg := p.peek()
		if seg.Type != TokenIdent {
			return nil, identError(seg)
		}
		p.next()
		expr += "." + seg.Literal
		span.End = seg.Span.End
	}
	switch p.peek().Type {
	case TokenBadArgs:
		return nil, &ParseError{Err: ErrExpectedParen, Span: p.peek().Span}
	case TokenArgs:
		args := p.next()
		expr += args.Literal
		span.End = args.Span.End
	}
	return &tree.Value{Expr: expr, Span: span}, nil
}

func (p *Parser) eatComma(br *tree.Branch) bool {
	if p.peek().Type != TokenComma {
		return false
	}
	p.next()
	br.SetTrailingComma(true)
	return true
}

func identError(tok Token) error {
	if tok.Type == TokenEOF {
		return &ParseError{Err: ErrUnexpectedEOF, Span: tok.Span}
	}
	return &ParseError{Err: ErrExpectedIdent, Span: tok.Span}
}
