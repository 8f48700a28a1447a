// Package dsl parses the startup-tree DSL: comma-separated branches of
// dotted identifiers chained with `=>` and grouped with braces.
package dsl

import (
	"fmt"
	"unicode"

	"github.com/systree-xyz/go-systree/tree"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenComma
	TokenArrow  // =>
	TokenLBrace // {
	TokenRBrace // }
	TokenDot     // .
	TokenArgs    // (...) captured verbatim, parens included
	TokenBadArgs // (...) group left open at end of input
	TokenIllegal
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "Ident"
	case TokenComma:
		return "Comma"
	case TokenArrow:
		return "Arrow"
	case TokenLBrace:
		return "LBrace"
	case TokenRBrace:
		return "RBrace"
	case TokenDot:
		return "Dot"
	case TokenArgs:
		return "Args"
	case TokenBadArgs:
		return "BadArgs"
	default:
		return "Illegal"
	}
}

// Token represents a single token from the lexer.
type Token struct {
	Type    TokenType
	Literal string
	Span    tree.Span
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%v, %q, %v}", t.Type, t.Literal, t.Span)
}

// Lexer tokenizes DSL input, tracking line and column positions.
type Lexer struct {
	input  string
	offset int
	line   int
	col    int
	ch     byte
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, offset: -1, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.offset++
	l.col++
	if l.offset >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.offset]
	}
}

func (l *Lexer) peekChar() byte {
	if l.offset+1 >= len(l.input) {
		return 0
	}
	return l.input[l.offset+1]
}

func (l *Lexer) pos() tree.Pos {
	return tree.Pos{Line: l.line, Column: l.col, Offset: l.offset}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.pos()
	var typ TokenType
	var lit string

	switch {
	case l.ch == 0:
		typ = TokenEOF
	case l.ch == ',':
		typ, lit = TokenComma, ","
		l.readChar()
	case l.ch == '{':
		typ, lit = TokenLBrace, "{"
		l.readChar()
	case l.ch == '}':
		typ, lit = TokenRBrace, "}"
		l.readChar()
	case l.ch == '.':
		typ, lit = TokenDot, "."
		l.readChar()
	case l.ch == '=' && l.peekChar() == '>':
		typ, lit = TokenArrow, "=>"
		l.readChar()
		l.readChar()
	case l.ch == '(':
		group, terminated := l.readArgs()
		if terminated {
			typ, lit = TokenArgs, group
		} else {
			typ, lit = TokenBadArgs, group
		}
	case isIdentStart(l.ch):
		typ, lit = TokenIdent, l.readIdent()
	default:
		typ, lit = TokenIllegal, string(l.ch)
		l.readChar()
	}

	return Token{Type: typ, Literal: lit, Span: tree.Span{Start: start, End: l.pos()}}
}

func (l *Lexer) readIdent() string {
	start := l.offset
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.offset]
}

// readArgs reads a call-argument group enclosed in (...), parens
// included, handling nested parens. The content is captured verbatim.
// Returns false when the input ends before the group closes.
func (l *Lexer) readArgs() (string, bool) {
	start := l.offset
	depth := 0
	for l.ch != 0 {
		if l.ch == '(' {
			depth++
		} else if l.ch == ')' {
			depth--
			if depth == 0 {
				l.readChar()
				return l.input[start:l.offset], true
			}
		}
		l.readChar()
	}
	return l.input[start:l.offset], false
}

func isIdentStart(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isIdentChar(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_'
}

// Tokenize returns all tokens from the input, ending with an EOF token.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}
