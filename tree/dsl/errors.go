package dsl

import (
	"errors"

	"github.com/systree-xyz/go-systree/tree"
)

// Sentinel parse errors. The message texts are part of the parser's
// contract; downstream tooling matches them verbatim.
var (
	ErrEmptyTree     = errors.New("tree may not be empty")
	ErrExpectedComma = errors.New("expected `,`")
	ErrExpectedIdent = errors.New("expected identifier")
	ErrUnexpectedEOF = errors.New("unexpected end of input, expected identifier")
	ErrExpectedBrace = errors.New("expected `}`")
	ErrExpectedParen = errors.New("expected `)`")
)

// ParseError pairs a sentinel error with the source span it was raised
// at. Error returns the sentinel's message unchanged; the span is
// carried as data for diagnostics.
type ParseError struct {
	Err  error
	Span tree.Span
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
