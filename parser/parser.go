// Package parser implements the recursive-descent parser that turns a
// scanner.Token stream into a Thompson NFA via fragment.Builder, per spec
// §4.3's CFG:
//
//	Expr        ::= Concat ('|' Concat)*
//	Concat      ::= Duplication+
//	Duplication ::= Primary ('*' | '+' | '?' | '{n}' | '{m,n}' | '{m,}' | '{,n}')?
//	Primary     ::= '(' Expr ')' | '[' ClassBody ']' | '.' | Char
//
// Grounded on original_source/src/parser.rs's expr/concat/duplication/primary
// structure and mabhi256-codecrafters-grep-go/app/ast/ast_parser.go's
// idiomatic-Go shape of returning (value, error) instead of panicking.
package parser

import (
	"errors"
	"fmt"

	"github.com/coregx/regexc/internal/automaton"
	"github.com/coregx/regexc/fragment"
	"github.com/coregx/regexc/scanner"
)

// Sentinel syntactic errors (spec §7).
var (
	ErrUnbalancedParen        = errors.New("parser: unbalanced parenthesis")
	ErrInvalidPrimary         = errors.New("parser: invalid primary expression")
	ErrInvalidClassToken      = errors.New("parser: invalid token inside character class")
	ErrUnsupportedQuantifier  = errors.New("parser: unsupported quantifier form")
	ErrUnexpectedTrailerInput = errors.New("parser: unexpected tokens after expression")
)

// SyntaxError wraps a parse error with the token index it occurred at.
type SyntaxError struct {
	TokenIndex int
	Err        error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parser: at token %d: %v", e.TokenIndex, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Parse scans and parses pattern, returning the Thompson NFA it denotes.
func Parse(pattern string) (*automaton.Automaton, error) {
	sc := scanner.New(pattern)
	tokens, err := sc.Scan()
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, builder: fragment.NewBuilder()}
	top, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != scanner.TokEOF {
		return nil, p.errAt(ErrUnexpectedTrailerInput)
	}

	return p.builder.Finish(top), nil
}

type parser struct {
	tokens  []scanner.Token
	pos     int
	builder *fragment.Builder
}

func (p *parser) errAt(err error) error {
	return &SyntaxError{TokenIndex: p.pos, Err: err}
}

func (p *parser) expr() (fragment.Fragment, error) {
	left, err := p.concat()
	if err != nil {
		return fragment.Fragment{}, err
	}

	for p.match(scanner.TokUnion) {
		right, err := p.concat()
		if err != nil {
			return fragment.Fragment{}, err
		}
		left = p.builder.Union(left, right)
	}

	return left, nil
}

func (p *parser) concat() (fragment.Fragment, error) {
	result, err := p.duplication()
	if err != nil {
		return fragment.Fragment{}, err
	}

	for !p.atBoundary() {
		next, err := p.duplication()
		if err != nil {
			return fragment.Fragment{}, err
		}
		result = p.builder.Concat(result, next)
	}

	return result, nil
}

// atBoundary reports whether the current token ends a Concat: end of
// input, a closing paren (end of a group), or an alternation bar.
func (p *parser) atBoundary() bool {
	switch p.peek().Kind {
	case scanner.TokEOF, scanner.TokRightParen, scanner.TokUnion:
		return true
	default:
		return false
	}
}

func (p *parser) duplication() (fragment.Fragment, error) {
	prim, err := p.primary()
	if err != nil {
		return fragment.Fragment{}, err
	}

	switch {
	case p.match(scanner.TokStar):
		return p.builder.Star(prim), nil
	case p.match(scanner.TokQuestion):
		return p.builder.Optional(prim), nil
	case p.match(scanner.TokPlus):
		return p.builder.Plus(prim), nil
	case p.peek().Kind == scanner.TokRepeat:
		tok := p.advance()
		return p.builder.Repeat(prim, *tok.Min), nil
	case p.peek().Kind == scanner.TokRepeatRange:
		tok := p.advance()
		if tok.Min == nil && tok.Max == nil {
			return fragment.Fragment{}, p.errAt(ErrUnsupportedQuantifier)
		}
		return p.builder.RepeatRange(prim, tok.Min, tok.Max), nil
	default:
		return prim, nil
	}
}

func (p *parser) primary() (fragment.Fragment, error) {
	switch p.peek().Kind {
	case scanner.TokLeftParen:
		p.advance()
		inner, err := p.expr()
		if err != nil {
			return fragment.Fragment{}, err
		}
		if !p.match(scanner.TokRightParen) {
			return fragment.Fragment{}, p.errAt(ErrUnbalancedParen)
		}
		return inner, nil

	case scanner.TokLeftBracket:
		return p.charClass()

	case scanner.TokChar:
		tok := p.advance()
		return p.builder.Literal(tok.Char), nil

	case scanner.TokDot:
		p.advance()
		return p.builder.Wildcard(), nil

	default:
		return fragment.Fragment{}, p.errAt(ErrInvalidPrimary)
	}
}

// charClass parses `[` ( `^` )? ( Char ( `-` Char )? )* `]`.
func (p *parser) charClass() (fragment.Fragment, error) {
	p.advance() // consume '['

	negate := p.match(scanner.TokCaret)

	// Inside a class '.' is the literal byte '.', not the wildcard.
	classByte := func(tok scanner.Token) byte {
		if tok.Kind == scanner.TokDot {
			return '.'
		}
		return tok.Char
	}

	var ranges []automaton.Range
	for !p.match(scanner.TokRightBracket) {
		if k := p.peek().Kind; k != scanner.TokChar && k != scanner.TokDot {
			return fragment.Fragment{}, p.errAt(ErrInvalidClassToken)
		}
		lo := classByte(p.advance())

		if p.peek().Kind == scanner.TokHyphen {
			p.advance()
			if k := p.peek().Kind; k != scanner.TokChar && k != scanner.TokDot {
				return fragment.Fragment{}, p.errAt(ErrInvalidClassToken)
			}
			hi := classByte(p.advance())
			ranges = append(ranges, automaton.Range{Lo: lo, Hi: hi})
		} else {
			ranges = append(ranges, automaton.Range{Lo: lo, Hi: lo})
		}
	}

	frag, err := p.builder.Class(ranges, negate)
	if err != nil {
		return fragment.Fragment{}, p.errAt(err)
	}
	return frag, nil
}

func (p *parser) match(kind scanner.TokenKind) bool {
	if p.peek().Kind == kind {
		p.advance()
		return true
	}
	return false
}

func (p *parser) advance() scanner.Token {
	tok := p.tokens[p.pos]
	if p.tokens[p.pos].Kind != scanner.TokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) peek() scanner.Token {
	return p.tokens[p.pos]
}
