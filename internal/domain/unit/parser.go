package unit

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokMul
	tokDiv
	tokPow
	tokSuperscript
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

var errSyntax = errors.New("malformed unit expression")

// lex splits a unit expression into tokens. Whitespace separates operands
// and is treated as multiplication by the parser.
func lex(expr string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(expr); {
		r, size := utf8.DecodeRuneInString(expr[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '*':
			if i+1 < len(expr) && expr[i+1] == '*' {
				tokens = append(tokens, token{kind: tokPow})
				i += 2
				continue
			}
			tokens = append(tokens, token{kind: tokMul})
			i += size
		case r == '·' || r == '×':
			tokens = append(tokens, token{kind: tokMul})
			i += size
		case r == '/':
			tokens = append(tokens, token{kind: tokDiv})
			i += size
		case r == '^':
			tokens = append(tokens, token{kind: tokPow})
			i += size
		case r == '²':
			tokens = append(tokens, token{kind: tokSuperscript, num: 2})
			i += size
		case r == '³':
			tokens = append(tokens, token{kind: tokSuperscript, num: 3})
			i += size
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen})
			i += size
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen})
			i += size
		case r == '-' || r == '+' || r == '.' || unicode.IsDigit(r):
			j := scanNumber(expr, i)
			if j == i {
				return nil, fmt.Errorf("%w: unexpected %q", errSyntax, r)
			}
			n, err := strconv.ParseFloat(expr[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", errSyntax, expr[i:j])
			}
			tokens = append(tokens, token{kind: tokNumber, text: expr[i:j], num: n})
			i = j
		case r == '_' || unicode.IsLetter(r):
			j := i
			for j < len(expr) {
				c, s := utf8.DecodeRuneInString(expr[j:])
				if c != '_' && !unicode.IsLetter(c) && !unicode.IsDigit(c) {
					break
				}
				j += s
			}
			tokens = append(tokens, token{kind: tokIdent, text: expr[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected %q", errSyntax, r)
		}
	}
	return append(tokens, token{kind: tokEOF}), nil
}

// scanNumber returns the end offset of a decimal literal starting at i.
func scanNumber(s string, i int) int {
	j := i
	if j < len(s) && (s[j] == '-' || s[j] == '+') {
		j++
	}
	digits := 0
	for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '.') {
		j++
		digits++
	}
	if digits == 0 {
		return i
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '-' || s[k] == '+') {
			k++
		}
		start := k
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > start {
			j = k
		}
	}
	return j
}

// parser is a recursive-descent parser over unit algebra:
//
//	expr   := term { ("*" | "/" | <juxtaposition>) term }
//	term   := factor [ ("^" | "**") integer | superscript ]
//	factor := number | identifier | "(" expr ")"
type parser struct {
	tokens []token
	pos    int
	lookup func(name string) (Unit, bool)
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parse() (Unit, error) {
	u, err := p.expr()
	if err != nil {
		return Unit{}, err
	}
	if p.peek().kind != tokEOF {
		return Unit{}, fmt.Errorf("%w: trailing input", errSyntax)
	}
	return u, nil
}

func (p *parser) expr() (Unit, error) {
	u, err := p.term()
	if err != nil {
		return Unit{}, err
	}
	for {
		switch p.peek().kind {
		case tokMul:
			p.next()
			v, err := p.term()
			if err != nil {
				return Unit{}, err
			}
			if u, err = u.mul(v); err != nil {
				return Unit{}, err
			}
		case tokDiv:
			p.next()
			v, err := p.term()
			if err != nil {
				return Unit{}, err
			}
			if u, err = u.div(v); err != nil {
				return Unit{}, err
			}
		case tokIdent, tokNumber, tokLParen:
			v, err := p.term()
			if err != nil {
				return Unit{}, err
			}
			if u, err = u.mul(v); err != nil {
				return Unit{}, err
			}
		default:
			return u, nil
		}
	}
}

func (p *parser) term() (Unit, error) {
	u, err := p.factor()
	if err != nil {
		return Unit{}, err
	}
	switch p.peek().kind {
	case tokPow:
		p.next()
		t := p.next()
		if t.kind != tokNumber || t.num != math.Trunc(t.num) {
			return Unit{}, fmt.Errorf("%w: exponent must be an integer", errSyntax)
		}
		if math.Abs(t.num) > math.MaxInt8 {
			return Unit{}, errExponentRange
		}
		return u.pow(int(t.num))
	case tokSuperscript:
		t := p.next()
		return u.pow(int(t.num))
	}
	return u, nil
}

func (p *parser) factor() (Unit, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return Unit{Scale: t.num}, nil
	case tokIdent:
		u, ok := p.lookup(t.text)
		if !ok {
			return Unit{}, &unknownNameError{name: t.text}
		}
		return u, nil
	case tokLParen:
		u, err := p.expr()
		if err != nil {
			return Unit{}, err
		}
		if p.next().kind != tokRParen {
			return Unit{}, fmt.Errorf("%w: missing ')'", errSyntax)
		}
		return u, nil
	}
	return Unit{}, fmt.Errorf("%w: expected a unit", errSyntax)
}

type unknownNameError struct {
	name string
}

func (e *unknownNameError) Error() string {
	return fmt.Sprintf("unknown unit name %q", e.name)
}
