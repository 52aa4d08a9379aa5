package schemy

import (
	"fmt"
	"regexp"
	"strconv"
)

// ParseError reports tokenization or structural failures: unbalanced
// parens, multiple top-level forms, malformed complex literals.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return "ParseError: " + e.Message
}

func NewParseError(msg string) *ParseError {
	return &ParseError{Message: msg}
}

// ComplexRegex classifies complex literals like 2+3i, .5-i, +2i.
// An omitted real part defaults to 0; a bare-sign imaginary
// coefficient defaults to +1 or -1.
var ComplexRegex = regexp.MustCompile(`^(\d*\.?\d*)([+-]\d*\.?\d*)i$`)

type parseState struct {
	tokens []Token
	pos    int
}

func (p *parseState) next() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return EndTk, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

// Parse consumes the token stream depth first and returns the single
// rooted Node. More than one top-level form is an error.
func Parse(tokens []Token) (Node, error) {
	p := &parseState{tokens: tokens}
	nodes, err := p.parseNodes(0)
	if err != nil {
		return nil, err
	}
	if len(nodes) > 1 {
		return nil, NewParseError("only one outer level permitted")
	}
	if len(nodes) == 0 {
		return nil, NewParseError("empty input")
	}
	return nodes[0], nil
}

func (p *parseState) parseNodes(depth int) ([]Node, error) {
	nodes := make([]Node, 0, 10)
	for {
		node, err := p.parseNode(depth)
		if err != nil {
			return nil, err
		}
		if node == nil {
			return nodes, nil
		}
		nodes = append(nodes, node)
	}
}

// parseNode returns the next Node, or nil when the current nesting
// level ends (a matching close paren, or clean end of input at the
// top level).
func (p *parseState) parseNode(depth int) (Node, error) {
	tok, ok := p.next()
	if !ok {
		if depth == 0 {
			return nil, nil
		}
		return nil, NewParseError("unexpected end of input")
	}

	switch tok.typ {
	case TokenLParen:
		inner, err := p.parseNodes(depth + 1)
		if err != nil {
			return nil, err
		}
		return &NodeList{Items: inner}, nil
	case TokenRParen:
		if depth > 0 {
			return nil, nil
		}
		return nil, NewParseError("unexpected close paren")
	case TokenString:
		return &NodeString{Val: tok.str}, nil
	case TokenAtom:
		return decodeAtom(tok.str)
	}
	return nil, NewParseError(fmt.Sprintf("unexpected token '%s'", tok))
}

// decodeAtom classifies a bare atom in priority order: bool, complex
// literal, integer, float, and finally a plain symbol.
func decodeAtom(atom string) (Node, error) {
	switch atom {
	case "#t":
		return &NodeBool{Val: true}, nil
	case "#f":
		return &NodeBool{Val: false}, nil
	}

	if m := ComplexRegex.FindStringSubmatch(atom); m != nil {
		return decodeComplex(atom, m[1], m[2])
	}

	if i, err := strconv.ParseInt(atom, 10, 32); err == nil {
		return &NodeInt{Val: int32(i)}, nil
	}
	if f, err := strconv.ParseFloat(atom, 64); err == nil {
		return &NodeFloat{Val: f}, nil
	}
	return &NodeSymbol{Name: atom}, nil
}

func decodeComplex(atom, realPart, imagPart string) (Node, error) {
	re := 0.0
	if realPart != "" {
		var err error
		re, err = strconv.ParseFloat(realPart, 64)
		if err != nil {
			return nil, NewParseError(fmt.Sprintf("error parsing complex constant %s", atom))
		}
	}

	var im float64
	switch imagPart {
	case "+":
		im = 1.0
	case "-":
		im = -1.0
	default:
		var err error
		im, err = strconv.ParseFloat(imagPart, 64)
		if err != nil {
			return nil, NewParseError(fmt.Sprintf("error parsing complex constant %s", atom))
		}
	}
	return &NodeComplex{Real: re, Imag: im}, nil
}
