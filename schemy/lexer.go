package schemy

import (
	"bytes"
)

type TokenType int

const (
	TokenTypeEmpty TokenType = iota
	TokenLParen
	TokenRParen
	TokenString
	TokenAtom
	TokenEnd
)

type Token struct {
	typ TokenType
	str string
}

var EndTk = Token{typ: TokenEnd}

func (t Token) String() string {
	switch t.typ {
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenString:
		return `"` + t.str + `"`
	}
	return t.str
}

type LexerState int

const (
	LexerNormal LexerState = iota
	LexerStrLit
	LexerStrEscaped
	LexerComment
)

// Lexer turns raw source text into a flat token stream. A leading
// quote mark expands eagerly into an open paren plus a "quote" atom;
// the quotes stack tracks how deep each synthesized quote form is so
// it can be auto-closed after exactly one complete expression, even
// when quoted lists nest.
type Lexer struct {
	state  LexerState
	tokens []Token
	buffer *bytes.Buffer
	quotes []int
}

func NewLexer() *Lexer {
	return &Lexer{
		tokens: make([]Token, 0, 10),
		buffer: new(bytes.Buffer),
		state:  LexerNormal,
	}
}

func (lex *Lexer) Reset() {
	lex.tokens = lex.tokens[:0]
	lex.state = LexerNormal
	lex.buffer.Reset()
	lex.quotes = lex.quotes[:0]
}

func (lex *Lexer) Token(typ TokenType, str string) Token {
	return Token{typ: typ, str: str}
}

func (lex *Lexer) appendToken(tok Token) {
	lex.tokens = append(lex.tokens, tok)
}

// emit appends a token and settles any pending quote forms. An open
// paren deepens the innermost pending quote; a close paren or a bare
// atom can complete it, in which case the synthesized close paren may
// in turn complete the quote beneath it.
func (lex *Lexer) emit(tok Token) {
	switch tok.typ {
	case TokenLParen:
		lex.appendToken(tok)
		if n := len(lex.quotes); n > 0 {
			lex.quotes[n-1]++
		}
	case TokenRParen:
		lex.appendToken(tok)
		if n := len(lex.quotes); n > 0 {
			lex.quotes[n-1]--
			if lex.quotes[n-1] == 0 {
				lex.quotes = lex.quotes[:n-1]
				lex.emit(lex.Token(TokenRParen, ""))
			}
		}
	default:
		lex.appendToken(tok)
		if n := len(lex.quotes); n > 0 && lex.quotes[n-1] == 0 {
			lex.quotes = lex.quotes[:n-1]
			lex.emit(lex.Token(TokenRParen, ""))
		}
	}
}

func (lex *Lexer) dumpBuffer() {
	if lex.buffer.Len() == 0 {
		return
	}
	atom := lex.buffer.String()
	lex.buffer.Reset()
	lex.emit(lex.Token(TokenAtom, atom))
}

func (lex *Lexer) dumpString() {
	str := lex.buffer.String()
	lex.buffer.Reset()
	lex.emit(lex.Token(TokenString, str))
}

func (lex *Lexer) beginQuote() {
	lex.emit(lex.Token(TokenLParen, ""))
	lex.appendToken(lex.Token(TokenAtom, "quote"))
	lex.quotes = append(lex.quotes, 0)
}

func (lex *Lexer) LexNextRune(r rune) error {
	switch lex.state {

	case LexerStrLit:
		switch r {
		case '\\':
			lex.state = LexerStrEscaped
		case '"':
			lex.dumpString()
			lex.state = LexerNormal
		default:
			lex.buffer.WriteRune(r)
		}
		return nil

	case LexerStrEscaped:
		// a \" stays a literal quote inside the string body;
		// other escapes pass through untouched.
		if r != '"' {
			lex.buffer.WriteRune('\\')
		}
		lex.buffer.WriteRune(r)
		lex.state = LexerStrLit
		return nil

	case LexerComment:
		if r == '\n' {
			lex.state = LexerNormal
		}
		return nil

	case LexerNormal:
		switch r {
		case ';':
			lex.dumpBuffer()
			lex.state = LexerComment
		case '(':
			lex.dumpBuffer()
			lex.emit(lex.Token(TokenLParen, ""))
		case ')':
			lex.dumpBuffer()
			lex.emit(lex.Token(TokenRParen, ""))
		case '"':
			lex.dumpBuffer()
			lex.state = LexerStrLit
		case '\'':
			if lex.buffer.Len() > 0 {
				// mid-atom quote marks stay part of the atom
				lex.buffer.WriteRune(r)
				return nil
			}
			lex.beginQuote()
		case ' ', '\t', '\r', '\n':
			lex.dumpBuffer()
		default:
			lex.buffer.WriteRune(r)
		}
	}
	return nil
}

// Finish flushes any trailing atom and returns the token stream.
func (lex *Lexer) Finish() ([]Token, error) {
	if lex.state == LexerStrLit || lex.state == LexerStrEscaped {
		return nil, NewParseError("unterminated string literal")
	}
	lex.dumpBuffer()
	return lex.tokens, nil
}

// Tokenize runs the full lexer over program text.
func Tokenize(program string) ([]Token, error) {
	lex := NewLexer()
	for _, r := range program {
		if err := lex.LexNextRune(r); err != nil {
			return nil, err
		}
	}
	return lex.Finish()
}
