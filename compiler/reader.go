package compiler

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Reader: recursive descent parser producing surface forms
// ---------------------------------------------------------------------------

// Reader parses Cinder source code into surface forms.
type Reader struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
}

// NewReader creates a new reader for the given input.
func NewReader(input string) *Reader {
	r := &Reader{
		lexer: NewLexer(input),
	}
	// Read two tokens to fill curToken and peekToken
	r.nextToken()
	r.nextToken()
	return r
}

// nextToken advances to the next token.
func (r *Reader) nextToken() {
	r.curToken = r.peekToken
	r.peekToken = r.lexer.NextToken()
}

// Read parses all top-level forms from the input.
func (r *Reader) Read() ([]Form, error) {
	var forms []Form
	for r.curToken.Type != TokenEOF {
		form, err := r.readForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

// readForm parses one form.
func (r *Reader) readForm() (Form, error) {
	tok := r.curToken

	switch tok.Type {
	case TokenError:
		return nil, r.errorf("%s", tok.Literal)

	case TokenEOF:
		return nil, r.errorf("unexpected end of input")

	case TokenLParen:
		return r.readSequence(TokenRParen)

	case TokenLBracket:
		return r.readSequence(TokenRBracket)

	case TokenRParen, TokenRBracket:
		return nil, r.errorf("unexpected %s", tok.Type)

	case TokenString:
		r.nextToken()
		return &StringForm{SpanVal: r.spanFrom(tok), Value: tok.Literal}, nil

	case TokenNumber:
		r.nextToken()
		return &NumberForm{
			SpanVal: r.spanFrom(tok),
			Text:    tok.Literal,
			IsFloat: isFloatLiteral(tok.Literal),
		}, nil

	case TokenSymbol:
		r.nextToken()
		switch tok.Literal {
		case "true":
			return &BoolForm{SpanVal: r.spanFrom(tok), Value: true}, nil
		case "false":
			return &BoolForm{SpanVal: r.spanFrom(tok), Value: false}, nil
		}
		return &SymbolForm{SpanVal: r.spanFrom(tok), Name: tok.Literal}, nil

	default:
		return nil, r.errorf("unexpected token %s", tok)
	}
}

// readSequence parses forms until the given closing token.
func (r *Reader) readSequence(close TokenType) (Form, error) {
	open := r.curToken
	r.nextToken() // consume opener

	var items []Form
	for r.curToken.Type != close {
		switch r.curToken.Type {
		case TokenEOF:
			return nil, r.errorf("missing %s opened at line %d", close, open.Pos.Line)
		case TokenError:
			return nil, r.errorf("%s", r.curToken.Literal)
		}
		item, err := r.readForm()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	span := MakeSpan(open.Pos, r.curToken.Pos)
	r.nextToken() // consume closer

	if close == TokenRBracket {
		return &VecForm{SpanVal: span, Items: items}, nil
	}
	return &ListForm{SpanVal: span, Items: items}, nil
}

// spanFrom returns a span covering a single consumed token.
func (r *Reader) spanFrom(tok Token) Span {
	end := tok.Pos
	end.Offset += len(tok.Literal)
	end.Column += len(tok.Literal)
	return MakeSpan(tok.Pos, end)
}

// errorf builds a parse error tagged with the current source line.
func (r *Reader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", r.curToken.Pos.Line, fmt.Sprintf(format, args...))
}

// isFloatLiteral reports whether the literal text denotes a float.
func isFloatLiteral(text string) bool {
	if strings.HasPrefix(text, "0x") {
		return false
	}
	return strings.ContainsAny(text, ".eE")
}

// ReadString parses all forms from a source string.
func ReadString(input string) ([]Form, error) {
	return NewReader(input).Read()
}
