package interp

import (
	"fmt"
	"io"
)

// Operation is one content-stream operator with its operands.
type Operation struct {
	Operator string
	Operands []Object
}

// ParseOperations tokenizes a decoded content stream into operations.
// Operands accumulate until a keyword is reached; the keyword becomes the
// operator. Inline images (BI ... ID ... EI) are skipped as a unit and
// surface as a bare "BI" operation so the dispatcher can diagnose them.
// Leftover operands at end of stream are discarded.
func ParseOperations(data []byte) ([]Operation, error) {
	lexer := NewLexerFromBytes(data)

	var ops []Operation
	var operands []Object

	for {
		tok, err := lexer.NextToken()
		if err != nil {
			// A lexical error poisons only the remainder of the stream;
			// everything parsed so far is still usable.
			return ops, fmt.Errorf("content stream at byte %d: %w", lexer.pos, err)
		}
		if tok.Type == TokenEOF {
			break
		}

		if tok.Type == TokenKeyword {
			kw := tok.Value.(string)
			switch kw {
			case "true":
				operands = append(operands, Boolean(true))
				continue
			case "false":
				operands = append(operands, Boolean(false))
				continue
			case "null":
				operands = append(operands, Null{})
				continue
			case "BI":
				if err := skipInlineImage(lexer); err != nil {
					return ops, err
				}
				ops = append(ops, Operation{Operator: "BI"})
				operands = nil
				continue
			}
			ops = append(ops, Operation{Operator: kw, Operands: operands})
			operands = nil
			continue
		}

		obj, err := parseObject(lexer, tok)
		if err != nil {
			return ops, err
		}
		operands = append(operands, obj)
	}

	return ops, nil
}

// parseObject converts a token into an operand, recursing for arrays and
// dictionaries.
func parseObject(lexer *Lexer, tok Token) (Object, error) {
	switch tok.Type {
	case TokenInteger:
		return Integer(tok.Value.(int64)), nil
	case TokenReal:
		return Real(tok.Value.(float64)), nil
	case TokenString:
		return String{Value: tok.Value.([]byte)}, nil
	case TokenHexString:
		return String{Value: tok.Value.([]byte), IsHex: true}, nil
	case TokenName:
		return Name(tok.Value.(string)), nil
	case TokenArrayStart:
		return parseArray(lexer)
	case TokenDictStart:
		return parseDictionary(lexer)
	case TokenKeyword:
		switch tok.Value.(string) {
		case "true":
			return Boolean(true), nil
		case "false":
			return Boolean(false), nil
		case "null":
			return Null{}, nil
		}
		return nil, fmt.Errorf("keyword %q inside composite operand at position %d", tok.Value, tok.Pos)
	default:
		return nil, fmt.Errorf("unexpected token type %v at position %d", tok.Type, tok.Pos)
	}
}

// parseArray reads objects until the matching close bracket.
func parseArray(lexer *Lexer) (Array, error) {
	arr := Array{}
	for {
		tok, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TokenArrayEnd:
			return arr, nil
		case TokenEOF:
			return nil, fmt.Errorf("unterminated array")
		}
		obj, err := parseObject(lexer, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

// parseDictionary reads key/value pairs until the matching close marker.
func parseDictionary(lexer *Lexer) (Dictionary, error) {
	dict := Dictionary{}
	for {
		tok, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TokenDictEnd:
			return dict, nil
		case TokenEOF:
			return nil, fmt.Errorf("unterminated dictionary")
		}
		if tok.Type != TokenName {
			return nil, fmt.Errorf("dictionary key must be a name at position %d", tok.Pos)
		}
		key := Name(tok.Value.(string))

		tok, err = lexer.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return nil, fmt.Errorf("unterminated dictionary")
		}
		val, err := parseObject(lexer, tok)
		if err != nil {
			return nil, err
		}
		dict[key] = val
	}
}

// skipInlineImage consumes an inline image up to and including the EI
// keyword: the header dictionary entries, the ID keyword, and the binary
// payload, which is scanned byte-wise for an EI bounded by whitespace.
func skipInlineImage(lexer *Lexer) error {
	// Header entries until ID
	for {
		tok, err := lexer.NextToken()
		if err != nil {
			return err
		}
		if tok.Type == TokenEOF {
			return fmt.Errorf("unterminated inline image")
		}
		if tok.Type == TokenKeyword && tok.Value.(string) == "ID" {
			break
		}
	}
	// One whitespace byte separates ID from the payload
	if _, err := lexer.readByte(); err != nil {
		return fmt.Errorf("unterminated inline image")
	}
	// Scan for whitespace-delimited EI
	var prev byte = ' '
	for {
		b, err := lexer.readByte()
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("unterminated inline image")
			}
			return err
		}
		if b == 'E' && isWhitespace(prev) {
			next, err := lexer.readByte()
			if err != nil {
				if err == io.EOF {
					return fmt.Errorf("unterminated inline image")
				}
				return err
			}
			if next == 'I' {
				trail, terr := lexer.peekByte()
				if terr == io.EOF || (terr == nil && isWhitespace(trail)) {
					return nil
				}
			}
			prev = next
			continue
		}
		prev = b
	}
}
