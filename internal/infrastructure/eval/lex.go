package eval

import "fmt"

type tokenKind int8

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenOp
)

// token is one lexeme with its 1-based rune column.
type token struct {
	kind tokenKind
	text string
	col  int
}

// describe renders the token for an error message.
func (t token) describe() string {
	if t.kind == tokenEOF {
		return "end of expression"
	}
	return "'" + t.text + "'"
}

// operators lists every operator lexeme, longest first so that the
// scanner always takes the longest match.
var operators = []string{
	"**=", "<<=", ">>=", "//=",
	"==", "**", "//", "<<", ">>",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=",
	"+", "-", "*", "/", "%", "^", "~", "&", "|", "=", "(", ")", ",",
}

// lex splits src into tokens. The returned slice always ends with a
// tokenEOF whose column points one past the input.
func lex(src string) ([]token, error) {
	rs := []rune(src)
	toks := make([]token, 0, 16)
	i := 0
	for i < len(rs) {
		r := rs[i]
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			i++
		case isDecDigit(r) || (r == '.' && i+1 < len(rs) && isDecDigit(rs[i+1])):
			tok, next, err := scanNumber(rs, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case isIdentStart(r):
			start := i
			for i < len(rs) && isIdentPart(rs[i]) {
				i++
			}
			toks = append(toks, token{kind: tokenIdent, text: string(rs[start:i]), col: start + 1})
		default:
			op := matchOperator(rs[i:])
			if op == "" {
				return nil, &SyntaxError{Col: i + 1, Msg: fmt.Sprintf("invalid character %q", r)}
			}
			toks = append(toks, token{kind: tokenOp, text: op, col: i + 1})
			i += len(op)
		}
	}
	toks = append(toks, token{kind: tokenEOF, col: len(rs) + 1})
	return toks, nil
}

// matchOperator returns the longest operator lexeme at the front of rs.
func matchOperator(rs []rune) string {
	for _, op := range operators {
		if runesHavePrefix(rs, op) {
			return op
		}
	}
	return ""
}

func runesHavePrefix(rs []rune, s string) bool {
	j := 0
	for _, r := range s {
		if j >= len(rs) || rs[j] != r {
			return false
		}
		j++
	}
	return true
}

// scanNumber consumes one numeric literal starting at rs[start]. It
// accepts decimal mantissas with fraction and exponent, the 0x, 0b and
// 0o radix prefixes, and underscores strictly between digits. The token
// keeps the raw text; the evaluator strips separators when parsing.
func scanNumber(rs []rune, start int) (token, int, error) {
	if rs[start] == '0' && start+1 < len(rs) {
		switch rs[start+1] {
		case 'x', 'X':
			return scanPrefixed(rs, start, 16)
		case 'b', 'B':
			return scanPrefixed(rs, start, 2)
		case 'o', 'O':
			return scanPrefixed(rs, start, 8)
		}
	}

	j := start
	digits := 0
	seenDot := false
	seenExp := false
	var prev rune
	for j < len(rs) {
		r := rs[j]
		switch {
		case isDecDigit(r):
			digits++
			prev = r
			j++
			continue
		case r == '_':
			if !isDecDigit(prev) {
				return malformedNumber(rs, start, j+1)
			}
			prev = r
			j++
			continue
		case r == '.' && !seenDot && !seenExp:
			if prev == '_' {
				return malformedNumber(rs, start, j+1)
			}
			seenDot = true
			prev = r
			j++
			continue
		case (r == 'e' || r == 'E') && !seenExp && digits > 0:
			if prev == '_' {
				return malformedNumber(rs, start, j+1)
			}
			k := j + 1
			if k < len(rs) && (rs[k] == '+' || rs[k] == '-') {
				k++
			}
			if k >= len(rs) || !isDecDigit(rs[k]) {
				return malformedNumber(rs, start, k)
			}
			seenExp = true
			prev = r
			j = k
			continue
		}
		break
	}
	if digits == 0 || prev == '_' {
		return malformedNumber(rs, start, j)
	}
	if j < len(rs) && (isIdentPart(rs[j]) || rs[j] == '.') {
		return malformedNumber(rs, start, j+1)
	}
	return token{kind: tokenNumber, text: string(rs[start:j]), col: start + 1}, j, nil
}

// scanPrefixed consumes a 0x, 0b or 0o literal.
func scanPrefixed(rs []rune, start, base int) (token, int, error) {
	j := start + 2
	digits := 0
	var prev rune
	for j < len(rs) {
		r := rs[j]
		switch {
		case isBaseDigit(r, base):
			digits++
			prev = r
			j++
			continue
		case r == '_':
			if !isBaseDigit(prev, base) {
				return malformedNumber(rs, start, j+1)
			}
			prev = r
			j++
			continue
		}
		break
	}
	if digits == 0 || prev == '_' {
		return malformedNumber(rs, start, j)
	}
	if j < len(rs) && (isIdentPart(rs[j]) || rs[j] == '.') {
		return malformedNumber(rs, start, j+1)
	}
	return token{kind: tokenNumber, text: string(rs[start:j]), col: start + 1}, j, nil
}

func malformedNumber(rs []rune, start, end int) (token, int, error) {
	if end > len(rs) {
		end = len(rs)
	}
	return token{}, 0, &SyntaxError{
		Col: start + 1,
		Msg: fmt.Sprintf("malformed number %q", string(rs[start:end])),
	}
}

func isDecDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isBaseDigit(r rune, base int) bool {
	switch base {
	case 16:
		return isDecDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	case 8:
		return r >= '0' && r <= '7'
	case 2:
		return r == '0' || r == '1'
	default:
		return isDecDigit(r)
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDecDigit(r)
}
