package eval

import "fmt"

// Statement grammar:
//
//	stmt    = ident "=" expr
//	        | ident augop expr
//	        | expr
//	augop   = "+=" | "-=" | "*=" | "/=" | "//=" | "%=" | "**="
//	        | "&=" | "|=" | "<<=" | ">>="
//	expr    = unary { binop expr }
//	unary   = { "-" | "+" | "~" } primary
//	primary = number | ident | ident "(" args ")" | "(" expr ")"
//	args    = [ expr { "," expr } ]
//
// Binary operators climb by precedence: | binds loosest, then &, the
// shifts, additive, multiplicative, and power, which binds right to
// left. Unary operators bind tighter than any binary operator, so -2^2
// is (-2)^2. There is no implicit multiplication, and "==" is lexed but
// always rejected here.

type nodeKind int8

const (
	nodeNum nodeKind = iota
	nodeName
	nodeCall
	nodeNeg
	nodePos
	nodeInvert
	nodePow
	nodeMul
	nodeDiv
	nodeFloorDiv
	nodeMod
	nodeAdd
	nodeSub
	nodeShl
	nodeShr
	nodeAnd
	nodeOr
)

// node is one vertex of the syntax tree. text holds the raw literal or
// the identifier; col is the 1-based column used in error reporting.
type node struct {
	kind  nodeKind
	col   int
	text  string
	left  *node
	right *node
	args  []*node
}

// statement is one parsed input line. An augmented assignment is
// desugared during parsing, so expr already reads the old binding.
type statement struct {
	assign  bool
	name    string
	nameCol int
	expr    *node
}

// operator describes how strongly a binary operator binds and on which
// side it associates.
type operator struct {
	prec  int8
	right bool
	kind  nodeKind
}

func binaryOperator(text string) (operator, bool) {
	switch text {
	case "|":
		return operator{prec: 10, kind: nodeOr}, true
	case "&":
		return operator{prec: 20, kind: nodeAnd}, true
	case "<<":
		return operator{prec: 30, kind: nodeShl}, true
	case ">>":
		return operator{prec: 30, kind: nodeShr}, true
	case "+":
		return operator{prec: 40, kind: nodeAdd}, true
	case "-":
		return operator{prec: 40, kind: nodeSub}, true
	case "*":
		return operator{prec: 50, kind: nodeMul}, true
	case "/":
		return operator{prec: 50, kind: nodeDiv}, true
	case "//":
		return operator{prec: 50, kind: nodeFloorDiv}, true
	case "%":
		return operator{prec: 50, kind: nodeMod}, true
	case "^", "**":
		return operator{prec: 60, right: true, kind: nodePow}, true
	}
	return operator{}, false
}

// augmented maps each augmented assignment lexeme to the operator it
// applies to the old binding.
var augmented = map[string]nodeKind{
	"+=":  nodeAdd,
	"-=":  nodeSub,
	"*=":  nodeMul,
	"/=":  nodeDiv,
	"//=": nodeFloorDiv,
	"%=":  nodeMod,
	"**=": nodePow,
	"&=":  nodeAnd,
	"|=":  nodeOr,
	"<<=": nodeShl,
	">>=": nodeShr,
}

type parser struct {
	toks  []token
	pos   int
	depth int
}

// parse turns a token stream into a statement.
func parse(toks []token) (*statement, error) {
	if len(toks) == 0 || toks[0].kind == tokenEOF {
		return nil, &EmptyExpressionError{}
	}
	p := &parser{toks: toks}

	st := &statement{}
	augKind := nodeNum
	augCol := 0
	hasAug := false
	if toks[0].kind == tokenIdent && toks[1].kind == tokenOp {
		switch {
		case toks[1].text == "=":
			st.assign = true
			st.name = toks[0].text
			st.nameCol = toks[0].col
			p.pos = 2
		default:
			if kind, ok := augmented[toks[1].text]; ok {
				st.assign = true
				st.name = toks[0].text
				st.nameCol = toks[0].col
				augKind = kind
				augCol = toks[1].col
				hasAug = true
				p.pos = 2
			}
		}
	}

	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, &SyntaxError{Col: tok.col, Msg: fmt.Sprintf("unexpected %s", tok.describe())}
	}
	if hasAug {
		expr = &node{
			kind:  augKind,
			col:   augCol,
			left:  &node{kind: nodeName, col: st.nameCol, text: st.name},
			right: expr,
		}
	}
	st.expr = expr
	return st, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpr(min int8) (*node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenOp {
			break
		}
		if tok.text == "==" {
			return nil, &SyntaxError{Col: tok.col, Msg: "comparisons are not supported"}
		}
		op, ok := binaryOperator(tok.text)
		if !ok || op.prec < min {
			break
		}
		p.next()
		next := op.prec + 1
		if op.right {
			next = op.prec
		}
		rhs, err := p.parseExpr(next)
		if err != nil {
			return nil, err
		}
		lhs = &node{kind: op.kind, col: tok.col, left: lhs, right: rhs}
	}
	return lhs, nil
}

func (p *parser) parseUnary() (*node, error) {
	tok := p.peek()
	if tok.kind == tokenOp {
		var kind nodeKind
		switch tok.text {
		case "-":
			kind = nodeNeg
		case "+":
			kind = nodePos
		case "~":
			kind = nodeInvert
		default:
			return p.parsePrimary()
		}
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &node{kind: kind, col: tok.col, left: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNumber:
		return &node{kind: nodeNum, col: tok.col, text: tok.text}, nil
	case tokenIdent:
		if next := p.peek(); next.kind == tokenOp && next.text == "(" {
			return p.parseCall(tok)
		}
		return &node{kind: nodeName, col: tok.col, text: tok.text}, nil
	case tokenOp:
		if tok.text == "(" {
			if err := p.enter(tok.col); err != nil {
				return nil, err
			}
			inner, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			p.leave()
			return inner, nil
		}
		if tok.text == "==" {
			return nil, &SyntaxError{Col: tok.col, Msg: "comparisons are not supported"}
		}
	}
	return nil, &SyntaxError{Col: tok.col, Msg: fmt.Sprintf("unexpected %s", tok.describe())}
}

func (p *parser) parseCall(name token) (*node, error) {
	open := p.next()
	if err := p.enter(open.col); err != nil {
		return nil, err
	}
	call := &node{kind: nodeCall, col: name.col, text: name.text}
	if next := p.peek(); next.kind == tokenOp && next.text == ")" {
		p.next()
		p.leave()
		return call, nil
	}
	for {
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		call.args = append(call.args, arg)
		tok := p.next()
		if tok.kind == tokenOp {
			if tok.text == "," {
				continue
			}
			if tok.text == ")" {
				p.leave()
				return call, nil
			}
		}
		return nil, &SyntaxError{Col: tok.col, Msg: fmt.Sprintf("expected ',' or ')', found %s", tok.describe())}
	}
}

func (p *parser) expect(text string) error {
	tok := p.next()
	if tok.kind == tokenOp && tok.text == text {
		return nil
	}
	return &SyntaxError{Col: tok.col, Msg: fmt.Sprintf("expected '%s', found %s", text, tok.describe())}
}

func (p *parser) enter(col int) error {
	p.depth++
	if p.depth > maxNestingDepth {
		return &SyntaxError{Col: col, Msg: "nesting too deep"}
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}
