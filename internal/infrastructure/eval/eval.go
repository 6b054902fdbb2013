package eval

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/freand76/kalkon/internal/domain"
	"github.com/zephyrtronium/bigfloat"
)

var oneFloat = big.NewFloat(1)

// evaluator walks one syntax tree. The scope and the engine's constant
// table are read but never written; every operation allocates its
// result, so values taken from the scope stay intact.
type evaluator struct {
	engine *Engine
	scope  map[string]domain.Value
}

func (ev *evaluator) prec() uint {
	return ev.engine.prec
}

func (ev *evaluator) eval(n *node) (*big.Float, error) {
	switch n.kind {
	case nodeNum:
		return ev.number(n)
	case nodeName:
		return ev.lookup(n)
	case nodeCall:
		return ev.call(n)
	case nodeNeg:
		x, err := ev.eval(n.left)
		if err != nil {
			return nil, err
		}
		return new(big.Float).SetPrec(ev.prec()).Neg(x), nil
	case nodePos:
		return ev.eval(n.left)
	case nodeInvert:
		x, err := ev.eval(n.left)
		if err != nil {
			return nil, err
		}
		xi, err := ev.integer(x, n.col, "bitwise inversion")
		if err != nil {
			return nil, err
		}
		return ev.fromInt(new(big.Int).Not(xi)), nil
	default:
		return ev.binary(n)
	}
}

func (ev *evaluator) binary(n *node) (*big.Float, error) {
	l, err := ev.eval(n.left)
	if err != nil {
		return nil, err
	}
	r, err := ev.eval(n.right)
	if err != nil {
		return nil, err
	}

	switch n.kind {
	case nodeFloorDiv:
		return ev.floorDiv(l, r, n.col)
	case nodeMod:
		return ev.floorMod(l, r, n.col)
	case nodePow:
		return ev.power(l, r, n.col)
	case nodeShl, nodeShr:
		return ev.shift(l, r, n.kind, n.col)
	case nodeAnd, nodeOr:
		return ev.bitwise(l, r, n.kind, n.col)
	}

	z := new(big.Float).SetPrec(ev.prec())
	switch n.kind {
	case nodeAdd:
		z.Add(l, r)
	case nodeSub:
		z.Sub(l, r)
	case nodeMul:
		z.Mul(l, r)
	case nodeDiv:
		if r.Sign() == 0 {
			return nil, &DivisionError{Col: n.col}
		}
		z.Quo(l, r)
	default:
		return nil, fmt.Errorf("unhandled operator node %d", n.kind)
	}
	return ev.finite(z, n.col)
}

// number parses a literal. Radix-prefixed literals go through big.Int,
// which understands the 0x/0b/0o prefixes and separators; decimal ones
// are parsed as floats after the separators are stripped.
func (ev *evaluator) number(n *node) (*big.Float, error) {
	text := n.text
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X', 'b', 'B', 'o', 'O':
			i, ok := new(big.Int).SetString(text, 0)
			if !ok {
				return nil, &SyntaxError{Col: n.col, Msg: fmt.Sprintf("malformed number '%s'", text)}
			}
			return ev.fromInt(i), nil
		}
	}
	clean := strings.ReplaceAll(text, "_", "")
	f, _, err := big.ParseFloat(clean, 10, ev.prec(), big.ToNearestEven)
	if err != nil {
		return nil, &SyntaxError{Col: n.col, Msg: fmt.Sprintf("malformed number '%s'", text)}
	}
	if f.IsInf() {
		return nil, &OverflowError{Col: n.col, Msg: "number too large"}
	}
	return f, nil
}

// lookup resolves a bare name: scope first, then constants. A known
// function name is reported as needing a call rather than as unknown.
func (ev *evaluator) lookup(n *node) (*big.Float, error) {
	if v, ok := ev.scope[n.text]; ok && v.Defined() {
		return v.Float(), nil
	}
	if c, ok := ev.engine.consts[n.text]; ok {
		return new(big.Float).Copy(c), nil
	}
	if _, ok := builtins[n.text]; ok {
		return nil, &UnknownSymbolError{
			Col:    n.col,
			Name:   n.text,
			Reason: fmt.Sprintf("'%s' is a function and needs arguments", n.text),
		}
	}
	return nil, &UnknownSymbolError{Col: n.col, Name: n.text}
}

func (ev *evaluator) call(n *node) (*big.Float, error) {
	if v, ok := ev.scope[n.text]; ok && v.Defined() {
		return nil, &UnknownSymbolError{
			Col:    n.col,
			Name:   n.text,
			Reason: fmt.Sprintf("'%s' is not a function", n.text),
		}
	}
	fn, ok := builtins[n.text]
	if !ok {
		if _, isConst := ev.engine.consts[n.text]; isConst {
			return nil, &UnknownSymbolError{
				Col:    n.col,
				Name:   n.text,
				Reason: fmt.Sprintf("'%s' is not a function", n.text),
			}
		}
		return nil, &UnknownSymbolError{Col: n.col, Name: n.text}
	}
	if len(n.args) < fn.minArgs || len(n.args) > fn.maxArgs {
		return nil, &CallError{Col: n.col, Func: n.text, Got: len(n.args)}
	}
	args := make([]*big.Float, len(n.args))
	for i, argNode := range n.args {
		x, err := ev.eval(argNode)
		if err != nil {
			return nil, err
		}
		args[i] = x
	}
	z, err := fn.apply(ev, n.col, args)
	if err != nil {
		return nil, err
	}
	return ev.finite(z, n.col)
}

func (ev *evaluator) power(l, r *big.Float, col int) (*big.Float, error) {
	if r.Sign() == 0 {
		return new(big.Float).SetPrec(ev.prec()).SetInt64(1), nil
	}
	if l.Sign() == 0 {
		if r.Sign() < 0 {
			return nil, &DivisionError{Col: col}
		}
		return new(big.Float).SetPrec(ev.prec()), nil
	}
	z := new(big.Float).SetPrec(ev.prec())
	if l.Signbit() {
		if !r.IsInt() {
			return nil, &DomainError{Col: col, Msg: "negative base requires an integer exponent"}
		}
		abs := new(big.Float).SetPrec(ev.prec()).Abs(l)
		bigfloat.Pow(z, abs, r)
		ri, _ := r.Int(nil)
		if ri.Bit(0) == 1 {
			z.Neg(z)
		}
	} else {
		bigfloat.Pow(z, l, r)
	}
	return ev.finite(z, col)
}

func (ev *evaluator) floorDiv(l, r *big.Float, col int) (*big.Float, error) {
	if r.Sign() == 0 {
		return nil, &DivisionError{Col: col}
	}
	if smallInt(l) && smallInt(r) {
		q, _ := flooredDivMod(l, r)
		return ev.fromInt(q), nil
	}
	q := new(big.Float).SetPrec(ev.prec()).Quo(l, r)
	return ev.finite(floorOf(q, ev.prec()), col)
}

func (ev *evaluator) floorMod(l, r *big.Float, col int) (*big.Float, error) {
	if r.Sign() == 0 {
		return nil, &DivisionError{Col: col}
	}
	if smallInt(l) && smallInt(r) {
		_, m := flooredDivMod(l, r)
		return ev.fromInt(m), nil
	}
	q := new(big.Float).SetPrec(ev.prec()).Quo(l, r)
	fq := floorOf(q, ev.prec())
	m := new(big.Float).SetPrec(ev.prec()).Mul(r, fq)
	m.Sub(l, m)
	return ev.finite(m, col)
}

func (ev *evaluator) shift(l, r *big.Float, kind nodeKind, col int) (*big.Float, error) {
	li, err := ev.integer(l, col, "shift")
	if err != nil {
		return nil, err
	}
	if !r.IsInt() {
		return nil, &DomainError{Col: col, Msg: "shift count must be an integer"}
	}
	ri, _ := r.Int(nil)
	if ri.Sign() < 0 {
		return nil, &DomainError{Col: col, Msg: "negative shift count"}
	}
	if !ri.IsInt64() || ri.Int64() > maxShiftCount {
		return nil, &OverflowError{Col: col, Msg: fmt.Sprintf("shift count larger than %d", maxShiftCount)}
	}
	count := uint(ri.Int64())
	z := new(big.Int)
	if kind == nodeShl {
		z.Lsh(li, count)
	} else {
		z.Rsh(li, count)
	}
	return ev.fromInt(z), nil
}

func (ev *evaluator) bitwise(l, r *big.Float, kind nodeKind, col int) (*big.Float, error) {
	name := "bitwise and"
	if kind == nodeOr {
		name = "bitwise or"
	}
	li, err := ev.integer(l, col, name)
	if err != nil {
		return nil, err
	}
	ri, err := ev.integer(r, col, name)
	if err != nil {
		return nil, err
	}
	z := new(big.Int)
	if kind == nodeAnd {
		z.And(li, ri)
	} else {
		z.Or(li, ri)
	}
	return ev.fromInt(z), nil
}

// integer converts a float that must be an exact integer, or fails with
// a DomainError naming the operation.
func (ev *evaluator) integer(x *big.Float, col int, op string) (*big.Int, error) {
	if !x.IsInt() {
		return nil, &DomainError{Col: col, Msg: op + " requires integer operands"}
	}
	if x.MantExp(nil) > maxIntegerBits {
		return nil, &OverflowError{Col: col, Msg: "integer too large for " + op}
	}
	i, _ := x.Int(nil)
	return i, nil
}

// smallInt reports an exact integer that is safe to expand to a big.Int.
func smallInt(x *big.Float) bool {
	return x.IsInt() && x.MantExp(nil) <= maxIntegerBits
}

func (ev *evaluator) fromInt(i *big.Int) *big.Float {
	return new(big.Float).SetPrec(ev.prec()).SetInt(i)
}

// finite guards against results that left the representable range.
// Operands are always finite, so an infinity here means overflow.
func (ev *evaluator) finite(z *big.Float, col int) (*big.Float, error) {
	if z.IsInf() {
		return nil, &OverflowError{Col: col, Msg: "result is not finite"}
	}
	return z, nil
}

// flooredDivMod is floored division on exact integers: the quotient
// rounds toward negative infinity and the remainder takes the divisor's
// sign, matching the floor semantics of // and %.
func flooredDivMod(l, r *big.Float) (*big.Int, *big.Int) {
	li, _ := l.Int(nil)
	ri, _ := r.Int(nil)
	q, m := new(big.Int).QuoRem(li, ri, new(big.Int))
	if m.Sign() != 0 && m.Sign() != ri.Sign() {
		q.Sub(q, big.NewInt(1))
		m.Add(m, ri)
	}
	return q, m
}

// floorOf rounds toward negative infinity. An already integral value is
// copied as-is, which also keeps huge exponents away from big.Int.
func floorOf(x *big.Float, prec uint) *big.Float {
	if x.IsInt() {
		return new(big.Float).SetPrec(prec).Set(x)
	}
	i, acc := x.Int(nil)
	z := new(big.Float).SetPrec(prec).SetInt(i)
	if acc == big.Above {
		z.Sub(z, oneFloat)
	}
	return z
}

// ceilOf rounds toward positive infinity.
func ceilOf(x *big.Float, prec uint) *big.Float {
	if x.IsInt() {
		return new(big.Float).SetPrec(prec).Set(x)
	}
	i, acc := x.Int(nil)
	z := new(big.Float).SetPrec(prec).SetInt(i)
	if acc == big.Below {
		z.Add(z, oneFloat)
	}
	return z
}
