package eval

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// function is one built-in. apply receives fully evaluated arguments;
// the evaluator has already checked the count against minArgs and
// maxArgs, and checks the result for finiteness afterwards.
type function struct {
	minArgs int
	maxArgs int
	apply   func(ev *evaluator, col int, args []*big.Float) (*big.Float, error)
}

// builtins is the function table. The constants pi, tau, e and phi are
// kept on the engine instead because they depend on the configured
// precision.
var builtins = map[string]function{
	"sqrt":  {1, 1, applySqrt},
	"cbrt":  {1, 1, applyCbrt},
	"exp":   {1, 1, applyExp},
	"ln":    {1, 1, applyLn},
	"log":   {1, 2, applyLog},
	"log2":  {1, 1, applyLog2},
	"abs":   {1, 1, applyAbs},
	"floor": {1, 1, applyFloor},
	"ceil":  {1, 1, applyCeil},
	"trunc": {1, 1, applyTrunc},
	"round": {1, 1, applyRound},
	"sin":   {1, 1, doubleFunc(math.Sin, "sin")},
	"cos":   {1, 1, doubleFunc(math.Cos, "cos")},
	"tan":   {1, 1, doubleFunc(math.Tan, "tan")},
	"asin":  {1, 1, doubleFunc(math.Asin, "asin")},
	"acos":  {1, 1, doubleFunc(math.Acos, "acos")},
	"atan":  {1, 1, doubleFunc(math.Atan, "atan")},
}

func applySqrt(ev *evaluator, col int, args []*big.Float) (*big.Float, error) {
	if args[0].Sign() < 0 {
		return nil, &DomainError{Col: col, Msg: "square root of a negative number"}
	}
	return new(big.Float).SetPrec(ev.prec()).Sqrt(args[0]), nil
}

// applyCbrt computes the real cube root; negative arguments keep
// their sign. big.Float has no root primitive beyond Sqrt, so the
// value goes through exp(ln|x|/3) at guard precision and the final
// rounding brings perfect cubes back exact.
func applyCbrt(ev *evaluator, col int, args []*big.Float) (*big.Float, error) {
	x := args[0]
	if x.Sign() == 0 {
		return new(big.Float).SetPrec(ev.prec()), nil
	}
	guard := ev.prec() + 32
	y := bigfloat.Log(new(big.Float).SetPrec(guard), new(big.Float).SetPrec(guard).Abs(x))
	y.Quo(y, new(big.Float).SetPrec(guard).SetInt64(3))
	y = bigfloat.Exp(new(big.Float).SetPrec(guard), y)
	if x.Signbit() {
		y.Neg(y)
	}
	return y.SetPrec(ev.prec()), nil
}

func applyExp(ev *evaluator, col int, args []*big.Float) (*big.Float, error) {
	return bigfloat.Exp(new(big.Float).SetPrec(ev.prec()), args[0]), nil
}

func applyLn(ev *evaluator, col int, args []*big.Float) (*big.Float, error) {
	if args[0].Sign() <= 0 {
		return nil, &DomainError{Col: col, Msg: "logarithm of a non-positive number"}
	}
	return bigfloat.Log(new(big.Float).SetPrec(ev.prec()), args[0]), nil
}

// applyLog is the base-10 logarithm, or log(x, b) for an explicit base.
func applyLog(ev *evaluator, col int, args []*big.Float) (*big.Float, error) {
	base := new(big.Float).SetPrec(ev.prec()).SetInt64(10)
	if len(args) == 2 {
		base = args[1]
	}
	return logBase(ev, col, args[0], base)
}

func applyLog2(ev *evaluator, col int, args []*big.Float) (*big.Float, error) {
	base := new(big.Float).SetPrec(ev.prec()).SetInt64(2)
	return logBase(ev, col, args[0], base)
}

func logBase(ev *evaluator, col int, x, base *big.Float) (*big.Float, error) {
	if x.Sign() <= 0 {
		return nil, &DomainError{Col: col, Msg: "logarithm of a non-positive number"}
	}
	if base.Sign() <= 0 {
		return nil, &DomainError{Col: col, Msg: "logarithm base must be positive"}
	}
	if base.Cmp(oneFloat) == 0 {
		return nil, &DomainError{Col: col, Msg: "logarithm base must not be 1"}
	}
	num := bigfloat.Log(new(big.Float).SetPrec(ev.prec()), x)
	den := bigfloat.Log(new(big.Float).SetPrec(ev.prec()), base)
	return num.Quo(num, den), nil
}

func applyAbs(ev *evaluator, col int, args []*big.Float) (*big.Float, error) {
	return new(big.Float).SetPrec(ev.prec()).Abs(args[0]), nil
}

func applyFloor(ev *evaluator, col int, args []*big.Float) (*big.Float, error) {
	return floorOf(args[0], ev.prec()), nil
}

func applyCeil(ev *evaluator, col int, args []*big.Float) (*big.Float, error) {
	return ceilOf(args[0], ev.prec()), nil
}

func applyTrunc(ev *evaluator, col int, args []*big.Float) (*big.Float, error) {
	x := args[0]
	if x.IsInt() {
		return new(big.Float).SetPrec(ev.prec()).Set(x), nil
	}
	i, _ := x.Int(nil)
	return ev.fromInt(i), nil
}

// applyRound rounds half away from zero.
func applyRound(ev *evaluator, col int, args []*big.Float) (*big.Float, error) {
	x := args[0]
	if x.IsInt() {
		return new(big.Float).SetPrec(ev.prec()).Set(x), nil
	}
	half := big.NewFloat(0.5)
	if x.Signbit() {
		t := new(big.Float).SetPrec(ev.prec()).Sub(x, half)
		return ceilOf(t, ev.prec()), nil
	}
	t := new(big.Float).SetPrec(ev.prec()).Add(x, half)
	return floorOf(t, ev.prec()), nil
}

// doubleFunc wraps a float64 function from the math package. The
// result carries at most 53 significant bits regardless of the
// configured precision, which is all the trigonometry this calculator
// promises.
func doubleFunc(f func(float64) float64, name string) func(*evaluator, int, []*big.Float) (*big.Float, error) {
	return func(ev *evaluator, col int, args []*big.Float) (*big.Float, error) {
		x, _ := args[0].Float64()
		if math.IsInf(x, 0) {
			return nil, &DomainError{Col: col, Msg: "argument too large for " + name}
		}
		y := f(x)
		if math.IsNaN(y) {
			return nil, &DomainError{Col: col, Msg: "argument outside domain of " + name}
		}
		if math.IsInf(y, 0) {
			return nil, &OverflowError{Col: col, Msg: "result is not finite"}
		}
		return new(big.Float).SetPrec(ev.prec()).SetFloat64(y), nil
	}
}

// computeConstants builds the constant table at the engine's precision.
// Variables shadow these names; assignments to them are allowed.
func computeConstants(prec uint) map[string]*big.Float {
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	two := new(big.Float).SetPrec(prec).SetInt64(2)

	pi := bigfloat.Pi(new(big.Float).SetPrec(prec))
	tau := new(big.Float).SetPrec(prec).Mul(pi, two)
	e := bigfloat.Exp(new(big.Float).SetPrec(prec), one)

	five := new(big.Float).SetPrec(prec).SetInt64(5)
	phi := new(big.Float).SetPrec(prec).Sqrt(five)
	phi.Add(phi, one)
	phi.Quo(phi, two)

	return map[string]*big.Float{
		"pi":  pi,
		"tau": tau,
		"e":   e,
		"phi": phi,
	}
}
