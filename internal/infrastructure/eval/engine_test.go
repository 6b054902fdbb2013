package eval_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/infrastructure/eval"
)

const testPrecision = 128

func evalText(t *testing.T, e *eval.Engine, src string, scope map[string]domain.Value) string {
	t.Helper()
	res, err := e.Evaluate(src, scope)
	if err != nil {
		t.Fatalf("Evaluate(%q) returned error: %v", src, err)
	}
	return res.Value.Float().Text('g', 12)
}

func TestEngine_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "addition", src: "1+2", want: "3"},
		{name: "precedence", src: "2*3+4*5", want: "26"},
		{name: "true division", src: "10/4", want: "2.5"},
		{name: "parentheses", src: "(1+2)*3", want: "9"},
		{name: "unary plus", src: "+5", want: "5"},
		{name: "double negation", src: "--5", want: "5"},

		{name: "floor division", src: "7//2", want: "3"},
		{name: "floor division rounds down", src: "-7//2", want: "-4"},
		{name: "floor division on floats", src: "7.5//2", want: "3"},
		{name: "modulo", src: "7%3", want: "1"},
		{name: "modulo takes divisor sign", src: "-7%3", want: "2"},
		{name: "modulo negative divisor", src: "7%-3", want: "-2"},
		{name: "modulo on floats", src: "7.5%2", want: "1.5"},

		{name: "power caret", src: "2^10", want: "1024"},
		{name: "power doublestar", src: "2**10", want: "1024"},
		{name: "power right associative", src: "2^3^2", want: "512"},
		{name: "negation binds tighter than power", src: "-2^2", want: "4"},
		{name: "negative exponent", src: "2^-1", want: "0.5"},
		{name: "negative base integer exponent", src: "(-2)^3", want: "-8"},
		{name: "fractional exponent", src: "9^0.5", want: "3"},
		{name: "zero to the zero", src: "0^0", want: "1"},
		{name: "large power", src: "2**100", want: "1.26765060023e+30"},

		{name: "shift left", src: "1<<8", want: "256"},
		{name: "shift right", src: "256>>4", want: "16"},
		{name: "shift binds looser than addition", src: "1+2<<3", want: "24"},
		{name: "bitwise and", src: "0xff&0x0f", want: "15"},
		{name: "bitwise or", src: "0b101|0b010", want: "7"},
		{name: "and binds tighter than or", src: "1|2&3", want: "3"},
		{name: "inversion", src: "~0", want: "-1"},
		{name: "inversion of positive", src: "~5", want: "-6"},
		{name: "negative operand bitwise", src: "-1&0xff", want: "255"},

		{name: "hex literal", src: "0x10*2", want: "32"},
		{name: "octal literal", src: "0o17", want: "15"},
		{name: "binary literal", src: "0b1010", want: "10"},
		{name: "underscored literal", src: "1_000_000/8", want: "125000"},
		{name: "leading dot", src: ".5+.5", want: "1"},
		{name: "exponent literal", src: "1e3+1", want: "1001"},
		{name: "negative exponent literal", src: "2.5e-1", want: "0.25"},
		{name: "float addition", src: "0.1+0.2", want: "0.3"},
	}

	e := eval.New(testPrecision)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalText(t, e, tt.src, nil)
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestEngine_Functions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "sqrt", src: "sqrt(16)", want: "4"},
		{name: "cbrt", src: "cbrt(27)", want: "3"},
		{name: "cbrt negative", src: "cbrt(-8)", want: "-2"},
		{name: "cbrt zero", src: "cbrt(0)", want: "0"},
		{name: "abs", src: "abs(-3.5)", want: "3.5"},
		{name: "exp zero", src: "exp(0)", want: "1"},
		{name: "ln of e", src: "ln(e)", want: "1"},
		{name: "log base ten", src: "log(100)", want: "2"},
		{name: "log explicit base", src: "log(8, 2)", want: "3"},
		{name: "log2", src: "log2(32)", want: "5"},
		{name: "floor", src: "floor(2.7)", want: "2"},
		{name: "floor negative", src: "floor(-2.1)", want: "-3"},
		{name: "ceil", src: "ceil(2.1)", want: "3"},
		{name: "ceil negative", src: "ceil(-2.9)", want: "-2"},
		{name: "trunc", src: "trunc(2.9)", want: "2"},
		{name: "trunc negative", src: "trunc(-2.9)", want: "-2"},
		{name: "round half up", src: "round(2.5)", want: "3"},
		{name: "round half away from zero", src: "round(-2.5)", want: "-3"},
		{name: "round down", src: "round(2.4)", want: "2"},
		{name: "sin zero", src: "sin(0)", want: "0"},
		{name: "cos zero", src: "cos(0)", want: "1"},
		{name: "atan zero", src: "atan(0)", want: "0"},
		{name: "nested call", src: "sqrt(abs(-16))", want: "4"},
	}

	e := eval.New(testPrecision)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalText(t, e, tt.src, nil)
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestEngine_Constants(t *testing.T) {
	e := eval.New(testPrecision)
	if got := evalText(t, e, "pi", nil); got != "3.14159265359" {
		t.Errorf("pi = %s, want 3.14159265359", got)
	}
	if got, want := evalText(t, e, "tau/2", nil), evalText(t, e, "pi", nil); got != want {
		t.Errorf("tau/2 = %s, want %s", got, want)
	}
	if got := evalText(t, e, "phi^2 - phi", nil); got != "1" {
		t.Errorf("phi^2 - phi = %s, want 1", got)
	}
}

func TestEngine_Assignment(t *testing.T) {
	e := eval.New(testPrecision)
	scope := map[string]domain.Value{}

	res, err := e.Evaluate("x = 40 + 2", scope)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if !res.Assignment || res.Name != "x" {
		t.Fatalf("Assignment = %v Name = %q, want assignment to x", res.Assignment, res.Name)
	}
	if got := res.Value.Float().Text('g', 12); got != "42" {
		t.Fatalf("assigned value = %s, want 42", got)
	}
	if len(scope) != 0 {
		t.Fatalf("engine wrote %d entries into the scope, want none", len(scope))
	}

	scope["x"] = res.Value
	if got := evalText(t, e, "x * 2", scope); got != "84" {
		t.Errorf("x * 2 = %s, want 84", got)
	}

	res, err = e.Evaluate("x += 8", scope)
	if err != nil {
		t.Fatalf("augmented assignment returned error: %v", err)
	}
	if !res.Assignment || res.Name != "x" {
		t.Fatalf("Assignment = %v Name = %q, want assignment to x", res.Assignment, res.Name)
	}
	if got := res.Value.Float().Text('g', 12); got != "50" {
		t.Errorf("x += 8 = %s, want 50", got)
	}
}

func TestEngine_VariablesShadowConstants(t *testing.T) {
	e := eval.New(testPrecision)

	res, err := e.Evaluate("pi = 3", map[string]domain.Value{})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	scope := map[string]domain.Value{"pi": res.Value}
	if got := evalText(t, e, "pi * 2", scope); got != "6" {
		t.Errorf("shadowed pi * 2 = %s, want 6", got)
	}

	// A variable shadowing a function name makes calls to it fail.
	scope["sqrt"] = res.Value
	_, err = e.Evaluate("sqrt(4)", scope)
	if err == nil || !strings.Contains(err.Error(), "'sqrt' is not a function") {
		t.Errorf("shadowed sqrt(4) error = %v, want not a function", err)
	}
}

func TestEngine_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		check   func(error) bool
		wantCol int
		wantMsg string
	}{
		{name: "division by zero", src: "1/0", check: isA[*eval.DivisionError], wantCol: 2, wantMsg: "division by zero"},
		{name: "modulo by zero", src: "7%0", check: isA[*eval.DivisionError], wantCol: 2, wantMsg: "division by zero"},
		{name: "floor division by zero", src: "7//0", check: isA[*eval.DivisionError], wantCol: 2, wantMsg: "division by zero"},
		{name: "zero to negative power", src: "0^-1", check: isA[*eval.DivisionError], wantCol: 2, wantMsg: "division by zero"},
		{name: "negative base fractional exponent", src: "(-2)^0.5", check: isA[*eval.DomainError], wantCol: 5, wantMsg: "negative base requires an integer exponent"},
		{name: "sqrt of negative", src: "sqrt(-1)", check: isA[*eval.DomainError], wantCol: 1, wantMsg: "square root of a negative number"},
		{name: "ln of zero", src: "ln(0)", check: isA[*eval.DomainError], wantCol: 1, wantMsg: "logarithm of a non-positive number"},
		{name: "log base one", src: "log(5, 1)", check: isA[*eval.DomainError], wantCol: 1, wantMsg: "logarithm base must not be 1"},
		{name: "asin outside domain", src: "asin(2)", check: isA[*eval.DomainError], wantCol: 1, wantMsg: "outside domain of asin"},
		{name: "fractional bitwise operand", src: "1.5 & 2", check: isA[*eval.DomainError], wantCol: 5, wantMsg: "bitwise and requires integer operands"},
		{name: "fractional inversion", src: "~1.5", check: isA[*eval.DomainError], wantCol: 1, wantMsg: "bitwise inversion requires integer operands"},
		{name: "fractional shift base", src: "1.5 << 1", check: isA[*eval.DomainError], wantCol: 5, wantMsg: "shift requires integer operands"},
		{name: "fractional shift count", src: "1 << 1.5", check: isA[*eval.DomainError], wantCol: 3, wantMsg: "shift count must be an integer"},
		{name: "negative shift count", src: "1 << -1", check: isA[*eval.DomainError], wantCol: 3, wantMsg: "negative shift count"},
		{name: "huge shift count", src: "1 << 99999999", check: isA[*eval.OverflowError], wantCol: 3, wantMsg: "shift count larger than"},
		{name: "overflowing power", src: "10^10^10", check: isA[*eval.OverflowError], wantCol: 3, wantMsg: "result is not finite"},
		{name: "overflowing literal", src: "1e99999999999", check: isA[*eval.OverflowError], wantCol: 1, wantMsg: "number too large"},
		{name: "unknown symbol", src: "1 + nope", check: isA[*eval.UnknownSymbolError], wantCol: 5, wantMsg: "unknown symbol 'nope'"},
		{name: "function without call", src: "sqrt + 1", check: isA[*eval.UnknownSymbolError], wantCol: 1, wantMsg: "'sqrt' is a function and needs arguments"},
		{name: "constant called", src: "pi(2)", check: isA[*eval.UnknownSymbolError], wantCol: 1, wantMsg: "'pi' is not a function"},
		{name: "unknown function", src: "frob(2)", check: isA[*eval.UnknownSymbolError], wantCol: 1, wantMsg: "unknown symbol 'frob'"},
		{name: "too many arguments", src: "sqrt(1, 2)", check: isA[*eval.CallError], wantCol: 1, wantMsg: "cannot call sqrt with 2 arguments"},
		{name: "no arguments", src: "sqrt()", check: isA[*eval.CallError], wantCol: 1, wantMsg: "cannot call sqrt with 0 arguments"},
		{name: "syntax error", src: "2+", check: isA[*eval.SyntaxError], wantCol: 3, wantMsg: "unexpected end of expression"},
		{name: "empty input", src: "  ", check: isA[*eval.EmptyExpressionError], wantCol: 0, wantMsg: "empty expression"},
	}

	e := eval.New(testPrecision)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Evaluate(tt.src, nil)
			if err == nil {
				t.Fatalf("Evaluate(%q) succeeded, want error", tt.src)
			}
			if !tt.check(err) {
				t.Errorf("Evaluate(%q) error has type %T", tt.src, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Evaluate(%q) error = %q, want it to mention %q", tt.src, err, tt.wantMsg)
			}
			if got := eval.Position(err); got != tt.wantCol {
				t.Errorf("Evaluate(%q) column = %d, want %d", tt.src, got, tt.wantCol)
			}
		})
	}
}

func isA[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

func TestEngine_ExpressionLengthLimit(t *testing.T) {
	e := eval.New(testPrecision)
	src := "1" + strings.Repeat("+1", 4096)
	_, err := e.Evaluate(src, nil)
	if err == nil || !strings.Contains(err.Error(), "expression too long") {
		t.Fatalf("Evaluate of oversized input error = %v, want expression too long", err)
	}
}

func TestEngine_CacheReusesWithFreshScope(t *testing.T) {
	e := eval.New(testPrecision)

	one, err := e.Evaluate("seed = 1", map[string]domain.Value{})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	two, err := e.Evaluate("seed = 2", map[string]domain.Value{})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}

	if got := evalText(t, e, "seed + 1", map[string]domain.Value{"seed": one.Value}); got != "2" {
		t.Errorf("seed + 1 with seed=1 gives %s, want 2", got)
	}
	// Same source again; the cached parse must not pin the old scope.
	if got := evalText(t, e, "seed + 1", map[string]domain.Value{"seed": two.Value}); got != "3" {
		t.Errorf("seed + 1 with seed=2 gives %s, want 3", got)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	e := eval.New(testPrecision)
	first := evalText(t, e, "sqrt(2) + sin(1) * exp(2)", nil)
	for i := 0; i < 3; i++ {
		if got := evalText(t, e, "sqrt(2) + sin(1) * exp(2)", nil); got != first {
			t.Fatalf("run %d gave %s, first run gave %s", i, got, first)
		}
	}
}
