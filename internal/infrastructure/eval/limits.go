package eval

// Hard limits protecting the process from pathological input. They are
// deliberately far above anything a person types into a calculator.
const (
	// maxExpressionBytes bounds the accepted input length.
	maxExpressionBytes = 4096

	// maxNestingDepth bounds combined parenthesis and call nesting.
	maxNestingDepth = 200

	// maxShiftCount bounds the right operand of << and >>. A larger
	// count would allocate gigabyte-sized integers.
	maxShiftCount = 1 << 20

	// maxIntegerBits bounds the magnitude of exact-integer operands to
	// the bitwise operators and to floored division. A float like 1e9e9
	// is integral but would expand to an enormous big.Int.
	maxIntegerBits = 1 << 22

	// maxCachedStatements bounds the parse cache.
	maxCachedStatements = 256
)
