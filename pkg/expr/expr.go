// Package expr parses and evaluates arithmetic expressions over integer and
// decimal literals with + - * / // % ^ and parentheses.
//
// Integer arithmetic is exact. True division and exponentiation produce
// floats. Floor division and modulo follow the divisor's sign and stay
// integral when both operands are integers.
package expr

// Evaluate parses s and computes its value. Every failure is an *Error whose
// Kind tells malformed input apart from arithmetic faults.
func Evaluate(s string) (Value, error) {
	n, err := Parse(s)
	if err != nil {
		return Value{}, err
	}
	return n.Eval()
}
