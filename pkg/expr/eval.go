package expr

import (
	"math"
	"math/big"
)

func negate(x Value) Value {
	if x.isFloat {
		return FloatValue(-x.f)
	}
	return Value{i: new(big.Int).Neg(x.bigInt())}
}

// apply computes l op r. pos locates the operator for error reporting.
func apply(op string, l, r Value, pos int) (Value, error) {
	var v Value
	switch op {
	case "+", "-", "*":
		v = arith(op, l, r)
	case "/":
		if r.IsZero() {
			return Value{}, &Error{Kind: DivisionByZero, Pos: pos}
		}
		v = divide(l, r)
	case "//", "%":
		if r.IsZero() {
			return Value{}, &Error{Kind: ModuloByZero, Pos: pos}
		}
		q, m := floorDivMod(l, r)
		if op == "//" {
			v = q
		} else {
			v = m
		}
	case "^":
		if l.IsZero() && r.Float64() < 0 {
			return Value{}, &Error{Kind: DivisionByZero, Pos: pos, Msg: "zero raised to a negative power"}
		}
		v = FloatValue(math.Pow(l.Float64(), r.Float64()))
	default:
		return Value{}, malformed(pos, "unknown operator %q", op)
	}
	if v.isFloat && (math.IsNaN(v.f) || math.IsInf(v.f, 0)) {
		return Value{}, &Error{Kind: NonFinite, Pos: pos, Msg: "operator " + op}
	}
	return v, nil
}

func arith(op string, l, r Value) Value {
	if l.IsInt() && r.IsInt() {
		z := new(big.Int)
		switch op {
		case "+":
			z.Add(l.bigInt(), r.bigInt())
		case "-":
			z.Sub(l.bigInt(), r.bigInt())
		case "*":
			z.Mul(l.bigInt(), r.bigInt())
		}
		return Value{i: z}
	}
	x, y := l.Float64(), r.Float64()
	switch op {
	case "+":
		return FloatValue(x + y)
	case "-":
		return FloatValue(x - y)
	}
	return FloatValue(x * y)
}

// divide is true division. Two integers divide exactly and round once.
func divide(l, r Value) Value {
	if l.IsInt() && r.IsInt() {
		f, _ := new(big.Rat).SetFrac(l.bigInt(), r.bigInt()).Float64()
		return FloatValue(f)
	}
	return FloatValue(l.Float64() / r.Float64())
}

// floorDivMod returns the floored quotient and the remainder, whose sign
// follows the divisor: 7 // -2 == -4 and 7 % -2 == -1. r must be non-zero.
func floorDivMod(l, r Value) (Value, Value) {
	if l.IsInt() && r.IsInt() {
		b := r.bigInt()
		q, m := new(big.Int).QuoRem(l.bigInt(), b, new(big.Int))
		if m.Sign() != 0 && m.Sign() != b.Sign() {
			q.Sub(q, big.NewInt(1))
			m.Add(m, b)
		}
		return Value{i: q}, Value{i: m}
	}

	x, y := l.Float64(), r.Float64()
	mod := math.Mod(x, y)
	div := (x - mod) / y
	if mod != 0 {
		if (y < 0) != (mod < 0) {
			mod += y
			div -= 1
		}
	} else {
		mod = math.Copysign(0, y)
	}
	var floordiv float64
	if div != 0 {
		floordiv = math.Floor(div)
		if div-floordiv > 0.5 {
			floordiv += 1
		}
	} else {
		floordiv = math.Copysign(0, x/y)
	}
	return FloatValue(floordiv), FloatValue(mod)
}
