package expr

import (
	"math"
	"math/big"
	"strconv"
)

// Value is the result of an evaluation: an exact integer or a float64.
// The zero Value is the integer 0.
type Value struct {
	i       *big.Int
	f       float64
	isFloat bool
}

// IntValue returns an integer Value.
func IntValue(x int64) Value { return Value{i: big.NewInt(x)} }

// BigValue returns an integer Value holding a copy of x.
func BigValue(x *big.Int) Value { return Value{i: new(big.Int).Set(x)} }

// FloatValue returns a float Value.
func FloatValue(f float64) Value { return Value{f: f, isFloat: true} }

// IsInt reports whether v is an exact integer.
func (v Value) IsInt() bool { return !v.isFloat }

// Int returns a copy of the integer held by v, or nil for a float.
func (v Value) Int() *big.Int {
	if v.isFloat {
		return nil
	}
	if v.i == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.i)
}

// Float64 returns v as the nearest float64. Integers too large for a float64
// become ±Inf.
func (v Value) Float64() float64 {
	if v.isFloat {
		return v.f
	}
	if v.i == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.i).Float64()
	return f
}

// IsZero reports whether v equals zero (including -0.0).
func (v Value) IsZero() bool {
	if v.isFloat {
		return v.f == 0
	}
	return v.i == nil || v.i.Sign() == 0
}

// Equal reports whether a and b hold the same kind and the same number.
func (v Value) Equal(w Value) bool {
	if v.isFloat != w.isFloat {
		return false
	}
	if v.isFloat {
		return v.f == w.f || (math.IsNaN(v.f) && math.IsNaN(w.f))
	}
	return v.bigInt().Cmp(w.bigInt()) == 0
}

func (v Value) bigInt() *big.Int {
	if v.i == nil {
		return new(big.Int)
	}
	return v.i
}

// String formats v. Integers print in base 10. Floats print in the shortest
// form that parses back to the same float64: fixed notation when
// 1e-4 <= |v| < 1e16, exponent notation otherwise. Integral floats carry no
// trailing ".0" and negative zero prints as "0".
func (v Value) String() string {
	if !v.isFloat {
		return v.bigInt().String()
	}
	return formatFloat(v.f)
}

func formatFloat(f float64) string {
	switch {
	case f == 0:
		return "0"
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	if abs := math.Abs(f); abs >= 1e-4 && abs < 1e16 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}

// MarshalText renders v with String.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// MarshalJSON encodes v as a JSON number in its String form. Integers keep
// every digit. NaN and infinities have no JSON number form and are encoded
// as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isFloat && (math.IsNaN(v.f) || math.IsInf(v.f, 0)) {
		return []byte(strconv.Quote(v.String())), nil
	}
	return []byte(v.String()), nil
}
