package schemy

import (
	"math"
)

type NumericOp int

const (
	Add NumericOp = iota
	Sub
	Mult
	Div
	Pow
)

func opName(op NumericOp) string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mult:
		return "*"
	case Div:
		return "/"
	case Pow:
		return "pow"
	}
	return "?"
}

// coerceBool turns #t/#f into 1/0 so booleans participate in
// arithmetic literally. Everything else passes through.
func coerceBool(v Value) Value {
	if b, ok := v.(*ValBool); ok {
		if b.Val {
			return &ValInt{Val: 1}
		}
		return &ValInt{Val: 0}
	}
	return v
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case *ValInt:
		return float64(n.Val), true
	case *ValFloat:
		return n.Val, true
	}
	return 0, false
}

func asComplex(v Value) (re, im float64, ok bool) {
	switch n := v.(type) {
	case *ValInt:
		return float64(n.Val), 0, true
	case *ValFloat:
		return n.Val, 0, true
	case *ValComplex:
		return n.Real, n.Imag, true
	}
	return 0, 0, false
}

func isExactZero(v Value) bool {
	switch n := v.(type) {
	case *ValInt:
		return n.Val == 0
	case *ValFloat:
		return n.Val == 0.0
	}
	return false
}

// NumericDo applies op over the numeric tower {Int, Float, Complex}:
// Int op Int stays Int (division truncates toward zero), any Float
// operand promotes the result to Float, any Complex operand promotes
// to Complex. Division by exact zero is an error rather than Inf/NaN.
// An unresolved symbol operand is an error here, even though it flows
// through list and quote harmlessly.
func NumericDo(op NumericOp, a, b Value) (Value, error) {
	if sym, ok := a.(*ValSymbol); ok {
		return nil, NewEvalError("unknown symbol %s", sym.Name)
	}
	if sym, ok := b.(*ValSymbol); ok {
		return nil, NewEvalError("unknown symbol %s", sym.Name)
	}

	if op == Div && isExactZero(b) {
		return nil, NewEvalError("invalid division by zero")
	}

	_, aComplex := a.(*ValComplex)
	_, bComplex := b.(*ValComplex)
	if aComplex || bComplex {
		if op == Pow {
			return nil, NewEvalError("invalid types for 'pow'")
		}
		ar, ai, ok := asComplex(a)
		if !ok {
			return nil, NewEvalError("invalid types for '%s'", opName(op))
		}
		br, bi, ok := asComplex(b)
		if !ok {
			return nil, NewEvalError("invalid types for '%s'", opName(op))
		}
		return numericComplexDo(op, ar, ai, br, bi)
	}

	ia, aInt := a.(*ValInt)
	ib, bInt := b.(*ValInt)
	if aInt && bInt && op != Pow {
		return numericIntDo(op, ia.Val, ib.Val), nil
	}

	fa, ok := asFloat(a)
	if !ok {
		return nil, NewEvalError("invalid types for '%s'", opName(op))
	}
	fb, ok := asFloat(b)
	if !ok {
		return nil, NewEvalError("invalid types for '%s'", opName(op))
	}
	return numericFloatDo(op, fa, fb), nil
}

func numericIntDo(op NumericOp, a, b int32) Value {
	switch op {
	case Add:
		return &ValInt{Val: a + b}
	case Sub:
		return &ValInt{Val: a - b}
	case Mult:
		return &ValInt{Val: a * b}
	case Div:
		return &ValInt{Val: a / b}
	}
	return &ValVoid{}
}

func numericFloatDo(op NumericOp, a, b float64) Value {
	switch op {
	case Add:
		return &ValFloat{Val: a + b}
	case Sub:
		return &ValFloat{Val: a - b}
	case Mult:
		return &ValFloat{Val: a * b}
	case Div:
		return &ValFloat{Val: a / b}
	case Pow:
		return &ValFloat{Val: math.Pow(a, b)}
	}
	return &ValVoid{}
}

func numericComplexDo(op NumericOp, ar, ai, br, bi float64) (Value, error) {
	switch op {
	case Add:
		return &ValComplex{Real: ar + br, Imag: ai + bi}, nil
	case Sub:
		return &ValComplex{Real: ar - br, Imag: ai - bi}, nil
	case Mult:
		return &ValComplex{Real: ar*br - ai*bi, Imag: ar*bi + br*ai}, nil
	case Div:
		den := br*br + bi*bi
		if den == 0 {
			return nil, NewEvalError("invalid division by zero")
		}
		return &ValComplex{Real: (ar*br + ai*bi) / den, Imag: (ai*br - ar*bi) / den}, nil
	}
	return nil, NewEvalError("invalid types for '%s'", opName(op))
}
