package schemy

// compareNumeric orders two numeric values, promoting Int to Float
// for cross-type comparison. Complex values have no ordering.
func compareNumeric(name string, a, b Value) (int, error) {
	if sym, ok := a.(*ValSymbol); ok {
		return 0, NewEvalError("unknown symbol %s", sym.Name)
	}
	if sym, ok := b.(*ValSymbol); ok {
		return 0, NewEvalError("unknown symbol %s", sym.Name)
	}

	fa, okA := asFloat(a)
	fb, okB := asFloat(b)
	if !okA || !okB {
		return 0, NewEvalError("invalid types for '%s'", name)
	}
	switch {
	case fa < fb:
		return -1, nil
	case fa > fb:
		return 1, nil
	}
	return 0, nil
}

// valuesEqual implements = and equal?. Numerics compare after
// promotion (a Complex equals a real number only when its imaginary
// part is zero); literals, strings and booleans compare by content;
// lists compare structurally.
func valuesEqual(name string, a, b Value) (bool, error) {
	if sym, ok := a.(*ValSymbol); ok {
		return false, NewEvalError("unknown symbol %s", sym.Name)
	}
	if sym, ok := b.(*ValSymbol); ok {
		return false, NewEvalError("unknown symbol %s", sym.Name)
	}

	ar, ai, aNum := asComplex(a)
	br, bi, bNum := asComplex(b)
	if aNum && bNum {
		return ar == br && ai == bi, nil
	}

	switch x := a.(type) {
	case *ValLiteral:
		if y, ok := b.(*ValLiteral); ok {
			return x.Text == y.Text, nil
		}
	case *ValString:
		if y, ok := b.(*ValString); ok {
			return x.Val == y.Val, nil
		}
	case *ValBool:
		if y, ok := b.(*ValBool); ok {
			return x.Val == y.Val, nil
		}
	case *ValList:
		if y, ok := b.(*ValList); ok {
			if len(x.Items) != len(y.Items) {
				return false, nil
			}
			for i := range x.Items {
				eq, err := valuesEqual(name, x.Items[i], y.Items[i])
				if err != nil {
					return false, err
				}
				if !eq {
					return false, nil
				}
			}
			return true, nil
		}
	}
	return false, NewEvalError("invalid types for '%s'", name)
}
