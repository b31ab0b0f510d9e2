package core

// ScalarEqual compares two condition/context values. Only scalars compare
// equal: strings and bools by value, numbers by numeric value regardless of
// the concrete Go type (a JSON-decoded float64(2) equals int(2)). Any
// non-scalar operand yields false.
func ScalarEqual(a any, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}

	af, ok := toFloat(a)
	if !ok {
		return false
	}
	bf, ok := toFloat(b)
	if !ok {
		return false
	}
	return af == bf
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
