package value

// Truthy classifies a value for boolean contexts (SPEC_FULL.md §4.3):
// false, null, numeric zero, empty string, empty array, and empty object
// are falsy; everything else is truthy.
func Truthy(v Value) bool {
	switch vv := v.(type) {
	case Null:
		return false
	case Bool:
		return bool(vv)
	case Number:
		return vv.Float64() != 0
	case String:
		return len(vv) != 0
	case Array:
		return len(vv) != 0
	case Object:
		return vv.Len() != 0
	default:
		return true
	}
}

// Equal reports structural equality across all value kinds (spec.md §3):
// numbers compare by value, strings byte-for-byte, arrays and objects
// element-wise and key-wise.
func Equal(a, b Value) bool {
	if a == nil {
		a = Nil
	}
	if b == nil {
		b = Nil
	}
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && Compare(av, bv) == 0
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			aval, _ := av.Get(k)
			bval, bok := bv.Get(k)
			if !bok || !Equal(aval, bval) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
