package eval

import (
	"github.com/docexpr/docexpr/errs"
	"github.com/docexpr/docexpr/parser"
	"github.com/docexpr/docexpr/value"
)

// visitSlice implements Python-style slicing with a signed step, the
// semantics spec.md §4.3 requires: nil components default per direction,
// negative indices count from the end, and a zero step is a runtime error
// rather than an empty result. Slicing applies to arrays and, by rune, to
// strings.
func (ev *Evaluator) visitSlice(n parser.Slice, current value.Value) (value.Value, error) {
	step := int64(1)
	if n.Step != nil {
		step = *n.Step
	}
	if step == 0 {
		return nil, &errs.InvalidValue{Reason: "slice step cannot be 0"}
	}
	switch v := current.(type) {
	case value.Array:
		length := int64(len(v))
		start, stop := sliceDefaults(n.Start, n.Stop, step, length)
		out := make(value.Array, 0, len(v))
		if step > 0 {
			for i := start; i < stop; i += step {
				out = append(out, v[i])
			}
		} else {
			for i := start; i > stop; i += step {
				out = append(out, v[i])
			}
		}
		return out, nil
	case value.String:
		runes := []rune(string(v))
		length := int64(len(runes))
		start, stop := sliceDefaults(n.Start, n.Stop, step, length)
		out := make([]rune, 0, len(runes))
		if step > 0 {
			for i := start; i < stop; i += step {
				out = append(out, runes[i])
			}
		} else {
			for i := start; i > stop; i += step {
				out = append(out, runes[i])
			}
		}
		return value.String(string(out)), nil
	default:
		return value.Nil, nil
	}
}

func sliceDefaults(startPtr, stopPtr *int64, step, length int64) (start, stop int64) {
	if step > 0 {
		start, stop = 0, length
	} else {
		start, stop = length-1, -1
	}
	if startPtr != nil {
		start = clampSliceIndex(*startPtr, step, length)
	}
	if stopPtr != nil {
		stop = clampSliceIndex(*stopPtr, step, length)
	}
	return start, stop
}

// clampSliceIndex normalizes a possibly-negative slice bound into [0,
// length] for a forward step, or [-1, length-1] for a backward step,
// mirroring Python's slice.indices().
func clampSliceIndex(idx, step, length int64) int64 {
	if idx < 0 {
		idx += length
		if idx < 0 {
			if step < 0 {
				return -1
			}
			return 0
		}
		return idx
	}
	if idx >= length {
		if step < 0 {
			return length - 1
		}
		return length
	}
	return idx
}
