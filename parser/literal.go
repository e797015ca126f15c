package parser

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/docexpr/docexpr/value"
)

// parseJSONLiteral decodes the content of a backtick-fenced literal (the
// lexer has already verified it is valid JSON, or re-quoted it under the
// legacy-literals rule) into a Value, preserving the int/float distinction
// spec.md's number domain requires: a JSON number with no '.' or exponent
// decodes as an integer.
func parseJSONLiteral(text string) (value.Value, error) {
	var raw interface{}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return fromJSONAny(raw)
}

func fromJSONAny(raw interface{}) (value.Value, error) {
	switch v := raw.(type) {
	case nil:
		return value.Nil, nil
	case bool:
		return value.BoolOf(v), nil
	case string:
		return value.String(v), nil
	case json.Number:
		return numberFromJSON(v)
	case []interface{}:
		arr := make(value.Array, len(v))
		for i, el := range v {
			cv, err := fromJSONAny(el)
			if err != nil {
				return nil, err
			}
			arr[i] = cv
		}
		return arr, nil
	case map[string]interface{}:
		obj := value.NewOrderedMap()
		for k, el := range v {
			cv, err := fromJSONAny(el)
			if err != nil {
				return nil, err
			}
			obj.Set(k, cv)
		}
		return obj, nil
	default:
		return value.Nil, nil
	}
}

func numberFromJSON(n json.Number) (value.Value, error) {
	if i, err := n.Int64(); err == nil {
		return value.Int(i), nil
	}
	f, _, err := big.ParseFloat(n.String(), 10, 53, big.ToNearestEven)
	if err != nil {
		return nil, err
	}
	fv, _ := f.Float64()
	return value.Float(fv), nil
}
