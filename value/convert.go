package value

import "fmt"

// FromGo converts a plain Go value — the shape produced by
// encoding/json.Unmarshal into interface{}, or by a YAML decoder after
// normalizing map[interface{}]interface{} to map[string]interface{} — into
// a Value tree. This is the one conversion point at the document boundary
// spec.md §1 excludes from the core; everything past this function works
// only in terms of Value.
func FromGo(v interface{}, newObject NewObjectFunc) Value {
	switch vv := v.(type) {
	case nil:
		return Nil
	case Value:
		return vv
	case bool:
		return BoolOf(vv)
	case string:
		return String(vv)
	case int:
		return Int(int64(vv))
	case int64:
		return Int(vv)
	case float64:
		return Float(vv)
	case []interface{}:
		arr := make(Array, len(vv))
		for i, el := range vv {
			arr[i] = FromGo(el, newObject)
		}
		return arr
	case map[string]interface{}:
		obj := newObject()
		for k, el := range vv {
			obj.Set(k, FromGo(el, newObject))
		}
		return obj
	case map[interface{}]interface{}:
		obj := newObject()
		for k, el := range vv {
			obj.Set(fmt.Sprint(k), FromGo(el, newObject))
		}
		return obj
	default:
		return String(fmt.Sprint(vv))
	}
}

// ToGo converts a Value back into plain Go types suitable for
// encoding/json.Marshal or yaml.Marshal at the CLI boundary.
func ToGo(v Value) interface{} {
	switch vv := v.(type) {
	case nil:
		return nil
	case Null:
		return nil
	case Bool:
		return bool(vv)
	case Number:
		if vv.IsInt() {
			return vv.Int64()
		}
		return vv.Float64()
	case String:
		return string(vv)
	case Array:
		out := make([]interface{}, len(vv))
		for i, el := range vv {
			out[i] = ToGo(el)
		}
		return out
	case Object:
		out := make(map[string]interface{}, vv.Len())
		for _, k := range vv.Keys() {
			el, _ := vv.Get(k)
			out[k] = ToGo(el)
		}
		return out
	default:
		return vv.String()
	}
}
