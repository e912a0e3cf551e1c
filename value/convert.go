package value

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/amosavian/WebNativeBridgeKit/errors"
)

// FromGo converts a Go value into a Value. Scalars, []byte, slices, and
// string-keyed maps convert directly; any other type (structs, typed slices)
// goes through a JSON round trip so providers can return plain structs.
func FromGo(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case *Value:
		if x == nil {
			return Null(), nil
		}
		return *x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Number(float64(x)), nil
	case uint8:
		return Number(float64(x)), nil
	case uint16:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case float32:
		return Number(float64(x)), nil
	case float64:
		return Number(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Null(), errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Value(x).
				Detail("invalid JSON number %q", x.String()).
				Build()
		}
		return Number(f), nil
	case string:
		return String(x), nil
	case []byte:
		return Bytes(x), nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			conv, err := FromGo(item)
			if err != nil {
				return Null(), err
			}
			items[i] = conv
		}
		return List(items...), nil
	case map[string]any:
		m := make(map[string]Value, len(x))
		for k, item := range x {
			conv, err := FromGo(item)
			if err != nil {
				return Null(), err
			}
			m[k] = conv
		}
		return Map(m), nil
	case map[string]Value:
		return Map(x), nil
	}

	return fromGoReflect(v)
}

// fromGoReflect handles structs, typed slices, and typed maps via JSON.
func fromGoReflect(v any) (Value, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Array, reflect.Map, reflect.Ptr:
		data, err := json.Marshal(v)
		if err != nil {
			return Null(), errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				GoType(fmt.Sprintf("%T", v)).
				Cause(err).
				Detail("value is not serializable").
				Build()
		}
		var out Value
		if err := out.UnmarshalJSON(data); err != nil {
			return Null(), err
		}
		return out, nil
	}
	return Null(), errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		GoType(fmt.Sprintf("%T", v)).
		Detail("value is not serializable").
		Build()
}

// Export converts the Value back into plain Go data: nil, bool, float64,
// string, []byte, []any, or map[string]any. This is the shape handed to
// script engines and JSON encoders.
func (v Value) Export() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindBytes:
		return v.raw
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Export()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.obj))
		for k, item := range v.obj {
			out[k] = item.Export()
		}
		return out
	}
	return nil
}
