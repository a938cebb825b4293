package lyng

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/sergeych/lyng/internal/value"
)

// ToJSON marshals a runtime Value into a JSON document using sjson,
// giving an embedder a structured "inspect" mode alongside the
// script-level `inspect()` string form (§3.2). Lists become JSON arrays,
// Maps and user instances become objects, everything else a JSON scalar.
func ToJSON(v Value) (string, error) {
	doc, err := appendJSON("", "", v)
	if err != nil {
		return "", err
	}
	if doc == "" {
		return "null", nil
	}
	return doc, nil
}

func appendJSON(doc, path string, v Value) (string, error) {
	switch x := v.(type) {
	case value.Null, nil:
		return sjson.Set(doc, jsonPath(path), nil)
	case value.Void:
		return sjson.Set(doc, jsonPath(path), nil)
	case value.Bool:
		return sjson.Set(doc, jsonPath(path), x.Value)
	case value.Int:
		return sjson.Set(doc, jsonPath(path), x.Int64())
	case value.Real:
		return sjson.Set(doc, jsonPath(path), x.Value)
	case value.String:
		return sjson.Set(doc, jsonPath(path), x.Value)
	case value.Char:
		return sjson.Set(doc, jsonPath(path), string(x.Value))
	case *value.List:
		if path == "" {
			path = "root"
			doc, _ = sjson.Set(doc, path, []any{})
		}
		for i, e := range x.Elements {
			var err error
			doc, err = appendJSON(doc, fmt.Sprintf("%s.%d", path, i), e)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	case *value.Map:
		if path == "" {
			path = "root"
			doc, _ = sjson.Set(doc, path, map[string]any{})
		}
		for _, k := range x.Keys() {
			ks, err := k.ToString(nil)
			if err != nil {
				return "", err
			}
			val, _ := x.Get(k)
			doc, err = appendJSON(doc, path+"."+ks, val)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	default:
		s, err := v.ToString(nil)
		if err != nil {
			return "", err
		}
		return sjson.Set(doc, jsonPath(path), s)
	}
}

func jsonPath(path string) string {
	if path == "" {
		return "root"
	}
	return path
}

// FromJSON parses a JSON document into a runtime Value using gjson,
// the inverse of ToJSON: objects become Maps, arrays become Lists.
func FromJSON(doc string) (Value, error) {
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	return fromGJSON(gjson.Parse(doc)), nil
}

func fromGJSON(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return value.Null{}
	case gjson.True, gjson.False:
		return value.Bool{Value: r.Bool()}
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) {
			return value.NewInt(int64(r.Num))
		}
		return value.NewReal(r.Num)
	case gjson.String:
		return value.NewString(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			list := value.NewList()
			r.ForEach(func(_, v gjson.Result) bool {
				list.Add(fromGJSON(v))
				return true
			})
			return list
		}
		m := value.NewMap()
		r.ForEach(func(k, v gjson.Result) bool {
			m.Set(value.NewString(k.String()), fromGJSON(v))
			return true
		})
		return m
	default:
		return value.Null{}
	}
}
