package message

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// toTree converts v into the generic payload tree: nil, bool, string, int64, uint64,
// float64, []any and map[string]any.
func toTree(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	return normalize(tree), nil
}

// fromTree decodes a payload tree into dst. Struct fields must be present in the tree
// unless they are optional (see required).
func fromTree(tree any, dst any) error {
	if err := checkFields(tree, reflect.TypeOf(dst)); err != nil {
		return err
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

var jsonUnmarshaler = reflect.TypeFor[json.Unmarshaler]()

// checkFields reports the first struct field of t that tree leaves out.
func checkFields(tree any, t reflect.Type) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(jsonUnmarshaler) {
		return nil
	}
	switch t.Kind() {
	case reflect.Struct:
		obj, ok := tree.(map[string]any)
		if !ok {
			return nil
		}
		return checkStruct(obj, t)
	case reflect.Slice, reflect.Array:
		list, ok := tree.([]any)
		if !ok {
			return nil
		}
		for i, e := range list {
			if err := checkFields(e, t.Elem()); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
	}
	return nil
}

func checkStruct(obj map[string]any, t reflect.Type) error {
	for i := range t.NumField() {
		f := t.Field(i)
		name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" && opts == "" {
			continue
		}
		if f.Anonymous && name == "" {
			ft := f.Type
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if err := checkStruct(obj, ft); err != nil {
					return err
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		v, present := lookupField(obj, name)
		if !present {
			if required(f, opts) {
				return fmt.Errorf("missing field `%s`", name)
			}
			continue
		}
		if err := checkFields(v, f.Type); err != nil {
			return fmt.Errorf("field `%s`: %w", name, err)
		}
	}
	return nil
}

// lookupField matches keys the way encoding/json does: exact first, then case-insensitive.
func lookupField(obj map[string]any, name string) (any, bool) {
	if v, ok := obj[name]; ok {
		return v, true
	}
	for k, v := range obj {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// required reports whether a field must be present. Pointers, maps, slices, interfaces
// and omitempty fields are optional.
func required(f reflect.StructField, opts string) bool {
	for _, o := range strings.Split(opts, ",") {
		if o == "omitempty" || o == "omitzero" {
			return false
		}
	}
	switch f.Type.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return false
	}
	return true
}

// normalize folds the number representations produced by the JSON and MessagePack
// decoders onto int64, uint64 and float64.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(string(x), 10, 64); err == nil {
			return u
		}
		f, _ := x.Float64()
		return f
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int:
		return int64(x)
	case uint8:
		return normalizeUint(uint64(x))
	case uint16:
		return normalizeUint(uint64(x))
	case uint32:
		return normalizeUint(uint64(x))
	case uint:
		return normalizeUint(uint64(x))
	case uint64:
		return normalizeUint(x)
	case float32:
		return float64(x)
	case []any:
		for i := range x {
			x[i] = normalize(x[i])
		}
		return x
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	default:
		return v
	}
}

// normalizeUint keeps non-negative integers that fit int64 as int64, so the same payload
// decodes to the same tree whichever codec produced it.
func normalizeUint(u uint64) any {
	if u <= 1<<63-1 {
		return int64(u)
	}
	return u
}
