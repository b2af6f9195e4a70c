// Package serialize converts resource declarations to CloudFormation
// property maps.
package serialize

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Properties serializes a resource struct to a CloudFormation Properties
// map. Field names are used verbatim (they are declared in PascalCase to
// match CloudFormation), zero values are omitted, and values implementing
// json.Marshaler (intrinsics) serialize through their marshaler.
func Properties(v any) (map[string]any, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot serialize %T as resource properties", v)
	}

	result := make(map[string]any)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldVal := val.Field(i)
		if isZeroValue(fieldVal) {
			continue
		}
		serialized, err := Value(fieldVal.Interface())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if serialized != nil {
			result[field.Name] = serialized
		}
	}

	return result, nil
}

// Value converts an arbitrary declaration value to a JSON-compatible value
// (maps, slices, and scalars only). Intrinsic types are normalized into
// their {"Fn::..."} map form so the result marshals identically to JSON and
// YAML.
func Value(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	// Intrinsics and other custom marshalers define the wire form.
	if marshaler, ok := v.(json.Marshaler); ok {
		data, err := marshaler.MarshalJSON()
		if err != nil {
			return nil, err
		}
		var result any
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, err
		}
		return result, nil
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return nil, nil
		}
		return Value(val.Elem().Interface())

	case reflect.Struct:
		return Properties(v)

	case reflect.Slice, reflect.Array:
		if val.Len() == 0 {
			return nil, nil
		}
		result := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			elem, err := Value(val.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			result[i] = elem
		}
		return result, nil

	case reflect.Map:
		if val.Len() == 0 {
			return nil, nil
		}
		result := make(map[string]any, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			elem, err := Value(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			result[iter.Key().String()] = elem
		}
		return result, nil

	case reflect.String:
		return val.String(), nil
	case reflect.Bool:
		return val.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return val.Float(), nil

	default:
		return nil, fmt.Errorf("unsupported value kind %s", val.Kind())
	}
}

// isZeroValue reports whether the field should be omitted from the
// serialized properties.
func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.String:
		return v.String() == ""
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Struct:
		if v.CanInterface() {
			if zeroer, ok := v.Interface().(interface{ IsZero() bool }); ok {
				return zeroer.IsZero()
			}
		}
		return false
	default:
		return false
	}
}
