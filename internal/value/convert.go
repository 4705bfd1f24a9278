package value

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"
)

var ErrUnsupportedType = errors.New("unsupported argument type")

// TimeLayout is the layout used to render time.Time arguments.
const TimeLayout = "2006-01-02 15:04:05.999999"

// Of converts a Go value into a Value. Slices and arrays become lists, maps
// keyed by strings become associative arrays ordered by key, structs become
// associative arrays of their fields tagged with `db:"column"`, and pointers
// are followed. Values that are already a Value are returned unchanged.
func Of(arg any) (Value, error) {
	switch arg := arg.(type) {
	case nil:
		return Null{}, nil
	case Value:
		if rv := reflect.ValueOf(arg); rv.Kind() == reflect.Pointer {
			return ofReflect(rv)
		}
		return arg, nil
	case bool:
		return Bool(arg), nil
	case int:
		return Int(arg), nil
	case int8:
		return Int(arg), nil
	case int16:
		return Int(arg), nil
	case int32:
		return Int(arg), nil
	case int64:
		return Int(arg), nil
	case uint:
		return fromUint(uint64(arg))
	case uint8:
		return Int(arg), nil
	case uint16:
		return Int(arg), nil
	case uint32:
		return Int(arg), nil
	case uint64:
		return fromUint(arg)
	case float32:
		return Float(arg), nil
	case float64:
		return Float(arg), nil
	case string:
		return Str(arg), nil
	case []byte:
		if arg == nil {
			return Null{}, nil
		}
		return Str(arg), nil
	case time.Time:
		return Str(arg.Format(TimeLayout)), nil
	}
	rv := reflect.ValueOf(arg)
	// Named scalars such as time.Duration keep their underlying value even
	// when they implement fmt.Stringer.
	if s, ok := arg.(fmt.Stringer); ok && !isScalar(rv) {
		return Str(s.String()), nil
	}
	return ofReflect(rv)
}

// isScalar reports whether v, after following pointers, is a bool, number
// or string. A nil pointer counts as a scalar since it converts to Null.
func isScalar(v reflect.Value) bool {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return true
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedType, u)
	}
	return Int(u), nil
}

// ofReflect handles named types and containers that the type switch in Of
// cannot match directly.
func ofReflect(v reflect.Value) (Value, error) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return Null{}, nil
		}
		return Of(v.Elem().Interface())
	case reflect.Bool:
		return Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(v.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(v.Float()), nil
	case reflect.String:
		return Str(v.String()), nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return Null{}, nil
		}
		elems := make([]Value, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			e, err := Of(v.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			elems = append(elems, e)
		}
		return NewList(elems...), nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map keys must be strings, got %s", ErrUnsupportedType, v.Type().Key())
		}
		if v.IsNil() {
			return Null{}, nil
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		pairs := make([]Pair, 0, len(keys))
		for _, k := range keys {
			e, err := Of(v.MapIndex(k).Interface())
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k.String(), err)
			}
			pairs = append(pairs, Pair{Key: k.String(), Value: e})
		}
		return NewAssoc(pairs...), nil
	case reflect.Struct:
		return ofStruct(v)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
}

// OfAll converts every argument with Of.
func OfAll(args []any) ([]Value, error) {
	vs := make([]Value, 0, len(args))
	for i, arg := range args {
		v, err := Of(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		vs = append(vs, v)
	}
	return vs, nil
}
