package value

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// column is an exported struct field tagged with a column name.
type column struct {
	index     int
	name      string
	omitEmpty bool
}

// columnCache holds the tagged columns of every struct type converted so far.
var columnCache = struct {
	mutex   sync.RWMutex
	columns map[reflect.Type][]column
}{columns: make(map[reflect.Type][]column)}

// columnsOf returns the columns of the struct type t in field order,
// generating and caching them as required.
func columnsOf(t reflect.Type) ([]column, error) {
	columnCache.mutex.RLock()
	cols, ok := columnCache.columns[t]
	columnCache.mutex.RUnlock()
	if ok {
		return cols, nil
	}

	cols, err := generateColumns(t)
	if err != nil {
		return nil, err
	}

	columnCache.mutex.Lock()
	defer columnCache.mutex.Unlock()
	columnCache.columns[t] = cols
	return cols, nil
}

func generateColumns(t reflect.Type) ([]column, error) {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		// Fields without a "db" tag are not columns.
		tag := f.Tag.Get("db")
		if tag == "" || tag == "-" || !f.IsExported() {
			continue
		}

		name, omitEmpty, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t.Name(), f.Name, err)
		}
		cols = append(cols, column{index: i, name: name, omitEmpty: omitEmpty})
	}
	return cols, nil
}

// parseTag parses the input tag string and returns its
// name and whether it contains the "omitempty" option.
func parseTag(tag string) (string, bool, error) {
	options := strings.Split(tag, ",")

	var omitEmpty bool
	if len(options) > 1 {
		if strings.ToLower(options[1]) != "omitempty" {
			return "", false, fmt.Errorf("unexpected tag value %q", options[1])
		}
		omitEmpty = true
	}
	if options[0] == "" {
		return "", false, fmt.Errorf("empty column name in tag %q", tag)
	}

	return options[0], omitEmpty, nil
}

// ofStruct converts a struct into an associative array of its tagged fields.
// Fields tagged omitempty are left out when they hold their zero value.
func ofStruct(v reflect.Value) (Value, error) {
	cols, err := columnsOf(v.Type())
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s has no db tags", ErrUnsupportedType, v.Type())
	}
	pairs := make([]Pair, 0, len(cols))
	for _, col := range cols {
		fv := v.Field(col.index)
		if col.omitEmpty && fv.IsZero() {
			continue
		}
		e, err := Of(fv.Interface())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.name, err)
		}
		pairs = append(pairs, Pair{Key: col.name, Value: e})
	}
	return NewAssoc(pairs...), nil
}
