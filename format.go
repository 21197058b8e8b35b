package fluentdebug

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// NullValue is how absent values are rendered: untyped nil, and nil
// pointers, interfaces, functions and channels.
const NullValue = "null"

// Mapping is implemented by key/value containers that have an order of their
// own. [FormatValue] renders them in the order Range visits them.
type Mapping interface {
	Range(fn func(key, value any) bool)
}

// FormatValue renders an argument value for a log line:
//
//   - a [Mapping] or a map renders as `{k1: v1, k2: v2}`; map keys are sorted
//   - a slice or an array renders as `[e1, e2]`
//   - anything else renders with its natural string form
//
// Keys, values and elements inside a mapping or sequence use their natural
// string form. A nil slice renders as `[]` and a nil map as `{}`. If a
// String or Error method panics, the value renders as `<unprintable T>`.
// FormatValue never panics.
func FormatValue(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = unprintable(v)
		}
	}()
	if m, ok := v.(Mapping); ok && !isNil(reflect.ValueOf(v)) {
		return formatMapping(m)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return formatMap(rv)
	case reflect.Slice, reflect.Array:
		return formatSequence(rv)
	}
	return natural(v)
}

func formatMapping(m Mapping) string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	m.Range(func(k, v any) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(natural(k) + ": " + natural(v))
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}

func formatMap(rv reflect.Value) string {
	type entry struct{ k, v reflect.Value }
	entries := make([]entry, 0, rv.Len())
	for it := rv.MapRange(); it.Next(); {
		entries = append(entries, entry{it.Key(), it.Value()})
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		return compareKeys(a.k, b.k)
	})
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(natural(e.k.Interface()) + ": " + natural(e.v.Interface()))
	}
	sb.WriteByte('}')
	return sb.String()
}

func formatSequence(rv reflect.Value) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(natural(rv.Index(i).Interface()))
	}
	sb.WriteByte(']')
	return sb.String()
}

// natural is the default string form of a value: Error or String if it has
// one, fmt's %v otherwise.
func natural(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = unprintable(v)
		}
	}()
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || isNil(rv) {
		return NullValue
	}
	switch t := v.(type) {
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

func unprintable(v any) string {
	return "<unprintable " + reflect.TypeOf(v).String() + ">"
}

func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.String:
			return strings.Compare(a.String(), b.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		case reflect.Bool:
			switch {
			case a.Bool() == b.Bool():
				return 0
			case b.Bool():
				return -1
			}
			return 1
		}
	}
	if c := strings.Compare(typeName(a), typeName(b)); c != 0 {
		return c
	}
	return strings.Compare(natural(valueOf(a)), natural(valueOf(b)))
}

func typeName(rv reflect.Value) string {
	if !rv.IsValid() {
		return ""
	}
	return rv.Type().String()
}

func valueOf(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}
