package fluentdebug

import (
	"reflect"
	"runtime"
	"strings"
)

// NameOf returns the bare name of the function or method value fn, without
// package path or receiver type. Function literals have no name of their
// own, so NameOf returns the empty string for them, as it does for anything
// that is not a non-nil function.
func NameOf(fn any) string {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(rv.Pointer())
	if f == nil {
		return ""
	}
	return shortName(f.Name())
}

// shortName trims a symbol such as `example.com/pkg.(*T).Method-fm` down to
// `Method`.
func shortName(symbol string) string {
	name := symbol
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	name = strings.TrimSuffix(name, "[...]")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if isLiteralName(name) {
		return ""
	}
	return name
}

// isLiteralName matches the compiler's names for closures: func1, func2, and
// the bare numbers used for closures nested inside them.
func isLiteralName(name string) bool {
	digits := strings.TrimPrefix(name, "func")
	if digits == "" {
		return name == ""
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
