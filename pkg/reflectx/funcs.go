package reflectx

import (
	"reflect"
	"regexp"
	"runtime"
	"strings"
)

// IsFunction reports whether fn is a non-nil function value.
func IsFunction(fn any) bool {
	if fn == nil {
		return false
	}
	v := reflect.ValueOf(fn)
	return v.Kind() == reflect.Func && !v.IsNil()
}

// FunctionName returns the short name of a function, without its package path.
// Method values lose their "-fm" suffix. It returns an empty string for non-functions.
func FunctionName(fn any) string {
	if !IsFunction(fn) {
		return ""
	}

	val := reflect.ValueOf(fn)
	typ := val.Type()

	// named function types are reported by their type name
	if typ.Name() != "" {
		return typ.String()
	}

	rf := runtime.FuncForPC(val.Pointer())
	if rf == nil {
		return typ.String()
	}
	name := rf.Name()
	if lastDot := strings.LastIndex(name, "."); lastDot >= 0 {
		name = name[lastDot+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

// methodPattern matches method expressions in the following formats:
// 1. Optional package path: github.com/example/pkg.
// 2. Type name with optional pointer and parentheses:
//   - (*Type).Method - pointer receiver with parentheses
//   - (Type).Method - value receiver with parentheses
//   - Type.Method - value receiver without parentheses
//
// 3. Method name
var (
	methodPattern = `^(?:[^(]*?\.)?(?:\(\*([^)]+)\)|\(([^)]+)\)|([^.(]+))\.(\w+)$`
	methodRegex   = regexp.MustCompile(methodPattern)
)

// IsStructMethod checks if the provided value is a method expression (e.g., (*Type).Method or Type.Method).
// Method expressions take their receiver as the first argument, which can't be
// supplied from a JSON argument object. Method values (t.Method) are regular functions.
func IsStructMethod(f any) bool {
	if !IsFunction(f) {
		return false
	}

	t := reflect.TypeOf(f)
	if t.NumIn() == 0 {
		return false
	}

	firstParam := t.In(0)
	for firstParam.Kind() == reflect.Pointer {
		firstParam = firstParam.Elem()
	}
	if firstParam.Kind() != reflect.Struct {
		return false
	}

	rf := runtime.FuncForPC(reflect.ValueOf(f).Pointer())
	if rf == nil {
		return false
	}
	matches := methodRegex.FindStringSubmatch(rf.Name())
	if matches == nil {
		return false
	}

	structName := firstParam.Name()
	for i := 1; i <= 3; i++ {
		if matches[i] == structName {
			return true
		}
	}
	return false
}
