package tool

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/casualjim/arggpt/pkg/reflectx"
	json "github.com/goccy/go-json"
)

// Stringify renders a function result as message content. It returns false when
// there is no result to render: nil, or a nil pointer, map, slice or func.
//
// Strings are returned as is, times as RFC 3339, numbers and booleans in their
// literal form. Types with a text form use it, everything else is JSON encoded.
func Stringify(v any) (string, bool, error) {
	if reflectx.IsNil(v) {
		return "", false, nil
	}

	switch val := v.(type) {
	case string:
		return val, true, nil
	case []byte:
		return string(val), true, nil
	case time.Time:
		return val.Format(time.RFC3339), true, nil
	case error:
		return val.Error(), true, nil
	case encoding.TextMarshaler:
		b, err := val.MarshalText()
		if err != nil {
			return "", false, fmt.Errorf("failed to marshal result as text: %w", err)
		}
		return string(b), true, nil
	case fmt.Stringer:
		return val.String(), true, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true, nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true, nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true, nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(b), true, nil
}
