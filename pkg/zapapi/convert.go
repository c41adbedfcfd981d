package zapapi

import (
	"fmt"
	"reflect"

	"github.com/cmstar/go-conv"
)

// resultConv converts decoded JSON values to caller types. The API encodes
// most numbers and booleans as strings, so conversion is deliberately loose
// ("42" -> int) and struct fields match case-insensitively.
var resultConv = conv.Conv{
	Conf: conv.Config{
		FieldMatcherCreator: &conv.SimpleMatcherCreator{
			Conf: conv.SimpleMatcherConfig{
				CaseInsensitive: true,
			},
		},
	},
}

// Convert converts a decoded JSON value to T.
func Convert[T any](v any) (T, error) {
	var zero T
	if out, ok := v.(T); ok {
		return out, nil
	}

	typ := reflect.TypeFor[T]()
	if v == nil {
		switch typ.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map:
			return zero, nil
		}
		return zero, fmt.Errorf("cannot convert null to %s", typ)
	}

	res, err := resultConv.ConvertType(v, typ)
	if err != nil {
		return zero, err
	}
	out, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("converted value has type %T, want %s", res, typ)
	}
	return out, nil
}
