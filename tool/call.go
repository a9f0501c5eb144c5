package tool

import (
	"context"
	"reflect"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Arguments are the keyword arguments of a tool call, keyed by parameter name.
type Arguments map[string]json.RawMessage

// ParseArguments decodes the JSON argument object of a tool call.
// A blank string is an empty argument object.
func ParseArguments(raw string) (Arguments, error) {
	if strings.TrimSpace(raw) == "" {
		return Arguments{}, nil
	}
	if !gjson.Valid(raw) {
		return nil, errorf(ErrArgumentParse, "", "invalid JSON: %q", truncate(raw, 64))
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		kind := parsed.Type.String()
		if parsed.IsArray() {
			kind = "Array"
		}
		return nil, errorf(ErrArgumentParse, "", "expected a JSON object, got %s", kind)
	}

	args := make(Arguments)
	parsed.ForEach(func(key, value gjson.Result) bool {
		args[key.String()] = json.RawMessage(value.Raw)
		return true
	})
	return args, nil
}

// Names returns the argument names in sorted order.
func (a Arguments) Names() []string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Call invokes the function with keyword arguments.
//
// Arguments are bound to parameters by name. Omitted parameters take their
// default. Unknown or missing required arguments fail with ErrExecution, values
// that don't decode into the parameter type fail with ErrArgumentParse. A
// leading context.Context receives ctx. Panics and returned errors are
// reported as ErrExecution.
func (d Definition) Call(ctx context.Context, args Arguments) (result any, err error) {
	sig, err := d.signature()
	if err != nil {
		return nil, err
	}

	in, err := d.bind(ctx, sig, args)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errorf(ErrExecution, d.Name, "%v", r)
		}
	}()

	var out []reflect.Value
	if sig.fn.Type().IsVariadic() {
		out = sig.fn.CallSlice(in)
	} else {
		out = sig.fn.Call(in)
	}

	if sig.errorIndex >= 0 {
		if e, _ := out[sig.errorIndex].Interface().(error); e != nil {
			return nil, NewError(ErrExecution, d.Name, e)
		}
	}
	if sig.resultIndex < 0 {
		return nil, nil
	}
	return out[sig.resultIndex].Interface(), nil
}

func (d Definition) bind(ctx context.Context, sig *signature, args Arguments) ([]reflect.Value, error) {
	for _, name := range args.Names() {
		if _, ok := sig.param(name); !ok {
			return nil, errorf(ErrExecution, d.Name, "%s() got an unexpected keyword argument '%s'", d.Name, name)
		}
	}

	in := make([]reflect.Value, 0, len(sig.params)+1)
	if sig.takesContext {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(&ctx).Elem())
	}

	var missing []string
	for _, p := range sig.params {
		raw, ok := args[p.name]
		if !ok {
			def, hasDefault := d.Defaults[p.name]
			if !hasDefault {
				missing = append(missing, p.name)
				continue
			}
			v, err := convertDefault(def, p.typ)
			if err != nil {
				return nil, errorf(ErrExecution, d.Name, "default for parameter '%s': %v", p.name, err)
			}
			in = append(in, v)
			continue
		}

		ptr := reflect.New(p.typ)
		if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
			return nil, errorf(ErrArgumentParse, d.Name, "parameter '%s': %v", p.name, err)
		}
		in = append(in, ptr.Elem())
	}

	if len(missing) > 0 {
		return nil, errorf(ErrExecution, d.Name, "%s() missing %d required argument(s): '%s'", d.Name, len(missing), strings.Join(missing, "', '"))
	}
	return in, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
