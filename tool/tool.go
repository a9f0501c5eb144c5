package tool

import (
	"context"
	"fmt"
	"reflect"

	"github.com/casualjim/arggpt/pkg/reflectx"
	"github.com/casualjim/arggpt/pkg/stdx"
	"github.com/fogfish/opts"
	json "github.com/goccy/go-json"
)

// Definition describes a function that can be offered to a model as a tool.
//
// Go reflection can't see parameter names, default values or doc comments, so
// these are carried explicitly. Parameter types come from the function itself.
type Definition struct {
	Name string
	// Description overrides the description parsed from Doc.
	Description string
	// Doc is the function's doc comment in the sectioned docstring format.
	Doc string
	// Parameters are the declared parameter names in signature order, excluding
	// a leading context.Context. Missing names fall back to paramN.
	Parameters []string
	// Defaults holds default values by parameter name. A parameter with a
	// default is optional.
	Defaults map[string]any
	// RequiredSections lists the doc sections that must be present.
	RequiredSections []string
	Function         any
}

// Option configures a Definition.
type Option = opts.Option[Definition]

// Must is like New but panics when the definition is invalid.
func Must(f any, options ...Option) Definition {
	return stdx.Must1(New(f, options...))
}

// New creates a Definition for the function f.
//
// It fails with ErrInvalidInput when f is not a function, is a method
// expression, has more parameter names than parameters, or has a default for
// a parameter it doesn't declare.
func New(f any, options ...Option) (Definition, error) {
	if !reflectx.IsFunction(f) {
		return Definition{}, errorf(ErrInvalidInput, "", "provided value of type %T is not a function", f)
	}
	if reflectx.IsStructMethod(f) {
		return Definition{}, errorf(ErrInvalidInput, reflectx.FunctionName(f), "method expressions are not supported, use a method value instead")
	}

	var def Definition
	if err := opts.Apply(&def, options); err != nil {
		return Definition{}, NewError(ErrInvalidInput, def.Name, err)
	}
	if def.Name == "" {
		def.Name = reflectx.FunctionName(f)
	}
	def.Function = f

	if _, err := def.signature(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

var (
	// Name sets the tool name. It defaults to the function name.
	Name = opts.ForName[Definition, string]("Name")
	// Description sets the tool description, taking precedence over the doc comment.
	Description = opts.ForName[Definition, string]("Description")
	// Doc sets the doc comment the description and parameter docs are parsed from.
	Doc = opts.ForName[Definition, string]("Doc")
)

// Parameters names the function's parameters in signature order.
func Parameters(names ...string) Option {
	return opts.Type[Definition](func(o *Definition) error {
		o.Parameters = append([]string(nil), names...)
		return nil
	})
}

// Default sets the default value of the named parameter, making it optional.
func Default(name string, value any) Option {
	return opts.Type[Definition](func(o *Definition) error {
		if name == "" {
			return fmt.Errorf("default value needs a parameter name")
		}
		if o.Defaults == nil {
			o.Defaults = make(map[string]any)
		}
		o.Defaults[name] = value
		return nil
	})
}

// RequireSections makes the named doc sections mandatory.
func RequireSections(sections ...string) Option {
	return opts.Type[Definition](func(o *Definition) error {
		o.RequiredSections = append(o.RequiredSections, sections...)
		return nil
	})
}

var errorType = reflect.TypeFor[error]()

type parameter struct {
	name string
	typ  reflect.Type
}

type signature struct {
	fn           reflect.Value
	takesContext bool
	params       []parameter
	// result is the type of the first non-error output, nil when there is none.
	result      reflect.Type
	resultIndex int
	errorIndex  int
}

func (d Definition) signature() (*signature, error) {
	if !reflectx.IsFunction(d.Function) {
		return nil, errorf(ErrInvalidInput, d.Name, "provided value of type %T is not a function", d.Function)
	}

	fn := reflect.ValueOf(d.Function)
	typ := fn.Type()
	sig := &signature{fn: fn, resultIndex: -1, errorIndex: -1}

	start := 0
	if typ.NumIn() > 0 && reflectx.IsRefinedType[context.Context](typ.In(0)) {
		sig.takesContext = true
		start = 1
	}

	declared := typ.NumIn() - start
	if len(d.Parameters) > declared {
		return nil, errorf(ErrInvalidInput, d.Name, "%d parameter names given for %d parameters", len(d.Parameters), declared)
	}

	seen := make(map[string]bool, declared)
	for i := range declared {
		name := fmt.Sprintf("param%d", i)
		if i < len(d.Parameters) && d.Parameters[i] != "" {
			name = d.Parameters[i]
		}
		if seen[name] {
			return nil, errorf(ErrInvalidInput, d.Name, "duplicate parameter name %q", name)
		}
		seen[name] = true
		sig.params = append(sig.params, parameter{name: name, typ: typ.In(start + i)})
	}

	for name, value := range d.Defaults {
		p, ok := sig.param(name)
		if !ok {
			return nil, errorf(ErrInvalidInput, d.Name, "default given for undeclared parameter %q", name)
		}
		if _, err := convertDefault(value, p.typ); err != nil {
			return nil, errorf(ErrInvalidInput, d.Name, "default for parameter %q: %v", name, err)
		}
	}

	for i := range typ.NumOut() {
		out := typ.Out(i)
		if out == errorType {
			if sig.errorIndex < 0 {
				sig.errorIndex = i
			}
			continue
		}
		if sig.result == nil {
			sig.result = out
			sig.resultIndex = i
		}
	}
	return sig, nil
}

func (s *signature) param(name string) (parameter, bool) {
	for _, p := range s.params {
		if p.name == name {
			return p, true
		}
	}
	return parameter{}, false
}

// convertDefault turns a default value into a value of the parameter's type.
// Values that aren't directly assignable or convertible go through JSON.
func convertDefault(value any, typ reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(typ), nil
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(typ) {
		return v, nil
	}
	if convertible(v.Type(), typ) {
		return v.Convert(typ), nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return reflect.Value{}, err
	}
	ptr := reflect.New(typ)
	if err := json.Unmarshal(b, ptr.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("can't use %T as %s: %w", value, typ, err)
	}
	return ptr.Elem(), nil
}

// convertible allows numeric to numeric and string to string conversions only.
// reflect would also convert an int to a string, which is never what a default means.
func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}
	return (isNumeric(from.Kind()) && isNumeric(to.Kind())) ||
		(from.Kind() == reflect.String && to.Kind() == reflect.String)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
