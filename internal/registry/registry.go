package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/byavkin/pulsegen/internal/config"
	"github.com/byavkin/pulsegen/internal/generation"
)

// Plugin is the interface generator bundles implement to be registered.
type Plugin interface {
	Register(r *Registry)
}

// Operation is one harvested generate method together with its binding
// metadata.
type Operation struct {
	// Name is the public operation key, e.g. "pulsed_odmr".
	Name string
	// Method is the Go method name the operation was harvested from.
	Method string
	// Source names the generator type providing the method.
	Source string

	args   reflect.Type
	fields map[string]int
	fn     reflect.Value
}

// ArgsType returns the struct type of the method's argument parameter.
func (op *Operation) ArgsType() reflect.Type { return op.args }

// Registry holds the harvested operations and the manifest definitions for
// one application instance.
type Registry struct {
	operations  map[string]*Operation
	definitions map[string]*config.OperationDefinition
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		operations:  make(map[string]*Operation),
		definitions: make(map[string]*config.OperationDefinition),
	}
}

var (
	ctxType    = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType    = reflect.TypeOf((*error)(nil)).Elem()
	resultType = reflect.TypeOf((*generation.Result)(nil))
	baseType   = reflect.TypeOf(generation.Base{})
)

// RegisterGenerator harvests all generate methods of one generator instance.
// A generator must be a struct embedding generation.Base and nothing else,
// and every method starting with "Generate" must have the shape
//
//	func (g *G) Generate<Suffix>(ctx context.Context, args *Args) (*generation.Result, error)
//
// where Args is a struct whose fields carry `gen:"param_name"` tags. Shape
// violations are programmer errors and panic. An operation name that is
// already taken is overridden by the newcomer.
func (r *Registry) RegisterGenerator(gen any) {
	v := reflect.ValueOf(gen)
	t := v.Type()
	assertGeneratorShape(t)

	source := t.String()
	harvested := 0
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		suffix, ok := strings.CutPrefix(method.Name, "Generate")
		if !ok {
			continue
		}
		if suffix == "" {
			panic(fmt.Sprintf("generator %s: method Generate has no operation suffix", source))
		}

		bound := v.Method(i)
		mt := bound.Type()
		if mt.NumIn() != 2 || mt.In(0) != ctxType ||
			mt.In(1).Kind() != reflect.Pointer || mt.In(1).Elem().Kind() != reflect.Struct ||
			mt.NumOut() != 2 || mt.Out(0) != resultType || mt.Out(1) != errType {
			panic(fmt.Sprintf(
				"generator %s: method %s must have signature func(context.Context, *Args) (*generation.Result, error)",
				source, method.Name))
		}

		name := operationKey(suffix)
		op := &Operation{
			Name:   name,
			Method: method.Name,
			Source: source,
			args:   mt.In(1).Elem(),
			fields: paramFields(source, method.Name, mt.In(1).Elem()),
			fn:     bound,
		}

		if prev, exists := r.operations[name]; exists {
			slog.Debug("Overriding generate operation.",
				"operation", name, "previous", prev.Source, "new", source)
		} else {
			slog.Debug("Registering generate operation.", "operation", name, "source", source)
		}
		r.operations[name] = op
		harvested++
	}

	if harvested == 0 {
		panic(fmt.Sprintf("generator %s has no generate methods", source))
	}
}

// Operation looks a harvested operation up by name.
func (r *Registry) Operation(name string) (*Operation, bool) {
	op, ok := r.operations[name]
	return op, ok
}

// Definition looks a manifest definition up by operation name.
func (r *Registry) Definition(name string) (*config.OperationDefinition, bool) {
	def, ok := r.definitions[name]
	return def, ok
}

// OperationNames returns the sorted names of all harvested operations.
func (r *Registry) OperationNames() []string {
	names := make([]string, 0, len(r.operations))
	for name := range r.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parameters returns the declared parameters of an operation in manifest
// order, as an independent copy.
func (r *Registry) Parameters(name string) ([]config.ParamDefinition, bool) {
	def, ok := r.definitions[name]
	if !ok {
		return nil, false
	}
	params := make([]config.ParamDefinition, len(def.Params))
	copy(params, def.Params)
	return params, true
}

// Operations returns the full operation table. The map is a copy; mutating
// it does not affect the registry.
func (r *Registry) Operations() map[string]*Operation {
	ops := make(map[string]*Operation, len(r.operations))
	for name, op := range r.operations {
		ops[name] = op
	}
	return ops
}

// OperationParameters returns the parameter table of every defined operation,
// keyed by operation name. Slices are independent copies.
func (r *Registry) OperationParameters() map[string][]config.ParamDefinition {
	tables := make(map[string][]config.ParamDefinition, len(r.definitions))
	for name := range r.definitions {
		params, _ := r.Parameters(name)
		tables[name] = params
	}
	return tables
}

// assertGeneratorShape panics unless t is a struct (or pointer to struct)
// whose only embedded field is generation.Base.
func assertGeneratorShape(t reflect.Type) {
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		panic(fmt.Sprintf("generator %s is not a struct", t))
	}

	embeds := 0
	hasBase := false
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.Anonymous {
			continue
		}
		embeds++
		if field.Type == baseType || (field.Type.Kind() == reflect.Pointer && field.Type.Elem() == baseType) {
			hasBase = true
		}
	}
	if embeds != 1 || !hasBase {
		panic(fmt.Sprintf("generator %s must embed generation.Base and no other type", t))
	}
}

// paramFields maps `gen` tags of the argument struct to field indices.
func paramFields(source, method string, args reflect.Type) map[string]int {
	fields := make(map[string]int)
	for i := 0; i < args.NumField(); i++ {
		field := args.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := strings.Split(field.Tag.Get("gen"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		if _, exists := fields[tag]; exists {
			panic(fmt.Sprintf("generator %s: method %s: duplicate gen tag %q", source, method, tag))
		}
		fields[tag] = i
	}
	return fields
}

// operationKey converts a method suffix to its public snake_case name, e.g.
// "PulsedODMR" to "pulsed_odmr" and "T1Sequencing" to "t1_sequencing".
func operationKey(suffix string) string {
	var b strings.Builder
	runes := []rune(suffix)
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 {
			prev := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextIsLower) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
