package refs

import (
	"fmt"
	"reflect"
	"unicode"

	"github.com/mitchellh/mapstructure"
	"github.com/rohanthewiz/rnav/core/rtr"
	"github.com/rohanthewiz/serr"
)

// NoParams is the parameter shape of a destination that takes no
// parameters. A Typed[NoParams] reference derives an empty key list and
// never requires argument values.
type NoParams = struct{}

// Typed pairs an ExternalRef with a struct parameter shape P.
// The reference's parameter names are derived from P's exported string
// fields in declaration order, so the declared key list and the values a
// caller can supply cannot drift apart.
//
// Example:
//
//	type repoParams struct {
//		OrgId  string
//		RepoId string
//	}
//	ref := refs.NewTyped[repoParams]()        // params: orgId, repoId
//	home := refs.NewTyped[refs.NoParams]()    // params: none
type Typed[P any] struct {
	*ExternalRef
}

// NewTyped creates an external route reference whose parameter names are
// derived from the shape P. Only the Optional option is meaningful here;
// WithParams is overridden by the derived list.
//
// P must be a struct with only exported string fields. Anything else is
// a programming error at declaration time and panics, the same way the
// path tree panics on conflicting parameter names.
func NewTyped[P any](opts ...Option) Typed[P] {
	ref := NewExternal(opts...)
	ref.paramNames = paramNamesOf[P]()
	return Typed[P]{ExternalRef: ref}
}

// Args converts a parameter value into ordered key/value parameters,
// ready for URL building. A NoParams shape yields no parameters.
// Panics on a zero-value Typed that skipped NewTyped, before any
// shape assumptions are made.
func (tr Typed[P]) Args(p P) []rtr.Parameter {
	if tr.ExternalRef == nil {
		panic("typed route reference was not built with NewTyped")
	}

	v := reflect.ValueOf(p)
	t := v.Type()

	params := make([]rtr.Parameter, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		params = append(params, rtr.Parameter{
			Key:   paramName(t.Field(i)),
			Value: v.Field(i).String(),
		})
	}
	return params
}

// Decode fills a parameter shape from captured route parameters.
// Every declared key must be present and no extra keys are allowed;
// either mismatch is an error.
func (tr Typed[P]) Decode(params []rtr.Parameter) (p P, err error) {
	if tr.ExternalRef == nil {
		return p, serr.New("typed route reference was not built with NewTyped")
	}

	in := make(map[string]string, len(params))
	for _, param := range params {
		in[param.Key] = param.Value
	}

	for _, name := range tr.paramNames {
		if _, ok := in[name]; !ok {
			return p, serr.New("missing route parameter", "param", name)
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &p,
		ErrorUnused: true,
	})
	if err != nil {
		return p, serr.Wrap(err, "creating params decoder")
	}

	if err = dec.Decode(in); err != nil {
		return p, serr.Wrap(err, "decoding route parameters")
	}
	return p, nil
}

// paramNamesOf derives the ordered parameter name list from the fields
// of the shape P. The empty struct derives an empty list.
func paramNamesOf[P any]() []string {
	t := reflect.TypeOf((*P)(nil)).Elem()

	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("route parameter shape must be a struct, got %s", t.Kind()))
	}

	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if !field.IsExported() {
			panic(fmt.Sprintf("route parameter field %q must be exported", field.Name))
		}
		if field.Type.Kind() != reflect.String {
			panic(fmt.Sprintf("route parameter field %q must be a string, got %s",
				field.Name, field.Type.Kind()))
		}

		names = append(names, paramName(field))
	}
	return names
}

// paramName returns the parameter name for a struct field: the
// mapstructure tag when present, otherwise the field name with its
// first rune lowered (OrgId -> orgId), matching route path style.
func paramName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("mapstructure"); ok && tag != "" {
		return tag
	}

	runes := []rune(field.Name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
