package goform

import (
	"reflect"
	"strings"

	"github.com/reoring/goform/fieldpath"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct
// field's external key used by typed path tokens.
// Priority: goform:"name=..." > json tag name > field name; "-" disables the
// field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("goform"); gt != "" {
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// FieldNameOf returns the external key for a top-level field of S selected
// by selector.
// Example: FieldNameOf[Account](func(a *Account) *string { return &a.Email }) -> "email".
func FieldNameOf[S any, F any](selector func(*S) *F) string {
	if selector == nil {
		panic("goform.FieldNameOf: selector must not be nil")
	}
	var zero S
	fp := reflect.ValueOf(selector(&zero)).Pointer()
	ft := reflect.TypeOf((*F)(nil)).Elem()
	rv := reflect.ValueOf(&zero).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if fv.CanAddr() && fv.Addr().Pointer() == fp && fv.Type() == ft {
			name := ResolveStructKey(sf)
			if name == "" || name == "-" {
				panic("goform.FieldNameOf: selected field is not exported or disabled")
			}
			return name
		}
	}
	panic("goform.FieldNameOf: selector must return address of a top-level field")
}

// PathOf resolves a selector addressing a (possibly nested) struct field of
// T into the fieldpath the engine registers it under, using ResolveStructKey
// names. The selector descends through plain struct fields only; pointer,
// slice and map hops are not supported. Sequence positions are appended with
// Path.At afterwards:
//
//	goform.PathOf[Order](func(o *Order) *string { return &o.Customer.Name })  // "customer.name"
//	goform.PathOf[Order](func(o *Order) *Item { return &o.Primary }).At(0)
//
// PathOf panics when the selector is nil or does not address a field of T;
// the result is trustworthy at construction time the way a compile-time
// path type would be.
func PathOf[T any, F any](selector func(*T) *F) fieldpath.Path {
	if selector == nil {
		panic("goform.PathOf: selector must not be nil")
	}
	var zero T
	target := reflect.ValueOf(selector(&zero)).Pointer()
	ft := reflect.TypeOf((*F)(nil)).Elem()
	p, ok := findFieldPath(reflect.ValueOf(&zero).Elem(), target, ft, nil, 0)
	if !ok || len(p) == 0 {
		panic("goform.PathOf: selector must address a struct field of T (non-pointer hops only)")
	}
	return p
}

const maxTokenDepth = 32

// findFieldPath matches on both address and static type, so selecting the
// first field of a nested struct resolves to that field rather than to the
// enclosing struct sharing its address.
func findFieldPath(v reflect.Value, target uintptr, ft reflect.Type, prefix fieldpath.Path, depth int) (fieldpath.Path, bool) {
	if depth > maxTokenDepth || v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		if !fv.CanAddr() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "" || name == "-" {
			continue
		}
		if fv.Addr().Pointer() == target && fv.Type() == ft {
			return prefix.Field(name), true
		}
		if fv.Kind() == reflect.Struct {
			if p, ok := findFieldPath(fv, target, ft, prefix.Field(name), depth+1); ok {
				return p, true
			}
		}
	}
	return nil, false
}
