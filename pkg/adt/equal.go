package adt

import "reflect"

var valueType = reflect.TypeFor[Value]()

// Equal reports whether two payload elements are equal.
//
// Nested Values compare with Value.Equal. Other values compare structurally
// when they have the same dynamic type: basic kinds by value, slices and
// arrays element-wise (a nil slice equals an empty one), maps entry-wise,
// structs field-wise and interfaces by their contents. Pointers, channels
// and unsafe pointers compare by identity, as with ==. Funcs are equal only
// when both are nil. Cyclic data reachable without a pointer is not
// supported.
func Equal(a, b any) bool {
	if va, ok := a.(Value); ok {
		vb, ok := b.(Value)
		return ok && va.Equal(vb)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return deepEqual(reflect.ValueOf(a), reflect.ValueOf(b))
}

func deepEqual(x, y reflect.Value) bool {
	if !x.IsValid() || !y.IsValid() {
		return x.IsValid() == y.IsValid()
	}
	if x.Type() != y.Type() {
		return false
	}
	if x.Type() == valueType && x.CanInterface() && y.CanInterface() {
		return x.Interface().(Value).Equal(y.Interface().(Value))
	}

	switch x.Kind() {
	case reflect.Bool:
		return x.Bool() == y.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return x.Int() == y.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return x.Uint() == y.Uint()
	case reflect.Float32, reflect.Float64:
		return x.Float() == y.Float()
	case reflect.Complex64, reflect.Complex128:
		return x.Complex() == y.Complex()
	case reflect.String:
		return x.String() == y.String()
	case reflect.Slice, reflect.Array:
		if x.Len() != y.Len() {
			return false
		}
		for i := 0; i < x.Len(); i++ {
			if !deepEqual(x.Index(i), y.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Map:
		if x.Len() != y.Len() {
			return false
		}
		it := x.MapRange()
		for it.Next() {
			yv := y.MapIndex(it.Key())
			if !yv.IsValid() || !deepEqual(it.Value(), yv) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := 0; i < x.NumField(); i++ {
			if !deepEqual(x.Field(i), y.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Interface:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil()
		}
		return deepEqual(x.Elem(), y.Elem())
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return x.Pointer() == y.Pointer()
	case reflect.Func:
		return x.IsNil() && y.IsNil()
	}
	return false
}
