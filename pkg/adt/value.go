package adt

import (
	"iter"
	"reflect"
	"strings"
)

// Value is an instance of one case of a Type. The zero Value is invalid:
// it belongs to no type and equals only other zero Values.
type Value struct {
	typ     *Type
	ordinal int
	payload []any
}

func (v Value) Type() *Type   { return v.typ }
func (v Value) Ordinal() int  { return v.ordinal }
func (v Value) IsValid() bool { return v.typ != nil }
func (v Value) Len() int      { return len(v.payload) }

// Case returns the case name, or "" for the zero Value.
func (v Value) Case() string {
	if v.typ == nil {
		return ""
	}
	return v.typ.cases[v.ordinal-1].Name
}

// Def returns the case definition, or the zero CaseDef for the zero Value.
func (v Value) Def() CaseDef {
	if v.typ == nil {
		return CaseDef{}
	}
	return v.typ.cases[v.ordinal-1]
}

// At returns the i-th payload element. It panics if i is out of range.
func (v Value) At(i int) any { return v.payload[i] }

// Payload returns a copy of the payload.
func (v Value) Payload() []any {
	out := make([]any, len(v.payload))
	copy(out, v.payload)
	return out
}

// All iterates over the payload in order.
func (v Value) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, x := range v.payload {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Unpack stores the payload into dst, which must hold one non-nil pointer
// per payload element:
//
//	var ns, mfr, product, check int
//	err := v.Unpack(&ns, &mfr, &product, &check)
//
// A nil element can be stored into any pointee that admits nil.
func (v Value) Unpack(dst ...any) error {
	if v.typ == nil {
		return ErrInvalidValue
	}
	if len(dst) != len(v.payload) {
		return NewArityMismatchError(v.typ.name, v.Case(), len(v.payload), len(dst))
	}
	for i, d := range dst {
		ptr := reflect.ValueOf(d)
		if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
			return &UnpackTypeError{Index: i, Want: reflect.TypeOf(d), Got: reflect.TypeOf(v.payload[i])}
		}
		target := ptr.Elem()
		src := v.payload[i]
		if src == nil {
			switch target.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
				target.SetZero()
				continue
			}
			return &UnpackTypeError{Index: i, Want: target.Type()}
		}
		sv := reflect.ValueOf(src)
		if !sv.Type().AssignableTo(target.Type()) {
			return &UnpackTypeError{Index: i, Want: target.Type(), Got: sv.Type()}
		}
		target.Set(sv)
	}
	return nil
}

// Equal reports whether v and other belong to the same Type and case and
// have element-wise equal payloads.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ || v.ordinal != other.ordinal || len(v.payload) != len(other.payload) {
		return false
	}
	for i := range v.payload {
		if !Equal(v.payload[i], other.payload[i]) {
			return false
		}
	}
	return true
}

// Hash combines the case name with the hashes of the payload elements.
// Equal values have equal hashes.
func (v Value) Hash() uint64 {
	h := hashString(v.Case())
	for _, x := range v.payload {
		h = 31*h + Hash(x)
	}
	return h
}

// String renders the value as TypeName.caseName(p0, p1, ...).
func (v Value) String() string {
	var sb strings.Builder
	p := reprPrinter{sb: &sb}
	p.variant(v)
	return sb.String()
}

// GoString makes %#v print the same text as %v.
func (v Value) GoString() string { return v.String() }
