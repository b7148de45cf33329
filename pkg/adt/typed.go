package adt

import "reflect"

// Ctor1 is a Constructor of arity 1 whose slot type is checked at compile
// time. Values it builds are ordinary Values of the underlying case.
type Ctor1[A any] struct{ c Constructor }

// Typed1 binds c, which must have arity 1.
func Typed1[A any](c Constructor) (Ctor1[A], error) {
	if err := checkArity(c, 1); err != nil {
		return Ctor1[A]{}, err
	}
	return Ctor1[A]{c}, nil
}

func (t Ctor1[A]) Constructor() Constructor { return t.c }

func (t Ctor1[A]) New(a A) Value {
	return t.c.Must(a)
}

// Unpack returns the payload of v if v is a value of this case whose
// elements have the declared types.
func (t Ctor1[A]) Unpack(v Value) (a A, ok bool) {
	if !t.c.Match(v) {
		return a, false
	}
	return slot[A](v.payload[0])
}

type Ctor2[A, B any] struct{ c Constructor }

// Typed2 binds c, which must have arity 2.
func Typed2[A, B any](c Constructor) (Ctor2[A, B], error) {
	if err := checkArity(c, 2); err != nil {
		return Ctor2[A, B]{}, err
	}
	return Ctor2[A, B]{c}, nil
}

func (t Ctor2[A, B]) Constructor() Constructor { return t.c }

func (t Ctor2[A, B]) New(a A, b B) Value {
	return t.c.Must(a, b)
}

func (t Ctor2[A, B]) Unpack(v Value) (a A, b B, ok bool) {
	if !t.c.Match(v) {
		return a, b, false
	}
	a, okA := slot[A](v.payload[0])
	b, okB := slot[B](v.payload[1])
	if !okA || !okB {
		var za A
		var zb B
		return za, zb, false
	}
	return a, b, true
}

type Ctor3[A, B, C any] struct{ c Constructor }

// Typed3 binds c, which must have arity 3.
func Typed3[A, B, C any](c Constructor) (Ctor3[A, B, C], error) {
	if err := checkArity(c, 3); err != nil {
		return Ctor3[A, B, C]{}, err
	}
	return Ctor3[A, B, C]{c}, nil
}

func (t Ctor3[A, B, C]) Constructor() Constructor { return t.c }

func (t Ctor3[A, B, C]) New(a A, b B, c C) Value {
	return t.c.Must(a, b, c)
}

func (t Ctor3[A, B, C]) Unpack(v Value) (a A, b B, c C, ok bool) {
	if !t.c.Match(v) {
		return a, b, c, false
	}
	a, okA := slot[A](v.payload[0])
	b, okB := slot[B](v.payload[1])
	c, okC := slot[C](v.payload[2])
	if !okA || !okB || !okC {
		var za A
		var zb B
		var zc C
		return za, zb, zc, false
	}
	return a, b, c, true
}

type Ctor4[A, B, C, D any] struct{ c Constructor }

// Typed4 binds c, which must have arity 4.
func Typed4[A, B, C, D any](c Constructor) (Ctor4[A, B, C, D], error) {
	if err := checkArity(c, 4); err != nil {
		return Ctor4[A, B, C, D]{}, err
	}
	return Ctor4[A, B, C, D]{c}, nil
}

func (t Ctor4[A, B, C, D]) Constructor() Constructor { return t.c }

func (t Ctor4[A, B, C, D]) New(a A, b B, c C, d D) Value {
	return t.c.Must(a, b, c, d)
}

func (t Ctor4[A, B, C, D]) Unpack(v Value) (a A, b B, c C, d D, ok bool) {
	if !t.c.Match(v) {
		return a, b, c, d, false
	}
	a, okA := slot[A](v.payload[0])
	b, okB := slot[B](v.payload[1])
	c, okC := slot[C](v.payload[2])
	d, okD := slot[D](v.payload[3])
	if !okA || !okB || !okC || !okD {
		var za A
		var zb B
		var zc C
		var zd D
		return za, zb, zc, zd, false
	}
	return a, b, c, d, true
}

func checkArity(c Constructor, n int) error {
	if c.typ == nil {
		return ErrInvalidValue
	}
	if c.def.Arity != n {
		return NewArityMismatchError(c.typ.name, c.def.Name, c.def.Arity, n)
	}
	return nil
}

// slot converts a payload element to T. A nil element converts to the zero
// T when T admits nil.
func slot[T any](x any) (T, bool) {
	if t, ok := x.(T); ok {
		return t, true
	}
	var zero T
	if x == nil {
		switch reflect.TypeFor[T]().Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			return zero, true
		}
	}
	return zero, false
}
