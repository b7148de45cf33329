package adt

// Constructor builds values of one case of a Type.
type Constructor struct {
	typ *Type
	def CaseDef
}

func (c Constructor) Type() *Type  { return c.typ }
func (c Constructor) Name() string { return c.def.Name }
func (c Constructor) Ordinal() int { return c.def.Ordinal }
func (c Constructor) Arity() int   { return c.def.Arity }
func (c Constructor) Def() CaseDef { return c.def }

// String returns the qualified case name, e.g. "Barcode.upca".
func (c Constructor) String() string {
	if c.typ == nil {
		return "<invalid>"
	}
	return c.typ.name + "." + c.def.Name
}

// New returns a value of this case holding a copy of payload. It fails
// with an ArityMismatchError unless len(payload) equals the case arity.
// Element types are not checked.
func (c Constructor) New(payload ...any) (Value, error) {
	if c.typ == nil {
		return Value{}, ErrInvalidValue
	}
	if len(payload) != c.def.Arity {
		return Value{}, NewArityMismatchError(c.typ.name, c.def.Name, c.def.Arity, len(payload))
	}
	var fields []any
	if len(payload) > 0 {
		fields = make([]any, len(payload))
		copy(fields, payload)
	}
	return Value{typ: c.typ, ordinal: c.def.Ordinal, payload: fields}, nil
}

// Must is like New but panics on error.
func (c Constructor) Must(payload ...any) Value {
	v, err := c.New(payload...)
	if err != nil {
		panic(err)
	}
	return v
}

// Match reports whether v is a value of this case.
func (c Constructor) Match(v Value) bool {
	return c.typ != nil && v.typ == c.typ && v.ordinal == c.def.Ordinal
}
