package adt

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/smasher164/xid"
)

// Decl declares one case of a Type: its name and the number of values its
// constructor accepts.
type Decl struct {
	Name  string
	Arity int
}

// Case returns a case declaration for Define.
func Case(name string, arity int) Decl {
	return Decl{Name: name, Arity: arity}
}

// CaseDef is a case of a defined Type.
type CaseDef struct {
	Name    string
	Arity   int
	Ordinal int // 1-based declaration position
}

// Type is a closed, ordered set of cases. It is immutable once Define
// returns. Two calls to Define always produce distinct types.
type Type struct {
	name  string
	cases []CaseDef
	index map[string]int // case name -> ordinal
}

// Define declares a new Type with the given cases in order.
func Define(typeName string, decls ...Decl) (*Type, error) {
	if !IsIdentifier(typeName) {
		return nil, NewInvalidNameError("type", typeName)
	}

	names := lo.Map(decls, func(d Decl, _ int) string { return d.Name })
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return nil, NewDuplicateCaseError(typeName, dups[0])
	}

	t := &Type{
		name:  typeName,
		cases: make([]CaseDef, len(decls)),
		index: make(map[string]int, len(decls)),
	}
	for i, d := range decls {
		if !IsIdentifier(d.Name) {
			return nil, NewInvalidNameError("case", d.Name)
		}
		if d.Arity < 0 {
			return nil, NewInvalidArityError(typeName, d.Name, d.Arity)
		}
		t.cases[i] = CaseDef{Name: d.Name, Arity: d.Arity, Ordinal: i + 1}
		t.index[d.Name] = i + 1
	}
	return t, nil
}

// MustDefine is like Define but panics on error. It is meant for
// package-level declarations.
func MustDefine(typeName string, decls ...Decl) *Type {
	t, err := Define(typeName, decls...)
	if err != nil {
		panic(err)
	}
	return t
}

// IsIdentifier reports whether s can be used as a type or case name.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if r != '_' && !xid.Start(r) {
				return false
			}
			continue
		}
		if !xid.Continue(r) {
			return false
		}
	}
	return true
}

func (t *Type) Name() string   { return t.name }
func (t *Type) String() string { return t.name }

// Len returns the number of cases.
func (t *Type) Len() int { return len(t.cases) }

// Cases returns the case table in declaration order.
func (t *Type) Cases() []CaseDef {
	out := make([]CaseDef, len(t.cases))
	copy(out, t.cases)
	return out
}

// Case looks a case up by name.
func (t *Type) Case(name string) (CaseDef, bool) {
	ord, ok := t.index[name]
	if !ok {
		return CaseDef{}, false
	}
	return t.cases[ord-1], true
}

// CaseAt looks a case up by ordinal.
func (t *Type) CaseAt(ordinal int) (CaseDef, bool) {
	if ordinal < 1 || ordinal > len(t.cases) {
		return CaseDef{}, false
	}
	return t.cases[ordinal-1], true
}

// Constructor returns the constructor of the named case.
func (t *Type) Constructor(name string) (Constructor, error) {
	def, ok := t.Case(name)
	if !ok {
		return Constructor{}, NewUnknownCaseError(t.name, name)
	}
	return Constructor{typ: t, def: def}, nil
}

// MustConstructor is like Constructor but panics if the case is unknown.
func (t *Type) MustConstructor(name string) Constructor {
	c, err := t.Constructor(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Constructors returns one constructor per case, in declaration order.
func (t *Type) Constructors() []Constructor {
	return lo.Map(t.cases, func(def CaseDef, _ int) Constructor {
		return Constructor{typ: t, def: def}
	})
}

// New constructs a value of the named case.
func (t *Type) New(caseName string, payload ...any) (Value, error) {
	c, err := t.Constructor(caseName)
	if err != nil {
		return Value{}, err
	}
	return c.New(payload...)
}

// Describe renders the case table, one case per line, e.g.
//
//	Barcode
//	  1 upca/4
//	  2 qrcode/1
func (t *Type) Describe() string {
	var sb strings.Builder
	sb.WriteString(t.name)
	for _, c := range t.cases {
		sb.WriteString("\n  ")
		sb.WriteString(strconv.Itoa(c.Ordinal))
		sb.WriteByte(' ')
		sb.WriteString(c.Name)
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(c.Arity))
	}
	return sb.String()
}
