package adt

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxReprDepth bounds nesting of acyclic data. Cycles are cut separately
// by tracking the references on the current print path.
const maxReprDepth = 32

// cycleMarker replaces a reference already being printed further up.
const cycleMarker = "<cycle>"

// Repr returns the canonical text of a payload element, as used inside
// Value.String. Strings are single-quoted (double-quoted when they contain
// a single quote and no double quote), floats always show a fraction or an
// exponent, and containers render their elements recursively.
func Repr(x any) string {
	var sb strings.Builder
	p := reprPrinter{sb: &sb}
	p.any(x)
	return sb.String()
}

type reprPrinter struct {
	sb    *strings.Builder
	depth int
	path  map[visit]bool // references being printed
}

// visit identifies a reference. The type tells apart a struct and its
// first field, which share an address; the length tells apart a slice
// and its prefixes.
type visit struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

// enter records v on the print path, or writes the cycle marker and
// returns false when v is already on it.
func (p *reprPrinter) enter(v reflect.Value) bool {
	key := visit{ptr: v.Pointer(), typ: v.Type()}
	if v.Kind() == reflect.Slice {
		key.n = v.Len()
	}
	if p.path[key] {
		p.sb.WriteString(cycleMarker)
		return false
	}
	if p.path == nil {
		p.path = make(map[visit]bool)
	}
	p.path[key] = true
	return true
}

func (p *reprPrinter) leave(v reflect.Value) {
	key := visit{ptr: v.Pointer(), typ: v.Type()}
	if v.Kind() == reflect.Slice {
		key.n = v.Len()
	}
	delete(p.path, key)
}

// method writes the result of a String or Error method of x. A nil
// pointer prints as nil, and a method that panics falls back to the
// structural form.
func (p *reprPrinter) method(x any, call func() string) {
	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		p.sb.WriteString("nil")
		return
	}
	if s, ok := safeCall(call); ok {
		p.sb.WriteString(s)
		return
	}
	p.value(rv)
}

func safeCall(call func() string) (s string, ok bool) {
	defer func() {
		if recover() != nil {
			s, ok = "", false
		}
	}()
	return call(), true
}

func (p *reprPrinter) any(x any) {
	switch t := x.(type) {
	case nil:
		p.sb.WriteString("nil")
	case Value:
		p.variant(t)
	case string:
		p.sb.WriteString(quote(t))
	case []byte:
		p.sb.WriteString(quoteBytes(t))
	case error:
		p.method(x, t.Error)
	case fmt.Stringer:
		p.method(x, t.String)
	default:
		p.value(reflect.ValueOf(x))
	}
}

func (p *reprPrinter) variant(v Value) {
	if v.typ == nil {
		p.sb.WriteString("<invalid>")
		return
	}
	if p.depth >= maxReprDepth {
		p.sb.WriteString("...")
		return
	}
	p.depth++
	defer func() { p.depth-- }()

	p.sb.WriteString(v.typ.name)
	p.sb.WriteByte('.')
	p.sb.WriteString(v.Case())
	p.sb.WriteByte('(')
	for i, x := range v.payload {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.any(x)
	}
	p.sb.WriteByte(')')
}

func (p *reprPrinter) elem(v reflect.Value) {
	if v.CanInterface() {
		p.any(v.Interface())
		return
	}
	p.value(v)
}

func (p *reprPrinter) value(v reflect.Value) {
	if !v.IsValid() {
		p.sb.WriteString("nil")
		return
	}
	if p.depth >= maxReprDepth {
		p.sb.WriteString("...")
		return
	}
	p.depth++
	defer func() { p.depth-- }()

	switch v.Kind() {
	case reflect.Bool:
		p.sb.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		p.sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		p.sb.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32:
		p.sb.WriteString(formatFloat(v.Float(), 32))
	case reflect.Float64:
		p.sb.WriteString(formatFloat(v.Float(), 64))
	case reflect.Complex64:
		p.sb.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, 64))
	case reflect.Complex128:
		p.sb.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, 128))
	case reflect.String:
		p.sb.WriteString(quote(v.String()))
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			p.sb.WriteString(quoteBytes(v.Bytes()))
			return
		}
		if v.Len() > 0 {
			if !p.enter(v) {
				return
			}
			defer p.leave(v)
		}
		p.list(v)
	case reflect.Array:
		p.list(v)
	case reflect.Map:
		if !v.IsNil() {
			if !p.enter(v) {
				return
			}
			defer p.leave(v)
		}
		p.dict(v)
	case reflect.Struct:
		p.record(v)
	case reflect.Pointer:
		if v.IsNil() {
			p.sb.WriteString("nil")
			return
		}
		if !p.enter(v) {
			return
		}
		defer p.leave(v)
		p.sb.WriteByte('&')
		p.elem(v.Elem())
	case reflect.Interface:
		if v.IsNil() {
			p.sb.WriteString("nil")
			return
		}
		p.elem(v.Elem())
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if v.IsNil() {
			p.sb.WriteString("nil")
			return
		}
		fmt.Fprintf(p.sb, "%s(%#x)", v.Type(), v.Pointer())
	default:
		p.sb.WriteString(v.Type().String())
	}
}

func (p *reprPrinter) list(v reflect.Value) {
	p.sb.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.elem(v.Index(i))
	}
	p.sb.WriteByte(']')
}

func (p *reprPrinter) dict(v reflect.Value) {
	type entry struct{ key, val string }
	entries := make([]entry, 0, v.Len())
	it := v.MapRange()
	for it.Next() {
		kp := reprPrinter{sb: new(strings.Builder), depth: p.depth, path: p.path}
		kp.elem(it.Key())
		vp := reprPrinter{sb: new(strings.Builder), depth: p.depth, path: p.path}
		vp.elem(it.Value())
		entries = append(entries, entry{kp.sb.String(), vp.sb.String()})
	}
	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })

	p.sb.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(e.key)
		p.sb.WriteString(": ")
		p.sb.WriteString(e.val)
	}
	p.sb.WriteByte('}')
}

func (p *reprPrinter) record(v reflect.Value) {
	t := v.Type()
	name := t.Name()
	if name == "" {
		name = "struct"
	}
	p.sb.WriteString(name)
	p.sb.WriteByte('{')
	for i := 0; i < v.NumField(); i++ {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(t.Field(i).Name)
		p.sb.WriteString(": ")
		p.elem(v.Field(i))
	}
	p.sb.WriteByte('}')
}

// formatFloat uses positional notation for magnitudes in [1e-4, 1e16) and
// exponent notation otherwise; integral values keep a ".0".
func formatFloat(f float64, bits int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, bits)
	}
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func quote(s string) string {
	q := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		q = '"'
	}
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(q)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&sb, `\x%02x`, s[i])
		case r == '\\':
			sb.WriteString(`\\`)
		case r == rune(q):
			sb.WriteByte('\\')
			sb.WriteByte(q)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case unicode.IsPrint(r):
			sb.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			fmt.Fprintf(&sb, `\U%08x`, r)
		}
		i += size
	}
	sb.WriteByte(q)
	return sb.String()
}

func quoteBytes(b []byte) string {
	q := byte('\'')
	if slices.Contains(b, '\'') && !slices.Contains(b, '"') {
		q = '"'
	}
	var sb strings.Builder
	sb.WriteByte('b')
	sb.WriteByte(q)
	for _, c := range b {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == q:
			sb.WriteByte('\\')
			sb.WriteByte(q)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c >= 0x20 && c < 0x7f:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
