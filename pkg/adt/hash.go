package adt

import (
	"hash/fnv"
	"math"
	"reflect"
)

const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// mix feeds the eight bytes of x into the FNV-1a state h.
func mix(h, x uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= x & 0xff
		h *= prime64
		x >>= 8
	}
	return h
}

// Hash returns a hash of a payload element consistent with Equal:
// Equal(a, b) implies Hash(a) == Hash(b).
func Hash(x any) uint64 {
	if v, ok := x.(Value); ok {
		return v.Hash()
	}
	if x == nil {
		return offset64
	}
	return hashValue(offset64, reflect.ValueOf(x))
}

func hashValue(h uint64, v reflect.Value) uint64 {
	if !v.IsValid() {
		return mix(h, 0)
	}
	if v.Type() == valueType && v.CanInterface() {
		return mix(h, v.Interface().(Value).Hash())
	}

	h = mix(h, uint64(v.Kind()))
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return mix(h, 1)
		}
		return mix(h, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return mix(h, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return mix(h, v.Uint())
	case reflect.Float32, reflect.Float64:
		return mix(h, floatBits(v.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return mix(mix(h, floatBits(real(c))), floatBits(imag(c)))
	case reflect.String:
		return mix(h, hashString(v.String()))
	case reflect.Slice, reflect.Array:
		h = mix(h, uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			h = hashValue(h, v.Index(i))
		}
		return h
	case reflect.Map:
		// Entry hashes are summed so iteration order does not matter.
		var sum uint64
		it := v.MapRange()
		for it.Next() {
			sum += hashValue(hashValue(offset64, it.Key()), it.Value())
		}
		return mix(mix(h, uint64(v.Len())), sum)
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			h = hashValue(h, v.Field(i))
		}
		return h
	case reflect.Interface:
		if v.IsNil() {
			return mix(h, 0)
		}
		return hashValue(h, v.Elem())
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer, reflect.Func:
		return mix(h, uint64(v.Pointer()))
	}
	return h
}

// floatBits folds -0 into +0 so the two hash alike.
func floatBits(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}
