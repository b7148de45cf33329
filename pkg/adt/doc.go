// Package adt implements enums whose cases carry associated values.
//
// A Type is declared once, usually in a package-level var, from an ordered
// list of case declarations:
//
//	var Barcode = adt.MustDefine("Barcode",
//		adt.Case("upca", 4),
//		adt.Case("qrcode", 1),
//	)
//
// Each case gets a 1-based ordinal equal to its declaration position and a
// Constructor that checks the payload length and returns an immutable Value:
//
//	upca := Barcode.MustConstructor("upca")
//	v, err := upca.New(8, 85909, 51226, 3) // Barcode.upca(8, 85909, 51226, 3)
//
// Only the number of payload elements is checked. Typed1 through Typed4 wrap
// a Constructor when the slot types should be checked by the compiler.
//
// Types and Values are never mutated after construction and may be shared
// between goroutines freely.
package adt
