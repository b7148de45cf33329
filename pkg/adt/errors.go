package adt

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidValue is returned by operations that need a type when they are
// called on the zero Value.
var ErrInvalidValue = errors.New("adt: invalid (zero) value")

// DuplicateCaseError indicates that a type declares the same case name twice.
type DuplicateCaseError struct {
	Type string
	Case string
}

func (e *DuplicateCaseError) Error() string {
	return fmt.Sprintf("%s: duplicate case %q", e.Type, e.Case)
}

func NewDuplicateCaseError(typeName, caseName string) *DuplicateCaseError {
	return &DuplicateCaseError{Type: typeName, Case: caseName}
}

// ArityMismatchError indicates a constructor (or an unpack) was given a
// payload of the wrong length.
type ArityMismatchError struct {
	Type     string
	Case     string
	Expected int
	Actual   int
}

func (e *ArityMismatchError) Error() string {
	noun := "arguments"
	if e.Expected == 1 {
		noun = "argument"
	}
	return fmt.Sprintf("%s.%s() takes %d %s (%d given)", e.Type, e.Case, e.Expected, noun, e.Actual)
}

func NewArityMismatchError(typeName, caseName string, expected, actual int) *ArityMismatchError {
	return &ArityMismatchError{Type: typeName, Case: caseName, Expected: expected, Actual: actual}
}

// InvalidNameError indicates a type or case name that is not an identifier.
type InvalidNameError struct {
	Kind string // "type" or "case"
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid %s name %q: must be an identifier", e.Kind, e.Name)
}

func NewInvalidNameError(kind, name string) *InvalidNameError {
	return &InvalidNameError{Kind: kind, Name: name}
}

// InvalidArityError indicates a case declared with a negative arity.
type InvalidArityError struct {
	Type  string
	Case  string
	Arity int
}

func (e *InvalidArityError) Error() string {
	return fmt.Sprintf("%s.%s: arity must be non-negative, got %d", e.Type, e.Case, e.Arity)
}

func NewInvalidArityError(typeName, caseName string, arity int) *InvalidArityError {
	return &InvalidArityError{Type: typeName, Case: caseName, Arity: arity}
}

// UnknownCaseError indicates a lookup of a case the type does not declare.
type UnknownCaseError struct {
	Type string
	Case string
}

func (e *UnknownCaseError) Error() string {
	return fmt.Sprintf("%s has no case %q", e.Type, e.Case)
}

func NewUnknownCaseError(typeName, caseName string) *UnknownCaseError {
	return &UnknownCaseError{Type: typeName, Case: caseName}
}

// UnpackTypeError indicates a payload element that cannot be stored in the
// destination given to Value.Unpack.
type UnpackTypeError struct {
	Index int
	Want  reflect.Type
	Got   reflect.Type
}

func (e *UnpackTypeError) Error() string {
	got := "nil"
	if e.Got != nil {
		got = e.Got.String()
	}
	return fmt.Sprintf("cannot unpack payload element %d of type %s into %s", e.Index, got, e.Want)
}
