package schema

import (
	"fmt"

	"github.com/funvibe/adt/pkg/adt"
	"github.com/samber/lo"
)

// Registry holds defined types by name, in declaration order, along with
// the schema each was defined from.
type Registry struct {
	types   []*adt.Type
	schemas []TypeSchema
	byName  map[string]int
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Add registers t. Type names must be unique within a registry.
func (r *Registry) Add(t *adt.Type, s TypeSchema) error {
	if _, ok := r.byName[t.Name()]; ok {
		return fmt.Errorf("type %s already registered", t.Name())
	}
	r.byName[t.Name()] = len(r.types)
	r.types = append(r.types, t)
	r.schemas = append(r.schemas, s)
	return nil
}

// Merge adds every type of other to r.
func (r *Registry) Merge(other *Registry) error {
	for i, t := range other.types {
		if err := r.Add(t, other.schemas[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) Lookup(name string) (*adt.Type, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.types[i], true
}

func (r *Registry) Schema(name string) (TypeSchema, bool) {
	i, ok := r.byName[name]
	if !ok {
		return TypeSchema{}, false
	}
	return r.schemas[i], true
}

func (r *Registry) Len() int { return len(r.types) }

// Types returns the registered types in declaration order.
func (r *Registry) Types() []*adt.Type {
	return append([]*adt.Type(nil), r.types...)
}

// Schemas returns the schemas of the registered types in declaration order.
func (r *Registry) Schemas() []TypeSchema {
	return append([]TypeSchema(nil), r.schemas...)
}

// Names returns the registered type names in declaration order.
func (r *Registry) Names() []string {
	return lo.Map(r.types, func(t *adt.Type, _ int) string { return t.Name() })
}
