// Package schema loads variant type declarations from YAML.
//
// A schema file lists types and their cases in declaration order:
//
//	types:
//	  - name: Barcode
//	    cases:
//	      - name: upca
//	        fields: [int, int, int, int]
//	      - name: qrcode
//	        arity: 1
//
// A case gives its arity either directly or through its fields. Fields may
// be written as a bare type, or as a mapping with a name and a type; both
// are only used by code generation.
package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/funvibe/adt/internal/config"
	"github.com/funvibe/adt/pkg/adt"
	"gopkg.in/yaml.v3"
)

// Config represents a schema document.
type Config struct {
	// Types lists the declared variant types, in order.
	Types []TypeSchema `yaml:"types"`

	path string
}

// TypeSchema declares one variant type.
type TypeSchema struct {
	Name string `yaml:"name"`

	// Doc is copied into generated code as the type's doc comment.
	Doc string `yaml:"doc,omitempty"`

	Cases []CaseSchema `yaml:"cases"`
}

// CaseSchema declares one case. Exactly one of Arity and Fields is
// normally set; if both are, they must agree.
type CaseSchema struct {
	Name   string        `yaml:"name"`
	Doc    string        `yaml:"doc,omitempty"`
	Arity  *int          `yaml:"arity,omitempty"`
	Fields []FieldSchema `yaml:"fields,omitempty"`
}

// FieldSchema describes one payload slot.
type FieldSchema struct {
	// Name is the Go field name used by codegen. Optional.
	Name string `yaml:"name,omitempty"`

	// Type is a Go type expression (e.g. "int", "[]string"). Defaults to
	// "any".
	Type string `yaml:"type,omitempty"`
}

// UnmarshalYAML accepts either a scalar type ("int") or a mapping.
func (f *FieldSchema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Type = node.Value
		return nil
	}
	type plain FieldSchema
	return node.Decode((*plain)(f))
}

// CaseArity returns the number of payload values the case takes.
func (c CaseSchema) CaseArity() int {
	if c.Fields != nil || c.Arity == nil {
		return len(c.Fields)
	}
	return *c.Arity
}

// FieldType returns the declared Go type of slot i, or the default.
func (c CaseSchema) FieldType(i int) string {
	if i < len(c.Fields) && c.Fields[i].Type != "" {
		return c.Fields[i].Type
	}
	return config.DefaultFieldType
}

// Decls returns the case declarations for adt.Define.
func (t TypeSchema) Decls() []adt.Decl {
	decls := make([]adt.Decl, len(t.Cases))
	for i, c := range t.Cases {
		decls[i] = adt.Case(c.Name, c.CaseArity())
	}
	return decls
}

// Define declares the type described by t.
func (t TypeSchema) Define() (*adt.Type, error) {
	return adt.Define(t.Name, t.Decls()...)
}

// LoadConfig reads and parses a schema file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses schema content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the file the config was parsed from.
func (c *Config) Path() string { return c.path }

// FindConfig searches for adt.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the schema file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range config.SchemaFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// Validate checks the schema for structural errors. Name and arity rules
// that adt.Define enforces are left to Define.
func (c *Config) Validate() error {
	path := c.path
	if len(c.Types) == 0 {
		return fmt.Errorf("%s: no types defined", path)
	}

	seenTypes := make(map[string]int)

	for i, t := range c.Types {
		if t.Name == "" {
			return fmt.Errorf("%s: types[%d]: name is required", path, i)
		}
		if prev, ok := seenTypes[t.Name]; ok {
			return fmt.Errorf("%s: types[%d] (%s): type already declared at types[%d]", path, i, t.Name, prev)
		}
		seenTypes[t.Name] = i

		for j, cs := range t.Cases {
			if cs.Name == "" {
				return fmt.Errorf("%s: types[%d].cases[%d] (%s): name is required", path, i, j, t.Name)
			}
			if cs.Arity == nil && cs.Fields == nil {
				return fmt.Errorf("%s: types[%d].cases[%d] (%s.%s): either arity or fields is required",
					path, i, j, t.Name, cs.Name)
			}
			if cs.Arity != nil && cs.Fields != nil && *cs.Arity != len(cs.Fields) {
				return fmt.Errorf("%s: types[%d].cases[%d] (%s.%s): arity %d does not match %d fields",
					path, i, j, t.Name, cs.Name, *cs.Arity, len(cs.Fields))
			}

			seenFields := make(map[string]bool)
			for k, f := range cs.Fields {
				if f.Name == "" {
					continue
				}
				if !adt.IsIdentifier(f.Name) {
					return fmt.Errorf("%s: types[%d].cases[%d].fields[%d] (%s.%s): invalid field name %q",
						path, i, j, k, t.Name, cs.Name, f.Name)
				}
				if seenFields[f.Name] {
					return fmt.Errorf("%s: types[%d].cases[%d].fields[%d] (%s.%s): duplicate field name %q",
						path, i, j, k, t.Name, cs.Name, f.Name)
				}
				seenFields[f.Name] = true
			}
		}
	}

	return nil
}

// Define declares every type in the schema, in order.
func (c *Config) Define() (*Registry, error) {
	reg := NewRegistry()
	for i, ts := range c.Types {
		t, err := ts.Define()
		if err != nil {
			return nil, fmt.Errorf("%s: types[%d] (%s): %w", c.path, i, ts.Name, err)
		}
		if err := reg.Add(t, ts); err != nil {
			return nil, fmt.Errorf("%s: %w", c.path, err)
		}
	}
	return reg, nil
}
