// Package protoschema derives variant types from protobuf oneof
// declarations. Each field of a oneof becomes a case, in declaration order.
// A message-typed field contributes one payload slot per field of its
// message; any other field contributes a single slot.
package protoschema

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/funvibe/adt/internal/schema"
	"github.com/funvibe/adt/pkg/adt"
	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// LoadOptions configures LoadFiles.
type LoadOptions struct {
	// ImportPaths are searched for imported files. Defaults to ".".
	ImportPaths []string

	// Accessor, if set, replaces file system access (e.g. for sources held
	// in memory; see protoparse.FileContentsFromMap).
	Accessor protoparse.FileAccessor
}

// LoadFiles parses .proto sources and defines a type for every oneof in
// every message they declare.
func LoadFiles(opts LoadOptions, files ...string) (*schema.Registry, error) {
	parser := protoparse.Parser{
		ImportPaths: opts.ImportPaths,
		Accessor:    opts.Accessor,
	}
	if len(parser.ImportPaths) == 0 && parser.Accessor == nil {
		parser.ImportPaths = []string{"."}
	}

	fds, err := parser.ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse proto: %w", err)
	}

	reg := schema.NewRegistry()
	for _, fd := range fds {
		if err := addFile(reg, fd.UnwrapFile()); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// FromFile defines the types of every message in fd, including nested
// messages.
func FromFile(fd protoreflect.FileDescriptor) (*schema.Registry, error) {
	reg := schema.NewRegistry()
	if err := addFile(reg, fd); err != nil {
		return nil, err
	}
	return reg, nil
}

func addFile(reg *schema.Registry, fd protoreflect.FileDescriptor) error {
	msgs := fd.Messages()
	for i := 0; i < msgs.Len(); i++ {
		if err := addMessage(reg, msgs.Get(i)); err != nil {
			return fmt.Errorf("%s: %w", fd.Path(), err)
		}
	}
	return nil
}

// FromMessage defines the types of md and its nested messages.
func FromMessage(md protoreflect.MessageDescriptor) (*schema.Registry, error) {
	reg := schema.NewRegistry()
	if err := addMessage(reg, md); err != nil {
		return nil, err
	}
	return reg, nil
}

func addMessage(reg *schema.Registry, md protoreflect.MessageDescriptor) error {
	oneofs := realOneofs(md)
	for _, od := range oneofs {
		ts := OneofSchema(od, freeName(reg, md, od, len(oneofs) > 1))
		t, err := ts.Define()
		if err != nil {
			return fmt.Errorf("%s: %w", md.FullName(), err)
		}
		if err := reg.Add(t, ts); err != nil {
			return fmt.Errorf("%s: %w", md.FullName(), err)
		}
	}
	nested := md.Messages()
	for i := 0; i < nested.Len(); i++ {
		if err := addMessage(reg, nested.Get(i)); err != nil {
			return err
		}
	}
	return nil
}

// freeName returns the type name for oneof od of md. When that name is
// already registered, enclosing message names are prepended one at a time
// ("Item" under A becomes "AItem") until it is free. If every candidate is
// taken the plain name is returned and registration reports the clash.
func freeName(reg *schema.Registry, md protoreflect.MessageDescriptor, od protoreflect.OneofDescriptor, multiple bool) string {
	name := typeName(md, od, multiple)
	candidate := name
	for d := md.Parent(); ; d = d.Parent() {
		if _, taken := reg.Lookup(candidate); !taken {
			return candidate
		}
		parent, ok := d.(protoreflect.MessageDescriptor)
		if !ok {
			return name
		}
		candidate = string(parent.Name()) + candidate
	}
}

func typeName(md protoreflect.MessageDescriptor, od protoreflect.OneofDescriptor, multiple bool) string {
	name := string(md.Name())
	if multiple {
		name += upperCamel(string(od.Name()))
	}
	return name
}

func realOneofs(md protoreflect.MessageDescriptor) []protoreflect.OneofDescriptor {
	var oneofs []protoreflect.OneofDescriptor
	all := md.Oneofs()
	for i := 0; i < all.Len(); i++ {
		if od := all.Get(i); !od.IsSynthetic() {
			oneofs = append(oneofs, od)
		}
	}
	return oneofs
}

// FromOneof defines the type described by OneofSchema.
func FromOneof(od protoreflect.OneofDescriptor, typeName string) (*adt.Type, error) {
	return OneofSchema(od, typeName).Define()
}

// MessageSchemas describes one type per real (non-synthetic) oneof of md.
// The type is named after the message when it has a single oneof, and
// after the message and the oneof otherwise. Nested messages are not
// included, and names are not qualified against other messages.
func MessageSchemas(md protoreflect.MessageDescriptor) []schema.TypeSchema {
	oneofs := realOneofs(md)
	out := make([]schema.TypeSchema, 0, len(oneofs))
	for _, od := range oneofs {
		out = append(out, OneofSchema(od, typeName(md, od, len(oneofs) > 1)))
	}
	return out
}

// OneofSchema describes the variant type of a single oneof.
func OneofSchema(od protoreflect.OneofDescriptor, typeName string) schema.TypeSchema {
	ts := schema.TypeSchema{
		Name: typeName,
		Doc:  fmt.Sprintf("%s is derived from oneof %s.", typeName, od.FullName()),
	}
	fields := od.Fields()
	for i := 0; i < fields.Len(); i++ {
		ts.Cases = append(ts.Cases, caseSchema(fields.Get(i)))
	}
	return ts
}

func caseSchema(fd protoreflect.FieldDescriptor) schema.CaseSchema {
	cs := schema.CaseSchema{Name: string(fd.Name()), Fields: []schema.FieldSchema{}}
	if fd.Kind() == protoreflect.MessageKind || fd.Kind() == protoreflect.GroupKind {
		inner := fd.Message().Fields()
		for i := 0; i < inner.Len(); i++ {
			f := inner.Get(i)
			cs.Fields = append(cs.Fields, schema.FieldSchema{
				Name: upperCamel(string(f.Name())),
				Type: GoType(f),
			})
		}
		return cs
	}
	cs.Fields = append(cs.Fields, schema.FieldSchema{
		Name: upperCamel(string(fd.Name())),
		Type: GoType(fd),
	})
	return cs
}

// GoType returns the Go type codegen uses for a field. Message-typed
// fields map to any, since the generated package does not import the
// protobuf Go types.
func GoType(fd protoreflect.FieldDescriptor) string {
	if fd.IsMap() {
		return "map[" + scalarGoType(fd.MapKey()) + "]" + scalarGoType(fd.MapValue())
	}
	if fd.IsList() {
		return "[]" + scalarGoType(fd)
	}
	return scalarGoType(fd)
}

func scalarGoType(fd protoreflect.FieldDescriptor) string {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return "bool"
	case protoreflect.EnumKind, protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return "int32"
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return "int64"
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return "uint32"
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return "uint64"
	case protoreflect.FloatKind:
		return "float32"
	case protoreflect.DoubleKind:
		return "float64"
	case protoreflect.StringKind:
		return "string"
	case protoreflect.BytesKind:
		return "[]byte"
	default:
		return "any"
	}
}

// upperCamel converts snake_case to UpperCamelCase: "number_system" ->
// "NumberSystem".
func upperCamel(s string) string {
	var sb strings.Builder
	upper := true
	for _, r := range s {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			sb.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "X"
	}
	return sb.String()
}
