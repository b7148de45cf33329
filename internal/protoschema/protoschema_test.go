package protoschema

import (
	"testing"

	"github.com/funvibe/adt/internal/schema"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

const barcodeProto = `
syntax = "proto3";
package demo;

message Upca {
  int32 number_system = 1;
  int32 manufacturer = 2;
  int32 product = 3;
  int32 check = 4;
}

message Barcode {
  oneof kind {
    Upca upca = 1;
    string qrcode = 2;
  }
}

message Event {
  optional string note = 1;
  oneof source {
    string user = 2;
    int64 system = 3;
  }
  oneof payload {
    bytes raw = 4;
    Upca scanned = 5;
  }
  message Inner {
    oneof v {
      bool flag = 1;
    }
  }
}
`

func load(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := LoadFiles(LoadOptions{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			"barcode.proto": barcodeProto,
		}),
	}, "barcode.proto")
	require.NoError(t, err)
	return reg
}

func TestLoadFiles(t *testing.T) {
	reg := load(t)
	assert.Equal(t, []string{"Barcode", "EventSource", "EventPayload", "Inner"}, reg.Names())

	barcode, ok := reg.Lookup("Barcode")
	require.True(t, ok)
	assert.Equal(t, "Barcode\n  1 upca/4\n  2 qrcode/1", barcode.Describe())

	v, err := barcode.New("upca", 8, 85909, 51226, 3)
	require.NoError(t, err)
	assert.Equal(t, "Barcode.upca(8, 85909, 51226, 3)", v.String())

	q, err := barcode.New("qrcode", "ABCDEFGHIJKLMNOP")
	require.NoError(t, err)
	assert.Equal(t, 2, q.Ordinal())

	payload, ok := reg.Lookup("EventPayload")
	require.True(t, ok)
	assert.Equal(t, "EventPayload\n  1 raw/1\n  2 scanned/4", payload.Describe())
}

func TestLoadFilesFieldSchemas(t *testing.T) {
	reg := load(t)
	ts, ok := reg.Schema("Barcode")
	require.True(t, ok)
	require.Len(t, ts.Cases, 2)

	upca := ts.Cases[0]
	assert.Equal(t, []schema.FieldSchema{
		{Name: "NumberSystem", Type: "int32"},
		{Name: "Manufacturer", Type: "int32"},
		{Name: "Product", Type: "int32"},
		{Name: "Check", Type: "int32"},
	}, upca.Fields)

	assert.Equal(t, []schema.FieldSchema{{Name: "Qrcode", Type: "string"}}, ts.Cases[1].Fields)
	assert.Equal(t, "Barcode is derived from oneof demo.Barcode.kind.", ts.Doc)

	src, ok := reg.Schema("EventSource")
	require.True(t, ok)
	assert.Equal(t, "int64", src.Cases[1].Fields[0].Type)

	pl, ok := reg.Schema("EventPayload")
	require.True(t, ok)
	assert.Equal(t, "[]byte", pl.Cases[0].Fields[0].Type)
}

func TestLoadFilesParseError(t *testing.T) {
	_, err := LoadFiles(LoadOptions{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			"bad.proto": "syntax = \"proto3\"; message {",
		}),
	}, "bad.proto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse proto")
}

func TestLoadFilesQualifiesNestedNames(t *testing.T) {
	src := `
syntax = "proto3";
message A { message Item { oneof v { bool x = 1; } } }
message B { message Item { oneof v { string y = 1; } } }
message C { message D { message Item { oneof v { int64 z = 1; } } } }
`
	reg, err := LoadFiles(LoadOptions{
		Accessor: protoparse.FileContentsFromMap(map[string]string{"items.proto": src}),
	}, "items.proto")
	require.NoError(t, err)
	assert.Equal(t, []string{"Item", "BItem", "DItem"}, reg.Names())

	b, ok := reg.Schema("BItem")
	require.True(t, ok)
	assert.Equal(t, "string", b.Cases[0].Fields[0].Type)
	assert.Equal(t, "BItem is derived from oneof B.Item.v.", b.Doc)
}

func TestLoadFilesQualifiesAcrossFiles(t *testing.T) {
	reg, err := LoadFiles(LoadOptions{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			"a.proto": `syntax = "proto3"; package a; message A { message Item { oneof v { bool x = 1; } } }`,
			"b.proto": `syntax = "proto3"; package b; message B { message Item { oneof v { bool y = 1; } } }`,
		}),
	}, "a.proto", "b.proto")
	require.NoError(t, err)
	assert.Equal(t, []string{"Item", "BItem"}, reg.Names())
}

func TestLoadFilesDuplicateTypeName(t *testing.T) {
	// Every qualified candidate for B.Inner is already taken.
	src := `
syntax = "proto3";
message A { message Inner { oneof v { bool x = 1; } } }
message BInner { oneof v { bool z = 1; } }
message B { message Inner { oneof v { bool y = 1; } } }
`
	_, err := LoadFiles(LoadOptions{
		Accessor: protoparse.FileContentsFromMap(map[string]string{"dup.proto": src}),
	}, "dup.proto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type Inner already registered")
}

func shapeFile(t *testing.T) *descriptorpb.FileDescriptorProto {
	t.Helper()
	optional := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	repeated := descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("shape.proto"),
		Package: proto.String("demo"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{{
			Name: proto.String("Shape"),
			Field: []*descriptorpb.FieldDescriptorProto{
				{
					Name:       proto.String("radius"),
					JsonName:   proto.String("radius"),
					Number:     proto.Int32(1),
					Label:      optional,
					Type:       descriptorpb.FieldDescriptorProto_TYPE_DOUBLE.Enum(),
					OneofIndex: proto.Int32(0),
				},
				{
					Name:       proto.String("label_text"),
					JsonName:   proto.String("labelText"),
					Number:     proto.Int32(2),
					Label:      optional,
					Type:       descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
					OneofIndex: proto.Int32(0),
				},
				{
					Name:     proto.String("tags"),
					JsonName: proto.String("tags"),
					Number:   proto.Int32(3),
					Label:    repeated,
					Type:     descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
				},
			},
			OneofDecl: []*descriptorpb.OneofDescriptorProto{{Name: proto.String("kind")}},
		}},
	}
}

func TestFromOneof(t *testing.T) {
	fd, err := protodesc.NewFile(shapeFile(t), new(protoregistry.Files))
	require.NoError(t, err)
	md := fd.Messages().Get(0)

	typ, err := FromOneof(md.Oneofs().Get(0), "Shape")
	require.NoError(t, err)
	assert.Equal(t, "Shape\n  1 radius/1\n  2 label_text/1", typ.Describe())

	ts := OneofSchema(md.Oneofs().Get(0), "Shape")
	assert.Equal(t, "LabelText", ts.Cases[1].Fields[0].Name)
	assert.Equal(t, "float64", ts.Cases[0].Fields[0].Type)

	assert.Equal(t, "[]string", GoType(md.Fields().ByName("tags")))

	reg, err := FromMessage(md)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shape"}, reg.Names())
}

func TestUpperCamel(t *testing.T) {
	tests := map[string]string{
		"number_system": "NumberSystem",
		"qrcode":        "Qrcode",
		"a_b_c":         "ABC",
		"_":             "X",
		"already_Camel": "AlreadyCamel",
	}
	for in, want := range tests {
		assert.Equal(t, want, upperCamel(in), in)
	}
}
