package codegen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/funvibe/adt/internal/config"
	"github.com/funvibe/adt/internal/schema"
)

const barcodeYAML = `
types:
  - name: Barcode
    doc: Barcode is a product code.
    cases:
      - name: upca
        fields:
          - {name: numberSystem, type: int}
          - {name: manufacturer, type: int}
          - {name: product, type: int}
          - {name: check, type: int}
      - name: qrcode
        fields: [string]
  - name: Maybe
    cases:
      - name: none
        arity: 0
      - name: some
        arity: 1
`

func generate(t *testing.T, src string) (GeneratedFile, *ast.File) {
	t.Helper()
	cfg, err := schema.ParseConfig([]byte(src), "test.yaml")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	out, err := NewCodeGenerator("").Generate("codes", cfg.Types)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	f, err := parser.ParseFile(token.NewFileSet(), out.Filename, out.Content, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, out.Content)
	}
	return out, f
}

func declaredNames(f *ast.File) map[string]bool {
	names := make(map[string]bool)
	for _, d := range f.Decls {
		switch d := d.(type) {
		case *ast.GenDecl:
			for _, s := range d.Specs {
				switch s := s.(type) {
				case *ast.TypeSpec:
					names[s.Name.Name] = true
				case *ast.ValueSpec:
					for _, n := range s.Names {
						names[n.Name] = true
					}
				}
			}
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil {
				var recv string
				switch rt := d.Recv.List[0].Type.(type) {
				case *ast.Ident:
					recv = rt.Name
				case *ast.StarExpr:
					recv = rt.X.(*ast.Ident).Name
				}
				name = recv + "." + name
			}
			names[name] = true
		}
	}
	return names
}

func TestGenerate(t *testing.T) {
	out, f := generate(t, barcodeYAML)

	if out.Filename != "codes_adt.go" {
		t.Errorf("Filename = %q", out.Filename)
	}
	if !strings.HasPrefix(out.Content, config.GeneratedHeader+"\n") {
		t.Errorf("missing generated header:\n%s", out.Content)
	}
	if f.Name.Name != "codes" {
		t.Errorf("package = %s", f.Name.Name)
	}

	names := declaredNames(f)
	for _, want := range []string{
		"barcodeDescriptor", "Barcode", "BarcodeType", "BarcodeFromVariant",
		"BarcodeUpca", "BarcodeQrcode",
		"BarcodeUpca.isBarcode", "BarcodeUpca.Ordinal", "BarcodeUpca.CaseName",
		"BarcodeUpca.Variant", "BarcodeUpca.String", "BarcodeUpca.Equal",
		"maybeDescriptor", "Maybe", "MaybeNone", "MaybeSome", "MaybeNone.Variant",
	} {
		if !names[want] {
			t.Errorf("generated code does not declare %s", want)
		}
	}

	for _, want := range []string{
		`adt.Case("upca", 4)`,
		`adt.Case("qrcode", 1)`,
		`adt.Case("none", 0)`,
		"// Barcode is a product code.",
		"// BarcodeQrcode is the qrcode case of Barcode.",
		"NumberSystem int",
		"F0 string",
		"F0 any",
		"func (BarcodeQrcode) Ordinal() int { return 2 }",
		`barcodeDescriptor.MustConstructor("upca").Must(v.NumberSystem, v.Manufacturer, v.Product, v.Check)`,
		`maybeDescriptor.MustConstructor("none").Must()`,
		"v.Unpack(&c.NumberSystem, &c.Manufacturer, &c.Product, &c.Check)",
		"Equal(other Barcode) bool\n",
		"func (v BarcodeQrcode) Equal(other Barcode) bool {\n\treturn other != nil && v.Variant().Equal(other.Variant())\n}",
		`"github.com/funvibe/adt/pkg/adt"`,
	} {
		if !strings.Contains(out.Content, want) {
			t.Errorf("generated code missing %q\n%s", want, out.Content)
		}
	}
}

func TestGenerateUncomparableFields(t *testing.T) {
	out, f := generate(t, `
types:
  - name: Payload
    cases:
      - name: raw
        fields: ["[]byte"]
      - name: tags
        fields: ["map[string]int", "[]string"]
`)
	names := declaredNames(f)
	for _, want := range []string{"PayloadRaw.Equal", "PayloadTags.Equal"} {
		if !names[want] {
			t.Errorf("generated code does not declare %s", want)
		}
	}
	for _, want := range []string{"F0 []byte", "F0 map[string]int", "F1 []string"} {
		if !strings.Contains(out.Content, want) {
			t.Errorf("generated code missing %q\n%s", want, out.Content)
		}
	}
}

func TestGenerateCustomImportPath(t *testing.T) {
	cfg, err := schema.ParseConfig([]byte(barcodeYAML), "test.yaml")
	if err != nil {
		t.Fatal(err)
	}
	out, err := NewCodeGenerator("example.com/vendored/adt").Generate("codes", cfg.Types)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.Content, `"example.com/vendored/adt"`) {
		t.Errorf("custom import path not used:\n%s", out.Content)
	}
}

func TestGenerateErrors(t *testing.T) {
	one := 1
	tests := []struct {
		name  string
		pkg   string
		types []schema.TypeSchema
		want  string
	}{
		{
			name:  "bad package",
			pkg:   "my-pkg",
			types: []schema.TypeSchema{{Name: "T", Cases: []schema.CaseSchema{{Name: "a", Arity: &one}}}},
			want:  "invalid package name",
		},
		{
			name: "no types",
			pkg:  "p",
			want: "no types",
		},
		{
			name: "duplicate case",
			pkg:  "p",
			types: []schema.TypeSchema{{Name: "T", Cases: []schema.CaseSchema{
				{Name: "a", Arity: &one}, {Name: "a", Arity: &one},
			}}},
			want: `duplicate case "a"`,
		},
		{
			name: "struct name collision",
			pkg:  "p",
			types: []schema.TypeSchema{{Name: "T", Cases: []schema.CaseSchema{
				{Name: "a", Arity: &one}, {Name: "A", Arity: &one},
			}}},
			want: "identifier TA already used",
		},
		{
			name: "type collides with case struct",
			pkg:  "p",
			types: []schema.TypeSchema{
				{Name: "T", Cases: []schema.CaseSchema{{Name: "a", Arity: &one}}},
				{Name: "TA", Cases: []schema.CaseSchema{{Name: "b", Arity: &one}}},
			},
			want: "identifier TA already used",
		},
		{
			name: "type collides with accessor",
			pkg:  "p",
			types: []schema.TypeSchema{
				{Name: "t", Cases: []schema.CaseSchema{{Name: "a", Arity: &one}}},
				{Name: "tType", Cases: []schema.CaseSchema{{Name: "b", Arity: &one}}},
			},
			want: "identifier tType already used",
		},
		{
			name: "reserved field",
			pkg:  "p",
			types: []schema.TypeSchema{{Name: "T", Cases: []schema.CaseSchema{
				{Name: "a", Fields: []schema.FieldSchema{{Name: "variant", Type: "int"}}},
			}}},
			want: "clashes with a generated method",
		},
		{
			name: "field named like the equality method",
			pkg:  "p",
			types: []schema.TypeSchema{{Name: "T", Cases: []schema.CaseSchema{
				{Name: "a", Fields: []schema.FieldSchema{{Name: "equal", Type: "bool"}}},
			}}},
			want: "field Equal clashes with a generated method",
		},
		{
			name: "duplicate field after export",
			pkg:  "p",
			types: []schema.TypeSchema{{Name: "T", Cases: []schema.CaseSchema{
				{Name: "a", Fields: []schema.FieldSchema{{Name: "x"}, {Name: "X"}}},
			}}},
			want: "duplicate field X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodeGenerator("").Generate(tt.pkg, tt.types)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestDocLines(t *testing.T) {
	got := docLines("First line.\n\nSecond line.\n", "fallback")
	want := "// First line.\n//\n// Second line."
	if got != want {
		t.Errorf("docLines() = %q, want %q", got, want)
	}
	if got := docLines("  ", "Fallback."); got != "// Fallback." {
		t.Errorf("docLines() fallback = %q", got)
	}
}
