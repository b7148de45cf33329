// Package codegen turns schema types into Go sum types.
//
// Each variant type T becomes a sealed interface T with one struct per
// case, named T<Case>, and each case converts to and from the dynamic
// adt.Value through a package-level descriptor. Values compare with their
// Equal method, which follows adt.Value.Equal. Comparing with == panics
// when a case holds a slice, map or func field.
package codegen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/adt/internal/config"
	"github.com/funvibe/adt/internal/schema"
	"github.com/funvibe/adt/pkg/adt"
	"golang.org/x/tools/imports"
)

// DefaultAdtImportPath is the import path of package adt used by
// generated code.
const DefaultAdtImportPath = "github.com/funvibe/adt/pkg/adt"

// reservedNames are the methods every generated case struct declares.
var reservedNames = map[string]bool{
	"Ordinal":  true,
	"CaseName": true,
	"Variant":  true,
	"String":   true,
	"Equal":    true,
}

// CodeGenerator produces Go source code for variant types.
type CodeGenerator struct {
	// adtImportPath is the Go import path of package adt.
	adtImportPath string
}

// NewCodeGenerator creates a new code generator. An empty path selects
// DefaultAdtImportPath.
func NewCodeGenerator(adtImportPath string) *CodeGenerator {
	if adtImportPath == "" {
		adtImportPath = DefaultAdtImportPath
	}
	return &CodeGenerator{adtImportPath: adtImportPath}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the suggested file name (e.g. "barcode_adt.go").
	Filename string

	// Content is the full, formatted Go source code.
	Content string
}

type fileData struct {
	Header        string
	Package       string
	AdtImportPath string
	Types         []typeData
}

type typeData struct {
	Name    string
	VarName string
	Doc     string
	Cases   []caseData
}

type caseData struct {
	Name       string // case name as declared
	StructName string
	Ordinal    int
	Doc        string
	Fields     []fieldData
}

type fieldData struct {
	Name string
	Type string
}

// Generate renders all types into one file of package pkg.
func (cg *CodeGenerator) Generate(pkg string, types []schema.TypeSchema) (GeneratedFile, error) {
	if !adt.IsIdentifier(pkg) {
		return GeneratedFile{}, fmt.Errorf("invalid package name %q", pkg)
	}
	if len(types) == 0 {
		return GeneratedFile{}, fmt.Errorf("no types to generate")
	}

	data := fileData{
		Header:        config.GeneratedHeader,
		Package:       pkg,
		AdtImportPath: cg.adtImportPath,
	}

	declared := make(map[string]string) // Go identifier -> what declared it
	declare := func(ident, what string) error {
		if prev, ok := declared[ident]; ok {
			return fmt.Errorf("%s: identifier %s already used by %s", what, ident, prev)
		}
		declared[ident] = what
		return nil
	}

	for _, ts := range types {
		// Define validates names and arities the same way the runtime will.
		if _, err := ts.Define(); err != nil {
			return GeneratedFile{}, fmt.Errorf("generating %s: %w", ts.Name, err)
		}
		td, err := buildType(ts)
		if err != nil {
			return GeneratedFile{}, fmt.Errorf("generating %s: %w", ts.Name, err)
		}
		if err := declare(td.Name, "type "+td.Name); err != nil {
			return GeneratedFile{}, err
		}
		if err := declare(td.VarName, "type "+td.Name); err != nil {
			return GeneratedFile{}, err
		}
		for _, fn := range []string{td.Name + "Type", td.Name + "FromVariant"} {
			if err := declare(fn, "type "+td.Name); err != nil {
				return GeneratedFile{}, err
			}
		}
		for _, c := range td.Cases {
			if err := declare(c.StructName, td.Name+"."+c.Name); err != nil {
				return GeneratedFile{}, err
			}
		}
		data.Types = append(data.Types, td)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("rendering: %w", err)
	}

	src, err := imports.Process("", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("formatting generated code: %w\n%s", err, buf.String())
	}

	return GeneratedFile{
		Filename: strings.ToLower(pkg) + "_adt.go",
		Content:  string(src),
	}, nil
}

func buildType(ts schema.TypeSchema) (typeData, error) {
	td := typeData{
		Name:    ts.Name,
		VarName: lowerFirst(ts.Name) + "Descriptor",
		Doc:     docLines(ts.Doc, ts.Name+" is a variant type."),
	}
	for i, cs := range ts.Cases {
		cd := caseData{
			Name:       cs.Name,
			StructName: ts.Name + upperFirst(cs.Name),
			Ordinal:    i + 1,
		}
		cd.Doc = docLines(cs.Doc, fmt.Sprintf("%s is the %s case of %s.", cd.StructName, cs.Name, ts.Name))

		seen := make(map[string]bool)
		for j := 0; j < cs.CaseArity(); j++ {
			name := fmt.Sprintf("F%d", j)
			if j < len(cs.Fields) && cs.Fields[j].Name != "" {
				name = upperFirst(cs.Fields[j].Name)
			}
			if reservedNames[name] {
				return typeData{}, fmt.Errorf("case %s: field %s clashes with a generated method", cs.Name, name)
			}
			if seen[name] {
				return typeData{}, fmt.Errorf("case %s: duplicate field %s", cs.Name, name)
			}
			seen[name] = true
			cd.Fields = append(cd.Fields, fieldData{Name: name, Type: cs.FieldType(j)})
		}
		td.Cases = append(td.Cases, cd)
	}
	return td, nil
}

// docLines turns free text into "// " comment lines.
func docLines(doc, fallback string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		doc = fallback
	}
	lines := strings.Split(doc, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("// "+l, " ")
	}
	return strings.Join(lines, "\n")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

var fileTemplate = template.Must(template.New("file").Funcs(template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}).Parse(`{{.Header}}

package {{.Package}}

import (
	"fmt"

	"{{.AdtImportPath}}"
)
{{range $t := .Types}}
var {{$t.VarName}} = adt.MustDefine({{quote $t.Name}},
{{- range $t.Cases}}
	adt.Case({{quote .Name}}, {{len .Fields}}),
{{- end}}
)

{{$t.Doc}}
type {{$t.Name}} interface {
	is{{$t.Name}}()
	Ordinal() int
	CaseName() string
	Variant() adt.Value
	String() string
	Equal(other {{$t.Name}}) bool
}

// {{$t.Name}}Type returns the runtime descriptor of {{$t.Name}}.
func {{$t.Name}}Type() *adt.Type { return {{$t.VarName}} }

// {{$t.Name}}FromVariant converts a value of the runtime type back to its case struct.
func {{$t.Name}}FromVariant(v adt.Value) ({{$t.Name}}, error) {
	if v.Type() != {{$t.VarName}} {
		return nil, fmt.Errorf("%v is not a {{$t.Name}}", v)
	}
	switch v.Ordinal() {
{{- range $t.Cases}}
	case {{.Ordinal}}:
		var c {{.StructName}}
		if err := v.Unpack({{range $i, $f := .Fields}}{{if $i}}, {{end}}&c.{{$f.Name}}{{end}}); err != nil {
			return nil, err
		}
		return c, nil
{{- end}}
	}
	return nil, fmt.Errorf("unknown {{$t.Name}} ordinal %d", v.Ordinal())
}
{{range $c := $t.Cases}}
{{$c.Doc}}
type {{$c.StructName}} struct {
{{- range $c.Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}

func ({{$c.StructName}}) is{{$t.Name}}() {}

func ({{$c.StructName}}) Ordinal() int { return {{$c.Ordinal}} }

func ({{$c.StructName}}) CaseName() string { return {{quote $c.Name}} }

func (v {{$c.StructName}}) Variant() adt.Value {
	return {{$t.VarName}}.MustConstructor({{quote $c.Name}}).Must({{range $i, $f := $c.Fields}}{{if $i}}, {{end}}v.{{$f.Name}}{{end}})
}

func (v {{$c.StructName}}) String() string { return v.Variant().String() }

// Equal reports whether other is the same case with an equal payload.
func (v {{$c.StructName}}) Equal(other {{$t.Name}}) bool {
	return other != nil && v.Variant().Equal(other.Variant())
}
{{end}}{{end}}`))
