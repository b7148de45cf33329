// Command adt inspects variant type schemas, constructs values from the
// command line, and generates Go sum types.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/adt/internal/codegen"
	"github.com/funvibe/adt/internal/config"
	"github.com/funvibe/adt/internal/protoschema"
	"github.com/funvibe/adt/internal/schema"
	"github.com/funvibe/adt/internal/term"
	"github.com/funvibe/adt/pkg/adt"
	"github.com/sanity-io/litter"
)

const usage = `Usage: adt <command> [arguments]

Commands:
  check [schema...]                      load schemas and print their case tables
  new <schema> <Type> <case> [lit...]    construct a value and print it
  dump [schema...]                       dump the type descriptors
  gen [-pkg name] [-o file] [schema...]  generate Go sum types
  help                                   show this help
  version                                print the version

Schemas ending in .proto are read as protobuf oneofs; anything else as
YAML. Without a schema argument, adt.yaml is searched for in the current
directory and its parents.

Literals: 42, 3.5, true, false, nil, 'text', "text"; other words are
taken as strings.
`

// errUsage marks errors that exit with config.ExitUsage.
var errUsage = errors.New("usage error")

type cli struct {
	stdout io.Writer
	stderr io.Writer
	out    term.Styler // styles stdout
	errs   term.Styler // styles stderr
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(config.ExitFailure)
		}
	}()

	c := &cli{
		stdout: os.Stdout,
		stderr: os.Stderr,
		out:    term.ForStdout(),
		errs:   term.For(os.Stderr, term.OSEnv),
	}
	os.Exit(c.run(os.Args[1:]))
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.stderr, usage)
		return config.ExitUsage
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "help", "-help", "--help", "-h":
		fmt.Fprint(c.stdout, usage)
		return config.ExitOK
	case "version", "-version", "--version":
		fmt.Fprintf(c.stdout, "adt version %s\n", config.Version)
		return config.ExitOK
	case "check":
		err = c.check(rest)
	case "new":
		err = c.construct(rest)
	case "dump":
		err = c.dump(rest)
	case "gen":
		err = c.gen(rest)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	if err == nil {
		return config.ExitOK
	}
	c.fail(err)
	if errors.Is(err, errUsage) {
		fmt.Fprintln(c.stderr, "Run 'adt help' for usage.")
		return config.ExitUsage
	}
	return config.ExitFailure
}

func (c *cli) fail(err error) {
	fmt.Fprintf(c.stderr, "%s %s\n", c.errs.Red("Error:"), err)
}

// schemaPaths returns args, or the nearest adt.yaml when args is empty.
func schemaPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	path, err := schema.FindConfig(".")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("%w: no schema given and no %s found", errUsage, config.SchemaFileNames[0])
	}
	return []string{path}, nil
}

// loadSchema defines every type declared by one schema file.
func loadSchema(path string) (*schema.Registry, error) {
	if config.IsProtoFile(path) {
		return protoschema.LoadFiles(protoschema.LoadOptions{
			ImportPaths: []string{filepath.Dir(path)},
		}, filepath.Base(path))
	}
	cfg, err := schema.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg.Define()
}

// loadAll merges the types of several schema files.
func loadAll(paths []string) (*schema.Registry, error) {
	reg := schema.NewRegistry()
	for _, p := range paths {
		r, err := loadSchema(p)
		if err != nil {
			return nil, err
		}
		if err := reg.Merge(r); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	return reg, nil
}

func (c *cli) check(args []string) error {
	paths, err := schemaPaths(args)
	if err != nil {
		return err
	}

	failed := 0
	for _, p := range paths {
		reg, err := loadSchema(p)
		if err != nil {
			c.fail(err)
			failed++
			continue
		}
		for _, t := range reg.Types() {
			c.printType(t)
		}
		fmt.Fprintf(c.stdout, "%s %s: %d type(s)\n", c.out.Green("ok"), p, reg.Len())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d schema(s) failed", failed, len(paths))
	}
	return nil
}

func (c *cli) printType(t *adt.Type) {
	fmt.Fprintln(c.stdout, c.out.Bold(t.Name()))
	for _, d := range t.Cases() {
		fmt.Fprintf(c.stdout, "  %s %s/%d\n", c.out.Dim(fmt.Sprint(d.Ordinal)), c.out.Cyan(d.Name), d.Arity)
	}
}

func (c *cli) construct(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: new needs <schema> <Type> <case>", errUsage)
	}
	reg, err := loadSchema(args[0])
	if err != nil {
		return err
	}
	t, ok := reg.Lookup(args[1])
	if !ok {
		return fmt.Errorf("%s: unknown type %s (have %s)", args[0], args[1], strings.Join(reg.Names(), ", "))
	}

	payload := make([]any, 0, len(args)-3)
	for _, lit := range args[3:] {
		v, err := parseLiteral(lit)
		if err != nil {
			return err
		}
		payload = append(payload, v)
	}

	v, err := t.New(args[2], payload...)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, v)
	return nil
}

// dumpEntry is what `adt dump` prints for each type.
type dumpEntry struct {
	Name   string
	Cases  []adt.CaseDef
	Schema schema.TypeSchema
}

func (c *cli) dump(args []string) error {
	paths, err := schemaPaths(args)
	if err != nil {
		return err
	}
	reg, err := loadAll(paths)
	if err != nil {
		return err
	}

	entries := make([]dumpEntry, 0, reg.Len())
	schemas := reg.Schemas()
	for i, t := range reg.Types() {
		entries = append(entries, dumpEntry{Name: t.Name(), Cases: t.Cases(), Schema: schemas[i]})
	}
	opts := litter.Options{HidePrivateFields: true, HomePackage: "main"}
	fmt.Fprint(c.stdout, opts.Sdump(entries))
	fmt.Fprintln(c.stdout)
	return nil
}

func (c *cli) gen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	pkg := fs.String("pkg", "", "package name (default: derived from the first schema file name)")
	out := fs.String("o", "-", "output file, or - for stdout")
	importPath := fs.String("import", codegen.DefaultAdtImportPath, "import path of package adt")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	paths, err := schemaPaths(fs.Args())
	if err != nil {
		return err
	}
	reg, err := loadAll(paths)
	if err != nil {
		return err
	}

	name := *pkg
	if name == "" {
		name = packageName(paths[0])
		if !adt.IsIdentifier(name) {
			return fmt.Errorf("%w: cannot derive a package name from %s; use -pkg", errUsage, paths[0])
		}
	}

	file, err := codegen.NewCodeGenerator(*importPath).Generate(name, reg.Schemas())
	if err != nil {
		return err
	}

	if *out == "-" {
		_, err = io.WriteString(c.stdout, file.Content)
		return err
	}
	if err := os.WriteFile(*out, []byte(file.Content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	fmt.Fprintf(c.stdout, "%s %s\n", c.out.Green("wrote"), *out)
	return nil
}

// packageName derives a package name from a schema path:
// "schemas/barcode.adt.yaml" -> "barcode".
func packageName(path string) string {
	return strings.ToLower(config.TrimSchemaExt(filepath.Base(path)))
}
