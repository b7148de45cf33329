package config

import "strings"

// Version is reported by `adt version`.
// Can be set at build time using: -ldflags "-X github.com/funvibe/adt/internal/config.Version=..."
var Version = "0.1.0"

// SchemaFileNames are the file names FindConfig looks for, in order.
var SchemaFileNames = []string{"adt.yaml", "adt.yml"}

// SchemaFileExtensions are all recognized YAML schema extensions
var SchemaFileExtensions = []string{".adt.yaml", ".adt.yml", ".yaml", ".yml"}

const ProtoFileExt = ".proto"

// IsProtoFile reports whether path names a protobuf source.
func IsProtoFile(path string) bool {
	return strings.HasSuffix(path, ProtoFileExt)
}

// TrimSchemaExt removes a recognized schema extension from name.
func TrimSchemaExt(name string) string {
	if IsProtoFile(name) {
		return strings.TrimSuffix(name, ProtoFileExt)
	}
	for _, ext := range SchemaFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// GeneratedHeader marks files written by `adt gen`.
const GeneratedHeader = "// Code generated by adt gen. DO NOT EDIT."

// DefaultFieldType is used by codegen for fields declared without a type.
const DefaultFieldType = "any"

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)
