package config

import "testing"

func TestTrimSchemaExt(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"barcode.adt.yaml", "barcode"},
		{"barcode.adt.yml", "barcode"},
		{"shapes.yaml", "shapes"},
		{"events.proto", "events"},
		{"README", "README"},
	}
	for _, tt := range tests {
		if got := TrimSchemaExt(tt.in); got != tt.want {
			t.Errorf("TrimSchemaExt(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
	if !IsProtoFile("a/b.proto") || IsProtoFile("a.yaml") {
		t.Error("IsProtoFile misclassifies")
	}
}
