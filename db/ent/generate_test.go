package main

import (
	"os"
	"strings"
	"testing"
)

// The codegen config must use module-qualified package and schema paths;
// bare names make entc emit a client whose internal imports ("ent/migrate",
// "ent/predicate") cannot resolve, breaking every package built on the
// generated client.
func TestGenerateConfigUsesModuleQualifiedPaths(t *testing.T) {
	src, err := os.ReadFile("generate.go")
	if err != nil {
		t.Fatalf("reading generate.go: %v", err)
	}
	code := string(src)

	for _, want := range []string{
		`Package: "github.com/inkform/inkform/gen/ent"`,
		`Schema:  "github.com/inkform/inkform/db/ent/schema"`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generate.go missing %s", want)
		}
	}
	if strings.Contains(code, `Package: "ent"`) {
		t.Error(`generate.go still uses the bare Package: "ent"`)
	}
}
