package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-wiregen/pkg/format"
	"github.com/goliatone/go-wiregen/pkg/gen"
	"github.com/goliatone/go-wiregen/pkg/schema"
	"github.com/goliatone/go-wiregen/pkg/testsupport"
)

const fleetDocument = `
Vehicle:
  STRUCT:
    - id: U64
    - location:
        OPTION: U32
Command:
  ENUM:
    0:
      start: UNIT
`

func TestGenerateFromDocumentSource(t *testing.T) {
	o := New()
	units, err := o.Generate(context.Background(), Request{
		Source: schema.SourceFromBytes("fleet.yaml", []byte(fleetDocument)),
		Config: gen.NewConfig("demo.fleet"),
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	var paths []string
	for _, unit := range units {
		paths = append(paths, unit.Path)
	}
	for _, want := range []string{"vehicle.go", "command.go", "helpers.go", "doc.go"} {
		found := false
		for _, path := range paths {
			if path == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing unit %q in %v", want, paths)
		}
	}
}

func TestGenerateSelectsTarget(t *testing.T) {
	o := New()
	units, err := o.Generate(context.Background(), Request{
		Registry: testsupport.MustRegistry(t, fleetDocument),
		Target:   "dart",
		Config:   gen.NewConfig("demo.fleet"),
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	found := false
	for _, unit := range units {
		if unit.Path == "lib/demo/fleet/vehicle.dart" {
			found = true
		}
	}
	if !found {
		t.Fatal("dart target did not produce the vehicle part")
	}

	if _, err := o.Generate(context.Background(), Request{
		Source: schema.SourceFromBytes("fleet.yaml", []byte(fleetDocument)),
		Target: "kotlin",
		Config: gen.NewConfig("demo.fleet"),
	}); err == nil || !strings.Contains(err.Error(), `target "kotlin"`) {
		t.Fatalf("unknown target error = %v", err)
	}
}

func TestGenerateWritesUnits(t *testing.T) {
	outDir := t.TempDir()
	o := New()
	if _, err := o.Generate(context.Background(), Request{
		Source: schema.SourceFromBytes("fleet.yaml", []byte(fleetDocument)),
		Config: gen.NewConfig("demo.fleet"),
		OutDir: outDir,
	}); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "vehicle.go"))
	if err != nil {
		t.Fatalf("read written unit: %v", err)
	}
	if !strings.Contains(string(data), "type Vehicle struct {") {
		t.Fatalf("written unit content wrong:\n%s", data)
	}
}

func TestGenerateRejectsInvalidSchema(t *testing.T) {
	registry := format.NewRegistry()
	registry.MustAdd("Broken", format.NewTypeStruct{Value: format.TypeName("Missing")})

	o := New()
	_, err := o.Generate(context.Background(), Request{
		Registry: registry,
		Config:   gen.NewConfig("demo.fleet"),
	})
	var schemaErr *format.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("want SchemaError, got %T: %v", err, err)
	}

	// The same reference is legal once declared external.
	cfg := gen.NewConfig("demo.fleet")
	cfg.External = map[string][]string{"example.com/missing": {"Missing"}}
	if _, err := o.Generate(context.Background(), Request{Registry: registry, Config: cfg}); err != nil {
		t.Fatalf("external reference rejected: %v", err)
	}
}

func TestGenerateRequiresInputs(t *testing.T) {
	o := New()
	if _, err := o.Generate(context.Background(), Request{Config: gen.NewConfig("demo.fleet")}); err == nil {
		t.Fatal("expected error without source or registry")
	}
	if _, err := o.Generate(context.Background(), Request{
		Source: schema.SourceFromBytes("fleet.yaml", []byte(fleetDocument)),
	}); err == nil {
		t.Fatal("expected error without module name")
	}
	if _, err := o.Generate(nil, Request{}); err == nil { //nolint:staticcheck
		t.Fatal("expected error without context")
	}
}

func TestTargets(t *testing.T) {
	o := New()
	targets := o.Targets()
	want := []string{"dart", "golang"}
	if len(targets) != len(want) {
		t.Fatalf("Targets() = %v, want %v", targets, want)
	}
	for i := range want {
		if targets[i] != want[i] {
			t.Fatalf("Targets() = %v, want %v", targets, want)
		}
	}
}
