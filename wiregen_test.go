package wiregen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-wiregen/pkg/schema"
)

const fleetDocument = `
Vehicle:
  STRUCT:
    - id: U64
    - location:
        OPTION: U32
`

func TestGenerate(t *testing.T) {
	units, err := Generate(
		context.Background(),
		schema.SourceFromBytes("fleet.yaml", []byte(fleetDocument)),
		"golang",
		NewConfig("demo.fleet"),
	)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	found := false
	for _, unit := range units {
		if unit.Path == "vehicle.go" && strings.Contains(string(unit.Content), "type Vehicle struct {") {
			found = true
		}
	}
	if !found {
		t.Fatal("vehicle.go unit missing or incomplete")
	}
}

func TestGenerateTo(t *testing.T) {
	outDir := t.TempDir()
	if _, err := GenerateTo(
		context.Background(),
		schema.SourceFromBytes("fleet.yaml", []byte(fleetDocument)),
		"dart",
		NewConfig("demo.fleet"),
		outDir,
	); err != nil {
		t.Fatalf("GenerateTo() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "lib", "demo", "fleet", "vehicle.dart"))
	if err != nil {
		t.Fatalf("read written unit: %v", err)
	}
	if !strings.Contains(string(data), "class Vehicle {") {
		t.Fatalf("written unit content wrong:\n%s", data)
	}
}
