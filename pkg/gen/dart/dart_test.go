package dart

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-wiregen/pkg/format"
	"github.com/goliatone/go-wiregen/pkg/gen"
	"github.com/goliatone/go-wiregen/pkg/testsupport"
)

func fleetRegistry(t *testing.T) *format.Registry {
	t.Helper()
	registry := format.NewRegistry()
	registry.MustAdd("Vehicle", format.Struct{Fields: []format.Named{
		{Name: "id", Value: format.U64},
		{Name: "tags", Value: format.Seq{Element: format.Str}},
		{Name: "location", Value: format.Option{Inner: format.U32}},
	}})
	registry.MustAdd("Beacon", format.Struct{Fields: []format.Named{
		{Name: "channel", Value: format.Option{Inner: format.U32}},
		{Name: "readings", Value: format.Map{Key: format.Str, Value: format.U64}},
	}})
	registry.MustAdd("VehicleId", format.NewTypeStruct{Value: format.U64})
	registry.MustAdd("Command", format.Enum{Variants: []format.Variant{
		{Index: 0, Name: "start", Value: format.VariantUnit{}},
		{Index: 1, Name: "move", Value: format.VariantStruct{Fields: []format.Named{
			{Name: "dx", Value: format.I32},
		}}},
	}})
	return registry
}

func emitFleet(t *testing.T, cfg gen.Config, options ...Option) []gen.SourceUnit {
	t.Helper()
	emitter, err := New(options...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	units, err := emitter.Emit(context.Background(), fleetRegistry(t), cfg)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	return units
}

func TestEmitLaysOutLibraryParts(t *testing.T) {
	units := emitFleet(t, gen.NewConfig("demo.fleet"))

	for _, path := range []string{
		"lib/demo/fleet/vehicle.dart",
		"lib/demo/fleet/beacon.dart",
		"lib/demo/fleet/vehicle_id.dart",
		"lib/demo/fleet/command.dart",
		"lib/demo/fleet/trait_helpers.dart",
		"lib/demo/fleet/fleet.dart",
		"pubspec.yaml",
		"test/all_test.dart",
	} {
		testsupport.FindUnit(t, units, path)
	}

	library := testsupport.FindUnit(t, units, "lib/demo/fleet/fleet.dart")
	for _, want := range []string{
		"library demo_fleet_types;",
		"import 'package:optional/optional.dart';",
		"import '../serde/serde.dart';",
		"import '../bincode/bincode.dart';",
		"import '../bcs/bcs.dart';",
		"part 'trait_helpers.dart';",
		"part 'vehicle.dart';",
		"part 'command.dart';",
	} {
		if !strings.Contains(library, want) {
			t.Fatalf("library file missing %q:\n%s", want, library)
		}
	}
}

func TestEmitClassSerializeRoundTripSymmetry(t *testing.T) {
	units := emitFleet(t, gen.NewConfig("demo.fleet"))
	vehicle := testsupport.FindUnit(t, units, "lib/demo/fleet/vehicle.dart")

	if !strings.HasPrefix(vehicle, "part of demo_fleet_types;") {
		t.Fatalf("part file missing preamble:\n%s", vehicle)
	}
	for _, want := range []string{
		"class Vehicle {",
		"void serialize(BinarySerializer serializer) {",
		"static Vehicle deserialize(BinaryDeserializer deserializer) {",
		"Uint8List bincodeSerialize() {",
		"static Vehicle bcsDeserialize(Uint8List input) {",
		"throw Exception('Some input bytes were not read');",
	} {
		if !strings.Contains(vehicle, want) {
			t.Fatalf("missing %q in:\n%s", want, vehicle)
		}
	}

	// Fields must go to the wire in declaration order on both paths.
	serialize := vehicle[strings.Index(vehicle, "void serialize"):]
	id := strings.Index(serialize, "serializer.serialize_u64(id);")
	tags := strings.Index(serialize, "TraitHelpers.serialize_vector_str(tags, serializer);")
	location := strings.Index(serialize, "TraitHelpers.serialize_option_u32(location, serializer);")
	if id < 0 || tags < 0 || location < 0 || !(id < tags && tags < location) {
		t.Fatalf("serialize fields out of declaration order (id=%d tags=%d location=%d):\n%s",
			id, tags, location, serialize)
	}
}

func TestEmitHelpersDeduplicated(t *testing.T) {
	units := emitFleet(t, gen.NewConfig("demo.fleet"))
	helpers := testsupport.FindUnit(t, units, "lib/demo/fleet/trait_helpers.dart")

	// Vehicle and Beacon both use optional<u32>; one helper pair serves both.
	if got := strings.Count(helpers, "static void serialize_option_u32("); got != 1 {
		t.Fatalf("serialize_option_u32 emitted %d times", got)
	}
	if !strings.Contains(helpers, "static Optional<int> deserialize_option_u32(BinaryDeserializer deserializer) {") {
		t.Fatalf("missing option helper:\n%s", helpers)
	}
	if !strings.Contains(helpers, "class TraitHelpers {") {
		t.Fatalf("helpers not wrapped in TraitHelpers class:\n%s", helpers)
	}
}

func TestEmitMapCanonicalOrderChecks(t *testing.T) {
	units := emitFleet(t, gen.NewConfig("demo.fleet"))
	helpers := testsupport.FindUnit(t, units, "lib/demo/fleet/trait_helpers.dart")

	for _, want := range []string{
		"offsets.add(serializer.get_buffer_offset());",
		"serializer.sort_map_entries(offsets);",
		"deserializer.check_that_key_slices_are_increasing(",
		"Slice(previousKeyStart, previousKeyEnd), Slice(keyStart, keyEnd));",
	} {
		if !strings.Contains(helpers, want) {
			t.Fatalf("missing %q in:\n%s", want, helpers)
		}
	}
}

func TestEmitEnumDispatch(t *testing.T) {
	units := emitFleet(t, gen.NewConfig("demo.fleet"))
	command := testsupport.FindUnit(t, units, "lib/demo/fleet/command.dart")

	for _, want := range []string{
		"abstract class Command {",
		"static Command deserialize(BinaryDeserializer deserializer) {",
		"return CommandStartItem.load(deserializer);",
		"return CommandMoveItem.load(deserializer);",
		"throw Exception('Unknown variant index for Command: ' + index.toString());",
		"class CommandStartItem extends Command {",
		"serializer.serialize_variant_index(1);",
		"static Command fromJson(dynamic json) {",
		"return CommandMoveItem.loadJson(json);",
		"'type_name': 'move',",
	} {
		if !strings.Contains(command, want) {
			t.Fatalf("missing %q in:\n%s", want, command)
		}
	}
}

func TestEmitNewtypeJSONFlattening(t *testing.T) {
	units := emitFleet(t, gen.NewConfig("demo.fleet"))
	newtype := testsupport.FindUnit(t, units, "lib/demo/fleet/vehicle_id.dart")

	if !strings.Contains(newtype, "dynamic toJson() => value;") {
		t.Fatalf("newtype toJson does not flatten:\n%s", newtype)
	}
	if !strings.Contains(newtype, "VehicleId.fromJson(dynamic json) : value = json;") {
		t.Fatalf("newtype fromJson does not flatten:\n%s", newtype)
	}
}

func TestEmitSchemaOnlyMode(t *testing.T) {
	cfg := gen.NewConfig("demo.fleet")
	cfg.Serialization = false
	units := emitFleet(t, cfg)

	for _, unit := range units {
		if unit.Path == "lib/demo/fleet/trait_helpers.dart" {
			t.Fatal("schema-only mode must not emit helpers")
		}
	}
	vehicle := testsupport.FindUnit(t, units, "lib/demo/fleet/vehicle.dart")
	if strings.Contains(vehicle, "void serialize(") {
		t.Fatalf("schema-only mode emitted codec methods:\n%s", vehicle)
	}
	if !strings.Contains(vehicle, "bool operator ==(covariant Vehicle other) {") {
		t.Fatalf("schema-only mode dropped equality:\n%s", vehicle)
	}
}

func TestEmitRejectsPlaceholder(t *testing.T) {
	registry := format.NewRegistry()
	registry.MustAdd("Pending", format.NewTypeStruct{Value: format.Variable{}})

	emitter, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := emitter.Emit(context.Background(), registry, gen.NewConfig("demo.fleet")); err == nil {
		t.Fatal("expected error for unresolved placeholder")
	}
}

func TestEmitTestHarnessToggle(t *testing.T) {
	units := emitFleet(t, gen.NewConfig("demo.fleet"), WithTestHarness(false))
	for _, unit := range units {
		if unit.Path == "test/all_test.dart" {
			t.Fatal("test harness emitted despite being disabled")
		}
	}

	units = emitFleet(t, gen.NewConfig("demo.fleet"))
	harness := testsupport.FindUnit(t, units, "test/all_test.dart")
	for _, want := range []string{
		"library fleet_test;",
		"import 'package:fleet/demo/fleet/fleet.dart';",
		"group('bincode', runBincodeTests);",
		"group('bcs', runBcsTests);",
	} {
		if !strings.Contains(harness, want) {
			t.Fatalf("missing %q in:\n%s", want, harness)
		}
	}
}
