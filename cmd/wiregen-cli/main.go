package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-wiregen/pkg/gen"
	"github.com/goliatone/go-wiregen/pkg/orchestrator"
	"github.com/goliatone/go-wiregen/pkg/schema"
)

func main() {
	source := flag.String("schema", "", "registry document path (YAML)")
	target := flag.String("target", "", "target language (golang, dart)")
	module := flag.String("module", "", "module/namespace for the generated code, e.g. demo.fleet")
	output := flag.String("output", "", "output directory (units are printed to stdout if empty)")
	encodings := flag.String("encodings", "bincode,bcs", "comma-separated wire encodings")
	schemaOnly := flag.Bool("schema-only", false, "emit type definitions without serialization code")
	interactive := flag.Bool("interactive", true, "prompt for missing inputs on a terminal")
	flag.Parse()

	ctx := context.Background()
	o := orchestrator.New()

	if err := fillMissing(o, source, target, module, *interactive); err != nil {
		log.Fatalf("Failed to collect inputs: %v", err)
	}
	if *source == "" {
		log.Fatal("a registry document is required (-schema)")
	}
	if *module == "" {
		log.Fatal("a module name is required (-module)")
	}

	parsed, err := gen.ParseEncodings(*encodings)
	if err != nil {
		log.Fatalf("Invalid -encodings value: %v", err)
	}

	cfg := gen.NewConfig(*module)
	cfg.Serialization = !*schemaOnly
	cfg.Encodings = parsed

	units, err := o.Generate(ctx, orchestrator.Request{
		Source: schema.SourceFromFile(*source),
		Target: *target,
		Config: cfg,
		OutDir: *output,
	})
	if err != nil {
		log.Fatalf("Failed to generate bindings: %v", err)
	}

	if *output != "" {
		fmt.Printf("%d units written to %s\n", len(units), *output)
		return
	}
	for _, unit := range units {
		fmt.Printf("// ---- %s ----\n%s\n", unit.Path, unit.Content)
	}
}

// fillMissing prompts for inputs the flags left empty. Prompting is skipped
// when stdin is not a terminal so the tool stays scriptable.
func fillMissing(o *orchestrator.Orchestrator, source, target, module *string, interactive bool) error {
	if !interactive || !isTerminal() {
		return nil
	}

	if *source == "" {
		prompt := &survey.Input{Message: "Registry document path:"}
		if err := survey.AskOne(prompt, source, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}
	if *module == "" {
		prompt := &survey.Input{
			Message: "Module name for the generated code:",
			Help:    "Dot-separated namespace, e.g. demo.fleet",
		}
		if err := survey.AskOne(prompt, module, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}
	if *target == "" {
		prompt := &survey.Select{
			Message: "Target language:",
			Options: o.Targets(),
		}
		if err := survey.AskOne(prompt, target); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
