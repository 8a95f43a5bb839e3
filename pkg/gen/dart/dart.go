// Package dart emits Dart bindings: one part file per container, the
// TraitHelpers part, the library file tying the parts together, and the
// package scaffolds (pubspec, test harness).
package dart

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-wiregen/pkg/emit"
	"github.com/goliatone/go-wiregen/pkg/emit/template"
	"github.com/goliatone/go-wiregen/pkg/format"
	"github.com/goliatone/go-wiregen/pkg/gen"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// Option configures the emitter.
type Option func(*Emitter)

// WithTestHarness toggles the generated test harness unit. Enabled by
// default; turn it off when the generated package is embedded in an existing
// Dart project with its own test entry point.
func WithTestHarness(enabled bool) Option {
	return func(e *Emitter) {
		e.testHarness = enabled
	}
}

// Emitter generates Dart source units.
type Emitter struct {
	testHarness bool
	templates   *template.Engine
}

var _ gen.Emitter = (*Emitter)(nil)

// New constructs the Dart emitter applying any provided options.
func New(options ...Option) (*Emitter, error) {
	e := &Emitter{testHarness: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}

	scaffolds, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("dart: locate scaffold templates: %w", err)
	}
	engine, err := template.New(template.WithFS(scaffolds), template.WithExtension(".tpl"))
	if err != nil {
		return nil, fmt.Errorf("dart: configure scaffold templates: %w", err)
	}
	e.templates = engine
	return e, nil
}

// Name returns the target identifier.
func (e *Emitter) Name() string {
	return "dart"
}

// Emit produces every source unit for the registry: the container parts and
// helper part under lib/, the library file, and the package scaffolds.
func (e *Emitter) Emit(ctx context.Context, registry *format.Registry, cfg gen.Config) ([]gen.SourceUnit, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if err := gen.EnsureResolved(registry); err != nil {
		return nil, err
	}

	helpers := gen.BuildHelperSet(registry)
	libDir := path.Join(append([]string{"lib"}, cfg.ModulePath()...)...)
	library := libraryName(cfg)

	var units []gen.SourceUnit
	var parts []string
	for _, name := range registry.Names() {
		container, _ := registry.Get(name)
		file := e.newFileEmitter(cfg, library)
		file.emitPreamble()
		file.emitContainer(name, container)
		partName := emit.SnakeCase(name) + ".dart"
		parts = append(parts, partName)
		units = append(units, gen.SourceUnit{
			Path:    path.Join(libDir, partName),
			Content: []byte(file.w.String()),
		})
	}

	if cfg.Serialization && helpers.Len() > 0 {
		file := e.newFileEmitter(cfg, library)
		file.emitPreamble()
		file.emitHelpers(helpers.Sorted())
		parts = append([]string{"trait_helpers.dart"}, parts...)
		units = append(units, gen.SourceUnit{
			Path:    path.Join(libDir, "trait_helpers.dart"),
			Content: []byte(file.w.String()),
		})
	}

	assembly, err := e.assemble(libDir, library, parts, cfg)
	if err != nil {
		return nil, err
	}
	return append(units, assembly...), nil
}

// assemble renders the library file and the package scaffolds.
func (e *Emitter) assemble(libDir, library string, parts []string, cfg gen.Config) ([]gen.SourceUnit, error) {
	encodings := make([]string, len(cfg.Encodings))
	for i, encoding := range cfg.Encodings {
		encodings[i] = encoding.Name()
	}
	packageName := dartPackageName(cfg)

	libraryFile, err := e.templates.Render("library", map[string]any{
		"library":   library,
		"parts":     parts,
		"encodings": encodings,
		"imports":   cfg.External["import"],
	})
	if err != nil {
		return nil, fmt.Errorf("dart: render library unit: %w", err)
	}
	units := []gen.SourceUnit{{
		Path:    path.Join(libDir, packageName+".dart"),
		Content: []byte(libraryFile),
	}}

	pubspec, err := e.templates.Render("pubspec", map[string]any{
		"package": packageName,
	})
	if err != nil {
		return nil, fmt.Errorf("dart: render pubspec unit: %w", err)
	}
	units = append(units, gen.SourceUnit{Path: "pubspec.yaml", Content: []byte(pubspec)})

	if e.testHarness {
		harness, err := e.templates.Render("all_test", map[string]any{
			"package":   packageName,
			"module":    strings.Join(cfg.ModulePath(), "/"),
			"encodings": encodings,
		})
		if err != nil {
			return nil, fmt.Errorf("dart: render test harness unit: %w", err)
		}
		units = append(units, gen.SourceUnit{Path: path.Join("test", "all_test.dart"), Content: []byte(harness)})
	}
	return units, nil
}

// libraryName derives the Dart library identifier: module segments joined
// with underscores, suffixed "_types" to keep the type library distinct from
// the runtime libraries.
func libraryName(cfg gen.Config) string {
	return strings.Join(cfg.ModulePath(), "_") + "_types"
}

// dartPackageName is the pubspec-legal package identifier, the last module
// segment in snake case.
func dartPackageName(cfg gen.Config) string {
	segments := cfg.ModulePath()
	if len(segments) == 0 {
		return "generated"
	}
	return emit.SnakeCase(segments[len(segments)-1])
}

// fileEmitter accumulates one part file.
type fileEmitter struct {
	w        *emit.Writer
	cfg      gen.Config
	library  string
	external map[string]string
}

func (e *Emitter) newFileEmitter(cfg gen.Config, library string) *fileEmitter {
	return &fileEmitter{
		w:        emit.NewWriter("  "),
		cfg:      cfg,
		library:  library,
		external: cfg.ExternalQualified("."),
	}
}

func (e *fileEmitter) emitPreamble() {
	e.w.Linef("part of %s;", e.library)
	e.w.Blank()
}
