// Package golang emits Go bindings: one source file per container, a shared
// helpers file, and the module assembly units (package doc, go.mod scaffold)
// for a generated package that talks to the serde runtime.
package golang

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-wiregen/pkg/emit"
	"github.com/goliatone/go-wiregen/pkg/emit/template"
	"github.com/goliatone/go-wiregen/pkg/format"
	"github.com/goliatone/go-wiregen/pkg/gen"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// DefaultRuntimePackage is the import path generated code reads the
// serializer contract from. The bincode and bcs implementations are resolved
// as subpackages of it.
const DefaultRuntimePackage = "github.com/goliatone/go-wiregen/pkg/serde"

// Option configures the emitter.
type Option func(*Emitter)

// WithRuntimePackage points generated imports at an alternate runtime
// implementation of the serde contract.
func WithRuntimePackage(path string) Option {
	return func(e *Emitter) {
		if path != "" {
			e.runtime = path
		}
	}
}

// WithModulePath enables the go.mod scaffold unit, declaring the generated
// package as its own module under the given path.
func WithModulePath(path string) Option {
	return func(e *Emitter) {
		e.modulePath = path
	}
}

// WithRuntimeVersion sets the runtime module version pinned by the go.mod
// scaffold.
func WithRuntimeVersion(version string) Option {
	return func(e *Emitter) {
		if version != "" {
			e.runtimeVersion = version
		}
	}
}

// Emitter generates Go source units.
type Emitter struct {
	runtime        string
	modulePath     string
	runtimeVersion string
	templates      *template.Engine
}

var _ gen.Emitter = (*Emitter)(nil)

// New constructs the Go emitter applying any provided options.
func New(options ...Option) (*Emitter, error) {
	e := &Emitter{
		runtime:        DefaultRuntimePackage,
		runtimeVersion: "v0.1.0",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}

	scaffolds, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("golang: locate scaffold templates: %w", err)
	}
	engine, err := template.New(template.WithFS(scaffolds), template.WithExtension(".tpl"))
	if err != nil {
		return nil, fmt.Errorf("golang: configure scaffold templates: %w", err)
	}
	e.templates = engine
	return e, nil
}

// Name returns the target identifier.
func (e *Emitter) Name() string {
	return "golang"
}

// Emit produces every source unit for the registry. The helper table is
// fully built before any container is emitted, so a field in one container
// can call a helper discovered through a sibling container.
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
	pkg := packageName(cfg.ModuleName)

	var units []gen.SourceUnit
	for _, name := range registry.Names() {
		container, _ := registry.Get(name)
		file := e.newFileEmitter(registry, cfg)
		file.emitContainer(name, container)
		units = append(units, gen.SourceUnit{
			Path:    emit.SnakeCase(name) + ".go",
			Content: file.finish(pkg),
		})
	}

	if cfg.Serialization && helpers.Len() > 0 {
		file := e.newFileEmitter(registry, cfg)
		file.useRuntime()
		file.emitHelpers(helpers.Sorted())
		units = append(units, gen.SourceUnit{
			Path:    "helpers.go",
			Content: file.finish(pkg),
		})
	}

	assembly, err := e.assemble(pkg, cfg)
	if err != nil {
		return nil, err
	}
	units = append(units, assembly...)
	return units, nil
}

// assemble renders the module assembly units: the package doc file and,
// when a module path is configured, the go.mod scaffold.
func (e *Emitter) assemble(pkg string, cfg gen.Config) ([]gen.SourceUnit, error) {
	encodings := make([]string, len(cfg.Encodings))
	for i, encoding := range cfg.Encodings {
		encodings[i] = encoding.Name()
	}

	doc, err := e.templates.Render("doc", map[string]any{
		"package":   pkg,
		"module":    cfg.ModuleName,
		"encodings": strings.Join(encodings, ", "),
	})
	if err != nil {
		return nil, fmt.Errorf("golang: render doc unit: %w", err)
	}
	units := []gen.SourceUnit{{Path: "doc.go", Content: []byte(doc)}}

	if e.modulePath != "" {
		gomod, err := e.templates.Render("gomod", map[string]any{
			"module_path":     e.modulePath,
			"runtime_module":  runtimeModule(e.runtime),
			"runtime_version": e.runtimeVersion,
		})
		if err != nil {
			return nil, fmt.Errorf("golang: render go.mod unit: %w", err)
		}
		units = append(units, gen.SourceUnit{Path: "go.mod", Content: []byte(gomod)})
	}
	return units, nil
}

// runtimeModule trims the package path down to the module that hosts it.
func runtimeModule(runtimePackage string) string {
	if idx := strings.Index(runtimePackage, "/pkg/"); idx > 0 {
		return runtimePackage[:idx]
	}
	return runtimePackage
}

// packageName derives the Go package identifier from the configured module
// name: the last dot-separated segment, lowered.
func packageName(moduleName string) string {
	segments := strings.Split(moduleName, ".")
	last := segments[len(segments)-1]
	return strings.ToLower(strings.ReplaceAll(last, "-", ""))
}

// fileEmitter accumulates one source unit, tracking the imports its body
// turns out to need.
type fileEmitter struct {
	w        *emit.Writer
	cfg      gen.Config
	registry *format.Registry
	runtime  string
	external map[string]string
	boxed    map[string]bool
	imports  map[string]struct{}
	std      map[string]struct{}
}

func (e *Emitter) newFileEmitter(registry *format.Registry, cfg gen.Config) *fileEmitter {
	external := make(map[string]string)
	for namespace, names := range cfg.External {
		for _, name := range names {
			external[name] = namespace
		}
	}
	return &fileEmitter{
		w:        emit.NewWriter("\t"),
		cfg:      cfg,
		registry: registry,
		runtime:  e.runtime,
		external: external,
		boxed:    recursiveNames(registry),
		imports:  make(map[string]struct{}),
		std:      make(map[string]struct{}),
	}
}

func (e *fileEmitter) useRuntime() {
	e.imports[e.runtime] = struct{}{}
}

func (e *fileEmitter) isEnum(name string) bool {
	container, ok := e.registry.Get(name)
	if !ok {
		return false
	}
	_, isEnum := container.(format.Enum)
	return isEnum
}

// finish prepends the generated-file preamble and grouped imports to the
// accumulated body.
func (e *fileEmitter) finish(pkg string) []byte {
	var out strings.Builder
	out.WriteString("// Code generated by go-wiregen. DO NOT EDIT.\n\n")
	out.WriteString("package " + pkg + "\n\n")

	std := sortedKeys(e.std)
	ext := sortedKeys(e.imports)
	if len(std)+len(ext) > 0 {
		out.WriteString("import (\n")
		for _, importPath := range std {
			fmt.Fprintf(&out, "\t%q\n", importPath)
		}
		if len(std) > 0 && len(ext) > 0 {
			out.WriteString("\n")
		}
		for _, importPath := range ext {
			fmt.Fprintf(&out, "\t%q\n", importPath)
		}
		out.WriteString(")\n\n")
	}

	out.WriteString(e.w.String())
	return []byte(out.String())
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
