package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-wiregen/pkg/format"
	"github.com/goliatone/go-wiregen/pkg/gen"
	"github.com/goliatone/go-wiregen/pkg/gen/dart"
	"github.com/goliatone/go-wiregen/pkg/gen/golang"
	"github.com/goliatone/go-wiregen/pkg/schema"
)

const defaultTargetName = "golang"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects an emitter registry, replacing the built-in targets.
func WithRegistry(registry *gen.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithEmitters registers additional emitters on top of whatever registry is
// in effect.
func WithEmitters(emitters ...gen.Emitter) Option {
	return func(o *Orchestrator) {
		o.extraEmitters = append(o.extraEmitters, emitters...)
	}
}

// WithDefaultTarget overrides the target used when a request omits an
// explicit Target field.
func WithDefaultTarget(name string) Option {
	return func(o *Orchestrator) {
		o.defaultTarget = name
	}
}

// Orchestrator coordinates the pipeline from registry document to generated
// source units. It applies sensible defaults (both built-in targets
// registered, Go as the default) while remaining open to dependency injection
// for advanced callers.
type Orchestrator struct {
	registry        *gen.Registry
	defaultTarget   string
	extraEmitters   []gen.Emitter
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultTarget: defaultTargetName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to generate bindings from a registry.
type Request struct {
	// Registry allows callers to bypass the loader when they already have a
	// parsed container table.
	Registry *format.Registry

	// Source identifies where the registry document lives. Optional when
	// Registry is supplied.
	Source schema.Source

	// Target names the emitter to use. If empty, the orchestrator falls back
	// to the configured default target.
	Target string

	// Config carries the language-independent generation settings.
	Config gen.Config

	// OutDir, when set, causes every generated unit to be written beneath it.
	// When empty the units are only returned in memory.
	OutDir string
}

// Generate executes the load → validate → emit sequence and returns the
// generated units. A schema failure aborts before any output exists; a write
// failure is reported as a GenerationError naming the offending unit, and
// partial output on disk must not be treated as usable.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]gen.SourceUnit, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if req.Config.ModuleName == "" {
		return nil, errors.New("orchestrator: module name is required")
	}

	registry, err := o.resolveRegistry(req)
	if err != nil {
		return nil, err
	}
	if err := format.Validate(registry, req.Config.ExternalNames()); err != nil {
		return nil, err
	}

	emitter, err := o.emitterFor(req.Target)
	if err != nil {
		return nil, err
	}

	units, err := emitter.Emit(ctx, registry, req.Config)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: emit %s: %w", emitter.Name(), err)
	}

	if req.OutDir != "" {
		if err := writeUnits(req.OutDir, emitter.Name(), units); err != nil {
			return nil, err
		}
	}
	return units, nil
}

// Targets lists the registered emitter names.
func (o *Orchestrator) Targets() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) resolveRegistry(req Request) (*format.Registry, error) {
	if req.Registry != nil {
		return req.Registry, nil
	}
	if req.Source == nil {
		return nil, errors.New("orchestrator: source or registry is required")
	}
	doc, err := schema.Load(req.Source)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load registry document: %w", err)
	}
	registry, err := schema.ParseRegistry(doc)
	if err != nil {
		return nil, err
	}
	return registry, nil
}

func (o *Orchestrator) emitterFor(name string) (gen.Emitter, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: emitter registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultTarget
	}
	emitter, err := o.registry.Get(target)
	if err != nil {
		if name != "" {
			return nil, fmt.Errorf("orchestrator: target %q: %w", name, err)
		}
		return nil, fmt.Errorf("orchestrator: default target %q: %w", target, err)
	}
	return emitter, nil
}

func writeUnits(outDir, target string, units []gen.SourceUnit) error {
	for _, unit := range units {
		path := filepath.Join(outDir, filepath.FromSlash(unit.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return &GenerationError{Target: target, Unit: unit.Path, Err: err}
		}
		if err := os.WriteFile(path, unit.Content, 0o644); err != nil {
			return &GenerationError{Target: target, Unit: unit.Path, Err: err}
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.registry == nil {
		o.registry = gen.NewRegistry()
		goEmitter, err := golang.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: golang target: %w", err)
		} else {
			o.registry.MustRegister(goEmitter)
		}
		dartEmitter, err := dart.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: dart target: %w", err)
		} else {
			o.registry.MustRegister(dartEmitter)
		}
	}
	for _, emitter := range o.extraEmitters {
		if emitter == nil {
			continue
		}
		if err := o.registry.Register(emitter); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register emitter: %w", err)
		}
	}
	if o.defaultTarget == "" {
		o.defaultTarget = defaultTargetName
	}

	o.defaultsApplied = true
}
