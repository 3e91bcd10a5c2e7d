package wool

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/alpakka/wools/schema"
)

var tracer = otel.Tracer("wool")

// Batch wraps every module of a catalog into descriptor registries and
// merges them. A Batch is single use and not safe for concurrent use.
type Batch struct {
	cfg     *Config
	catalog *schema.Catalog
	logger  *slog.Logger
	policy  Policy
	factory *Factory
	names   *Names

	patterns []compiledPattern
	excludes []glob.Glob

	modules    *orderedMap[*Module]
	wrapped    map[*schema.Node]Wrapper
	inProgress map[*schema.Node]bool
	warnings   []*Warning
	merged     bool
}

// Result is the descriptor graph handed to emission.
type Result struct {
	// Modules are the registries of every module not excluded by
	// configuration, in dependency order.
	Modules  []*Module
	Merges   []MergeRecord
	Warnings []*Warning
}

// Module looks up a registry of the result by module name.
func (r *Result) Module(name string) *Module {
	for _, m := range r.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// NewBatch prepares a batch over every module of catalog. A nil cfg uses
// DefaultConfig.
func NewBatch(catalog *schema.Catalog, cfg *Config) (*Batch, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.WithDefaults()
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	patterns, err := compilePatterns(cfg.TypePatterns)
	if err != nil {
		return nil, err
	}
	excludes, err := compileExcludes(cfg.ExcludeModules)
	if err != nil {
		return nil, err
	}

	b := &Batch{
		cfg:        cfg,
		catalog:    catalog,
		logger:     cfg.Logger.With("component", "wool"),
		policy:     cfg.Policy,
		factory:    cfg.Factory,
		names:      NewNames(),
		patterns:   patterns,
		excludes:   excludes,
		modules:    newOrderedMap[*Module](),
		wrapped:    make(map[*schema.Node]Wrapper),
		inProgress: make(map[*schema.Node]bool),
	}

	// every registry exists up front so references into modules that are
	// not wrapped yet are reported as such
	for _, n := range catalog.DependencyOrder() {
		m := NewModule(n, cfg.Prefix, b.names)
		m.logger = b.logger.With("module", n.Name)
		m.report = b.record
		b.modules.Set(n.Name, m)
	}
	return b, nil
}

func (b *Batch) Config() *Config {
	return b.cfg
}

// Module returns the registry of the named module, or nil.
func (b *Batch) Module(name string) *Module {
	m, _ := b.modules.Get(name)
	return m
}

// Modules returns every registry in dependency order.
func (b *Batch) Modules() []*Module {
	return b.modules.Values()
}

// Warnings returns every warning reported so far.
func (b *Batch) Warnings() []*Warning {
	return b.warnings
}

func (b *Batch) warn(kind error, module, msg string, attrs ...any) error {
	return b.record(&Warning{Kind: kind, Module: module, Message: msg, Attrs: attrs})
}

func (b *Batch) record(w *Warning) error {
	b.warnings = append(b.warnings, w)
	warningsReported.WithLabelValues(w.Kind.Error()).Inc()
	return b.policy.Report(w)
}

// Wrap runs the wrap pass of the named module. Wrapping a module twice is a
// no-op.
func (b *Batch) Wrap(ctx context.Context, name string) error {
	_, span := tracer.Start(ctx, "Wrap")
	defer span.End()
	span.SetAttributes(attribute.String("module", name))

	m, ok := b.modules.Get(name)
	if !ok {
		return fmt.Errorf("wrapping module %s: not in catalog", name)
	}
	if m.wrapped {
		return nil
	}
	if b.merged {
		return fmt.Errorf("wrapping module %s: batch already merged", name)
	}

	start := time.Now()
	bld := &Builder{batch: b, module: m}
	for _, child := range typedefsFirst(m.node.Children) {
		w, err := bld.Wrap(child, nil)
		if err != nil {
			return fmt.Errorf("wrapping module %s: %w", name, err)
		}
		if w != nil {
			m.roots = append(m.roots, w)
		}
	}
	m.wrapped = true

	modulesWrapped.Inc()
	wrapDuration.Observe(time.Since(start).Seconds())
	m.logger.Debug("wrapped module", "classes", m.classes.Len(), "typedefs", m.typedefs.Len(), "rpcs", m.rpcs.Len())
	return nil
}

// WrapAll wraps every module, imported modules first.
func (b *Batch) WrapAll(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "WrapAll")
	defer span.End()

	for _, m := range b.modules.Values() {
		if err := b.Wrap(ctx, m.Name); err != nil {
			return err
		}
	}
	return nil
}

// Run wraps all modules, merges them and returns the result.
func (b *Batch) Run(ctx context.Context) (*Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	if err := b.WrapAll(ctx); err != nil {
		return nil, err
	}
	merges, err := b.Merge(ctx)
	if err != nil {
		return nil, err
	}
	res := b.Result()
	res.Merges = merges
	b.logger.Info("batch complete", "modules", len(res.Modules), "merged", len(merges), "warnings", len(b.warnings))
	return res, nil
}

// Result collects the registries that are not excluded by configuration.
func (b *Batch) Result() *Result {
	res := &Result{Warnings: b.warnings}
	for _, m := range b.modules.Values() {
		if b.excluded(m.Name) {
			continue
		}
		res.Modules = append(res.Modules, m)
	}
	return res
}

func (b *Batch) excluded(name string) bool {
	for _, g := range b.excludes {
		if g.Match(name) {
			return true
		}
	}
	return false
}
