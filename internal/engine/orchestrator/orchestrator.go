// Package orchestrator drives one end-to-end build: discover sources,
// build the dependency graph, order it, run every translation unit
// through the middleware chain, link, and persist the cache — the five
// phases the original eventchains_build.c main loop performs in order.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// Orchestrator wires the ports together into one build run. It never
// imports a concrete adapter package — every dependency arrives through
// an interface from internal/core/ports.
type Orchestrator struct {
	Scanner       ports.SourceScanner
	IncludeParser ports.IncludeParser
	Resolver      ports.IncludeResolver
	EntryDetector ports.EntryDetector
	Hasher        ports.Hasher
	Files         ports.FileChecker
	CacheStore    ports.CacheStore
	Compiler      ports.CompilerDriver
	Logger        ports.Logger
	Telemetry     ports.Telemetry
}

// New creates an Orchestrator from its required ports.
func New(
	scanner ports.SourceScanner,
	includeParser ports.IncludeParser,
	resolver ports.IncludeResolver,
	entryDetector ports.EntryDetector,
	hasher ports.Hasher,
	files ports.FileChecker,
	cacheStore ports.CacheStore,
	compiler ports.CompilerDriver,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Orchestrator {
	return &Orchestrator{
		Scanner:       scanner,
		IncludeParser: includeParser,
		Resolver:      resolver,
		EntryDetector: entryDetector,
		Hasher:        hasher,
		Files:         files,
		CacheStore:    cacheStore,
		Compiler:      compiler,
		Logger:        logger,
		Telemetry:     telemetry,
	}
}

// Run executes one complete build according to cfg.
func (o *Orchestrator) Run(ctx context.Context, cfg *domain.BuildConfig) (*domain.BuildReport, error) {
	start := time.Now()

	if cfg.ParallelJobs > 1 {
		o.Logger.Warn("parallel_jobs is accepted but not honored; this engine compiles sequentially", "jobs", cfg.ParallelJobs)
	}

	// clean removes the build/output directory, never the persistent
	// cache: .eventchains/ metadata must survive so the next build can
	// still decide what's stale (spec.md §5's ordering, §9's "metadata
	// survives deletion" invariant).
	if cfg.Clean {
		if err := os.RemoveAll(cfg.OutputDir); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "clean build directory"), "path", cfg.OutputDir)
		}
	}

	cacheDir := filepath.Join(cfg.SourceDir, ".eventchains")

	cache, err := o.CacheStore.Load(cfg.SourceDir, cacheDir)
	if err != nil {
		return nil, err
	}

	graph, err := o.buildGraph(cfg)
	if err != nil {
		return nil, err
	}

	hasTranslationUnit := false
	for range graph.TranslationUnits() {
		hasTranslationUnit = true
		break
	}
	if !hasTranslationUnit {
		return nil, domain.WithKind(domain.ErrNoTranslationUnits, domain.ErrKindNoTranslationUnits)
	}
	entry, _ := graph.FindMain()

	order, err := graph.TopoSort()
	if err != nil {
		return nil, err
	}
	if cfg.Graph {
		o.printGraph(order, entry)
		return &domain.BuildReport{EntryPoint: entry, TotalFiles: graph.Len()}, nil
	}

	// Attached in the same order the original build driver uses:
	// statistics first (innermost, times only the handler itself), then
	// logging, then cache, then timing last (outermost, so verbose
	// timing output wraps everything below it including cache skips).
	// A cache hit returns from the cache layer without reaching statistics,
	// so the report's cached count comes from the cache's own hit counter.
	stats := &pipeline.Statistics{}
	chain := pipeline.Chain(
		o.taskHandler,
		pipeline.NewStatisticsMiddleware(stats),
		pipeline.NewLoggingMiddleware(!cfg.Verbose, o.Logger),
		pipeline.NewCacheMiddleware(cache, o.Hasher, o.Files),
		pipeline.NewTimingMiddleware(cfg.Verbose, o.Telemetry, o.logEvent),
	)
	if cfg.Verbose {
		defer func() {
			if err := o.Telemetry.Close(); err != nil {
				o.Logger.Warn("failed to close telemetry recorder", "error", err.Error())
			}
		}()
	}

	compilerPath := cfg.CompilerPath
	if compilerPath == "" {
		path, _, err := o.Compiler.Detect(string(cfg.Compiler))
		if err != nil {
			return nil, err
		}
		compilerPath = path
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "create output directory"), "path", cfg.OutputDir)
	}

	ectx := pipeline.NewContext()
	var objects []string
	for _, path := range order {
		node, _ := graph.Find(path)
		if node.IsHeader {
			continue
		}

		object := objectPath(cfg.OutputDir, path)
		event := &pipeline.Event{
			Kind:       pipeline.EventCompile,
			Name:       "Compile:" + path,
			ObjectPath: object,
			Compile: &domain.CompilePayload{
				Source: node,
				Config: cfg,
			},
		}
		compileCtx := context.WithValue(ctx, compilerPathKey{}, compilerPath)
		result := chain(compileCtx, event, ectx)
		if !result.Success {
			return nil, zerr.With(zerr.Wrap(result.Err, "compilation failed"), "source", path)
		}
		objects = append(objects, object)
	}

	// The cache is persisted as soon as every compile succeeds, before
	// linking even starts — a failed link should not cost the compile
	// work already paid for and recorded.
	if err := o.CacheStore.Save(cache); err != nil {
		o.Logger.Warn("failed to persist cache", "error", err.Error())
	}

	outputBinary := linkOutputName(cfg)
	linkEvent := &pipeline.Event{
		Kind: pipeline.EventLink,
		Name: "Link:FinalBinary",
		Link: &domain.LinkPayload{
			ObjectPaths: objects,
			Config:      cfg,
		},
		ObjectPath: outputBinary,
	}
	linkCtx := context.WithValue(ctx, compilerPathKey{}, compilerPath)
	linkResult := chain(linkCtx, linkEvent, ectx)
	if !linkResult.Success {
		return nil, zerr.With(zerr.Wrap(linkResult.Err, "link failed"), "output", outputBinary)
	}

	return &domain.BuildReport{
		EntryPoint:      entry,
		OutputBinary:    outputBinary,
		TotalFiles:      graph.Len(),
		CompiledFiles:   stats.CompiledFiles,
		CachedFiles:     int(cache.Hits),
		FailedFiles:     stats.FailedFiles,
		CompilationTime: stats.CompilationTime,
		TotalTime:       time.Since(start),
		CacheHitRate:    cache.HitRate(),
		CacheSizeBytes:  cache.SizeBytes(),
	}, nil
}

type compilerPathKey struct{}

// taskHandler is the innermost link in the chain, dispatching to the
// compiler driver for either a compile or a link event — the Go
// equivalent of the original's per-task execute function.
func (o *Orchestrator) taskHandler(ctx context.Context, event *pipeline.Event, _ *pipeline.Context) *pipeline.Result {
	switch event.Kind {
	case pipeline.EventCompile:
		return o.compileHandler(ctx, event)
	case pipeline.EventLink:
		return o.linkHandler(ctx, event)
	default:
		return &pipeline.Result{Success: true}
	}
}

func (o *Orchestrator) compileHandler(ctx context.Context, event *pipeline.Event) *pipeline.Result {
	compilerPath, _ := ctx.Value(compilerPathKey{}).(string)
	cfg := event.Compile.Config
	spec := ports.CompileSpec{
		CompilerPath: compilerPath,
		Source:       event.Compile.Source.Path.String(),
		Object:       event.ObjectPath,
		IncludePaths: cfg.IncludePaths,
		Flags:        append(cfg.DefaultCFlags(), cfg.CFlags...),
	}
	res, err := o.Compiler.Compile(ctx, spec)
	if err != nil {
		return &pipeline.Result{Success: false, Err: err}
	}
	return &pipeline.Result{Success: res.ExitCode == 0, ObjectPath: event.ObjectPath}
}

func (o *Orchestrator) linkHandler(ctx context.Context, event *pipeline.Event) *pipeline.Result {
	compilerPath, _ := ctx.Value(compilerPathKey{}).(string)
	cfg := event.Link.Config
	spec := ports.LinkSpec{
		CompilerPath: compilerPath,
		Objects:      event.Link.ObjectPaths,
		Output:       event.ObjectPath,
		LibraryPaths: cfg.LibraryPaths,
		Libraries:    cfg.Libraries,
		Flags:        cfg.LDFlags,
	}
	res, err := o.Compiler.Link(ctx, spec)
	if err != nil {
		return &pipeline.Result{Success: false, Err: err}
	}
	return &pipeline.Result{Success: res.ExitCode == 0}
}

func (o *Orchestrator) buildGraph(cfg *domain.BuildConfig) (*domain.DependencyGraph, error) {
	graph := domain.NewGraph()
	for _, dir := range cfg.IncludePaths {
		if err := graph.AddSearchPath(dir); err != nil {
			return nil, err
		}
	}

	files, err := o.Scanner.Scan(cfg.SourceDir, cfg.Excludes)
	if err != nil {
		return nil, err
	}

	for _, path := range files {
		node, created, err := graph.AddNode(path)
		if err != nil {
			return nil, err
		}
		if !created {
			continue
		}
		if !node.IsHeader {
			node.HasMain = o.EntryDetector.HasMain(path)
		}
	}

	for node := range graph.Nodes() {
		refs, err := o.IncludeParser.Parse(node.Path.String())
		if err != nil {
			return nil, err
		}
		var resolved []string
		for _, ref := range refs {
			if path, ok := o.Resolver.Resolve(ref, node.Path.String(), graph.SearchPaths()); ok {
				resolved = append(resolved, path)
			}
		}
		if err := graph.SetIncludes(node.Path.String(), resolved); err != nil {
			return nil, err
		}
	}

	return graph, nil
}

func (o *Orchestrator) logEvent(msg string) {
	o.Logger.Debug(msg)
}

func (o *Orchestrator) printGraph(order []string, entry string) {
	for _, path := range order {
		marker := ""
		if path == entry {
			marker = " (entry)"
		}
		o.Logger.Info(fmt.Sprintf("%s%s", path, marker))
	}
}

func objectPath(outputDir, sourcePath string) string {
	base := filepath.Base(sourcePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + ".o"
	return filepath.Join(outputDir, name)
}

func linkOutputName(cfg *domain.BuildConfig) string {
	name := cfg.OutputBinary
	if name == "" {
		name = "program"
	}
	return filepath.Join(cfg.OutputDir, name)
}
