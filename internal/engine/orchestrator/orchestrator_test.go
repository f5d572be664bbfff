package orchestrator_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/cache"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/fs"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/logger"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/engine/orchestrator"
)

// fakeCompiler stands in for a real gcc/clang subprocess: it "compiles" by
// recording the call and succeeding unless the source equals failOn,
// letting orchestrator tests run without a toolchain on PATH.
type fakeCompiler struct {
	compiles []string
	links    []string
	failOn   string
}

func (f *fakeCompiler) Detect(string) (string, string, error) {
	return "/usr/bin/cc", "gcc", nil
}

func (f *fakeCompiler) Compile(_ context.Context, spec ports.CompileSpec) (ports.CommandResult, error) {
	f.compiles = append(f.compiles, spec.Source)
	if f.failOn != "" && spec.Source == f.failOn {
		return ports.CommandResult{ExitCode: 1, Stderr: "fake failure"}, nil
	}
	if err := os.WriteFile(spec.Object, []byte("object"), 0o644); err != nil {
		return ports.CommandResult{}, err
	}
	return ports.CommandResult{ExitCode: 0}, nil
}

func (f *fakeCompiler) Link(_ context.Context, spec ports.LinkSpec) (ports.CommandResult, error) {
	f.links = append(f.links, spec.Output)
	if err := os.MkdirAll(filepath.Dir(spec.Output), 0o755); err != nil {
		return ports.CommandResult{}, err
	}
	if err := os.WriteFile(spec.Output, []byte("binary"), 0o755); err != nil {
		return ports.CommandResult{}, err
	}
	return ports.CommandResult{ExitCode: 0}, nil
}

// noopVertex and noopTelemetry satisfy the telemetry ports without pulling
// in progrock's rendering machinery for tests that only care about the
// compile/link/cache decisions.
type noopVertex struct{}

func (noopVertex) Stdout() io.Writer           { return io.Discard }
func (noopVertex) Stderr() io.Writer           { return io.Discard }
func (noopVertex) Log(ports.LogLevel, string)  {}
func (noopVertex) Cached()                     {}
func (noopVertex) Complete(error)              {}

type noopTelemetry struct{}

func (noopTelemetry) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}
func (noopTelemetry) Close() error { return nil }

func newOrchestrator(compiler ports.CompilerDriver) *orchestrator.Orchestrator {
	log := logger.New()
	log.SetOutput(io.Discard)
	return orchestrator.New(
		fs.NewWalker(),
		fs.NewIncludeScanner(),
		fs.NewIncludeResolver(),
		fs.NewMainDetector(),
		fs.NewHasher(),
		fs.NewChecker(),
		cache.NewStore(),
		compiler,
		log,
		noopTelemetry{},
	)
}

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// linearChainProject lays out a.h <- b.h <- m.c on disk, the scenario
// described by spec.md §8's "linear chain" end-to-end example.
func linearChainProject(t *testing.T) (srcDir, buildDir string) {
	t.Helper()
	root := t.TempDir()
	srcDir = filepath.Join(root, "proj")
	buildDir = filepath.Join(srcDir, "build")

	writeSource(t, filepath.Join(srcDir, "a.h"), "#define A 1\n")
	writeSource(t, filepath.Join(srcDir, "b.h"), "#include \"a.h\"\n#define B 2\n")
	writeSource(t, filepath.Join(srcDir, "m.c"), "#include \"b.h\"\nint main() { return 0; }\n")
	return srcDir, buildDir
}

func baseConfig(srcDir, buildDir string) *domain.BuildConfig {
	return &domain.BuildConfig{
		Compiler:     domain.CompilerAuto,
		SourceDir:    srcDir,
		OutputDir:    buildDir,
		OutputBinary: "program",
		Optimize:     true,
		ParallelJobs: 1,
	}
}

func TestOrchestrator_LinearChain_BuildsAndLinks(t *testing.T) {
	srcDir, buildDir := linearChainProject(t)
	compiler := &fakeCompiler{}
	o := newOrchestrator(compiler)

	report, err := o.Run(context.Background(), baseConfig(srcDir, buildDir))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.EntryPoint != filepath.Join(srcDir, "m.c") {
		t.Errorf("EntryPoint = %q, want m.c", report.EntryPoint)
	}
	if report.CompiledFiles != 1 {
		t.Errorf("CompiledFiles = %d, want 1 (only m.c is a translation unit)", report.CompiledFiles)
	}
	if len(compiler.compiles) != 1 || compiler.compiles[0] != filepath.Join(srcDir, "m.c") {
		t.Errorf("compiles = %v, want [m.c]", compiler.compiles)
	}
	if len(compiler.links) != 1 {
		t.Errorf("links = %v, want exactly one link", compiler.links)
	}
	if _, err := os.Stat(filepath.Join(buildDir, "program")); err != nil {
		t.Errorf("expected output binary to exist: %v", err)
	}
}

func TestOrchestrator_CircularInclude_FailsFast(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "proj")
	buildDir := filepath.Join(srcDir, "build")

	writeSource(t, filepath.Join(srcDir, "a.h"), "#include \"b.h\"\n")
	writeSource(t, filepath.Join(srcDir, "b.h"), "#include \"a.h\"\n")
	writeSource(t, filepath.Join(srcDir, "m.c"), "#include \"a.h\"\nint main() { return 0; }\n")

	o := newOrchestrator(&fakeCompiler{})
	_, err := o.Run(context.Background(), baseConfig(srcDir, buildDir))
	if err == nil {
		t.Fatal("Run() error = nil, want a circular dependency error")
	}
}

func TestOrchestrator_IdempotentRebuild_IsFullyCached(t *testing.T) {
	srcDir, buildDir := linearChainProject(t)
	compiler := &fakeCompiler{}
	o := newOrchestrator(compiler)
	cfg := baseConfig(srcDir, buildDir)

	if _, err := o.Run(context.Background(), cfg); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	firstCompiles := len(compiler.compiles)

	report, err := o.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(compiler.compiles) != firstCompiles {
		t.Errorf("second run recompiled %d files, want 0 new compiles (cache should hit)", len(compiler.compiles)-firstCompiles)
	}
	if report.CachedFiles != 1 {
		t.Errorf("CachedFiles = %d, want 1 on an idempotent rebuild", report.CachedFiles)
	}
}

func TestOrchestrator_SourceChange_InvalidatesCache(t *testing.T) {
	srcDir, buildDir := linearChainProject(t)
	compiler := &fakeCompiler{}
	o := newOrchestrator(compiler)
	cfg := baseConfig(srcDir, buildDir)

	if _, err := o.Run(context.Background(), cfg); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	writeSource(t, filepath.Join(srcDir, "m.c"), "#include \"b.h\"\nint main() { return 1; }\n")

	report, err := o.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if report.CompiledFiles != 1 {
		t.Errorf("CompiledFiles = %d, want 1 after changing m.c's content", report.CompiledFiles)
	}
}

func TestOrchestrator_ExcludedDirectory_NeverScanned(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "proj")
	buildDir := filepath.Join(srcDir, "build")

	writeSource(t, filepath.Join(srcDir, "m.c"), "int main() { return 0; }\n")
	writeSource(t, filepath.Join(srcDir, "vendor", "extra.c"), "int unused() { return 0; }\n")

	compiler := &fakeCompiler{}
	o := newOrchestrator(compiler)
	report, err := o.Run(context.Background(), baseConfig(srcDir, buildDir))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1 (vendor/ is excluded by default)", report.TotalFiles)
	}
}

func TestOrchestrator_NoTranslationUnits_Fails(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "proj")
	buildDir := filepath.Join(srcDir, "build")
	writeSource(t, filepath.Join(srcDir, "only.h"), "#define X 1\n")

	o := newOrchestrator(&fakeCompiler{})
	_, err := o.Run(context.Background(), baseConfig(srcDir, buildDir))
	if err == nil {
		t.Fatal("Run() error = nil, want ErrNoTranslationUnits")
	}
}

func TestOrchestrator_GraphFlag_SkipsCompilation(t *testing.T) {
	srcDir, buildDir := linearChainProject(t)
	compiler := &fakeCompiler{}
	o := newOrchestrator(compiler)
	cfg := baseConfig(srcDir, buildDir)
	cfg.Graph = true

	report, err := o.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(compiler.compiles) != 0 {
		t.Errorf("compiles = %v, want none when --graph is set", compiler.compiles)
	}
	if report.OutputBinary != "" {
		t.Errorf("OutputBinary = %q, want empty for a --graph-only run", report.OutputBinary)
	}
}

func TestOrchestrator_BuildDirDeleted_CacheMetadataSurvives(t *testing.T) {
	srcDir, buildDir := linearChainProject(t)
	compiler := &fakeCompiler{}
	o := newOrchestrator(compiler)
	cfg := baseConfig(srcDir, buildDir)

	if _, err := o.Run(context.Background(), cfg); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	if err := os.RemoveAll(buildDir); err != nil {
		t.Fatal(err)
	}

	// The object file is gone even though the cache still thinks m.c is
	// valid; the cache middleware must notice the missing object and
	// recompile rather than link a nonexistent .o (spec.md §4.8).
	report, err := o.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if report.CompiledFiles != 1 {
		t.Errorf("CompiledFiles = %d, want 1: a deleted build dir must force recompilation", report.CompiledFiles)
	}
	if _, err := os.Stat(filepath.Join(buildDir, "program")); err != nil {
		t.Errorf("expected output binary to be relinked: %v", err)
	}
}
