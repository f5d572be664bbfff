// Package app is the composition root: it resolves the orchestrator
// through Graft and exposes the one operation the CLI needs.
package app

import (
	"context"
	"path/filepath"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// App is the top-level entry point the CLI drives.
type App struct {
	configLoader ports.ConfigLoader
	orchestrator *orchestrator.Orchestrator
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, orch *orchestrator.Orchestrator) *App {
	return &App{
		configLoader: loader,
		orchestrator: orch,
	}
}

// Run loads project defaults (if a defaults file is present), merges cfg
// over them, and runs one complete build.
func (a *App) Run(ctx context.Context, cfg *domain.BuildConfig, defaultsPath string) (*domain.BuildReport, error) {
	defaults, err := a.configLoader.Load(defaultsPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load project defaults")
	}
	mergeDefaults(cfg, &defaults)
	applyBuiltinDefaults(cfg)

	report, err := a.orchestrator.Run(ctx, cfg)
	if err != nil {
		return nil, zerr.Wrap(err, "build failed")
	}
	return report, nil
}

// mergeDefaults fills any zero-valued field of cfg from defaults. cfg is
// assumed to already hold explicit CLI flag values; defaults only cover
// the gaps flags never touched.
func mergeDefaults(cfg, defaults *domain.BuildConfig) {
	if cfg.Compiler == "" {
		cfg.Compiler = defaults.Compiler
	}
	if cfg.CompilerPath == "" {
		cfg.CompilerPath = defaults.CompilerPath
	}
	if len(cfg.CFlags) == 0 {
		cfg.CFlags = defaults.CFlags
	}
	if len(cfg.LDFlags) == 0 {
		cfg.LDFlags = defaults.LDFlags
	}
	if len(cfg.IncludePaths) == 0 {
		cfg.IncludePaths = defaults.IncludePaths
	}
	if len(cfg.LibraryPaths) == 0 {
		cfg.LibraryPaths = defaults.LibraryPaths
	}
	if len(cfg.Libraries) == 0 {
		cfg.Libraries = defaults.Libraries
	}
	if len(cfg.Excludes) == 0 {
		cfg.Excludes = defaults.Excludes
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaults.OutputDir
	}
	if cfg.OutputBinary == "" {
		cfg.OutputBinary = defaults.OutputBinary
	}
}

// applyBuiltinDefaults fills whatever neither a CLI flag nor the project
// defaults file set, with the hardcoded defaults spec.md §6 names
// (build-dir "build", output "program"). This runs last, after
// mergeDefaults, so a value from .ecbuild.yaml always wins over these.
func applyBuiltinDefaults(cfg *domain.BuildConfig) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(cfg.SourceDir, "build")
	}
	if cfg.OutputBinary == "" {
		cfg.OutputBinary = "program"
	}
}
