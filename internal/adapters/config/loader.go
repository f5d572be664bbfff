// Package config loads the optional project defaults file. It is
// deliberately not a build or rule language: it only pre-fills build
// options (compiler, flags, paths, libraries, excludes, output names),
// and any of them the CLI also sets is overridden by the CLI.
package config

import (
	"os"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileLoader)(nil)

// defaultsFile is a direct, flat mirror of the BuildConfig fields the
// defaults file can set, so there is never a translation step a reader
// has to hold in their head between the YAML and the config it fills.
type defaultsFile struct {
	Compiler     string   `yaml:"compiler"`
	CompilerPath string   `yaml:"compiler_path"`
	CFlags       []string `yaml:"cflags"`
	LDFlags      []string `yaml:"ldflags"`
	IncludePaths []string `yaml:"include_paths"`
	LibraryPaths []string `yaml:"library_paths"`
	Libraries    []string `yaml:"libraries"`
	Excludes     []string `yaml:"excludes"`
	OutputDir    string   `yaml:"output_dir"`
	OutputBinary string   `yaml:"output_binary"`
}

// FileLoader implements ports.ConfigLoader by reading a YAML defaults
// file, typically named .ecbuild.yaml.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load implements ports.ConfigLoader. A missing file is not an error: it
// just means every BuildConfig field keeps its zero value, and the CLI's
// own defaults apply instead.
func (l *FileLoader) Load(path string) (domain.BuildConfig, error) {
	var cfg domain.BuildConfig

	data, err := os.ReadFile(path) //nolint:gosec // path is the fixed project defaults filename
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, zerr.With(zerr.Wrap(err, "read project defaults file"), "path", path)
	}

	var raw defaultsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, zerr.With(zerr.Wrap(err, "parse project defaults file"), "path", path)
	}

	if raw.Compiler != "" {
		cfg.Compiler = domain.CompilerKind(raw.Compiler)
	}
	cfg.CompilerPath = raw.CompilerPath
	cfg.CFlags = raw.CFlags
	cfg.LDFlags = raw.LDFlags
	cfg.IncludePaths = raw.IncludePaths
	cfg.LibraryPaths = raw.LibraryPaths
	cfg.Libraries = raw.Libraries
	cfg.Excludes = raw.Excludes
	cfg.OutputDir = raw.OutputDir
	cfg.OutputBinary = raw.OutputBinary
	return cfg, nil
}
