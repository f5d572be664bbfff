// Package compiler locates a C/C++ toolchain and drives it as a
// subprocess to compile and link.
package compiler

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CompilerDriver = (*Driver)(nil)

// families lists known compiler executables in preference order, tried in
// turn when the caller asks for CompilerAuto.
var families = []struct {
	name string
	exes []string
}{
	{string(domain.CompilerGCC), []string{"gcc", "cc"}},
	{string(domain.CompilerClang), []string{"clang"}},
	{string(domain.CompilerMSVC), []string{"cl"}},
}

// maxCapturedOutput bounds how much of a subprocess's stdout/stderr is
// retained for reporting; build logs can be very long, so only the first
// maxCapturedOutput bytes of each stream are kept.
const maxCapturedOutput = 64 * 1024

// Driver implements ports.CompilerDriver over os/exec.
type Driver struct{}

// NewDriver creates a new Driver.
func NewDriver() *Driver {
	return &Driver{}
}

// Detect implements ports.CompilerDriver.
func (d *Driver) Detect(want string) (string, string, error) {
	if want != "" && want != string(domain.CompilerAuto) {
		for _, fam := range families {
			if fam.name != want {
				continue
			}
			for _, exe := range fam.exes {
				if path, err := exec.LookPath(exe); err == nil {
					return path, fam.name, nil
				}
			}
			return "", "", domain.WithKind(zerr.With(domain.ErrCompilerNotFound, "family", want), domain.ErrKindCompilerNotFound)
		}
	}

	for _, fam := range families {
		for _, exe := range fam.exes {
			if path, err := exec.LookPath(exe); err == nil {
				return path, fam.name, nil
			}
		}
	}
	return "", "", domain.WithKind(domain.ErrCompilerNotFound, domain.ErrKindCompilerNotFound)
}

// Compile implements ports.CompilerDriver.
func (d *Driver) Compile(ctx context.Context, spec ports.CompileSpec) (ports.CommandResult, error) {
	args := []string{"-c", spec.Source, "-o", spec.Object}
	for _, inc := range spec.IncludePaths {
		args = append(args, "-I"+inc)
	}
	for _, def := range spec.Defines {
		args = append(args, "-D"+def)
	}
	args = append(args, spec.Flags...)
	return run(ctx, spec.CompilerPath, args)
}

// Link implements ports.CompilerDriver.
func (d *Driver) Link(ctx context.Context, spec ports.LinkSpec) (ports.CommandResult, error) {
	args := append([]string{}, spec.Objects...)
	args = append(args, "-o", spec.Output)
	for _, dir := range spec.LibraryPaths {
		args = append(args, "-L"+dir)
	}
	for _, lib := range spec.Libraries {
		args = append(args, "-l"+lib)
	}
	args = append(args, spec.Flags...)
	return run(ctx, spec.CompilerPath, args)
}

func run(ctx context.Context, path string, args []string) (ports.CommandResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...) //nolint:gosec // path resolved by Detect, args built internally
	cmd.Stdout = &boundedWriter{buf: &stdout, limit: maxCapturedOutput}
	cmd.Stderr = &boundedWriter{buf: &stderr, limit: maxCapturedOutput}

	err := cmd.Run()
	result := ports.CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		return result, zerr.With(zerr.Wrap(err, "compiler exited non-zero"), "exit_code", result.ExitCode)
	}
	result.ExitCode = -1
	return result, zerr.Wrap(err, "failed to run compiler")
}

// boundedWriter caps how many bytes it retains, discarding the remainder
// silently — subprocess output streams are for reporting, not correctness.
type boundedWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *boundedWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining > 0 {
		if remaining > len(p) {
			remaining = len(p)
		}
		w.buf.Write(p[:remaining])
	}
	return len(p), nil
}
