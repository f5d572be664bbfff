package ports

import "context"

// CompileSpec is everything CompilerDriver.Compile needs to produce one
// object file from one translation unit.
type CompileSpec struct {
	CompilerPath string
	Source       string
	Object       string
	IncludePaths []string
	Defines      []string
	Flags        []string
}

// LinkSpec is everything CompilerDriver.Link needs to produce the final
// executable from a set of object files.
type LinkSpec struct {
	CompilerPath string
	Objects      []string
	Output       string
	LibraryPaths []string
	Libraries    []string
	Flags        []string
}

// CommandResult is the outcome of running one compiler or linker
// invocation as a subprocess.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CompilerDriver locates a C/C++ toolchain and invokes it to compile and
// link, without the caller needing to know gcc's flags differ from
// clang's or cl.exe's.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type CompilerDriver interface {
	// Detect searches PATH for a compiler of the family named by want,
	// returning an error if none of that family's executables is found.
	// For CompilerAuto, "" or an unrecognized name it tries each known
	// family in a fixed preference order.
	Detect(want string) (path string, family string, err error)

	// Compile runs the compiler in compile-only mode against spec.
	Compile(ctx context.Context, spec CompileSpec) (CommandResult, error)

	// Link runs the compiler in link mode against spec.
	Link(ctx context.Context, spec LinkSpec) (CommandResult, error)
}
