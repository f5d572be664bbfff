package ports

// EntryDetector decides whether a translation unit contains a program
// entry point.
//
//go:generate go run go.uber.org/mock/mockgen -source=entrypoint.go -destination=mocks/mock_entrypoint.go -package=mocks
type EntryDetector interface {
	// HasMain reports whether path textually contains a main() definition.
	HasMain(path string) bool
}
