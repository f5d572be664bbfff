package ports

// FileChecker answers simple existence questions the cache middleware and
// orchestrator need without pulling in a full filesystem adapter.
//
//go:generate go run go.uber.org/mock/mockgen -source=fsutil.go -destination=mocks/mock_fsutil.go -package=mocks
type FileChecker interface {
	Exists(path string) bool
}
