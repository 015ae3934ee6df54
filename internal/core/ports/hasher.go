package ports

// Hasher fingerprints generator inputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Digest returns a stable hex digest of the given parts.
	Digest(parts ...[]byte) string
}
