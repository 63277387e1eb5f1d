package externalapi

// BlockHeader represents an immutable block header.
// Parents are a set: implementations keep them deduplicated and sorted.
type BlockHeader interface {
	Parents() []*DomainHash
	Timestamp() int64
	Equal(other BlockHeader) bool
}
