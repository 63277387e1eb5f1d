package blockheader

import (
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/hashes"
)

type blockHeader struct {
	parents   []*externalapi.DomainHash
	timestamp int64
}

// NewImmutableBlockHeader returns a new immutable header.
// The given parents are deduplicated and sorted, so two headers declaring
// the same parent set in a different order are identical.
func NewImmutableBlockHeader(parents []*externalapi.DomainHash, timestamp int64) externalapi.BlockHeader {
	return &blockHeader{
		parents:   hashes.Dedup(parents),
		timestamp: timestamp,
	}
}

func (bh *blockHeader) Parents() []*externalapi.DomainHash {
	return externalapi.CloneHashes(bh.parents)
}

func (bh *blockHeader) Timestamp() int64 {
	return bh.timestamp
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal accordingly.
var _ = blockHeader{
	parents:   []*externalapi.DomainHash{},
	timestamp: 0,
}

func (bh *blockHeader) Equal(other externalapi.BlockHeader) bool {
	if bh == nil || other == nil {
		return bh == nil && other == nil
	}
	if bh.timestamp != other.Timestamp() {
		return false
	}
	return externalapi.HashesEqual(bh.parents, other.Parents())
}
