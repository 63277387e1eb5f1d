package hashes

import (
	"sort"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
)

// Less returns true iff hash a is less than hash b
func Less(a, b *externalapi.DomainHash) bool {
	return a.Less(b)
}

// Sort sorts the given hashes in ascending order, in place
func Sort(hashes []*externalapi.DomainHash) {
	sort.Slice(hashes, func(i, j int) bool {
		return Less(hashes[i], hashes[j])
	})
}

// Dedup returns a sorted copy of the given hashes with duplicates removed
func Dedup(hashes []*externalapi.DomainHash) []*externalapi.DomainHash {
	sorted := externalapi.CloneHashes(hashes)
	Sort(sorted)

	deduped := sorted[:0]
	for i, hash := range sorted {
		if i > 0 && hash.Equal(sorted[i-1]) {
			continue
		}
		deduped = append(deduped, hash)
	}
	return deduped
}
