package hashes

import (
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
)

// FromString creates a DomainHash from its hex string representation
func FromString(hash string) (*externalapi.DomainHash, error) {
	return externalapi.NewDomainHashFromString(hash)
}

// FromStrings parses a slice of hex strings into hashes
func FromStrings(hashStrings []string) ([]*externalapi.DomainHash, error) {
	hashes := make([]*externalapi.DomainHash, len(hashStrings))
	for i, hashString := range hashStrings {
		hash, err := FromString(hashString)
		if err != nil {
			return nil, err
		}
		hashes[i] = hash
	}
	return hashes, nil
}

// ToStrings converts a slice of hashes into a slice of the corresponding strings
func ToStrings(hashes []*externalapi.DomainHash) []string {
	strings := make([]string, len(hashes))
	for i, hash := range hashes {
		strings[i] = hash.String()
	}
	return strings
}
