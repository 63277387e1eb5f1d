package consensushashing

import (
	"testing"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/blockheader"
)

func TestHeaderHash(t *testing.T) {
	a := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{1})
	b := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{2})

	tests := []struct {
		name      string
		first     externalapi.BlockHeader
		second    externalapi.BlockHeader
		wantEqual bool
	}{
		{
			name:      "identical headers",
			first:     blockheader.NewImmutableBlockHeader([]*externalapi.DomainHash{a, b}, 1),
			second:    blockheader.NewImmutableBlockHeader([]*externalapi.DomainHash{a, b}, 1),
			wantEqual: true,
		},
		{
			name:      "parent order does not matter",
			first:     blockheader.NewImmutableBlockHeader([]*externalapi.DomainHash{a, b}, 1),
			second:    blockheader.NewImmutableBlockHeader([]*externalapi.DomainHash{b, a, b}, 1),
			wantEqual: true,
		},
		{
			name:      "different timestamps",
			first:     blockheader.NewImmutableBlockHeader([]*externalapi.DomainHash{a}, 1),
			second:    blockheader.NewImmutableBlockHeader([]*externalapi.DomainHash{a}, 2),
			wantEqual: false,
		},
		{
			name:      "different parents",
			first:     blockheader.NewImmutableBlockHeader([]*externalapi.DomainHash{a}, 1),
			second:    blockheader.NewImmutableBlockHeader([]*externalapi.DomainHash{b}, 1),
			wantEqual: false,
		},
		{
			name:      "parent count is part of the encoding",
			first:     blockheader.NewImmutableBlockHeader(nil, 0),
			second:    blockheader.NewImmutableBlockHeader([]*externalapi.DomainHash{}, 0),
			wantEqual: true,
		},
	}

	for _, test := range tests {
		firstHash := HeaderHash(test.first)
		secondHash := HeaderHash(test.second)
		if firstHash.Equal(secondHash) != test.wantEqual {
			t.Fatalf("%s: unexpected hash equality. Want: %t, got hashes %s and %s",
				test.name, test.wantEqual, firstHash, secondHash)
		}
	}
}
