// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dagconfig

import (
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/blockheader"
	"github.com/argusdag/argusd/domain/consensus/utils/consensushashing"
)

// NewGenesisHeader returns the header of a genesis block created at the given timestamp
func NewGenesisHeader(timestamp int64) externalapi.BlockHeader {
	return blockheader.NewImmutableBlockHeader([]*externalapi.DomainHash{}, timestamp)
}

// genesisHeader defines the genesis block of the block DAG shared by the
// predefined networks.
var genesisHeader = NewGenesisHeader(0)

// genesisHash is the hash of genesisHeader
var genesisHash = consensushashing.HeaderHash(genesisHeader)
