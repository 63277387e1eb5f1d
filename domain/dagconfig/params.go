// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dagconfig

import (
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/consensushashing"
)

// DefaultK is the GHOSTDAG K parameter used when none is configured
const DefaultK externalapi.KType = 3

// Params defines a network by its parameters. These parameters may be
// used by applications to differentiate networks as well as addresses
// and keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// K defines the K parameter for GHOSTDAG consensus algorithm.
	// See ghostdag.go for further details.
	K externalapi.KType

	// GenesisHeader defines the first block of the DAG.
	GenesisHeader externalapi.BlockHeader

	// GenesisHash is the hash of GenesisHeader.
	GenesisHash *externalapi.DomainHash
}

// WithK returns a copy of the params classifying with the given k
func (p Params) WithK(k externalapi.KType) *Params {
	p.K = k
	return &p
}

// WithGenesisTimestamp returns a copy of the params with a genesis created at the given timestamp
func (p Params) WithGenesisTimestamp(timestamp int64) *Params {
	p.GenesisHeader = NewGenesisHeader(timestamp)
	p.GenesisHash = consensushashing.HeaderHash(p.GenesisHeader)
	return &p
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:          "argus-mainnet",
	K:             DefaultK,
	GenesisHeader: genesisHeader,
	GenesisHash:   genesisHash,
}

// SimnetParams defines the network parameters for the simulation test network.
// It classifies with k=0, so every block that isn't on the selected chain is red.
var SimnetParams = Params{
	Name:          "argus-simnet",
	K:             0,
	GenesisHeader: genesisHeader,
	GenesisHash:   genesisHash,
}

// DevnetParams defines the network parameters for the development network.
var DevnetParams = Params{
	Name:          "argus-devnet",
	K:             18,
	GenesisHeader: genesisHeader,
	GenesisHash:   genesisHash,
}
