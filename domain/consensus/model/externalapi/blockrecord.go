package externalapi

// BlockRecord is a read-only copy of everything the DAG knows about a block
type BlockRecord struct {
	Hash           *DomainHash
	Header         BlockHeader
	Children       []*DomainHash
	GHOSTDAGData   *BlockGHOSTDAGData
	InsertionIndex uint64
}

// IsGenesis returns true if this record has no parents
func (br *BlockRecord) IsGenesis() bool {
	return len(br.Header.Parents()) == 0
}

// BlockRecordWithBlueness is a BlockRecord annotated with its standing in some view of the DAG
type BlockRecordWithBlueness struct {
	*BlockRecord
	IsBlue       bool
	IsChainBlock bool
}
