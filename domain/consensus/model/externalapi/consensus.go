package externalapi

// Consensus maintains the current core state of the node
type Consensus interface {
	Init(genesisHeader BlockHeader) (*DomainHash, error)
	ValidateAndInsertBlock(header BlockHeader) (*BlockInsertionResult, error)
	BuildBlockHeader(parentCount int, timestamp int64) (BlockHeader, error)

	GetBlock(blockHash *DomainHash) (*BlockRecord, error)
	Tips() ([]*DomainHash, error)
	TipsWithBlueScores() ([]*TipWithBlueScore, error)
	GetVirtualInfo() (*VirtualInfo, error)
	IsBlue(blockHash *DomainHash, viewHash *DomainHash) (bool, error)
	BlueSet(viewHash *DomainHash) ([]*DomainHash, error)
	IsChainBlock(blockHash *DomainHash) (bool, error)

	Linearize(fromHash *DomainHash, toHash *DomainHash) (BlockIterator, error)
	LinearizeToSlice(fromHash *DomainHash, toHash *DomainHash) ([]*DomainHash, error)
	VirtualOrder() ([]*DomainHash, error)
	OrderByBlueScoreRange(lowBlueScore uint64, highBlueScore uint64) ([]*DomainHash, error)

	Snapshot(maxBlocks int) ([]*BlockRecordWithBlueness, error)
	Health() *Health
}
