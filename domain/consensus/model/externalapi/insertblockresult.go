package externalapi

// BlockInsertionResult is auxiliary data returned from ValidateAndInsertBlock
type BlockInsertionResult struct {
	Record *BlockRecord

	// IsNew is false when the header was already in the DAG
	IsNew       bool
	VirtualInfo *VirtualInfo
}
