package externalapi

// VirtualInfo represents information about the virtual block needed by external components
type VirtualInfo struct {
	ParentHashes   []*DomainHash
	SelectedParent *DomainHash
	BlueScore      uint64
}

// TipWithBlueScore is a tip of the DAG together with its blue score
type TipWithBlueScore struct {
	Hash      *DomainHash
	BlueScore uint64
}

// Health summarizes the state of a consensus instance
type Health struct {
	K                KType
	BlockCount       uint64
	TipCount         int
	VirtualBlueScore uint64
	IntegrityFault   error
}
