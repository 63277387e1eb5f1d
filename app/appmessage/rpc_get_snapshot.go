package appmessage

// Snapshot size limits
const (
	DefaultSnapshotSize = 100
	MaxSnapshotSize     = 10_000
)

// GetSnapshotRequest is an appmessage corresponding to
// its respective RPC message. A nil N means DefaultSnapshotSize.
type GetSnapshotRequest struct {
	N *int `json:"n,omitempty"`
}

// Command returns the protocol command string for the message
func (msg *GetSnapshotRequest) Command() MessageCommand {
	return CmdGetSnapshotRequest
}

// NewGetSnapshotRequest returns a instance of the message
func NewGetSnapshotRequest(n int) *GetSnapshotRequest {
	return &GetSnapshotRequest{
		N: &n,
	}
}

// SnapshotBlock is a single block in a GetSnapshotResponse
type SnapshotBlock struct {
	Hash           string   `json:"hash"`
	Parents        []string `json:"parents"`
	Timestamp      int64    `json:"timestamp"`
	BlueScore      uint64   `json:"blue_score"`
	SelectedParent string   `json:"selected_parent,omitempty"`
	InsertionIndex uint64   `json:"insertion_index"`
	IsBlue         bool     `json:"is_blue"`
	IsChainBlock   bool     `json:"is_chain_block"`
}

// GetSnapshotResponse is an appmessage corresponding to
// its respective RPC message
type GetSnapshotResponse struct {
	Blocks []*SnapshotBlock `json:"blocks"`
}
