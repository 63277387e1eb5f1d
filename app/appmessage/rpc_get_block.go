package appmessage

// GetBlockRequest is an appmessage corresponding to
// its respective RPC message
type GetBlockRequest struct {
	Hash string `json:"hash"`
}

// Command returns the protocol command string for the message
func (msg *GetBlockRequest) Command() MessageCommand {
	return CmdGetBlockRequest
}

// NewGetBlockRequest returns a instance of the message
func NewGetBlockRequest(hash string) *GetBlockRequest {
	return &GetBlockRequest{
		Hash: hash,
	}
}

// GetBlockResponse is an appmessage corresponding to
// its respective RPC message
type GetBlockResponse struct {
	Hash           string   `json:"hash"`
	Parents        []string `json:"parents"`
	Children       []string `json:"children"`
	Timestamp      int64    `json:"timestamp"`
	BlueScore      uint64   `json:"blue_score"`
	SelectedParent string   `json:"selected_parent,omitempty"`
	MergeSetBlues  []string `json:"merge_set_blues"`
	MergeSetReds   []string `json:"merge_set_reds"`
	IsChainBlock   bool     `json:"is_chain_block"`
}
