package appmessage

// GetTipsRequest is an appmessage corresponding to
// its respective RPC message
type GetTipsRequest struct{}

// Command returns the protocol command string for the message
func (msg *GetTipsRequest) Command() MessageCommand {
	return CmdGetTipsRequest
}

// TipInfo is a tip hash together with its blue score
type TipInfo struct {
	Hash      string `json:"hash"`
	BlueScore uint64 `json:"blue_score"`
}

// GetTipsResponse is an appmessage corresponding to
// its respective RPC message
type GetTipsResponse struct {
	Tips []*TipInfo `json:"tips"`
}
