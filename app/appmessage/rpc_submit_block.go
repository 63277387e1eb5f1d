package appmessage

// SubmitBlockRequest is an appmessage corresponding to
// its respective RPC message
type SubmitBlockRequest struct {
	Parents   []string `json:"parents"`
	Timestamp int64    `json:"timestamp"`
}

// Command returns the protocol command string for the message
func (msg *SubmitBlockRequest) Command() MessageCommand {
	return CmdSubmitBlockRequest
}

// NewSubmitBlockRequest returns a instance of the message
func NewSubmitBlockRequest(parents []string, timestamp int64) *SubmitBlockRequest {
	return &SubmitBlockRequest{
		Parents:   parents,
		Timestamp: timestamp,
	}
}

// SubmitBlockResponse is an appmessage corresponding to
// its respective RPC message
type SubmitBlockResponse struct {
	Hash           string `json:"hash"`
	BlueScore      uint64 `json:"blue_score"`
	SelectedParent string `json:"selected_parent,omitempty"`
	IsNew          bool   `json:"is_new"`
}

// SmartSubmitRequest is an appmessage corresponding to
// its respective RPC message. A nil Timestamp lets the server pick one.
type SmartSubmitRequest struct {
	ParentCount int    `json:"parent_count,omitempty"`
	Timestamp   *int64 `json:"timestamp,omitempty"`
}

// Command returns the protocol command string for the message
func (msg *SmartSubmitRequest) Command() MessageCommand {
	return CmdSmartSubmitRequest
}

// DefaultSmartSubmitParentCount is the parent count used when a SmartSubmitRequest omits it
const DefaultSmartSubmitParentCount = 3

// NewSmartSubmitRequest returns a instance of the message
func NewSmartSubmitRequest(parentCount int, timestamp *int64) *SmartSubmitRequest {
	return &SmartSubmitRequest{
		ParentCount: parentCount,
		Timestamp:   timestamp,
	}
}
