package appmessage

// GetOrderRequest is an appmessage corresponding to
// its respective RPC message.
// From is exclusive and may be empty to start at genesis.
type GetOrderRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to"`
}

// Command returns the protocol command string for the message
func (msg *GetOrderRequest) Command() MessageCommand {
	return CmdGetOrderRequest
}

// NewGetOrderRequest returns a instance of the message
func NewGetOrderRequest(from string, to string) *GetOrderRequest {
	return &GetOrderRequest{
		From: from,
		To:   to,
	}
}

// OrderResponse is the response of get_order and linearize_range
type OrderResponse struct {
	Order []string `json:"order"`
}

// GetTipOrderRequest is an appmessage corresponding to
// its respective RPC message
type GetTipOrderRequest struct{}

// Command returns the protocol command string for the message
func (msg *GetTipOrderRequest) Command() MessageCommand {
	return CmdGetTipOrderRequest
}

// GetTipOrderResponse is an appmessage corresponding to
// its respective RPC message
type GetTipOrderResponse struct {
	Order            []string `json:"order"`
	VirtualBlueScore uint64   `json:"virtual_blue_score"`
}

// LinearizeRangeRequest is an appmessage corresponding to
// its respective RPC message. Both ends are inclusive.
type LinearizeRangeRequest struct {
	FromScore uint64 `json:"from_score"`
	ToScore   uint64 `json:"to_score"`
}

// Command returns the protocol command string for the message
func (msg *LinearizeRangeRequest) Command() MessageCommand {
	return CmdLinearizeRangeRequest
}

// NewLinearizeRangeRequest returns a instance of the message
func NewLinearizeRangeRequest(fromScore uint64, toScore uint64) *LinearizeRangeRequest {
	return &LinearizeRangeRequest{
		FromScore: fromScore,
		ToScore:   toScore,
	}
}
