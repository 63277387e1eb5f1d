package appmessage

// Health statuses
const (
	HealthStatusOK            = "ok"
	HealthStatusUninitialized = "uninitialized"
	HealthStatusFaulted       = "faulted"
)

// GetHealthRequest is an appmessage corresponding to
// its respective RPC message
type GetHealthRequest struct{}

// Command returns the protocol command string for the message
func (msg *GetHealthRequest) Command() MessageCommand {
	return CmdGetHealthRequest
}

// GetHealthResponse is an appmessage corresponding to
// its respective RPC message
type GetHealthResponse struct {
	Status           string `json:"status"`
	K                uint8  `json:"k"`
	BlockCount       uint64 `json:"block_count"`
	TipCount         int    `json:"tip_count"`
	VirtualBlueScore uint64 `json:"virtual_blue_score"`
	UptimeSeconds    int64  `json:"uptime_seconds"`
	IntegrityFault   string `json:"integrity_fault,omitempty"`
	Version          string `json:"version"`
}
