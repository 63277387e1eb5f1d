package appmessage

// MessageCommand is the JSON-RPC method name of a request
type MessageCommand string

// Commands served by the RPC server
const (
	CmdSubmitBlockRequest    MessageCommand = "submit_block"
	CmdSmartSubmitRequest    MessageCommand = "smart_submit"
	CmdGetBlockRequest       MessageCommand = "get_block"
	CmdGetTipsRequest        MessageCommand = "get_tips"
	CmdGetOrderRequest       MessageCommand = "get_order"
	CmdGetTipOrderRequest    MessageCommand = "get_tip_order"
	CmdLinearizeRangeRequest MessageCommand = "linearize_range"
	CmdGetSnapshotRequest    MessageCommand = "get_snapshot"
	CmdGetHealthRequest      MessageCommand = "get_health"
)

// CmdNotifyBlockAddedRequest is the full gRPC method name of the block-added stream
const CmdNotifyBlockAddedRequest MessageCommand = "/argus.StreamService/NotifyBlockAdded"

// RPCCommands lists every command the JSON-RPC server serves
var RPCCommands = []MessageCommand{
	CmdSubmitBlockRequest,
	CmdSmartSubmitRequest,
	CmdGetBlockRequest,
	CmdGetTipsRequest,
	CmdGetOrderRequest,
	CmdGetTipOrderRequest,
	CmdLinearizeRangeRequest,
	CmdGetSnapshotRequest,
	CmdGetHealthRequest,
}

func (cmd MessageCommand) String() string {
	return string(cmd)
}

// Message is a request that can be sent over the RPC channel
type Message interface {
	Command() MessageCommand
}
