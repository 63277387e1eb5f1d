package appmessage

// NotifyBlockAddedRequest opens a block-added notification stream
type NotifyBlockAddedRequest struct{}

// Command returns the protocol command string for the message
func (msg *NotifyBlockAddedRequest) Command() MessageCommand {
	return CmdNotifyBlockAddedRequest
}

// BlockAddedNotification is sent to stream subscribers once per accepted block
type BlockAddedNotification struct {
	Hash             string   `json:"hash"`
	BlueScore        uint64   `json:"blue_score"`
	SelectedParent   string   `json:"selected_parent,omitempty"`
	Tips             []string `json:"tips"`
	VirtualBlueScore uint64   `json:"virtual_blue_score"`
}
