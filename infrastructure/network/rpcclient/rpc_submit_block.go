package rpcclient

import "github.com/argusdag/argusd/app/appmessage"

// SubmitBlock sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) SubmitBlock(parents []string, timestamp int64) (*appmessage.SubmitBlockResponse, error) {
	response := &appmessage.SubmitBlockResponse{}
	err := c.call(appmessage.CmdSubmitBlockRequest, appmessage.NewSubmitBlockRequest(parents, timestamp), response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// SmartSubmit sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) SmartSubmit(parentCount int, timestamp *int64) (*appmessage.SubmitBlockResponse, error) {
	response := &appmessage.SubmitBlockResponse{}
	err := c.call(appmessage.CmdSmartSubmitRequest, appmessage.NewSmartSubmitRequest(parentCount, timestamp), response)
	if err != nil {
		return nil, err
	}
	return response, nil
}
