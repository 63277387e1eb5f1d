package rpcclient

import "github.com/argusdag/argusd/app/appmessage"

// GetBlock sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) GetBlock(hash string) (*appmessage.GetBlockResponse, error) {
	response := &appmessage.GetBlockResponse{}
	err := c.call(appmessage.CmdGetBlockRequest, appmessage.NewGetBlockRequest(hash), response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetTips sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) GetTips() (*appmessage.GetTipsResponse, error) {
	response := &appmessage.GetTipsResponse{}
	err := c.call(appmessage.CmdGetTipsRequest, nil, response)
	if err != nil {
		return nil, err
	}
	return response, nil
}
