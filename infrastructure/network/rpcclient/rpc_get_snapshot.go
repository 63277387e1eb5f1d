package rpcclient

import "github.com/argusdag/argusd/app/appmessage"

// GetSnapshot sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) GetSnapshot(n int) (*appmessage.GetSnapshotResponse, error) {
	response := &appmessage.GetSnapshotResponse{}
	err := c.call(appmessage.CmdGetSnapshotRequest, appmessage.NewGetSnapshotRequest(n), response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetHealth sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) GetHealth() (*appmessage.GetHealthResponse, error) {
	response := &appmessage.GetHealthResponse{}
	err := c.call(appmessage.CmdGetHealthRequest, nil, response)
	if err != nil {
		return nil, err
	}
	return response, nil
}
