package rpcclient

import "github.com/argusdag/argusd/app/appmessage"

// GetOrder sends an RPC request respective to the function's name and returns the RPC server's response.
// An empty from starts the order at genesis.
func (c *RPCClient) GetOrder(from string, to string) (*appmessage.OrderResponse, error) {
	response := &appmessage.OrderResponse{}
	err := c.call(appmessage.CmdGetOrderRequest, appmessage.NewGetOrderRequest(from, to), response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetTipOrder sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) GetTipOrder() (*appmessage.GetTipOrderResponse, error) {
	response := &appmessage.GetTipOrderResponse{}
	err := c.call(appmessage.CmdGetTipOrderRequest, nil, response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// LinearizeRange sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) LinearizeRange(fromScore uint64, toScore uint64) (*appmessage.OrderResponse, error) {
	response := &appmessage.OrderResponse{}
	err := c.call(appmessage.CmdLinearizeRangeRequest, appmessage.NewLinearizeRangeRequest(fromScore, toScore), response)
	if err != nil {
		return nil, err
	}
	return response, nil
}
