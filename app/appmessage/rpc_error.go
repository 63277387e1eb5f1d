package appmessage

import "github.com/pkg/errors"

// JSON-RPC error codes for consensus failures
const (
	RPCErrorCodeUnknownParent = -32001
	RPCErrorCodeNotFound      = -32002
	RPCErrorCodeDisconnected  = -32003
	RPCErrorCodeIntegrity     = -32004
	RPCErrorCodeRuleError     = -32005
)

// ErrInvalidParams marks request parameters the server could not make sense of.
// Test for it with errors.Is.
var ErrInvalidParams = errors.New("invalid params")

// UnknownParentErrorData is the data attached to RPCErrorCodeUnknownParent errors
type UnknownParentErrorData struct {
	MissingParents []string `json:"missing_parents"`
}
