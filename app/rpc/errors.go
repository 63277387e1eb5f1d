package rpc

import (
	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/argusdag/argusd/domain/consensus/utils/hashes"
	"github.com/creachadair/jrpc2"
	"github.com/pkg/errors"
)

// toRPCError maps err to the JSON-RPC error reported to clients
func toRPCError(err error) error {
	if err == nil {
		return nil
	}

	var missingParents ruleerrors.ErrMissingParents
	switch {
	case errors.Is(err, appmessage.ErrInvalidParams):
		return jrpc2.Errorf(jrpc2.InvalidParams, "%s", err)
	case errors.Is(err, ruleerrors.ErrIntegrityFault), errors.Is(err, ruleerrors.ErrDuplicateBlock):
		return jrpc2.Errorf(appmessage.RPCErrorCodeIntegrity, "%s", err)
	case errors.As(err, &missingParents):
		return jrpc2.Errorf(appmessage.RPCErrorCodeUnknownParent, "%s", err).
			WithData(&appmessage.UnknownParentErrorData{
				MissingParents: hashes.ToStrings(missingParents.MissingParentHashes),
			})
	case errors.Is(err, ruleerrors.ErrUnknownParent):
		return jrpc2.Errorf(appmessage.RPCErrorCodeUnknownParent, "%s", err)
	case errors.Is(err, ruleerrors.ErrNotFound), errors.Is(err, ruleerrors.ErrUnknownBlock):
		return jrpc2.Errorf(appmessage.RPCErrorCodeNotFound, "%s", err)
	case errors.Is(err, ruleerrors.ErrDisconnected):
		return jrpc2.Errorf(appmessage.RPCErrorCodeDisconnected, "%s", err)
	case ruleerrors.IsRuleError(err):
		return jrpc2.Errorf(appmessage.RPCErrorCodeRuleError, "%s", err)
	}

	log.Errorf("Unexpected error serving a JSON-RPC request: %+v", err)
	return jrpc2.Errorf(jrpc2.InternalError, "%s", err)
}
