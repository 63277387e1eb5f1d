package rpchandlers

import (
	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/app/rpc/rpccontext"
	"github.com/argusdag/argusd/version"
)

// HandleGetHealth handles the respectively named RPC command
func HandleGetHealth(context *rpccontext.Context) (*appmessage.GetHealthResponse, error) {
	health := context.Domain.Consensus().Health()
	response := appmessage.DomainHealthToGetHealthResponse(health, int64(context.Uptime().Seconds()))
	response.Version = version.Version()
	return response, nil
}
