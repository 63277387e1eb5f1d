package rpchandlers

import (
	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/app/rpc/rpccontext"
)

// HandleGetTips handles the respectively named RPC command
func HandleGetTips(context *rpccontext.Context) (*appmessage.GetTipsResponse, error) {
	tips, err := context.Domain.Consensus().TipsWithBlueScores()
	if err != nil {
		return nil, err
	}
	return appmessage.DomainTipsToGetTipsResponse(tips), nil
}
