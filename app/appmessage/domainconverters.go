package appmessage

import (
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/hashes"
)

func hashOrEmpty(hash *externalapi.DomainHash) string {
	if hash == nil {
		return ""
	}
	return hash.String()
}

// DomainBlockRecordToGetBlockResponse converts an externalapi.BlockRecord to a GetBlockResponse
func DomainBlockRecordToGetBlockResponse(record *externalapi.BlockRecord, isChainBlock bool) *GetBlockResponse {
	return &GetBlockResponse{
		Hash:           record.Hash.String(),
		Parents:        hashes.ToStrings(record.Header.Parents()),
		Children:       hashes.ToStrings(record.Children),
		Timestamp:      record.Header.Timestamp(),
		BlueScore:      record.GHOSTDAGData.BlueScore(),
		SelectedParent: hashOrEmpty(record.GHOSTDAGData.SelectedParent()),
		MergeSetBlues:  hashes.ToStrings(record.GHOSTDAGData.MergeSetBlues()),
		MergeSetReds:   hashes.ToStrings(record.GHOSTDAGData.MergeSetReds()),
		IsChainBlock:   isChainBlock,
	}
}

// BlockInsertionResultToSubmitBlockResponse converts an externalapi.BlockInsertionResult to a SubmitBlockResponse
func BlockInsertionResultToSubmitBlockResponse(result *externalapi.BlockInsertionResult) *SubmitBlockResponse {
	return &SubmitBlockResponse{
		Hash:           result.Record.Hash.String(),
		BlueScore:      result.Record.GHOSTDAGData.BlueScore(),
		SelectedParent: hashOrEmpty(result.Record.GHOSTDAGData.SelectedParent()),
		IsNew:          result.IsNew,
	}
}

// DomainTipsToGetTipsResponse converts tips with their blue scores to a GetTipsResponse
func DomainTipsToGetTipsResponse(tips []*externalapi.TipWithBlueScore) *GetTipsResponse {
	tipInfos := make([]*TipInfo, len(tips))
	for i, tip := range tips {
		tipInfos[i] = &TipInfo{
			Hash:      tip.Hash.String(),
			BlueScore: tip.BlueScore,
		}
	}
	return &GetTipsResponse{Tips: tipInfos}
}

// DomainBlockRecordWithBluenessToSnapshotBlock converts an externalapi.BlockRecordWithBlueness to a SnapshotBlock
func DomainBlockRecordWithBluenessToSnapshotBlock(record *externalapi.BlockRecordWithBlueness) *SnapshotBlock {
	return &SnapshotBlock{
		Hash:           record.Hash.String(),
		Parents:        hashes.ToStrings(record.Header.Parents()),
		Timestamp:      record.Header.Timestamp(),
		BlueScore:      record.GHOSTDAGData.BlueScore(),
		SelectedParent: hashOrEmpty(record.GHOSTDAGData.SelectedParent()),
		InsertionIndex: record.InsertionIndex,
		IsBlue:         record.IsBlue,
		IsChainBlock:   record.IsChainBlock,
	}
}

// DomainHealthToGetHealthResponse converts an externalapi.Health to a GetHealthResponse
func DomainHealthToGetHealthResponse(health *externalapi.Health, uptimeSeconds int64) *GetHealthResponse {
	response := &GetHealthResponse{
		Status:           HealthStatusOK,
		K:                uint8(health.K),
		BlockCount:       health.BlockCount,
		TipCount:         health.TipCount,
		VirtualBlueScore: health.VirtualBlueScore,
		UptimeSeconds:    uptimeSeconds,
	}
	switch {
	case health.IntegrityFault != nil:
		response.Status = HealthStatusFaulted
		response.IntegrityFault = health.IntegrityFault.Error()
	case health.BlockCount == 0:
		response.Status = HealthStatusUninitialized
	}
	return response
}

// NewBlockAddedNotification builds the notification sent for an accepted block
func NewBlockAddedNotification(result *externalapi.BlockInsertionResult) *BlockAddedNotification {
	notification := &BlockAddedNotification{
		Hash:           result.Record.Hash.String(),
		BlueScore:      result.Record.GHOSTDAGData.BlueScore(),
		SelectedParent: hashOrEmpty(result.Record.GHOSTDAGData.SelectedParent()),
	}
	if result.VirtualInfo != nil {
		notification.Tips = hashes.ToStrings(result.VirtualInfo.ParentHashes)
		notification.VirtualBlueScore = result.VirtualInfo.BlueScore
	}
	return notification
}
