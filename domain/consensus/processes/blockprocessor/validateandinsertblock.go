package blockprocessor

import (
	"fmt"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/processes/blockprocessor/blocklogger"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/argusdag/argusd/domain/consensus/utils/consensushashing"
	"github.com/argusdag/argusd/infrastructure/logger"
	"github.com/pkg/errors"
)

// AddGenesis inserts the single block without parents
func (bp *blockProcessor) AddGenesis(header externalapi.BlockHeader) (*externalapi.BlockRecord, error) {
	if genesisHash := bp.blockStore.Genesis(); genesisHash != nil {
		return nil, errors.Wrapf(ruleerrors.ErrAlreadyInitialized, "the DAG already has genesis %s", genesisHash)
	}
	if len(header.Parents()) != 0 {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidGenesis,
			"a genesis must have no parents, got %d", len(header.Parents()))
	}

	blockHash := consensushashing.HeaderHash(header)
	record, err := bp.commitBlock(blockHash, header, bp.ghostdagManager.GenesisGHOSTDAGData())
	if err != nil {
		return nil, err
	}

	log.Infof("Added genesis %s", blockHash)
	return record, nil
}

// ValidateAndInsertBlock classifies the given header and commits it to the DAG.
// Inserting a header that's already in the DAG returns its existing record.
func (bp *blockProcessor) ValidateAndInsertBlock(header externalapi.BlockHeader) (*externalapi.BlockInsertionResult, error) {
	blockHash := consensushashing.HeaderHash(header)
	log.Debugf("Validating block %s", blockHash)

	if bp.blockStore.Has(blockHash) {
		return bp.existingBlock(blockHash, header)
	}

	err := bp.checkParentsExist(blockHash, header)
	if err != nil {
		return nil, err
	}

	ghostdagData, err := bp.ghostdagManager.GHOSTDAG(header.Parents())
	if err != nil {
		return nil, ruleerrors.NewErrIntegrity(errors.Wrapf(err, "failed to classify block %s", blockHash))
	}

	err = bp.validateGHOSTDAGData(blockHash, header, ghostdagData)
	if err != nil {
		return nil, ruleerrors.NewErrIntegrity(err)
	}

	record, err := bp.commitBlock(blockHash, header, ghostdagData)
	if err != nil {
		return nil, err
	}

	log.Debugf("Block %s validated and inserted", blockHash)
	log.Tracef("%s", logger.NewLogClosure(func() string {
		return fmt.Sprintf("Block %s: blue score %d, selected parent %s, %d blues, %d reds",
			blockHash, ghostdagData.BlueScore(), ghostdagData.SelectedParent(),
			len(ghostdagData.MergeSetBlues()), len(ghostdagData.MergeSetReds()))
	}))
	blocklogger.LogBlock(record)

	return &externalapi.BlockInsertionResult{
		Record: record,
		IsNew:  true,
	}, nil
}

func (bp *blockProcessor) existingBlock(blockHash *externalapi.DomainHash,
	header externalapi.BlockHeader) (*externalapi.BlockInsertionResult, error) {

	existingHeader, err := bp.blockStore.Header(blockHash)
	if err != nil {
		return nil, err
	}
	if !existingHeader.Equal(header) {
		return nil, errors.Wrapf(ruleerrors.ErrDuplicateBlock,
			"block %s is already in the DAG with a different header", blockHash)
	}

	log.Debugf("Block %s is already in the DAG", blockHash)
	record, err := bp.blockStore.Record(blockHash)
	if err != nil {
		return nil, err
	}
	return &externalapi.BlockInsertionResult{
		Record: record,
		IsNew:  false,
	}, nil
}

func (bp *blockProcessor) checkParentsExist(blockHash *externalapi.DomainHash, header externalapi.BlockHeader) error {
	parents := header.Parents()
	if len(parents) == 0 {
		return errors.Wrapf(ruleerrors.ErrNoParents, "block %s has no parents and is not the genesis", blockHash)
	}

	var missingParentHashes []*externalapi.DomainHash
	for _, parent := range parents {
		if !bp.blockStore.Has(parent) {
			missingParentHashes = append(missingParentHashes, parent)
		}
	}
	if len(missingParentHashes) > 0 {
		return ruleerrors.NewErrMissingParents(missingParentHashes)
	}
	return nil
}

// commitBlock persists the header, when a header store is configured, and
// then adds the block to the in-memory DAG
func (bp *blockProcessor) commitBlock(blockHash *externalapi.DomainHash, header externalapi.BlockHeader,
	ghostdagData *externalapi.BlockGHOSTDAGData) (*externalapi.BlockRecord, error) {

	if bp.blockHeaderStore != nil {
		err := bp.blockHeaderStore.Append(bp.blockStore.Count(), header)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to persist block %s", blockHash)
		}
	}

	record, err := bp.blockStore.Insert(blockHash, header, ghostdagData)
	if err != nil {
		return nil, ruleerrors.NewErrIntegrity(err)
	}
	return record, nil
}
