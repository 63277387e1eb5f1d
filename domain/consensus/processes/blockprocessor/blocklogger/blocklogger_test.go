package blocklogger

import (
	"testing"
	"time"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/blockheader"
	"github.com/stretchr/testify/require"
)

func testRecord(reds int) *externalapi.BlockRecord {
	mergeSetReds := make([]*externalapi.DomainHash, reds)
	for i := range mergeSetReds {
		mergeSetReds[i] = externalapi.NewZeroHash()
	}
	return &externalapi.BlockRecord{
		Hash:         externalapi.NewZeroHash(),
		Header:       blockheader.NewImmutableBlockHeader(nil, 1000),
		GHOSTDAGData: externalapi.NewBlockGHOSTDAGData(7, nil, nil, mergeSetReds, nil),
	}
}

func TestProgressThrottlesLines(t *testing.T) {
	clock := time.Unix(0, 0)
	p := newProgress(func() time.Time { return clock })

	require.False(t, p.add(testRecord(1)))
	clock = clock.Add(progressInterval / 2)
	require.False(t, p.add(testRecord(2)))
	require.EqualValues(t, 2, p.blocks)
	require.EqualValues(t, 3, p.reds)

	clock = clock.Add(progressInterval)
	require.True(t, p.add(testRecord(0)))
	require.Zero(t, p.blocks)
	require.Zero(t, p.reds)
	require.Equal(t, clock, p.lastLine)

	require.False(t, p.add(testRecord(0)))
}
