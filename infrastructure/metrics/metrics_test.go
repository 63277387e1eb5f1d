package metrics

import (
	"testing"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRejectedReason(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{err: errors.Wrap(ruleerrors.ErrUnknownParent, "parent aa"), expected: "ErrUnknownParent"},
		{err: ruleerrors.ErrDuplicateBlock, expected: "ErrDuplicateBlock"},
		{err: errors.Wrap(ruleerrors.ErrIntegrityFault, "reachability"), expected: RejectedReasonIntegrityFault},
		{err: errors.New("disk full"), expected: RejectedReasonOther},
	}
	for _, test := range tests {
		require.Equal(t, test.expected, RejectedReason(test.err), "error %s", test.err)
	}
}

func TestRecordBlockRejected(t *testing.T) {
	counter := blocksRejected.WithLabelValues("ErrNoParents")
	before := testutil.ToFloat64(counter)
	RecordBlockRejected(ruleerrors.ErrNoParents)
	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestSetVirtual(t *testing.T) {
	SetVirtual(&externalapi.VirtualInfo{
		ParentHashes: []*externalapi.DomainHash{{}, {}},
		BlueScore:    17,
	})
	require.Equal(t, float64(2), testutil.ToFloat64(tips))
	require.Equal(t, float64(17), testutil.ToFloat64(virtualBlueScore))
}

func TestRecordRPCRequest(t *testing.T) {
	counter := rpcRequests.WithLabelValues("get_tips")
	before := testutil.ToFloat64(counter)
	RecordRPCRequest("get_tips")
	RecordRPCRequest("get_tips")
	require.Equal(t, before+2, testutil.ToFloat64(counter))
}
