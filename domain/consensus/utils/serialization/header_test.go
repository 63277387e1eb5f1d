package serialization

import (
	"testing"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/blockheader"
	"github.com/pkg/errors"
)

func TestDBHeaderRejectsGarbage(t *testing.T) {
	_, err := DBHeaderToHeader([]byte{0x0a, 0xff})
	if !errors.Is(err, errMalformed) {
		t.Fatalf("expected errMalformed, got: %+v", err)
	}

	// a parent of the wrong length
	header := []byte{0x0a, 0x02, 0x01, 0x02}
	_, err = DBHeaderToHeader(header)
	if err == nil {
		t.Fatalf("expected a short parent hash to be rejected")
	}
}

func TestDBHeaderNegativeTimestamp(t *testing.T) {
	parent := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{0xaa})
	header := blockheader.NewImmutableBlockHeader([]*externalapi.DomainHash{parent}, -42)

	decoded, err := DBHeaderToHeader(HeaderToDBHeader(header))
	if err != nil {
		t.Fatalf("DBHeaderToHeader: %+v", err)
	}
	if !decoded.Equal(header) {
		t.Fatalf("decoded header differs from the original")
	}
}

func TestDBKToKRejectsOversizedK(t *testing.T) {
	_, err := DBKToK(KToDBK(externalapi.MaxK))
	if err != nil {
		t.Fatalf("DBKToK: %+v", err)
	}

	oversized := []byte{0x08, 0xff, 0x01}
	_, err = DBKToK(oversized)
	if !errors.Is(err, errMalformed) {
		t.Fatalf("expected errMalformed, got: %+v", err)
	}
}

func TestDBCount(t *testing.T) {
	for _, count := range []uint64{0, 1, 300, 1 << 40} {
		decoded, err := DBCountToCount(CountToDBCount(count))
		if err != nil {
			t.Fatalf("DBCountToCount(%d): %+v", count, err)
		}
		if decoded != count {
			t.Fatalf("expected count %d, got %d", count, decoded)
		}
	}
	_, err := DBCountToCount([]byte{0xff})
	if err == nil {
		t.Fatalf("expected a truncated count to be rejected")
	}
}
