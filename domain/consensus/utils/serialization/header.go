package serialization

import (
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/blockheader"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	headerParentsField   protowire.Number = 1
	headerTimestampField protowire.Number = 2

	kField protowire.Number = 1
)

var errMalformed = errors.New("malformed record")

// HeaderToDBHeader serializes a header into its database representation
func HeaderToDBHeader(header externalapi.BlockHeader) []byte {
	var buf []byte
	for _, parent := range header.Parents() {
		buf = protowire.AppendTag(buf, headerParentsField, protowire.BytesType)
		buf = protowire.AppendBytes(buf, parent.ByteSlice())
	}
	buf = protowire.AppendTag(buf, headerTimestampField, protowire.VarintType)
	buf = protowire.AppendVarint(buf, protowire.EncodeZigZag(header.Timestamp()))
	return buf
}

// DBHeaderToHeader deserializes a header from its database representation
func DBHeaderToHeader(data []byte) (externalapi.BlockHeader, error) {
	var parents []*externalapi.DomainHash
	var timestamp int64

	for len(data) > 0 {
		number, wireType, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errors.Wrapf(errMalformed, "header tag: %s", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case number == headerParentsField && wireType == protowire.BytesType:
			parentBytes, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errors.Wrapf(errMalformed, "header parent: %s", protowire.ParseError(n))
			}
			parent, err := externalapi.NewDomainHashFromByteSlice(parentBytes)
			if err != nil {
				return nil, err
			}
			parents = append(parents, parent)
			data = data[n:]

		case number == headerTimestampField && wireType == protowire.VarintType:
			value, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errors.Wrapf(errMalformed, "header timestamp: %s", protowire.ParseError(n))
			}
			timestamp = protowire.DecodeZigZag(value)
			data = data[n:]

		default:
			n := protowire.ConsumeFieldValue(number, wireType, data)
			if n < 0 {
				return nil, errors.Wrapf(errMalformed, "field %d: %s", number, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	return blockheader.NewImmutableBlockHeader(parents, timestamp), nil
}

// KToDBK serializes the GHOSTDAG K parameter
func KToDBK(k externalapi.KType) []byte {
	buf := protowire.AppendTag(nil, kField, protowire.VarintType)
	return protowire.AppendVarint(buf, uint64(k))
}

// DBKToK deserializes the GHOSTDAG K parameter
func DBKToK(data []byte) (externalapi.KType, error) {
	number, wireType, n := protowire.ConsumeTag(data)
	if n < 0 || number != kField || wireType != protowire.VarintType {
		return 0, errors.Wrapf(errMalformed, "unexpected k record")
	}
	value, n := protowire.ConsumeVarint(data[n:])
	if n < 0 {
		return 0, errors.Wrapf(errMalformed, "k value: %s", protowire.ParseError(n))
	}
	if value > uint64(externalapi.MaxK) {
		return 0, errors.Wrapf(errMalformed, "stored k %d is above the maximum of %d", value, externalapi.MaxK)
	}
	return externalapi.KType(value), nil
}

const countField protowire.Number = 1

// CountToDBCount serializes a record count
func CountToDBCount(count uint64) []byte {
	buf := protowire.AppendTag(nil, countField, protowire.VarintType)
	return protowire.AppendVarint(buf, count)
}

// DBCountToCount deserializes a record count
func DBCountToCount(data []byte) (uint64, error) {
	number, wireType, n := protowire.ConsumeTag(data)
	if n < 0 || number != countField || wireType != protowire.VarintType {
		return 0, errors.Wrapf(errMalformed, "unexpected count record")
	}
	value, n := protowire.ConsumeVarint(data[n:])
	if n < 0 {
		return 0, errors.Wrapf(errMalformed, "count value: %s", protowire.ParseError(n))
	}
	return value, nil
}
