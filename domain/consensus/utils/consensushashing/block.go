package consensushashing

import (
	"io"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/hashes"
	"github.com/argusdag/argusd/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// HeaderHash returns the given header's hash
func HeaderHash(header externalapi.BlockHeader) *externalapi.DomainHash {
	writer := hashes.NewBlockHashWriter()
	err := serializeHeader(writer, header)
	if err != nil {
		// It seems like this could only happen if the writer returned an error.
		// and this writer should never return an error (no allocations or possible failures)
		// the only non-writer error path here is unknown types in `WriteElement`
		panic(errors.Wrap(err, "this should never happen. Hash digest should never return an error"))
	}

	return writer.Finalize()
}

func serializeHeader(w io.Writer, header externalapi.BlockHeader) error {
	parents := header.Parents()
	if err := serialization.WriteElement(w, uint64(len(parents))); err != nil {
		return err
	}
	for _, hash := range parents {
		if err := serialization.WriteElement(w, hash); err != nil {
			return err
		}
	}
	return serialization.WriteElement(w, header.Timestamp())
}
