package rpchandlers

import (
	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/hashes"
	"github.com/pkg/errors"
)

func parseHash(name string, hashString string) (*externalapi.DomainHash, error) {
	if hashString == "" {
		return nil, errors.Wrapf(appmessage.ErrInvalidParams, "%s is required", name)
	}
	hash, err := hashes.FromString(hashString)
	if err != nil {
		return nil, errors.Wrapf(appmessage.ErrInvalidParams, "%s could not be parsed: %s", name, err)
	}
	return hash, nil
}

func parseHashes(name string, hashStrings []string) ([]*externalapi.DomainHash, error) {
	parsed, err := hashes.FromStrings(hashStrings)
	if err != nil {
		return nil, errors.Wrapf(appmessage.ErrInvalidParams, "%s could not be parsed: %s", name, err)
	}
	return parsed, nil
}
