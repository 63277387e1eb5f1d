package consensus

import (
	"github.com/argusdag/argusd/domain/dagconfig"
)

// Config is the configuration of a consensus instance
type Config struct {
	dagconfig.Params

	// AncestryCacheSize is the number of ancestry query results kept in memory.
	// Zero means dagtopologymanager.DefaultAncestryCacheSize.
	AncestryCacheSize int
}
