package blockbuilder

import "github.com/argusdag/argusd/infrastructure/logger"

var log = logger.RegisterSubSystem("BDAG")
