package metrics

import (
	"github.com/argusdag/argusd/infrastructure/logger"
	"github.com/argusdag/argusd/util/panics"
)

var log = logger.RegisterSubSystem("MTRC")
var spawn = panics.GoroutineWrapperFunc(log)
