package rpc

import (
	"github.com/argusdag/argusd/infrastructure/logger"
	"github.com/argusdag/argusd/util/panics"
)

var log = logger.RegisterSubSystem("RPCS")
var spawn = panics.GoroutineWrapperFunc(log)
