package grpcserver

import (
	"github.com/argusdag/argusd/infrastructure/logger"
	"github.com/argusdag/argusd/util/panics"
)

var log = logger.RegisterSubSystem("STRM")
var spawn = panics.GoroutineWrapperFunc(log)
