// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package app

import (
	"github.com/argusdag/argusd/infrastructure/logger"
	"github.com/argusdag/argusd/util/panics"
)

var log = logger.RegisterSubSystem("ARGD")
var spawn = panics.GoroutineWrapperFunc(log)
