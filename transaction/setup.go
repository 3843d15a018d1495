// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertx/fault"
)

// package level logging channel
var globalData struct {
	sync.RWMutex
	log *logger.L
}

// Initialise - create the logging channel
//
// the package works uninitialised, it just does not log
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.log {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("transaction")
	if nil == log {
		return fault.ErrInvalidLoggerChannel
	}
	log.Info("starting…")
	globalData.log = log

	return nil
}

// Finalise - flush and release the logging channel
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.log {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("finished")
	globalData.log.Flush()
	globalData.log = nil

	return nil
}

func debugf(format string, arguments ...interface{}) {
	globalData.RLock()
	if nil != globalData.log {
		globalData.log.Debugf(format, arguments...)
	}
	globalData.RUnlock()
}

func warnf(format string, arguments ...interface{}) {
	globalData.RLock()
	if nil != globalData.log {
		globalData.log.Warnf(format, arguments...)
	}
	globalData.RUnlock()
}

func errorf(format string, arguments ...interface{}) {
	globalData.RLock()
	if nil != globalData.log {
		globalData.log.Errorf(format, arguments...)
	}
	globalData.RUnlock()
}
