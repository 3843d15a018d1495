// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package services

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertx/background"
	"github.com/bitmark-inc/ledgertx/configuration"
	"github.com/bitmark-inc/ledgertx/fault"
)

// Follow - apply configuration reloads and log database counts in the
// background until Finalise
//
// the watcher must be started by the caller and is not stopped here
func Follow(watcher *configuration.Watcher, statsDelay time.Duration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.log {
		return fault.ErrNotInitialised
	}
	if nil != globalData.processes {
		return fault.ErrAlreadyInitialised
	}

	processes := background.Processes{
		&reloader{
			log:     logger.New(reloadLogCategory),
			watcher: watcher,
			current: globalData.config,
		},
		&statistics{
			log:   logger.New(statsLogCategory),
			delay: statsDelay,
		},
	}
	globalData.processes = background.Start(processes, nil)
	globalData.log.Infof("following configuration changes, stats every: %s", statsDelay)
	return nil
}

// apply configuration changes that need no restart
type reloader struct {
	log     *logger.L
	watcher *configuration.Watcher
	current *configuration.Configuration
}

func (r *reloader) Run(args interface{}, shutdown <-chan struct{}) {
loop:
	for {
		select {
		case <-shutdown:
			break loop

		case config := <-r.watcher.Changes():
			if config.Database != r.current.Database ||
				config.PlatformVersion != r.current.PlatformVersion ||
				config.Testing != r.current.Testing {
				r.log.Warnf("database: %q  platform version: %d  testing: %t  require a restart",
					config.Database, config.PlatformVersion, config.Testing)
				continue loop
			}
			if err := AddKeys(config.Keys, config.Testing); nil != err {
				r.log.Errorf("reload keys error: %s", err)
				continue loop
			}
			r.log.Infof("reloaded keys: %d", len(config.Keys))
			r.current = config

		case <-r.watcher.Removed():
			r.log.Warn("configuration removed, no further reloads")
		}
	}
	r.log.Info("stopped")
}

// periodically log the database counts
type statistics struct {
	log   *logger.L
	delay time.Duration
}

func (s *statistics) Run(args interface{}, shutdown <-chan struct{}) {
loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-time.After(s.delay):
			transactions, attachments, err := Store().Counts()
			if nil != err {
				s.log.Errorf("counts error: %s", err)
				continue loop
			}
			s.log.Infof("transactions: %d  attachments: %d", transactions, attachments)
		}
	}
	s.log.Info("stopped")
}
