// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/ledgertx/fault"
)

// WatcherLoggerPrefix - log channel for configuration watchers
const WatcherLoggerPrefix = "config-watcher"

// Watcher - reload a configuration file whenever it changes
//
// the containing directory is watched so that files replaced by
// rename are still seen
type Watcher struct {
	sync.Mutex

	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	changes  chan *Configuration
	removed  chan struct{}
	running  bool
	done     chan struct{}
}

// NewWatcher - create a watcher for an existing configuration file
func NewWatcher(fileName string, log *logger.L) (*Watcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		log.Errorf("file: %q does not exist", filePath)
		return nil, fault.ErrNotFound
	} else if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	return &Watcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		changes:  make(chan *Configuration, 1),
		removed:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Changes - each successfully reloaded configuration
//
// a reload is discarded if the previous one has not been received
func (w *Watcher) Changes() <-chan *Configuration {
	return w.changes
}

// Removed - signalled once when the file is removed or renamed away
func (w *Watcher) Removed() <-chan struct{} {
	return w.removed
}

// Start - begin watching in the background
func (w *Watcher) Start() error {
	w.Lock()
	defer w.Unlock()

	if w.running {
		return fault.ErrAlreadyInitialised
	}

	err := w.watcher.Add(filepath.Dir(w.filePath))
	if nil != err {
		w.log.Errorf("watcher add error: %s", err)
		return err
	}
	w.running = true

	go w.loop()
	return nil
}

// Stop - end watching, the channels are not closed
func (w *Watcher) Stop() error {
	w.Lock()
	defer w.Unlock()

	if !w.running {
		return fault.ErrNotInitialised
	}
	w.running = false

	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	name := filepath.Base(w.filePath)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			w.log.Debugf("file event: %v", event)

			if isRemove(event) {
				w.log.Warnf("file: %q removed, stop", w.filePath)
				w.removed <- struct{}{}
				return
			}
			if isChange(event) {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}
}

func (w *Watcher) reload() {
	config, err := Load(w.filePath)
	if nil != err {
		w.log.Errorf("reload: %q  error: %s", w.filePath, err)
		return
	}
	w.log.Infof("reload: %q", w.filePath)

	select {
	case w.changes <- config:
	default:
		w.log.Info("change channel full, discard configuration")
	}
}

func isRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
