// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - long running tasks of the ledgertx daemon
//
// each process runs in its own goroutine until Stop closes its
// shutdown channel; Stop waits for every Run to return
package background

// the shutdown and completed channels for one process
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle for a set of started processes
type T struct {
	s []shutdown
}

// Process - Run must return soon after shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - run each process in the background
func Start(processes Processes, args interface{}) *T {
	register := &T{
		s: make([]shutdown, len(processes)),
	}

	for i, p := range processes {
		s := shutdown{
			shutdown: make(chan struct{}),
			finished: make(chan struct{}),
		}
		register.s[i] = s
		go func(p Process) {
			defer close(s.finished)
			p.Run(args, s.shutdown)
		}(p)
	}
	return register
}

// Stop - signal every process and wait for all of them to finish
func (t *T) Stop() {
	for _, s := range t.s {
		close(s.shutdown)
	}
	for _, s := range t.s {
		<-s.finished
	}
}
