// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertx/background"
)

// counts ticks until shutdown then records that it stopped
type ticker struct {
	ticks   int64
	stopped int32
}

func (state *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	interval := args.(time.Duration)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(interval):
			atomic.AddInt64(&state.ticks, 1)
		}
	}
	atomic.StoreInt32(&state.stopped, 1)
}

func TestStartStop(t *testing.T) {
	proc1 := &ticker{}
	proc2 := &ticker{}

	p := background.Start(background.Processes{proc1, proc2}, time.Millisecond)

	deadline := time.Now().Add(5 * time.Second)
	for atomic.LoadInt64(&proc1.ticks) < 3 || atomic.LoadInt64(&proc2.ticks) < 3 {
		if time.Now().After(deadline) {
			t.Fatal("processes did not run")
		}
		time.Sleep(time.Millisecond)
	}

	p.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&proc1.stopped), "first process still running")
	assert.Equal(t, int32(1), atomic.LoadInt32(&proc2.stopped), "second process still running")
}

func TestStopEmpty(t *testing.T) {
	p := background.Start(nil, nil)
	p.Stop()
}
