// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertx/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/ledger.leveldb", util.EnsureAbsolute("/data", "ledger.leveldb"), "relative")
	assert.Equal(t, "/var/ledger", util.EnsureAbsolute("/data", "/var/x/../ledger"), "absolute")
}
