// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/merkle"
)

func TestScanFmt(t *testing.T) {
	stringDigest := "00000000440b921e1b77c6c0487ae5616de67f788f44ae2a5af6e2194d16b6f8"

	var d merkle.Digest
	n, err := fmt.Sscan(stringDigest, &d)
	if nil != err {
		t.Fatalf("hex to digest error: %v", err)
	}
	if 1 != n {
		t.Fatalf("scanned %d items expected to scan 1", n)
	}

	assert.Equal(t, byte(0x00), d[0], "first byte")
	assert.Equal(t, byte(0xf8), d[31], "last byte")
	assert.Equal(t, stringDigest, fmt.Sprintf("%s", d), "string")
	assert.Equal(t, "<SHA3-256:"+stringDigest+">", fmt.Sprintf("%#v", d), "go string")
}

func TestJSON(t *testing.T) {
	d := merkle.NewDigest([]byte("ledger"))

	buffer, err := json.Marshal(d)
	assert.Nil(t, err, "marshal error")

	var r merkle.Digest
	err = json.Unmarshal(buffer, &r)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, d, r, "round trip")

	err = r.UnmarshalText([]byte("abcd"))
	assert.Equal(t, fault.ErrNotDigest, err, "short text")
}

func TestDigestFromBytes(t *testing.T) {
	var d merkle.Digest
	err := merkle.DigestFromBytes(&d, make([]byte, 31))
	assert.Equal(t, fault.ErrNotDigest, err, "short buffer")

	src := merkle.NewDigest([]byte{1, 2, 3})
	err = merkle.DigestFromBytes(&d, src[:])
	assert.Nil(t, err, "valid buffer")
	assert.Equal(t, src, d, "copied")
	assert.False(t, d.IsZero(), "not zero")
	assert.True(t, merkle.Digest{}.IsZero(), "zero")
}
