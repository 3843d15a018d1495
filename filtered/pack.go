// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package filtered

import (
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// Pack - encoding sent to the party the components are disclosed to
func (ftx *FilteredTransaction) Pack() transactionrecord.Packed {
	message := transactionrecord.AppendDigest(nil, ftx.id)
	message = transactionrecord.AppendUint64(message, uint64(len(ftx.leaves)))
	for _, l := range ftx.leaves {
		message = transactionrecord.AppendUint64(message, uint64(l.Group))
		message = transactionrecord.AppendUint64(message, l.Index)
		message = transactionrecord.AppendDigest(message, l.Digest)
		message = transactionrecord.AppendBool(message, l.Revealed())
		if !l.Revealed() {
			continue
		}
		message = transactionrecord.AppendBytes(message, l.Content)
		message = transactionrecord.AppendUint64(message, uint64(len(l.Path)))
		for _, step := range l.Path {
			message = transactionrecord.AppendDigest(message, step.Sibling)
			message = transactionrecord.AppendBool(message, step.Left)
		}
	}
	return message
}

// Unpack - decode a record produced by Pack, the result still needs Verify
func Unpack(record transactionrecord.Packed) (*FilteredTransaction, error) {
	r := transactionrecord.NewReader(record)
	ftx := &FilteredTransaction{
		id: r.Digest(),
	}
	count := r.Count()
	ftx.leaves = make([]Leaf, 0, count)
	for i := 0; i < count && nil == r.Err(); i += 1 {
		l := Leaf{
			Group:  transactionrecord.Group(r.Uint64()),
			Index:  r.Uint64(),
			Digest: r.Digest(),
		}
		if r.Bool() {
			l.Content = r.Packed()
			if nil == l.Content {
				l.Content = transactionrecord.Packed{}
			}
			steps := r.Count()
			l.Path = make([]merkle.PathStep, 0, steps)
			for j := 0; j < steps && nil == r.Err(); j += 1 {
				l.Path = append(l.Path, merkle.PathStep{
					Sibling: r.Digest(),
					Left:    r.Bool(),
				})
			}
		}
		ftx.leaves = append(ftx.leaves, l)
	}
	if err := r.Finish(); nil != err {
		return nil, err
	}
	for _, l := range ftx.leaves {
		if !l.Group.Valid() {
			return nil, fault.ErrNotTransactionPack
		}
	}
	return ftx, nil
}
