// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"bytes"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// tags for the record types of this package
// this is encoded as Varint64 at start of a packed record
const (
	builderTag = 1
	wireTag    = 2
	signedTag  = 3
)

// append a count followed by each length prefixed element
func appendList(buffer transactionrecord.Packed, items []transactionrecord.Packed) transactionrecord.Packed {
	buffer = transactionrecord.AppendUint64(buffer, uint64(len(items)))
	for _, item := range items {
		buffer = transactionrecord.AppendBytes(buffer, item)
	}
	return buffer
}

func readList(r *transactionrecord.Reader) []transactionrecord.Packed {
	count := r.Count()
	items := make([]transactionrecord.Packed, 0, count)
	for i := 0; i < count && nil == r.Err(); i += 1 {
		items = append(items, r.Packed())
	}
	return items
}

// append an optional time window as a presence flag and record
func appendTimeWindow(buffer transactionrecord.Packed, w *transactionrecord.TimeWindow) transactionrecord.Packed {
	if nil == w {
		return transactionrecord.AppendBool(buffer, false)
	}
	buffer = transactionrecord.AppendBool(buffer, true)
	return transactionrecord.AppendBytes(buffer, w.Pack())
}

func readTimeWindow(r *transactionrecord.Reader) (*transactionrecord.TimeWindow, error) {
	if !r.Bool() {
		return nil, r.Err()
	}
	data := r.Packed()
	if nil != r.Err() {
		return nil, r.Err()
	}
	return transactionrecord.UnpackTimeWindow(data)
}

// check the record starts with the expected tag
func readTag(r *transactionrecord.Reader, tag uint64) error {
	if tag != r.Uint64() {
		return fault.ErrNotTransactionPack
	}
	return r.Err()
}

// local must be a prefix of received, element by element
func checkPrefix(component string, local []transactionrecord.Packed, received []transactionrecord.Packed) error {
	tampered := &fault.TamperedError{
		Component: component,
		Local:     len(local),
		Received:  len(received),
	}
	if len(received) < len(local) {
		return tampered
	}
	for i, item := range local {
		if !bytes.Equal(item, received[i]) {
			return tampered
		}
	}
	return nil
}

func packInputs(inputs []transactionrecord.StateAndRef) []transactionrecord.Packed {
	p := make([]transactionrecord.Packed, len(inputs))
	for i, input := range inputs {
		p[i] = input.Pack()
	}
	return p
}

func packRefs(refs []transactionrecord.StateRef) []transactionrecord.Packed {
	p := make([]transactionrecord.Packed, len(refs))
	for i, ref := range refs {
		p[i] = ref.Pack()
	}
	return p
}

func packOutputs(outputs []transactionrecord.TransactionState) []transactionrecord.Packed {
	p := make([]transactionrecord.Packed, len(outputs))
	for i, output := range outputs {
		p[i] = output.Pack()
	}
	return p
}

func packCommands(commands []transactionrecord.Command) []transactionrecord.Packed {
	p := make([]transactionrecord.Packed, len(commands))
	for i, command := range commands {
		p[i] = command.Pack()
	}
	return p
}
