// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

// Status - signing progress of a transaction
type Status int

// possible status values
const (
	Incomplete              Status = iota // builder, not yet assembled
	RequiresSignatures      Status = iota // some required signers have not signed
	RequiresNotarySignature Status = iota // only the notary has not signed
	FullySigned             Status = iota // every required signer has signed
)

// String - for log messages and JSON
func (s Status) String() string {
	switch s {
	case Incomplete:
		return "Incomplete"
	case RequiresSignatures:
		return "RequiresSignatures"
	case RequiresNotarySignature:
		return "RequiresNotarySignature"
	case FullySigned:
		return "FullySigned"
	default:
		return "*unknown*"
	}
}

// MarshalText - status as its name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
