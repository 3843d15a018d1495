// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - build, assemble, sign and merge ledger transactions
//
// the lifecycle is:
//
//   Builder --Assemble--> SignedTransaction --MergeSignatures...--> FullySigned
//
// a Builder accumulates inputs, outputs, commands, attachments and an
// optional time window for one notary.  Assemble consumes it: the
// content is moved into an immutable WireTransaction whose id is the
// merkle root over its canonical component leaves, the initiator signs
// the id and the ledger verifier checks the content.  Signatures from
// other required signers arrive through AddSignature or
// MergeSignatures.
//
// peers exchanging a builder or a signed transaction may only append:
// every merge checks that the local lists are a prefix of the
// received lists.
package transaction
