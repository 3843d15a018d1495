// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - on-disk store of signed transactions and attachments
//
// maintain separate pools of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. txId         = transaction id, 32 byte merkle root
// 4. attachment   = 32 byte SHA3-256(data)
// 5. state ref    = txId ++ Varint64(output index)
//
// Transactions:
//
//   T ++ txId                  - recorded transactions
//                                data: packed signed transaction
//
// Attachments:
//
//   A ++ attachment            - attachment content
//                                data: raw bytes
//
// Consumed states:
//
//   S ++ state ref             - transaction that consumed the output
//                                data: txId
//
// Version:
//
//   0x00 ++ "VERSION"          - database version, big endian uint32
package storage
