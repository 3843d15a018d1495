// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package services - the process wide keystore, store and verifier
//
// the logger must be initialised before calling Initialise
package services
