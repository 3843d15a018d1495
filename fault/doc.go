// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Errors that must carry context (keys, parties, counts) are
// structures that unwrap to one of the single instances, so both
// errors.Is(err, fault.ErrXXX) and the IsErrXXX class tests work
// on them.
package fault
