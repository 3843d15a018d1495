// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AmbiguousMatchError GenericError
type ConstraintError GenericError
type IndexError GenericError
type InvalidError GenericError
type KeyError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type ResolutionError GenericError
type SignatureError GenericError
type TamperedDataError GenericError
type VerificationError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ProcessError("already initialised")
	ErrInvalidLoggerChannel = ProcessError("invalid logger channel")
	ErrNotInitialised       = ProcessError("not initialised")
)

// matching errors
var (
	ErrAmbiguousMatch  = AmbiguousMatchError("expected exactly one match")
	ErrIndexOutOfRange = IndexError("index out of range")
)

// construction constraint errors
var (
	ErrBuilderConsumed       = ConstraintError("builder already assembled")
	ErrDuplicateInput        = ConstraintError("duplicate input state")
	ErrInvalidTimeWindow     = ConstraintError("invalid time window")
	ErrMissingNotary         = ConstraintError("notary is required")
	ErrNotaryChangeInOutputs = ConstraintError("output state notary differs from transaction notary")
	ErrNotaryMismatch        = ConstraintError("state notary does not match transaction notary")
	ErrTimeWindowAlreadySet  = ConstraintError("time window already set")
)

// encoding errors
var (
	ErrCannotDecodeAccount      = InvalidError("cannot decode account")
	ErrChecksumMismatch         = InvalidError("checksum mismatch")
	ErrInvalidConfiguration     = InvalidError("invalid configuration")
	ErrInvalidKeyLength         = InvalidError("invalid key length")
	ErrInvalidKeyType           = InvalidError("invalid key type")
	ErrInvalidStructPointer     = InvalidError("invalid struct pointer")
	ErrNotAPublicKey            = InvalidError("not a public key")
	ErrNotDigest                = InvalidError("not a digest")
	ErrNotTransactionPack       = InvalidError("not transaction pack")
	ErrUnknownCommandKind       = InvalidError("unknown command kind")
	ErrUnknownStateKind         = InvalidError("unknown state kind")
	ErrWrongNetworkForPublicKey = InvalidError("wrong network for public key")
)

// signing and signature errors
var (
	ErrInvalidSignature  = SignatureError("invalid signature")
	ErrMissingSignatures = SignatureError("signatures missing")
	ErrSignatureMismatch = SignatureError("signature does not match transaction id")
	ErrUnknownIdentity   = KeyError("signing identity is not known")
)

// resolution errors
var (
	ErrAttachmentNotFound  = ResolutionError("attachment cannot be resolved")
	ErrTransactionNotFound = ResolutionError("transaction cannot be resolved")
)

// ordering errors
var (
	ErrDuplicateTransaction = ConstraintError("duplicate transaction in set")
	ErrTransactionCycle     = ConstraintError("transactions form a dependency cycle")
)

// verification errors
var (
	ErrComponentHidden             = VerificationError("component is not visible")
	ErrContractRejection           = VerificationError("contract rejected transaction")
	ErrFilteredTransactionMismatch = VerificationError("filtered transaction does not match its id")
	ErrInputStateMismatch          = VerificationError("carried input state differs from resolved state")
)

// merge errors
var (
	ErrNothingToMerge = InvalidError("nothing received to merge")
	ErrTamperedData   = TamperedDataError("received data modifies existing entries")
)

// storage errors
var (
	ErrDatabaseVersion = ProcessError("database version mismatch")
	ErrNotFound        = NotFoundError("not found")
	ErrNotFullySigned  = SignatureError("transaction is not fully signed")
	ErrStateConsumed   = ConstraintError("state already consumed")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AmbiguousMatchError) Error() string { return string(e) }
func (e ConstraintError) Error() string     { return string(e) }
func (e IndexError) Error() string          { return string(e) }
func (e InvalidError) Error() string        { return string(e) }
func (e KeyError) Error() string            { return string(e) }
func (e NotFoundError) Error() string       { return string(e) }
func (e ProcessError) Error() string        { return string(e) }
func (e ResolutionError) Error() string     { return string(e) }
func (e SignatureError) Error() string      { return string(e) }
func (e TamperedDataError) Error() string   { return string(e) }
func (e VerificationError) Error() string   { return string(e) }

// determine the class of an error
func IsErrAmbiguousMatch(e error) bool { var t AmbiguousMatchError; return errors.As(e, &t) }
func IsErrConstraint(e error) bool     { var t ConstraintError; return errors.As(e, &t) }
func IsErrIndex(e error) bool          { var t IndexError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool        { var t InvalidError; return errors.As(e, &t) }
func IsErrKey(e error) bool            { var t KeyError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool       { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool        { var t ProcessError; return errors.As(e, &t) }
func IsErrResolution(e error) bool     { var t ResolutionError; return errors.As(e, &t) }
func IsErrSignature(e error) bool      { var t SignatureError; return errors.As(e, &t) }
func IsErrTamperedData(e error) bool   { var t TamperedDataError; return errors.As(e, &t) }
func IsErrVerification(e error) bool   { var t VerificationError; return errors.As(e, &t) }
