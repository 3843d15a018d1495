// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"strings"
)

// NotaryMismatchError - an input or a peer names a different notary
type NotaryMismatchError struct {
	Expected string
	Actual   string
}

func (e *NotaryMismatchError) Error() string {
	return fmt.Sprintf("%s: expected: %s  actual: %s", ErrNotaryMismatch, e.Expected, e.Actual)
}

func (e *NotaryMismatchError) Unwrap() error { return ErrNotaryMismatch }

// MissingSignaturesError - required signers that have not signed
type MissingSignaturesError struct {
	Keys []string
}

func (e *MissingSignaturesError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingSignatures, strings.Join(e.Keys, ", "))
}

func (e *MissingSignaturesError) Unwrap() error { return ErrMissingSignatures }

// SignatureFailureError - a signature that does not verify against a transaction id
type SignatureFailureError struct {
	Signer string
	TxId   string
}

func (e *SignatureFailureError) Error() string {
	return fmt.Sprintf("%s: signer: %s  tx: %s", ErrSignatureMismatch, e.Signer, e.TxId)
}

func (e *SignatureFailureError) Unwrap() error { return ErrSignatureMismatch }

// UnknownIdentityError - the signing service holds no key for the identity
type UnknownIdentityError struct {
	Key string
}

func (e *UnknownIdentityError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownIdentity, e.Key)
}

func (e *UnknownIdentityError) Unwrap() error { return ErrUnknownIdentity }

// TamperedError - a peer modified, reordered or removed entries
// instead of only appending
type TamperedError struct {
	Component string
	Local     int
	Received  int
}

func (e *TamperedError) Error() string {
	return fmt.Sprintf("%s: %s: local: %d  received: %d", ErrTamperedData, e.Component, e.Local, e.Received)
}

func (e *TamperedError) Unwrap() error { return ErrTamperedData }

// AmbiguousMatchCountError - find one matched zero or several items
type AmbiguousMatchCountError struct {
	Kind  string
	Count int
}

func (e *AmbiguousMatchCountError) Error() string {
	return fmt.Sprintf("%s: %s found: %d", ErrAmbiguousMatch, e.Kind, e.Count)
}

func (e *AmbiguousMatchCountError) Unwrap() error { return ErrAmbiguousMatch }

// IndexOutOfRangeError - indexed access outside a component list
type IndexOutOfRangeError struct {
	Component string
	Index     int
	Length    int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %s[%d] length: %d", ErrIndexOutOfRange, e.Component, e.Index, e.Length)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrIndexOutOfRange }

// UnresolvedError - referenced content is not available
//
// Base is either ErrTransactionNotFound or ErrAttachmentNotFound
type UnresolvedError struct {
	Base ResolutionError
	Id   string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Base, e.Id)
}

func (e *UnresolvedError) Unwrap() error { return e.Base }

// ContractRejectionError - contract or structural rule violation
type ContractRejectionError struct {
	TxId     string
	Contract string
	Reason   string
}

func (e *ContractRejectionError) Error() string {
	return fmt.Sprintf("%s: tx: %s  contract: %s  reason: %s", ErrContractRejection, e.TxId, e.Contract, e.Reason)
}

func (e *ContractRejectionError) Unwrap() error { return ErrContractRejection }

// FilteredVerificationError - filtered transaction leaves do not
// recompute the transaction id
type FilteredVerificationError struct {
	TxId   string
	Reason string
}

func (e *FilteredVerificationError) Error() string {
	return fmt.Sprintf("%s: tx: %s  reason: %s", ErrFilteredTransactionMismatch, e.TxId, e.Reason)
}

func (e *FilteredVerificationError) Unwrap() error { return ErrFilteredTransactionMismatch }
