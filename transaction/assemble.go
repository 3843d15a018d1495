// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// Assemble - convert the builder into a signed transaction
//
// the initiator's signature from the signing service becomes
// signature #0 and the ledger verifier must accept the content.  On
// success the builder is consumed; on any failure it is left as it was
// and no transaction is returned.
func (b *Builder) Assemble(signer Signer, signingKey *account.Account, verifier LedgerVerifier) (*SignedTransaction, error) {
	if b.consumed {
		return nil, fault.ErrBuilderConsumed
	}

	for _, input := range b.inputs {
		if !identity.Equal(b.notary, input.State.Notary) {
			return nil, notaryMismatch(b.notary, input.State.Notary)
		}
	}
	if err := checkOutputNotaries(b.notary, b.outputs); nil != err {
		return nil, err
	}

	refs := make([]transactionrecord.StateRef, len(b.inputs))
	for i, input := range b.inputs {
		refs[i] = input.Ref
	}

	wtx := newWireTransaction(
		b.notary,
		b.timeWindow,
		refs,
		b.outputs,
		b.commands,
		b.attachments,
	)
	debugf("assemble: tx: %s  inputs: %d  outputs: %d  commands: %d  attachments: %d",
		wtx.id, len(refs), len(b.outputs), len(b.commands), len(b.attachments))

	sig, err := signer.Sign(wtx.id, signingKey)
	if nil != err {
		errorf("assemble: tx: %s  sign error: %s", wtx.id, err)
		return nil, err
	}
	if nil == sig {
		return nil, fault.ErrInvalidSignature
	}
	if !account.Equal(sig.Signer, signingKey) {
		return nil, &fault.SignatureFailureError{
			Signer: keyString(sig.Signer),
			TxId:   wtx.id.String(),
		}
	}
	if err := sig.Verify(wtx.id); nil != err {
		warnf("assemble: tx: %s  signing service returned a bad signature: %s", wtx.id, err)
		return nil, err
	}

	if err := verifier.Verify(wtx); nil != err {
		warnf("assemble: tx: %s  verify error: %s", wtx.id, err)
		return nil, err
	}

	stx := newSignedTransaction(wtx, b.inputs)
	stx.signatures = append(stx.signatures, sig)

	b.consume()

	debugf("assemble: tx: %s  status: %s", wtx.id, stx.Status())
	return stx, nil
}

// ownership of the content has moved to the transaction
func (b *Builder) consume() {
	b.consumed = true
	b.inputs = nil
	b.outputs = nil
	b.commands = nil
	b.attachments = nil
	b.timeWindow = nil
}

func keyString(key *account.Account) string {
	if nil == key || nil == key.AccountInterface {
		return "<none>"
	}
	return key.String()
}
