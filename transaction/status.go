// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/signature"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// required signers that have no signature
func missingSigners(required []*account.Account, signatures []*signature.Signature) []*account.Account {
	signed := make(map[string]struct{}, len(signatures))
	for _, sig := range signatures {
		if nil != sig.Signer && nil != sig.Signer.AccountInterface {
			signed[sig.Signer.MapKey()] = struct{}{}
		}
	}

	missing := make([]*account.Account, 0)
	for _, key := range required {
		if _, ok := signed[key.MapKey()]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// status from the missing signers:
//   none            FullySigned
//   only the notary RequiresNotarySignature
//   anything else   RequiresSignatures
func status(missing []*account.Account, notary *identity.Party) transactionrecord.Status {
	switch {
	case 0 == len(missing):
		return transactionrecord.FullySigned
	case 1 == len(missing) && account.Equal(missing[0], notary.Key):
		return transactionrecord.RequiresNotarySignature
	default:
		return transactionrecord.RequiresSignatures
	}
}
