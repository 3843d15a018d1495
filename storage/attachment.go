// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/merkle"
)

// PutAttachment - store content under its hash
func (s *Store) PutAttachment(data []byte) (merkle.Digest, error) {
	id := merkle.NewDigest(data)
	value := append([]byte{}, data...)

	s.lock.Lock()
	defer s.lock.Unlock()

	if nil == s.database {
		return merkle.Digest{}, fault.ErrNotInitialised
	}

	batch := new(leveldb.Batch)
	s.attachments.put(batch, id[:], value)
	if err := s.database.Write(batch, nil); nil != err {
		s.log.Criticalf("put attachment: %s  write error: %s", id, err)
		return merkle.Digest{}, err
	}
	s.attachments.cached(id[:], value)

	s.log.Debugf("put attachment: %s  bytes: %d", id, len(data))
	return id, nil
}

// ResolveAttachment - content for a hash
func (s *Store) ResolveAttachment(id merkle.Digest) ([]byte, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if nil == s.database {
		return nil, fault.ErrNotInitialised
	}

	data, err := s.attachments.Get(id[:])
	if nil != err {
		return nil, err
	}
	if nil == data {
		return nil, &fault.UnresolvedError{
			Base: fault.ErrAttachmentNotFound,
			Id:   id.String(),
		}
	}
	if merkle.NewDigest(data) != id {
		s.log.Criticalf("resolve attachment: %s  content does not match hash", id)
		return nil, &fault.UnresolvedError{
			Base: fault.ErrAttachmentNotFound,
			Id:   id.String(),
		}
	}
	return append([]byte{}, data...), nil
}
