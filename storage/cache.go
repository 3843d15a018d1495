// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - read cache in front of the pools, keyed by prefixed key
type Cache interface {
	Get(string) ([]byte, bool)
	Set(string, []byte)
	Clear()
}

const (
	defaultExpiration = 2 * time.Minute
	minimumExpiration = time.Second
)

type dbCache struct {
	expiration time.Duration
	cache      *cache.Cache
}

func newCache(expiration time.Duration) Cache {
	if expiration < minimumExpiration {
		expiration = defaultExpiration
	}
	return &dbCache{
		expiration: expiration,
		cache:      cache.New(expiration, 2*expiration),
	}
}

func (c *dbCache) Get(key string) ([]byte, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	return obj.([]byte), true
}

func (c *dbCache) Set(key string, value []byte) {
	c.cache.Set(key, value, c.expiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
