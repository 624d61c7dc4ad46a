/*
   Copyright 2018 Banco Bilbao Vizcaya Argentaria, S.A.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cache provides the child-count caches consulted during random
// access into a tree. Keys are packed (layer, index) positions; values are
// subtree leaf counts.
package cache

// Cache is the read/write interface shared by all implementations.
type Cache interface {
	Get(key []byte) (uint64, bool)
	Put(key []byte, count uint64)
	Size() int
	Reset()
}

const keySize = 6

// SimpleCache is a plain map cache with fixed-size keys. It is unbounded
// and intended for tests and small trees.
type SimpleCache struct {
	cached map[[keySize]byte]uint64
}

func NewSimpleCache(numEntries uint64) *SimpleCache {
	return &SimpleCache{cached: make(map[[keySize]byte]uint64, numEntries)}
}

func (c SimpleCache) Get(key []byte) (uint64, bool) {
	var k [keySize]byte
	copy(k[:], key[:keySize])
	count, ok := c.cached[k]
	return count, ok
}

func (c *SimpleCache) Put(key []byte, count uint64) {
	var k [keySize]byte
	copy(k[:], key[:keySize])
	c.cached[k] = count
}

func (c SimpleCache) Size() int {
	return len(c.cached)
}

func (c *SimpleCache) Reset() {
	c.cached = make(map[[keySize]byte]uint64)
}
