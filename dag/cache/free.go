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

package cache

import (
	"time"

	"github.com/coocood/freecache"
	metrics "github.com/rcrowley/go-metrics"

	"github.com/strandlab/dagseq/util"
)

type FreeCache struct {
	cached *freecache.Cache

	gets metrics.Timer
	puts metrics.Timer
}

func NewFreeCache(initialSize int) *FreeCache {
	cache := freecache.NewCache(initialSize)
	gets := metrics.NewTimer()
	puts := metrics.NewTimer()
	metrics.Register("cache.gets", gets)
	metrics.Register("cache.puts", puts)
	return &FreeCache{cached: cache, gets: gets, puts: puts}
}

func (c FreeCache) Get(key []byte) (uint64, bool) {
	ts := time.Now()
	value, err := c.cached.Get(key)
	c.gets.UpdateSince(ts)
	if err != nil || len(value) != 8 {
		return 0, false
	}
	return util.BytesAsUint64(value), true
}

func (c *FreeCache) Put(key []byte, count uint64) {
	ts := time.Now()
	c.cached.Set(key, util.Uint64AsBytes(count), 0)
	c.puts.UpdateSince(ts)
}

func (c FreeCache) Size() int {
	return int(c.cached.EntryCount())
}

func (c *FreeCache) Reset() {
	c.cached.Clear()
}
