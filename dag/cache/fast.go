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

	"github.com/VictoriaMetrics/fastcache"
	metrics "github.com/rcrowley/go-metrics"

	"github.com/strandlab/dagseq/util"
)

type FastCache struct {
	cached *fastcache.Cache

	gets metrics.Timer
	puts metrics.Timer
}

func NewFastCache(maxBytes int64) *FastCache {
	cache := fastcache.New(int(maxBytes))
	gets := metrics.NewTimer()
	puts := metrics.NewTimer()
	metrics.Register("cache.gets", gets)
	metrics.Register("cache.puts", puts)
	return &FastCache{cached: cache, gets: gets, puts: puts}
}

func (c FastCache) Get(key []byte) (uint64, bool) {
	ts := time.Now()
	value := c.cached.Get(nil, key)
	c.gets.UpdateSince(ts)
	if len(value) != 8 {
		return 0, false
	}
	return util.BytesAsUint64(value), true
}

func (c *FastCache) Put(key []byte, count uint64) {
	ts := time.Now()
	c.cached.Set(key, util.Uint64AsBytes(count))
	c.puts.UpdateSince(ts)
}

func (c FastCache) Size() int {
	var s fastcache.Stats
	c.cached.UpdateStats(&s)
	return int(s.EntriesCount)
}

func (c *FastCache) Reset() {
	c.cached.Reset()
}
