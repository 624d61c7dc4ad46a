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

package dag

import (
	"sort"
	"time"

	metrics "github.com/rcrowley/go-metrics"
	"golang.org/x/sync/errgroup"

	"github.com/strandlab/dagseq/dna"
	"github.com/strandlab/dagseq/log"
)

var sortTime = func() metrics.Timer {
	timer := metrics.NewTimer()
	metrics.Register("sort.layer", timer)
	return timer
}()

// references counts how often each entry of the target layer is referenced
// from the layer above, or from the root for the topmost layer. Pass
// leafLayer to count leaf references from layer 0. Null children do not
// count.
func (t *Tree) references(target int) []uint64 {
	size := len(t.leaves)
	if target != leafLayer {
		size = len(t.nodes[target])
	}
	counts := make([]uint64, size)

	if target == len(t.nodes)-1 {
		counts[t.root.Index()]++
		return counts
	}
	for _, node := range t.nodes[target+1] {
		if !node.Left.IsNull() {
			counts[node.Left.Index()]++
		}
		if !node.Right.IsNull() {
			counts[node.Right.Index()]++
		}
	}
	return counts
}

// Histogram returns the reference counts gathered by the nodes of the given
// layer over their referents: leaves for layer 0, layer-1 nodes otherwise.
func (t *Tree) Histogram(layer int) []uint64 {
	return t.references(layer - 1)
}

// sortLayer reorders the target layer by decreasing reference count and
// rewires the referring pointers one layer up. The stable permutation keeps
// the result deterministic for equal counts.
func (t *Tree) sortLayer(target int) {
	ts := time.Now()
	counts := t.references(target)

	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	remapped := make([]uint64, len(order))
	for rank, old := range order {
		remapped[old] = uint64(rank)
	}

	t.reorder(target, remapped)
	t.rewire(target, remapped)
	sortTime.UpdateSince(ts)
}

// reorder moves every entry of the target layer to its remapped position.
func (t *Tree) reorder(target int, remapped []uint64) {
	if target == leafLayer {
		reordered := make([]dna.Strand, len(t.leaves))
		for old, leaf := range t.leaves {
			reordered[remapped[old]] = leaf
		}
		t.leaves = reordered
		return
	}
	reordered := make([]Node, len(t.nodes[target]))
	for old, node := range t.nodes[target] {
		reordered[remapped[old]] = node
	}
	t.nodes[target] = reordered
}

// rewire rewrites every pointer targeting the reordered layer; transform
// annotations are preserved and nulls stay untouched.
func (t *Tree) rewire(target int, remapped []uint64) {
	update := func(p Pointer) Pointer {
		if p.IsNull() {
			return p
		}
		return NewPointer(remapped[p.Index()], p.IsMirrored(), p.IsTransposed(), p.IsInvariant())
	}

	if target == len(t.nodes)-1 {
		t.root = update(t.root)
		return
	}
	parents := t.nodes[target+1]
	for i, node := range parents {
		parents[i] = Node{Left: update(node.Left), Right: update(node.Right)}
	}
}

// FrequencySort reorders every layer, leaves included, so that the most
// referenced entries get the smallest indices, shrinking the variable-width
// pointer encoding. Layers are processed in two interleaved waves: sorting
// a layer writes only that layer and the pointers one layer up, so
// alternating layers never conflict and each wave runs its layers on
// independent goroutines. Any installed child-count cache is reset, since
// entry indices change.
func (t *Tree) FrequencySort() {
	depth := len(t.nodes)
	log.Debugf("Frequency-sorting %d layers", depth)

	for _, wave := range [2]int{leafLayer, 0} {
		g := new(errgroup.Group)
		for target := wave; target < depth; target += 2 {
			target := target
			g.Go(func() error {
				t.sortLayer(target)
				return nil
			})
		}
		_ = g.Wait()
	}

	if t.counts != nil {
		t.counts.Reset()
	}
}
