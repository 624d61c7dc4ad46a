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
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	metrics "github.com/rcrowley/go-metrics"

	"github.com/strandlab/dagseq/dna"
	"github.com/strandlab/dagseq/log"
	"github.com/strandlab/dagseq/util"
)

var serializeTime = func() metrics.Timer {
	timer := metrics.NewTimer()
	metrics.Register("serialize.write", timer)
	return timer
}()

// Serialize writes the container: the root pointer, the leaf count and the
// raw leaf words, then every layer as its size followed by its nodes. All
// integers are big-endian; pointers use the segmented variable-width form.
func (t *Tree) Serialize(w io.Writer) error {
	ts := time.Now()
	defer func() { serializeTime.UpdateSince(ts) }()

	if err := t.root.Serialize(w); err != nil {
		return err
	}
	if err := util.WriteUint64(w, uint64(len(t.leaves))); err != nil {
		return err
	}
	buf := make([]byte, 0, dna.Bytes(t.leafLen))
	for _, leaf := range t.leaves {
		buf = leaf.Serialize(buf[:0])
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	for _, layer := range t.nodes {
		if err := util.WriteUint64(w, uint64(len(layer))); err != nil {
			return err
		}
		for _, node := range layer {
			if err := node.Serialize(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// Deserialize reads a container back into a tree of the given strand width.
// The width is not part of the container and must match the one used when
// writing. A clean EOF in place of a layer size ends the container; any
// other truncation reports ErrBadFormat.
func Deserialize(r io.Reader, leafLen int) (*Tree, error) {
	tree := NewTree(leafLen)

	root, err := DeserializePointer(r)
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: missing root pointer", ErrBadFormat)
		}
		return nil, err
	}
	tree.root = root

	var count uint64
	if err := util.ReadUint64(r, &count); err != nil {
		return nil, fmt.Errorf("%w: missing leaf count: %v", ErrBadFormat, err)
	}
	size := dna.Bytes(leafLen)
	buf := make([]byte, size)
	tree.leaves = make([]dna.Strand, 0, count)
	for i := uint64(0); i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: truncated leaf %d: %v", ErrBadFormat, i, err)
		}
		tree.leaves = append(tree.leaves, dna.Deserialize(buf, leafLen))
	}

	for {
		var layerSize uint64
		err := util.ReadUint64(r, &layerSize)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: truncated layer size: %v", ErrBadFormat, err)
		}

		layer := make([]Node, 0, layerSize)
		for i := uint64(0); i < layerSize; i++ {
			node, err := DeserializeNode(r)
			if err != nil {
				return nil, err
			}
			layer = append(layer, node)
		}
		tree.nodes = append(tree.nodes, layer)
	}

	if len(tree.nodes) == 0 || len(tree.nodes[len(tree.nodes)-1]) != 1 {
		return nil, fmt.Errorf("%w: container has no singular root layer", ErrBadFormat)
	}
	return tree, nil
}

// Save writes the serialized tree to a file.
func (t *Tree) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	if err := t.Serialize(w); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	log.Infof("Saved tree to %s (%d bytes)", path, t.Bytes())
	return nil
}

// Load reads a serialized tree of the given strand width from a file.
func Load(path string, leafLen int) (*Tree, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Deserialize(bufio.NewReader(file), leafLen)
}
