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
	"os"
	"sort"
	"strconv"
)

// histogramChunk bounds the number of counts per CSV line; long layers
// continue on the next line.
const histogramChunk = 1000

// StoreHistogram writes one reference-count histogram per layer as CSV:
// counts in descending order, comma-separated, with a blank line between
// layers.
func (t *Tree) StoreHistogram(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)

	for layer := 0; layer < len(t.nodes); layer++ {
		frequencies := t.Histogram(layer)
		sort.Slice(frequencies, func(a, b int) bool {
			return frequencies[a] > frequencies[b]
		})

		for i, frequency := range frequencies {
			w.WriteString(strconv.FormatUint(frequency, 10))
			w.WriteByte(',')
			if (i+1)%histogramChunk == 0 {
				w.WriteByte('\n')
			}
		}
		if len(frequencies)%histogramChunk != 0 {
			w.WriteByte('\n')
		}
		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
