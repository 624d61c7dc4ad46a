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

package main

import (
	"os"
	"sort"

	chart "github.com/wcharczuk/go-chart"

	"github.com/strandlab/dagseq/dag"
)

// chartPoints caps the rendered series; longer layers are sampled evenly.
const chartPoints = 2048

// renderChart plots the leaf-layer reference counts in descending order.
// After a frequency sort the curve is non-increasing; its tail shows how
// much of the leaf dictionary is rarely referenced.
func renderChart(tree *dag.Tree, path string) error {
	frequencies := tree.Histogram(0)
	sort.Slice(frequencies, func(a, b int) bool {
		return frequencies[a] > frequencies[b]
	})

	step := 1
	if len(frequencies) > chartPoints {
		step = (len(frequencies) + chartPoints - 1) / chartPoints
	}
	xs := make([]float64, 0, chartPoints)
	ys := make([]float64, 0, chartPoints)
	for i := 0; i < len(frequencies); i += step {
		xs = append(xs, float64(i))
		ys = append(ys, float64(frequencies[i]))
	}
	if len(xs) == 1 {
		// the renderer needs at least two points
		xs = append(xs, 1)
		ys = append(ys, ys[0])
	}

	graph := chart.Chart{
		XAxis: chart.XAxis{Name: "leaf rank"},
		YAxis: chart.YAxis{Name: "references"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "leaf references",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
