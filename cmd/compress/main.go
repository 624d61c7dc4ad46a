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

// Command compress builds the shared-tree representation of a FASTA file,
// frequency-sorts it and writes the serialized container.
package main

import (
	"errors"
	"fmt"
	"os"

	metrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"

	"github.com/strandlab/dagseq/dag"
	"github.com/strandlab/dagseq/dag/cache"
	"github.com/strandlab/dagseq/dna"
	"github.com/strandlab/dagseq/fasta"
	"github.com/strandlab/dagseq/log"
)

// childCountCacheSize bounds the random-access child-count cache.
const childCountCacheSize = 1 << 26

type options struct {
	output     string
	noSave     bool
	histogram  string
	chart      string
	dnaSize    int
	verbose    bool
	statistics bool
}

type usageError struct {
	message string
}

func (e *usageError) Error() string {
	return e.message + " (see --help)"
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, dag.ErrCapacity) {
		return 1
	}
	return 2
}

func newCompressCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "compress [options] <input>",
		Short:         "Compress a FASTA sequence into a shared balanced tree",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose && opts.statistics {
				return &usageError{"--verbose and --statistics are mutually exclusive"}
			}
			if opts.dnaSize < 1 || opts.dnaSize > dna.MaxLength {
				return &usageError{fmt.Sprintf("--dna-size must lie in [1, %d]", dna.MaxLength)}
			}
			return run(args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.output, "output", "", "path of the serialized tree (default <input>.dag)")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "skip writing the serialized tree")
	cmd.Flags().StringVar(&opts.histogram, "histogram", "", "write per-layer reference histograms as CSV")
	cmd.Flags().StringVar(&opts.chart, "chart", "", "render the leaf reference distribution as PNG")
	cmd.Flags().IntVar(&opts.dnaSize, "dna-size", 12, "strand width in nucleotides")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "enable debug logging and a summary report")
	cmd.Flags().BoolVar(&opts.statistics, "statistics", false, "dump collected metrics after compressing")

	return cmd
}

func run(input string, opts *options) error {
	level := log.INFO
	if opts.verbose {
		level = log.DEBUG
	}
	log.SetLogger("compress", level)

	reader, err := fasta.Open(input, opts.dnaSize)
	if err != nil {
		return err
	}
	defer reader.Close()

	log.Infof("Building tree from %s with %d-nucleotide strands", input, opts.dnaSize)
	tree, err := dag.Build(reader, opts.dnaSize)
	if err != nil {
		return err
	}
	tree.SetCache(cache.NewFastCache(childCountCacheSize))

	log.Info("Sorting layers by reference frequency")
	tree.FrequencySort()

	if opts.histogram != "" {
		if err := tree.StoreHistogram(opts.histogram); err != nil {
			return err
		}
		log.Infof("Wrote histogram CSV to %s", opts.histogram)
	}
	if opts.chart != "" {
		if err := renderChart(tree, opts.chart); err != nil {
			return err
		}
		log.Infof("Wrote reference distribution chart to %s", opts.chart)
	}

	if !opts.noSave {
		output := opts.output
		if output == "" {
			output = input + ".dag"
		}
		if err := tree.Save(output); err != nil {
			return err
		}
	}

	if opts.verbose {
		report(tree, input)
	}
	if opts.statistics {
		report(tree, input)
		metrics.WriteOnce(metrics.DefaultRegistry, os.Stderr)
	}
	return nil
}

func report(tree *dag.Tree, input string) {
	fmt.Printf("depth:       %d\n", tree.Depth())
	fmt.Printf("width:       %d\n", tree.Width())
	fmt.Printf("leaves:      %d\n", tree.LeafCount())
	fmt.Printf("nodes:       %d\n", tree.NodeCount())
	for layer := 0; layer < tree.Depth(); layer++ {
		fmt.Printf("  layer %-4d %d\n", layer, tree.LayerSize(layer))
	}
	compressed := tree.Bytes()
	fmt.Printf("compressed:  %d bytes\n", compressed)
	if info, err := os.Stat(input); err == nil && info.Size() > 0 {
		ratio := float64(compressed) / float64(info.Size())
		fmt.Printf("ratio:       %.4f\n", ratio)
	}
}

func main() {
	if err := newCompressCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "compress: %v\n", err)
		os.Exit(exitCode(err))
	}
}
