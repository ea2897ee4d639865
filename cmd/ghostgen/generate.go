package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/notargets/ghostgrid/block"
	"github.com/notargets/ghostgrid/config"
	"github.com/notargets/ghostgrid/diagnostics"
	"github.com/notargets/ghostgrid/ghostgen"
	"github.com/notargets/ghostgrid/ghostgen/demo"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the ghost-cell generation pipeline over a synthetic block row",
	Run: func(cmd *cobra.Command, args []string) {
		numBlocks, _ := cmd.Flags().GetInt("blocks")
		numPeers, _ := cmd.Flags().GetInt("peers")
		outputGhostLevel, _ := cmd.Flags().GetInt("ghostLevel")
		perfEnabled, _ := cmd.Flags().GetBool("perf")
		profileMode, _ := cmd.Flags().GetString("profile")

		jp := &config.JobParameters{
			OutputGhostLevel: outputGhostLevel,
			NumPeers:         numPeers,
		}
		jp.Print()

		stop := startProfile(profileMode)
		defer stop()

		blocks := syntheticBlockRow(numBlocks)

		bp := demo.NewBlockPartitioner(blocks, demo.DefaultPartitionConfig(int32(numPeers)))
		_, stores, err := bp.Partition()
		if err != nil {
			log.Fatalf("ghostgrid: partitioning failed: %v", err)
		}

		perfStop := startPerf(perfEnabled)
		ghostgen.Generate(stores, ghostgen.Job{OutputGhostLevel: outputGhostLevel})
		perfStop()

		diagnostics.Report(stores)
	},
}

// syntheticBlockRow builds numBlocks unit-cube image blocks laid out
// side by side along x, each 4x4x4 cells, for exercising the pipeline
// without needing a real host dataset.
func syntheticBlockRow(numBlocks int) []*block.InputBlock {
	blocks := make([]*block.InputBlock, numBlocks)
	for i := 0; i < numBlocks; i++ {
		blocks[i] = &block.InputBlock{
			GID:                   block.GID(i + 1),
			Flavor:                block.Image,
			Extent:                block.Extent{0, 4, 0, 4, 0, 4},
			Origin:                [3]float64{float64(4 * i), 0, 0},
			Spacing:               [3]float64{1, 1, 1},
			OrientationQuaternion: [4]float64{1, 0, 0, 0},
			CellArrays: []*block.Array{
				{Name: "id", NumComponents: 1, Data: constantArray(64, float64(i))},
			},
		}
	}
	return blocks
}

func constantArray(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntP("blocks", "b", 4, "number of synthetic blocks to generate")
	generateCmd.Flags().IntP("peers", "p", 2, "number of peers to partition blocks across")
	generateCmd.Flags().IntP("ghostLevel", "g", 1, "number of ghost layers to grow at each contact")
	generateCmd.Flags().Bool("perf", false, "sample hardware performance counters during the exchange phases")
	generateCmd.Flags().String("profile", "", "profile the run: one of cpu, mem, trace")
}
