package client

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/spf13/cobra"

	"github.com/max-niederman/beryl/pkg/generator"
)

// NewBenchCommand constructs the `bench` command: a local generator
// micro-benchmark. It never touches a server or the state store.
func NewBenchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark a local generator and plot mint latencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, _ := cmd.Flags().GetInt("count")
			genID, _ := cmd.Flags().GetInt("generator-id")
			epochStr, _ := cmd.Flags().GetString("epoch")

			epoch, err := parseEpoch(epochStr)
			if err != nil {
				return err
			}
			g, err := generator.New(generator.Options{ID: uint16(genID), Epoch: epoch})
			if err != nil {
				return err
			}

			// Tally waits without slowing the mint loop down.
			var waits atomic.Int64
			stream := g.Observe()
			go func() {
				for {
					select {
					case <-cmd.Context().Done():
						return
					case <-stream.Changes():
					}
					if sig, ok := stream.Next().(*generator.Signal); ok && sig != nil &&
						sig.Type == generator.SignalCounterOverflowWait {
						waits.Add(1)
					}
				}
			}()

			lat := make([]float64, 0, count)
			start := time.Now()
			for i := 0; i < count; i++ {
				t0 := time.Now()
				if _, err := g.Next(cmd.Context()); err != nil {
					return err
				}
				lat = append(lat, float64(time.Since(t0).Nanoseconds())/1e3)
			}
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "minted %d crystals in %s (%.0f/s)\n",
				count, elapsed.Round(time.Microsecond), float64(count)/elapsed.Seconds())
			fmt.Fprintf(out, "overflow waits observed: %d\n", waits.Load())
			fmt.Fprintln(out, "latency histogram (µs):")
			hist := histogram.Hist(10, lat)
			return histogram.Fprint(out, hist, histogram.Linear(40))
		},
	}
	cmd.Flags().Int("count", 100000, "Number of crystals to mint")
	cmd.Flags().Int("generator-id", 0, "Generator id to bench with")
	cmd.Flags().String("epoch", "2024-01-01T00:00:00Z", "Epoch (RFC3339 or unix ms)")
	return cmd
}
