package commands

import (
	"fmt"
	"time"

	"github.com/markkurossi/tabulate"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bytom/sm3/crypto"
)

const mebibyte = 1 << 20

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure SM3 throughput against other 256-bit hashes",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().Int("size", 64, "MiB hashed per algorithm")
	benchCmd.Flags().StringSlice("algo", crypto.HashNames(), "algorithms to measure")
	RootCmd.AddCommand(benchCmd)
}

type benchResult struct {
	name    string
	size    int
	elapsed time.Duration
}

func (r benchResult) throughput() float64 {
	seconds := r.elapsed.Seconds()
	if seconds == 0 {
		return 0
	}
	return float64(r.size) / seconds
}

func runBench(cmd *cobra.Command, args []string) error {
	size, err := cmd.Flags().GetInt("size")
	if err != nil {
		return err
	}
	if size <= 0 {
		return newUserError("size must be positive")
	}
	algos, err := cmd.Flags().GetStringSlice("algo")
	if err != nil {
		return err
	}

	results := make([]benchResult, 0, len(algos))
	for _, name := range algos {
		r, err := benchHash(name, size)
		if err != nil {
			return newUserError(err.Error())
		}
		log.WithFields(log.Fields{"module": logModule, "algo": name, "elapsed": r.elapsed}).Debug("bench finished")
		results = append(results, r)
	}

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Algorithm").SetAlign(tabulate.ML)
	tab.Header("Size").SetAlign(tabulate.MR)
	tab.Header("Time").SetAlign(tabulate.MR)
	tab.Header("MiB/s").SetAlign(tabulate.MR)
	for _, r := range results {
		row := tab.Row()
		row.Column(r.name)
		row.Column(fmt.Sprintf("%d MiB", r.size))
		row.Column(r.elapsed.String())
		row.Column(fmt.Sprintf("%.1f", r.throughput()))
	}
	tab.Print(cmd.OutOrStdout())
	return nil
}

// benchHash writes size MiB into a fresh instance of the named hash.
func benchHash(name string, size int) (benchResult, error) {
	h, err := crypto.NewHash(name)
	if err != nil {
		return benchResult{}, err
	}

	buf := make([]byte, mebibyte)
	for i := range buf {
		buf[i] = byte(i)
	}

	start := time.Now()
	for i := 0; i < size; i++ {
		h.Write(buf)
	}
	h.Sum(nil)
	return benchResult{name: name, size: size, elapsed: time.Since(start)}, nil
}
