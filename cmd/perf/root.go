package perf

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	cmdUtil "github.com/ValentinKolb/dObj/cmd/util"
	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/object"
	"github.com/VictoriaMetrics/metrics"
	"github.com/fatih/color"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Logger = logger.GetLogger("perf")

var (
	PerfCmd = &cobra.Command{
		Use:   "perf",
		Short: "Performance testing tool for dObj objects",
		Long: `Runs a series of benchmarks against mutable objects with the configured backing.
The configuration can be set via command line flags or environment variables (e.g. DOBJ_THREADS=4).`,
		PreRunE: processPerfConfig,
		RunE:    run,
	}
	perfNumThreads = 10
	perfKeySpread  = 100
	perfSkip       = make([]string, 0)
	perfMetrics    = false
)

// benchmark is a named operation run by the perf command
type benchmark struct {
	name string
	fn   func(b *testing.B, newObject func() *object.MutableObject)
}

func init() {
	name := "skip"
	PerfCmd.Flags().String(name, "", cmdUtil.WrapString("Benchmarks to skip (comma separated - e.g. put,with)"))
	name = "threads"
	PerfCmd.Flags().Int(name, 10, cmdUtil.WrapString("Number of goroutines to use for the benchmark (only for the concurrent backing)"))
	name = "keys"
	PerfCmd.Flags().Int(name, 100, cmdUtil.WrapString("How many different keys to use for the tests"))
	name = "csv"
	PerfCmd.Flags().String(name, "", cmdUtil.WrapString("Optional path to save benchmark results as CSV"))
	name = "metrics"
	PerfCmd.Flags().Bool(name, false, cmdUtil.WrapString("Count all store operations and print them in the Prometheus text format"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfMetrics = viper.GetBool("metrics")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	if perfKeySpread < 1 {
		return fmt.Errorf("keys must be at least 1, got %d", perfKeySpread)
	}
	if perfNumThreads < 1 {
		return fmt.Errorf("threads must be at least 1, got %d", perfNumThreads)
	}
	return nil
}

func run(_ *cobra.Command, _ []string) error {
	config := cmdUtil.GetStoreConfig()
	if _, err := config.Options(); err != nil {
		return err
	}

	var set *metrics.Set
	if perfMetrics {
		set = metrics.NewSet()
	}

	fmt.Println("Performance testing tool for dObj objects")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(config.String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Printf("Keys:    %d\n", perfKeySpread)
	fmt.Println()

	if config.Backing != cmdUtil.BackingConcurrent && perfNumThreads > 1 {
		Logger.Warningf("the %s backing is not safe for concurrent use, running single-threaded", config.Backing)
	}

	fmt.Println("starting tests...")

	keys := makeKeys(perfKeySpread)
	newObject := func() *object.MutableObject {
		// the configuration was validated above
		m, _ := config.NewMutableObject(set, "perf")
		return m
	}
	parallel := config.Backing == cmdUtil.BackingConcurrent

	names := make([]string, 0)
	results := make(map[string]testing.BenchmarkResult)

	for _, bm := range benchmarks(keys, parallel) {
		result := testing.Benchmark(func(b *testing.B) {
			if shouldSkip(bm.name) {
				return
			}
			bm.fn(b, newObject)
		})

		names = append(names, bm.name)
		results[bm.name] = result
		printResult(bm.name, result)
	}

	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, names, results, config); err != nil {
			return fmt.Errorf("failed to export results to CSV: %w", err)
		}
		fmt.Println("Export complete")
	}

	if set != nil {
		fmt.Println()
		fmt.Println("Store metrics:")
		set.WritePrometheus(os.Stdout)
	}

	return nil
}

// --------------------------------------------------------------------------
// Benchmarks
// --------------------------------------------------------------------------

func benchmarks(keys []key.Key[int], parallel bool) []benchmark {
	n := len(keys)

	runOp := func(b *testing.B, op func(i int)) {
		b.ResetTimer()
		if !parallel {
			for i := 0; i < b.N; i++ {
				op(i)
			}
			return
		}

		b.SetParallelism(perfNumThreads)
		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				op(counter)
				counter++
			}
		})
	}

	prefill := func(m *object.MutableObject) {
		for i, k := range keys {
			object.Put(m, k, i)
		}
	}

	return []benchmark{
		{"put", func(b *testing.B, newObject func() *object.MutableObject) {
			m := newObject()
			runOp(b, func(i int) {
				object.Put(m, keys[i%n], i)
			})
		}},
		{"get", func(b *testing.B, newObject func() *object.MutableObject) {
			m := newObject()
			prefill(m)
			runOp(b, func(i int) {
				object.Get(m, keys[i%n])
			})
		}},
		{"get-all", func(b *testing.B, newObject func() *object.MutableObject) {
			m := newObject()
			prefill(m)
			ids := m.Keys()
			runOp(b, func(int) {
				m.GetAll(ids)
			})
		}},
		{"compute", func(b *testing.B, newObject func() *object.MutableObject) {
			m := newObject()
			prefill(m)
			runOp(b, func(i int) {
				k := keys[i%n]
				if i%2 == 0 {
					m.Remove(k)
				}
				object.ComputeIfAbsent(m, k, func() (int, bool) { return i, true })
			})
		}},
		{"with", func(b *testing.B, newObject func() *object.MutableObject) {
			m := newObject()
			prefill(m)
			extra := key.New[string]("extra")
			runOp(b, func(int) {
				m.With(extra.Of("value"))
			})
		}},
		{"without", func(b *testing.B, newObject func() *object.MutableObject) {
			m := newObject()
			prefill(m)
			runOp(b, func(i int) {
				m.Without(keys[i%n])
			})
		}},
		{"merge", func(b *testing.B, newObject func() *object.MutableObject) {
			m := newObject()
			prefill(m)
			other := object.ToObject(m)
			base := object.Of()
			runOp(b, func(int) {
				object.Merge(base, other)
			})
		}},
		{"mixed", func(b *testing.B, newObject func() *object.MutableObject) {
			m := newObject()
			prefill(m)
			runOp(b, func(i int) {
				k := keys[i%n]
				switch i % 4 {
				case 0:
					object.Put(m, k, i)
				case 1:
					object.Get(m, k)
				case 2:
					m.Remove(k)
				case 3:
					object.ComputeIfAbsent(m, k, func() (int, bool) { return i, true })
				}
			})
		}},
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	for _, skip := range perfSkip {
		if test == strings.TrimSpace(skip) {
			return true
		}
	}
	return false
}

func makeKeys(n int) []key.Key[int] {
	keys := make([]key.Key[int], n)
	for i := range keys {
		keys[i] = key.New[int](fmt.Sprintf("perf-%d", i))
	}
	return keys
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	name := color.CyanString("%-20s", test)
	if result.NsPerOp() == 0 {
		fmt.Printf("%s%s\n", name, color.YellowString("skipped"))
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	fmt.Printf("%s%.0fns/op (%s/op)\t%s\n", name, nsPerOp, time.Duration(nsPerOp), color.GreenString("%.0f ops/sec", opsPerSec))
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, names []string, results map[string]testing.BenchmarkResult, config *cmdUtil.StoreConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Backing", "AtomicCompute", "Threads", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, test := range names {
		result := results[test]

		var nsPerOp, opsPerSec float64
		skipped := "true"
		if result.NsPerOp() != 0 {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			config.Backing,
			strconv.FormatBool(config.AtomicCompute),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %w", test, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
