package race

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	cmdUtil "github.com/ValentinKolb/dObj/cmd/util"
	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/object"
	"github.com/ValentinKolb/dObj/lib/util"
	"github.com/fatih/color"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Logger = logger.GetLogger("race")

var (
	RaceCmd = &cobra.Command{
		Use:   "race",
		Short: "Measure how often concurrent compute-if-absent calls race",
		Long: `Starts a number of goroutines that call ComputeIfAbsent on the same absent key at the
same time and counts how many of them ran their compute function. Without an atomic
compute more than one invocation per round means the race was observed.

Use --backing=concurrent --atomic-compute to see exactly one invocation per round.`,
		PreRunE: processRaceConfig,
		RunE:    run,
	}
	raceGoroutines = 8
	raceRounds     = 100
)

func init() {
	name := "goroutines"
	RaceCmd.Flags().Int(name, 8, cmdUtil.WrapString("Number of goroutines calling ComputeIfAbsent in each round"))
	name = "rounds"
	RaceCmd.Flags().Int(name, 100, cmdUtil.WrapString("Number of rounds to run"))
}

func processRaceConfig(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	raceGoroutines = viper.GetInt("goroutines")
	raceRounds = viper.GetInt("rounds")

	if raceGoroutines < 1 || raceRounds < 1 {
		return fmt.Errorf("goroutines and rounds must be at least 1")
	}
	return nil
}

func run(_ *cobra.Command, _ []string) error {
	config := cmdUtil.GetStoreConfig()
	if _, err := config.Options(); err != nil {
		return err
	}
	if config.Backing != cmdUtil.BackingConcurrent && raceGoroutines > 1 {
		return fmt.Errorf("the %s backing is not safe for concurrent use, use --backing=%s", config.Backing, cmdUtil.BackingConcurrent)
	}

	fmt.Println("Compute-if-absent race detector")
	fmt.Println(config.String())
	fmt.Printf("Goroutines: %d\n", raceGoroutines)
	fmt.Printf("Rounds:     %d\n", raceRounds)
	fmt.Println()

	registry := gometrics.NewRegistry()
	callTimer := gometrics.GetOrRegisterTimer("compute.call", registry)

	res, err := runRounds(config, raceRounds, raceGoroutines, callTimer)
	if err != nil {
		return err
	}

	printReport(res, callTimer)
	return nil
}

// --------------------------------------------------------------------------
// Rounds
// --------------------------------------------------------------------------

// result summarizes all rounds
type result struct {
	invocations  []float64 // compute invocations per round
	racyRounds   int       // rounds with more than one invocation
	inconsistent int       // rounds in which goroutines observed different values
}

// runRounds runs the given number of rounds on fresh objects and records the
// latency of every ComputeIfAbsent call in timer.
func runRounds(config *cmdUtil.StoreConfig, rounds, goroutines int, timer gometrics.Timer) (*result, error) {
	res := &result{invocations: make([]float64, 0, rounds)}

	for round := 0; round < rounds; round++ {
		m, err := config.NewMutableObject(nil, "")
		if err != nil {
			return nil, err
		}

		n, consistent := runRound(m, goroutines, timer)
		Logger.Debugf("round %d: %d compute invocations (consistent=%t)", round, n, consistent)

		res.invocations = append(res.invocations, float64(n))
		if n > 1 {
			res.racyRounds++
		}
		if !consistent {
			res.inconsistent++
		}
	}

	return res, nil
}

// runRound lets all goroutines call ComputeIfAbsent on the same absent key at
// once. It returns the number of compute invocations and whether all
// goroutines observed the same value.
func runRound(m *object.MutableObject, goroutines int, timer gometrics.Timer) (int, bool) {
	k := key.New[int]("race")

	var (
		calls atomic.Int64
		start = make(chan struct{})
		wg    sync.WaitGroup
	)
	observed := make([]int, goroutines)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			<-start

			begin := time.Now()
			v, _ := object.ComputeIfAbsent(m, k, func() (int, bool) {
				calls.Add(1)
				// widen the window between the get and the put
				time.Sleep(50 * time.Microsecond)
				return g + 1, true
			})
			timer.UpdateSince(begin)

			observed[g] = v
		}(g)
	}

	close(start)
	wg.Wait()

	stored, _ := object.Get(m, k)
	consistent := true
	for _, v := range observed {
		if v != stored {
			consistent = false
		}
	}

	return int(calls.Load()), consistent
}

// --------------------------------------------------------------------------
// Output
// --------------------------------------------------------------------------

func printReport(res *result, timer gometrics.Timer) {
	stats := util.NewStats(res.invocations)

	fmt.Println("Compute invocations per round:")
	fmt.Printf("  %-22s: %.2f\n", "Mean", stats.Mean)
	fmt.Printf("  %-22s: %.2f\n", "Std Deviation", stats.StdDeviation)
	fmt.Printf("  %-22s: %.0f\n", "Min", stats.Min)
	fmt.Printf("  %-22s: %.0f\n", "Max", stats.Max)
	fmt.Printf("  %-22s: %.0f\n", "Total", stats.Sum)
	fmt.Println()

	ps := timer.Percentiles([]float64{0.5, 0.95, 0.99})
	fmt.Println("ComputeIfAbsent latency:")
	fmt.Printf("  %-22s: %d\n", "Calls", timer.Count())
	fmt.Printf("  %-22s: %s\n", "Mean", time.Duration(timer.Mean()))
	fmt.Printf("  %-22s: %s\n", "p50", time.Duration(ps[0]))
	fmt.Printf("  %-22s: %s\n", "p95", time.Duration(ps[1]))
	fmt.Printf("  %-22s: %s\n", "p99", time.Duration(ps[2]))
	fmt.Printf("  %-22s: %s\n", "Max", time.Duration(timer.Max()))
	fmt.Println()

	if res.racyRounds == 0 {
		fmt.Println(color.GreenString("no race observed in %d rounds", stats.Count))
	} else {
		fmt.Println(color.RedString("race observed in %d of %d rounds", res.racyRounds, stats.Count))
	}
	if res.inconsistent > 0 {
		fmt.Println(color.RedString("%d rounds returned different values to different goroutines", res.inconsistent))
	}
}
