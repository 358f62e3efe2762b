package race

import (
	"testing"

	cmdUtil "github.com/ValentinKolb/dObj/cmd/util"
	gometrics "github.com/rcrowley/go-metrics"
)

func TestAtomicComputeNeverRaces(t *testing.T) {
	config := &cmdUtil.StoreConfig{Backing: cmdUtil.BackingConcurrent, AtomicCompute: true}
	timer := gometrics.NewTimer()

	res, err := runRounds(config, 20, 8, timer)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if res.racyRounds != 0 {
		t.Errorf("Expected no racy rounds with an atomic compute, got %d", res.racyRounds)
	}
	if res.inconsistent != 0 {
		t.Errorf("Expected all goroutines to observe the stored value, got %d inconsistent rounds", res.inconsistent)
	}
	for i, n := range res.invocations {
		if n != 1 {
			t.Errorf("Round %d: expected exactly one compute invocation, got %.0f", i, n)
		}
	}
	if timer.Count() != 20*8 {
		t.Errorf("Expected %d timed calls, got %d", 20*8, timer.Count())
	}
}

func TestSingleGoroutine(t *testing.T) {
	config := &cmdUtil.StoreConfig{Backing: cmdUtil.BackingPlain}

	res, err := runRounds(config, 5, 1, gometrics.NewTimer())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i, n := range res.invocations {
		if n != 1 {
			t.Errorf("Round %d: expected one invocation, got %.0f", i, n)
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	config := &cmdUtil.StoreConfig{Backing: "unknown"}
	if _, err := runRounds(config, 1, 1, gometrics.NewTimer()); err == nil {
		t.Errorf("Expected an error for an invalid backing")
	}
}
