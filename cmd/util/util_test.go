package util

import (
	"strings"
	"testing"

	"github.com/ValentinKolb/dObj/lib/key"
	"github.com/ValentinKolb/dObj/lib/object"
	"github.com/ValentinKolb/dObj/lib/store/mapstore"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(text), "\n") {
		if len(line) > Wrap {
			t.Errorf("Line exceeds %d characters: %q", Wrap, line)
		}
	}
	if WrapString("") != "" {
		t.Errorf("Expected an empty string")
	}
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]logger.LogLevel{
		"debug":   logger.DEBUG,
		"INFO":    logger.INFO,
		"warn":    logger.WARNING,
		"warning": logger.WARNING,
		"error":   logger.ERROR,
	} {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLogLevel(%q) = (%v, %v), want %v", in, got, err, want)
		}
	}

	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Errorf("Expected an error for an invalid level")
	}
}

func TestStoreConfigOptions(t *testing.T) {
	tests := []struct {
		name    string
		config  StoreConfig
		atomic  bool
		wantErr bool
	}{
		{"default", StoreConfig{}, false, false},
		{"plain", StoreConfig{Backing: BackingPlain}, false, false},
		{"concurrent", StoreConfig{Backing: BackingConcurrent}, false, false},
		{"concurrent atomic", StoreConfig{Backing: BackingConcurrent, AtomicCompute: true}, true, false},
		{"plain atomic", StoreConfig{Backing: BackingPlain, AtomicCompute: true}, false, true},
		{"unknown", StoreConfig{Backing: "btree"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.config.Options()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if opts.AtomicCompute != tt.atomic {
				t.Errorf("Expected AtomicCompute=%t, got %t", tt.atomic, opts.AtomicCompute)
			}
			if opts.Factory == nil {
				t.Errorf("Expected a map factory")
			}
		})
	}
}

func TestNewMutableObjectMetered(t *testing.T) {
	set := metrics.NewSet()
	config := StoreConfig{Backing: BackingConcurrent}

	m, err := config.NewMutableObject(set, "cli")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	n := key.New[int]("n")
	object.Put(m, n, 1)

	var sb strings.Builder
	set.WritePrometheus(&sb)
	if !strings.Contains(sb.String(), `dobj_store_ops_total{store="cli",op="put"} 1`) {
		t.Errorf("Expected the put to be counted:\n%s", sb.String())
	}

	plain, err := (&StoreConfig{}).NewMutableObject(nil, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	object.Put(plain, n, 2)
	if v, _ := object.Get(plain, n); v != 2 {
		t.Errorf("Expected 2, got %d", v)
	}

	if _, err := (&StoreConfig{Backing: "none"}).NewMutableObject(nil, ""); err == nil {
		t.Errorf("Expected an error for an invalid backing")
	}
}

func TestStoreConfigString(t *testing.T) {
	s := (&StoreConfig{Backing: BackingConcurrent, AtomicCompute: true, LogLevel: "debug"}).String()
	for _, want := range []string{"STORE", "concurrent", "true", "LOGGING", "debug"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in\n%s", want, s)
		}
	}
}

// the default options must match what the library uses for MutableOf
func TestDefaultBacking(t *testing.T) {
	opts, _ := (&StoreConfig{}).Options()
	if opts.AtomicCompute != mapstore.DefaultOptions().AtomicCompute {
		t.Errorf("Unexpected default options")
	}
}
