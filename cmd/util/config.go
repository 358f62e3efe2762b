package util

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/dObj/lib/object"
	"github.com/ValentinKolb/dObj/lib/store"
	"github.com/ValentinKolb/dObj/lib/store/mapstore"
	"github.com/ValentinKolb/dObj/lib/store/metered"
	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/viper"
)

const (
	BackingPlain      = "plain"
	BackingConcurrent = "concurrent"
)

// --------------------------------------------------------------------------
// Store configuration struct
// --------------------------------------------------------------------------

// StoreConfig holds the options that select how the objects of a command are stored.
type StoreConfig struct {
	Backing       string
	AtomicCompute bool
	LogLevel      string
}

// GetStoreConfig reads the store configuration from viper
func GetStoreConfig() *StoreConfig {
	return &StoreConfig{
		Backing:       strings.ToLower(viper.GetString("backing")),
		AtomicCompute: viper.GetBool("atomic-compute"),
		LogLevel:      viper.GetString("log-level"),
	}
}

// Options converts the configuration to mapstore options.
func (c *StoreConfig) Options() (*mapstore.Options, error) {
	var opts *mapstore.Options
	switch c.Backing {
	case BackingPlain, "":
		opts = mapstore.DefaultOptions()
	case BackingConcurrent:
		opts = mapstore.ConcurrentOptions()
	default:
		return nil, fmt.Errorf("invalid backing %s. must be one of %s, %s", c.Backing, BackingPlain, BackingConcurrent)
	}

	if c.AtomicCompute && c.Backing != BackingConcurrent {
		return nil, fmt.Errorf("atomic-compute requires the %s backing", BackingConcurrent)
	}
	opts.AtomicCompute = c.AtomicCompute
	return opts, nil
}

// NewMutableObject creates an empty mutable object with the configured backing.
// If set is not nil, all store operations are counted in set under the given name.
func (c *StoreConfig) NewMutableObject(set *metrics.Set, name string) (*object.MutableObject, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}

	var s store.MutableStore = mapstore.NewMutable(nil, opts)
	if set != nil {
		s = metered.WrapMutable(s, metered.NewMetrics(set, name))
	}
	return object.MutableOfStore(s), nil
}

// String returns a formatted string representation of the configuration
func (c *StoreConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Store")
	addField("Backing", c.Backing)
	addField("Atomic Compute", fmt.Sprintf("%t", c.AtomicCompute))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
