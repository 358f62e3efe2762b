package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/dObj/cmd/perf"
	"github.com/ValentinKolb/dObj/cmd/race"
	"github.com/ValentinKolb/dObj/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "0.1.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dobj",
		Short: "type-safe heterogeneous key-value objects",
		Long: fmt.Sprintf(`dObj (v%s)

A library of type-safe, heterogeneous key-value objects with pluggable
stores, and tools to measure them.`, Version),
		PersistentPreRunE: initCommand,
		SilenceUsage:      true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dObj",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dObj v%s\n", Version)
		},
	}
)

func init() {
	cobra.OnInitialize(util.InitConfig)

	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(race.RaceCmd)
	RootCmd.AddCommand(versionCmd)

	util.SetupStoreFlags(RootCmd)
}

// initCommand binds the persistent flags and sets up logging for every subcommand
func initCommand(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	return util.InitLoggers(viper.GetString("log-level"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
