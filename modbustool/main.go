// modbustool issues read and write operations against the holding and input
// registers of a Modbus TCP device.
package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fieldprobe/fieldprobe/pkg/toolutil"
)

func main() {
	root := &cobra.Command{
		Use:   "modbustool",
		Short: "Modbus TCP register client",
		Long:  "A small Modbus TCP CLI with read-register and write-register commands.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return toolutil.SetLogLevel(viper.GetString("log-level"))
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cobra.OnInitialize(initConfig)
	root.AddCommand(readRegisterCommand(), writeRegisterCommand())

	if err := root.Execute(); err != nil {
		toolutil.PrintError("%v", err)
		os.Exit(1)
	}
}

// initConfig wires env vars and an optional config file behind the flags, so
// FIELDPROBE_MODBUS_SERVER or a .fieldprobe.yaml can hold connection defaults.
func initConfig() {
	viper.SetConfigName(".fieldprobe")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}

	viper.SetEnvPrefix("FIELDPROBE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("log-level", "info")
	viper.SetDefault("modbus-server", "localhost:502")

	// the config file is optional, but a broken one should not pass silently
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			toolutil.PrintWarn("config file ignored: %v", err)
		}
	}
}
