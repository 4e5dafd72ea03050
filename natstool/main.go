// natstool talks to a NATS server: it can subscribe to a subject, publish a
// message, or enumerate the subjects currently seeing traffic.
package main

import (
	"errors"
	"os"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fieldprobe/fieldprobe/pkg/toolutil"
)

var (
	serverURL string
	username  string
	password  string
	authToken string
	verbose   bool
)

func main() {
	root := &cobra.Command{
		Use:   "natstool",
		Short: "NATS messaging client",
		Long:  "A small NATS CLI with subscribe, publish and list-subjects commands.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return toolutil.SetLogLevel(viper.GetString("log-level"))
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "NATS server URL (default from config)")
	root.PersistentFlags().StringVar(&username, "username", "", "Username for user/password authentication")
	root.PersistentFlags().StringVar(&password, "password", "", "Password for user/password authentication")
	root.PersistentFlags().StringVar(&authToken, "token", "", "Token authentication (exclusive with username/password)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print message details, not just payloads")

	cobra.OnInitialize(initConfig)
	root.AddCommand(subscribeCommand(), publishCommand(), listSubjectsCommand())

	if err := root.Execute(); err != nil {
		toolutil.PrintError("%v", err)
		os.Exit(1)
	}
}

// initConfig wires env vars and an optional config file behind the flags, so
// FIELDPROBE_NATS_SERVER or a .fieldprobe.yaml can hold connection defaults.
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
	viper.SetDefault("nats-server", nats.DefaultURL)

	// the config file is optional, but a broken one should not pass silently
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			toolutil.PrintWarn("config file ignored: %v", err)
		}
	}
}
