package main

import (
	"fmt"
	"net"
	"time"

	"github.com/goburrow/modbus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fieldprobe/fieldprobe/pkg/toolutil"
)

func writeRegisterCommand() *cobra.Command {
	var (
		server  string
		regAddr uint16
		value   uint16
		unitID  uint8
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:     "write-register",
		Aliases: []string{"write", "wr"},
		Short:   "Write a single holding register",
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = viper.GetString("modbus-server")
			}
			if _, _, err := net.SplitHostPort(server); err != nil {
				return fmt.Errorf("invalid server address %q: %w", server, err)
			}

			handler := modbus.NewTCPClientHandler(server)
			handler.Timeout = timeout
			handler.SlaveId = unitID
			if err := handler.Connect(); err != nil {
				return fmt.Errorf("connection to %s failed: %w", server, err)
			}
			defer handler.Close()
			client := modbus.NewClient(handler)

			if _, err := client.WriteSingleRegister(regAddr, value); err != nil {
				return fmt.Errorf("write register failed: %w", err)
			}

			toolutil.PrintSuccess("Wrote register %d = %d (%#x)", regAddr, value, value)
			return nil
		},
	}

	toolutil.AddServerFlag(cmd, &server, "", "Device address as host:port (default from config)")
	cmd.Flags().Uint16VarP(&regAddr, "address", "a", 0, "Register address")
	cmd.Flags().Uint16VarP(&value, "value", "V", 0, "16-bit value to write")
	cmd.Flags().Uint8VarP(&unitID, "unit-id", "u", 1, "Modbus unit (slave) identifier")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Second, "Request timeout")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}
