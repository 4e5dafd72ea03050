package main

import (
	"fmt"
	"net"
	"time"

	"github.com/goburrow/modbus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fieldprobe/fieldprobe/pkg/common"
	"github.com/fieldprobe/fieldprobe/pkg/toolutil"
)

func readRegisterCommand() *cobra.Command {
	var (
		server       string
		regAddr      uint16
		kind         string
		count        uint16
		unitID       uint8
		presentation string
		watch        bool
		interval     string
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:     "read-register",
		Aliases: []string{"read", "rr"},
		Short:   "Read holding or input registers",
		Long: `Read one or more 16-bit registers from a Modbus TCP device.

With --watch the read repeats on the same connection every --interval until
the process is interrupted; any failure aborts the loop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = viper.GetString("modbus-server")
			}
			if _, _, err := net.SplitHostPort(server); err != nil {
				return fmt.Errorf("invalid server address %q: %w", server, err)
			}
			kind, err := parseKind(kind)
			if err != nil {
				return err
			}
			presentation, err := parsePresentation(presentation)
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("count must be at least 1")
			}

			ctx, cancel := common.SetupGracefulShutdown()
			defer cancel()

			handler := modbus.NewTCPClientHandler(server)
			handler.Timeout = timeout
			handler.SlaveId = unitID
			if err := handler.Connect(); err != nil {
				return fmt.Errorf("connection to %s failed: %w", server, err)
			}
			defer handler.Close()
			client := modbus.NewClient(handler)

			logger := toolutil.Logger()
			logger.Debug("connected", "server", server, "unit", unitID, "kind", kind)

			read := func() error {
				var (
					raw []byte
					err error
				)
				switch kind {
				case kindHolding:
					raw, err = client.ReadHoldingRegisters(regAddr, count)
				case kindInput:
					raw, err = client.ReadInputRegisters(regAddr, count)
				}
				if err != nil {
					return fmt.Errorf("read %s registers failed: %w", kind, err)
				}
				values, err := decodeRegisters(raw, count)
				if err != nil {
					return err
				}
				fmt.Println(formatRegisters(values, presentation))
				return nil
			}

			return common.RunOnceOrWatch(ctx, watch, interval, read)
		},
	}

	toolutil.AddServerFlag(cmd, &server, "", "Device address as host:port (default from config)")
	cmd.Flags().Uint16VarP(&regAddr, "address", "a", 0, "Starting register address")
	cmd.Flags().StringVarP(&kind, "kind", "k", kindHolding, "Register kind: holding or input")
	cmd.Flags().Uint16VarP(&count, "count", "c", 1, "Number of registers to read")
	cmd.Flags().Uint8VarP(&unitID, "unit-id", "u", 1, "Modbus unit (slave) identifier")
	cmd.Flags().StringVarP(&presentation, "presentation", "p", presentationDec, "Value presentation: dec or hex")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Second, "Request timeout")
	toolutil.AddWatchFlag(cmd, &watch, "Repeat the read until interrupted")
	toolutil.AddIntervalFlag(cmd, &interval, "1s")

	return cmd
}
