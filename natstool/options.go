package main

import (
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/spf13/viper"

	"github.com/fieldprobe/fieldprobe/pkg/toolutil"
)

// authOptions resolves the credential flags into connection options. Exactly
// three configurations are valid: username+password together, a token alone,
// or no credentials at all. Anything else fails before any network I/O.
func authOptions(username, password, token string) ([]nats.Option, error) {
	logger := toolutil.Logger()
	switch {
	case username != "" && password != "" && token != "":
		return nil, fmt.Errorf("both username/password and token specified, cannot decide which to use")
	case username != "" && password == "":
		return nil, fmt.Errorf("username specified without a password")
	case username == "" && password != "":
		return nil, fmt.Errorf("password specified without a username")
	case username != "" && password != "":
		logger.Info("Using username and password authentication")
		return []nats.Option{nats.UserInfo(username, password)}, nil
	case token != "":
		logger.Info("Using token authentication")
		return []nats.Option{nats.Token(token)}, nil
	default:
		logger.Info("No authentication specified")
		return nil, nil
	}
}

// connectionEventOptions registers handlers that log connection lifecycle
// transitions. Purely observational; nothing reacts to these events.
func connectionEventOptions(logger *slog.Logger) []nats.Option {
	return []nats.Option{
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Info("Disconnected from NATS", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			logger.Error("NATS client error", "error", err)
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Warn("NATS connection closed")
		}),
		nats.DiscoveredServersHandler(func(nc *nats.Conn) {
			logger.Warn("NATS server topology changed", "servers", nc.DiscoveredServers())
		}),
	}
}

// connect validates the credential flags and opens the single connection a
// command uses for its lifetime.
func connect() (*nats.Conn, error) {
	opts, err := authOptions(username, password, authToken)
	if err != nil {
		return nil, fmt.Errorf("invalid authentication options: %w", err)
	}
	opts = append(opts, connectionEventOptions(toolutil.Logger())...)

	addr := serverURL
	if addr == "" {
		addr = viper.GetString("nats-server")
	}

	nc, err := nats.Connect(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("error connecting to NATS at %s: %w", addr, err)
	}
	return nc, nil
}
