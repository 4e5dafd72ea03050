package main

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/fieldprobe/fieldprobe/pkg/common"
	"github.com/fieldprobe/fieldprobe/pkg/toolutil"
)

func subscribeCommand() *cobra.Command {
	var (
		subject string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Subscribe to a subject and print messages",
		Long: `Subscribe to a subject and print each received payload.

Without --watch the command returns after the first message. Payloads must be
valid UTF-8 text; binary payloads fail the operation instead of being dumped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := common.SetupGracefulShutdown()
			defer cancel()

			nc, err := connect()
			if err != nil {
				return err
			}
			defer nc.Close()

			sub, err := nc.SubscribeSync(subject)
			if err != nil {
				return fmt.Errorf("unable to subscribe to %q: %w", subject, err)
			}
			if verbose {
				toolutil.PrintInfo("Waiting for messages on %s", subject)
			}

			for {
				msg, err := sub.NextMsgWithContext(ctx)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return fmt.Errorf("error receiving message: %w", err)
				}
				if err := printMessage(msg, verbose); err != nil {
					return err
				}
				if !watch {
					return nil
				}
			}
		},
	}

	toolutil.AddSubjectFlag(cmd, &subject, "Subject to subscribe to")
	_ = cmd.MarkFlagRequired("subject")
	toolutil.AddWatchFlag(cmd, &watch, "Keep receiving until interrupted")

	return cmd
}

// printMessage renders one received message. Plain mode prints the payload
// alone; verbose mode adds subject, reply inbox, status headers and the
// prettified body.
func printMessage(msg *nats.Msg, verbose bool) error {
	if !utf8.Valid(msg.Data) {
		return fmt.Errorf("message payload on %q is not valid UTF-8 text", msg.Subject)
	}

	if !verbose {
		fmt.Println(string(msg.Data))
		return nil
	}

	toolutil.PrintColoredMessage("NATS", messageSections(msg), msg.Data, toolutil.GuessMIME(msg.Data))
	return nil
}

// messageSections builds the verbose detail sections for one message: the
// subject, the reply inbox when present, the delivery state carried by status
// messages, and any remaining headers. Each header shows up exactly once.
func messageSections(msg *nats.Msg) []toolutil.MessageSection {
	sections := []toolutil.MessageSection{
		{Title: "Subject", Items: []toolutil.KV{{Key: "Name", Value: msg.Subject}}},
	}
	if msg.Reply != "" {
		sections = append(sections, toolutil.MessageSection{
			Title: "Reply", Items: []toolutil.KV{{Key: "To", Value: msg.Reply}},
		})
	}
	// Status and Description headers carry delivery state on status messages
	// such as no-responders replies.
	var statusItems []toolutil.KV
	if status := msg.Header.Get("Status"); status != "" {
		statusItems = append(statusItems, toolutil.KV{Key: "Status", Value: status})
	}
	if desc := msg.Header.Get("Description"); desc != "" {
		statusItems = append(statusItems, toolutil.KV{Key: "Description", Value: desc})
	}
	if len(statusItems) > 0 {
		sections = append(sections, toolutil.MessageSection{Title: "Delivery", Items: statusItems})
	}
	var headerItems []toolutil.KV
	for k, v := range msg.Header {
		if k == "Status" || k == "Description" {
			// already shown under Delivery
			continue
		}
		headerItems = append(headerItems, toolutil.KV{Key: k, Value: fmt.Sprintf("%v", v)})
	}
	if len(headerItems) > 0 {
		sections = append(sections, toolutil.MessageSection{Title: "Headers", Items: headerItems})
	}
	return sections
}
