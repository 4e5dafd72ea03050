package main

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/fieldprobe/fieldprobe/pkg/testpayload"
	"github.com/fieldprobe/fieldprobe/pkg/toolutil"
)

func publishCommand() *cobra.Command {
	var (
		subject string
		message string
		mime    string
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a single message to a subject",
		Long: `Publish one message with the given subject and payload.

The message supports testpayload placeholders such as {{json}}, {{nowtime}}
or {{counter}}; use --seed to make generated content reproducible.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed != 0 {
				testpayload.SeedRandom(seed)
			}
			body, contentType, err := toolutil.BuildPayload(message, mime)
			if err != nil {
				return fmt.Errorf("payload build error: %w", err)
			}

			nc, err := connect()
			if err != nil {
				return err
			}
			defer nc.Close()

			if err := nc.PublishMsg(publishableMessage(subject, body, contentType)); err != nil {
				return fmt.Errorf("unable to publish to %q: %w", subject, err)
			}
			// Publish only queues the message; a flush round-trip confirms the
			// server accepted it.
			if err := nc.Flush(); err != nil {
				return fmt.Errorf("unable to publish to %q: %w", subject, err)
			}
			if err := nc.LastError(); err != nil {
				return fmt.Errorf("unable to publish to %q: %w", subject, err)
			}

			toolutil.PrintSuccess("Published to %s", subject)
			toolutil.PrintKeyValue("Bytes", len(body))
			toolutil.PrintKeyValue("Content-Type", contentType)
			return nil
		},
	}

	toolutil.AddSubjectFlag(cmd, &subject, "Subject to publish to")
	_ = cmd.MarkFlagRequired("subject")
	toolutil.AddPayloadFlags(cmd, &message, &mime, toolutil.CTText)
	_ = cmd.MarkFlagRequired("message")
	toolutil.AddSeedFlag(cmd, &seed)

	return cmd
}

// publishableMessage wraps the body in a message carrying its content type,
// so subscribers do not have to guess what a binary payload is.
func publishableMessage(subject string, body []byte, contentType string) *nats.Msg {
	msg := nats.NewMsg(subject)
	msg.Data = body
	if contentType != "" {
		msg.Header.Set("Content-Type", contentType)
	}
	return msg
}
