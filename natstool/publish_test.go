package main

import (
	"testing"

	"github.com/fieldprobe/fieldprobe/pkg/toolutil"
)

func TestPublishableMessage(t *testing.T) {
	t.Run("content type travels as a header", func(t *testing.T) {
		msg := publishableMessage("events.device.1", []byte("hello"), toolutil.CTText)
		if msg.Subject != "events.device.1" {
			t.Errorf("Subject = %q", msg.Subject)
		}
		if string(msg.Data) != "hello" {
			t.Errorf("Data = %q", msg.Data)
		}
		if got := msg.Header.Get("Content-Type"); got != toolutil.CTText {
			t.Errorf("Content-Type = %q, want %q", got, toolutil.CTText)
		}
	})

	t.Run("placeholder body carries its generated type", func(t *testing.T) {
		// The declared mime loses to the type of a whole-string placeholder,
		// so a CBOR body is never announced as plain text.
		body, contentType, err := toolutil.BuildPayload("{{cbor}}", toolutil.CTText)
		if err != nil {
			t.Fatalf("BuildPayload() error = %v", err)
		}
		msg := publishableMessage("events.device.1", body, contentType)
		if got := msg.Header.Get("Content-Type"); got != toolutil.CTCBOR {
			t.Errorf("Content-Type = %q, want %q", got, toolutil.CTCBOR)
		}
	})

	t.Run("empty content type leaves the header unset", func(t *testing.T) {
		msg := publishableMessage("events.device.1", nil, "")
		if got := msg.Header.Get("Content-Type"); got != "" {
			t.Errorf("Content-Type = %q, want unset", got)
		}
	})
}
