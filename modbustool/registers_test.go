package main

import (
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"holding", kindHolding, false},
		{"input", kindInput, false},
		{"HOLDING", kindHolding, false},
		{"coil", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := parseKind(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseKind(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParsePresentation(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"dec", presentationDec, false},
		{"decimal", presentationDec, false},
		{"hex", presentationHex, false},
		{"Hexadecimal", presentationHex, false},
		{"oct", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := parsePresentation(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePresentation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePresentation(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDecodeRegisters(t *testing.T) {
	t.Run("big-endian decode in request order", func(t *testing.T) {
		raw := []byte{0x00, 0xFF, 0x01, 0x00, 0xAB, 0xCD}
		values, err := decodeRegisters(raw, 3)
		if err != nil {
			t.Fatalf("decodeRegisters() error = %v", err)
		}
		want := []uint16{255, 256, 0xABCD}
		if len(values) != len(want) {
			t.Fatalf("got %d values, want %d", len(values), len(want))
		}
		for i := range want {
			if values[i] != want[i] {
				t.Errorf("values[%d] = %d, want %d", i, values[i], want[i])
			}
		}
	})

	t.Run("short response rejected", func(t *testing.T) {
		if _, err := decodeRegisters([]byte{0x00}, 1); err == nil {
			t.Error("decodeRegisters() should reject a truncated response")
		}
	})

	t.Run("excess response rejected", func(t *testing.T) {
		if _, err := decodeRegisters([]byte{0x00, 0x01, 0x02, 0x03}, 1); err == nil {
			t.Error("decodeRegisters() should reject an oversized response")
		}
	})
}

func TestFormatRegisters(t *testing.T) {
	tests := []struct {
		name         string
		values       []uint16
		presentation string
		want         string
	}{
		{"decimal 255", []uint16{255}, presentationDec, "255"},
		{"hex 255", []uint16{255}, presentationHex, "0xff"},
		{"decimal sequence", []uint16{1, 2, 3}, presentationDec, "1 2 3"},
		{"hex sequence keeps order", []uint16{0xABCD, 0x0001}, presentationHex, "0xabcd 0x1"},
		{"zero", []uint16{0}, presentationDec, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatRegisters(tt.values, tt.presentation)
			if got != tt.want {
				t.Errorf("formatRegisters() = %q, want %q", got, tt.want)
			}
			if fields := strings.Fields(got); len(fields) != len(tt.values) {
				t.Errorf("formatted line has %d values, want %d", len(fields), len(tt.values))
			}
		})
	}
}
