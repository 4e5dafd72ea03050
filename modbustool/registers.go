package main

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

const (
	kindHolding = "holding"
	kindInput   = "input"

	presentationDec = "dec"
	presentationHex = "hex"
)

func parseKind(kind string) (string, error) {
	switch strings.ToLower(kind) {
	case kindHolding:
		return kindHolding, nil
	case kindInput:
		return kindInput, nil
	}
	return "", fmt.Errorf("invalid register kind %q: must be %s or %s", kind, kindHolding, kindInput)
}

func parsePresentation(presentation string) (string, error) {
	switch strings.ToLower(presentation) {
	case presentationDec, "decimal":
		return presentationDec, nil
	case presentationHex, "hexadecimal":
		return presentationHex, nil
	}
	return "", fmt.Errorf("invalid presentation %q: must be %s or %s", presentation, presentationDec, presentationHex)
}

// decodeRegisters converts the big-endian response body of a register read
// into 16-bit values. The device must answer with exactly count registers.
func decodeRegisters(raw []byte, count uint16) ([]uint16, error) {
	if len(raw) != int(count)*2 {
		return nil, fmt.Errorf("unexpected register response length: got %d bytes, want %d", len(raw), int(count)*2)
	}
	values := make([]uint16, count)
	for i := range values {
		values[i] = binary.BigEndian.Uint16(raw[i*2:])
	}
	return values, nil
}

// formatRegisters renders all values as one space-separated line, decimal or
// 0x-prefixed hexadecimal.
func formatRegisters(values []uint16, presentation string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if presentation == presentationHex {
			parts[i] = fmt.Sprintf("%#x", v)
		} else {
			parts[i] = strconv.FormatUint(uint64(v), 10)
		}
	}
	return strings.Join(parts, " ")
}
