package testpayload

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
)

func TestGenerateRandomJSON(t *testing.T) {
	body, err := GenerateRandomJSON()
	if err != nil {
		t.Fatalf("GenerateRandomJSON() error = %v", err)
	}
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("generated JSON does not unmarshal: %v", err)
	}
	if p.ID == "" || p.Name == "" {
		t.Errorf("generated payload missing fields: %+v", p)
	}
}

func TestGenerateRandomCBOR(t *testing.T) {
	body, err := GenerateRandomCBOR()
	if err != nil {
		t.Fatalf("GenerateRandomCBOR() error = %v", err)
	}
	var p Payload
	if err := cbor.Unmarshal(body, &p); err != nil {
		t.Fatalf("generated CBOR does not unmarshal: %v", err)
	}
}

func TestGenerateNowDateTime(t *testing.T) {
	s := GenerateNowDateTime()
	if _, err := time.Parse(time.RFC3339Nano, s); err != nil {
		t.Errorf("GenerateNowDateTime() = %q, not RFC3339: %v", s, err)
	}
}

func TestGenerateCounter(t *testing.T) {
	first := GenerateCounter()
	second := GenerateCounter()
	if second != first+1 {
		t.Errorf("counter did not increment: %d then %d", first, second)
	}
}

func TestKindContentType(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindJSON, "application/json"},
		{KindCBOR, "application/cbor"},
		{KindSentence, "text/plain"},
		{KindNowTime, "text/plain"},
		{Kind("bogus"), "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := tt.kind.ContentType(); got != tt.want {
			t.Errorf("ContentType(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindFor(t *testing.T) {
	if kind, ok := KindFor("cbor"); !ok || kind != KindCBOR {
		t.Errorf("KindFor(cbor) = %q, %v", kind, ok)
	}
	if kind, ok := KindFor("json"); !ok || kind != KindJSON {
		t.Errorf("KindFor(json) = %q, %v", kind, ok)
	}
	if _, ok := KindFor("bogus"); ok {
		t.Error("KindFor(bogus) should not resolve")
	}
}

func TestKindGenerateUnsupported(t *testing.T) {
	if _, err := Kind("bogus").Generate(); err == nil {
		t.Error("Generate() on unknown kind should fail")
	}
}

func TestInterpolate(t *testing.T) {
	t.Run("whole-string placeholder returns raw bytes", func(t *testing.T) {
		body, err := Interpolate("{{json}}")
		if err != nil {
			t.Fatalf("Interpolate() error = %v", err)
		}
		if !json.Valid(body) {
			t.Errorf("expected valid JSON, got %q", body)
		}
	})

	t.Run("mixed content", func(t *testing.T) {
		body, err := Interpolate("count={{counter}} at={{nowtime}}")
		if err != nil {
			t.Fatalf("Interpolate() error = %v", err)
		}
		s := string(body)
		if strings.Contains(s, "{{") {
			t.Errorf("unreplaced placeholder in %q", s)
		}
		if !strings.HasPrefix(s, "count=") {
			t.Errorf("literal text lost in %q", s)
		}
	})

	t.Run("counter yields a number", func(t *testing.T) {
		body, err := Interpolate("{{counter}}")
		if err != nil {
			t.Fatalf("Interpolate() error = %v", err)
		}
		if _, err := strconv.Atoi(string(body)); err != nil {
			t.Errorf("counter placeholder yielded %q", body)
		}
	})

	t.Run("unknown placeholder left as-is", func(t *testing.T) {
		body, err := Interpolate("{{nope}}")
		if err != nil {
			t.Fatalf("Interpolate() error = %v", err)
		}
		if string(body) != "{{nope}}" {
			t.Errorf("Interpolate() = %q, want literal passthrough", body)
		}
	})
}

func TestInterpolateWithDelimiters(t *testing.T) {
	body, err := InterpolateWithDelimiters("<counter>", "<", ">")
	if err != nil {
		t.Fatalf("InterpolateWithDelimiters() error = %v", err)
	}
	if _, err := strconv.Atoi(string(body)); err != nil {
		t.Errorf("custom delimiters not honored, got %q", body)
	}
}

func TestSeedRandomIsDeterministic(t *testing.T) {
	SeedRandom(42)
	first := GenerateSentimentPhrase()
	SeedRandom(42)
	second := GenerateSentimentPhrase()
	if first != second {
		t.Errorf("seeded generation not reproducible: %q vs %q", first, second)
	}
}
