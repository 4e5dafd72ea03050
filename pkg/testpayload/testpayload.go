package testpayload

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-faker/faker/v4"
)

// Payload is the predictable structure behind the json and cbor placeholders.
// faker tags drive field generation.
// https://github.com/go-faker/faker#supported-tags
type Payload struct {
	ID     string  `faker:"uuid_hyphenated" json:"id"`
	Name   string  `faker:"name" json:"name"`
	Value  float64 `faker:"lat" json:"value"`
	Active bool    `json:"active"`
	Time   int64   `faker:"unix_time" json:"time"`
}

func generatePayload() Payload {
	var p Payload
	if err := faker.FakeData(&p); err != nil {
		// Fall back to a minimal valid payload
		p = Payload{ID: "00000000-0000-0000-0000-000000000000", Name: "default"}
	}
	return p
}

// GenerateRandomJSON creates a JSON body with predictable structure and random values.
func GenerateRandomJSON() ([]byte, error) {
	return json.Marshal(generatePayload())
}

// GenerateRandomCBOR creates a CBOR body with predictable structure and random values.
func GenerateRandomCBOR() ([]byte, error) {
	return cbor.Marshal(generatePayload())
}

// GenerateSentence returns a random sentence.
func GenerateSentence() string {
	return faker.Sentence()
}

// GenerateSentimentPhrase returns a short opinionated phrase, handy for
// feeding sentiment-analysis style consumers.
func GenerateSentimentPhrase() string {
	starts := []string{"I love", "I hate", "I think", "I feel", "I wish", "I see"}
	adjectives := []string{"great", "terrible", "amazing", "awful", "funny", "boring"}
	objects := []string{"this product", "the service", "the movie", "the food", "the weather", "the app"}
	return starts[rand.Intn(len(starts))] + " " + adjectives[rand.Intn(len(adjectives))] + " " + objects[rand.Intn(len(objects))] // #nosec G404 -- test data generator
}

// GenerateRandomDateTime returns an RFC3339 timestamp within the last ten years.
func GenerateRandomDateTime() string {
	timestamp := rand.Int63n(10*365*24*3600) + (time.Now().Unix() - 10*365*24*3600) // #nosec G404 -- test data generator
	return time.Unix(timestamp, 0).Format(time.RFC3339Nano)
}

// GenerateNowDateTime returns the current timestamp in RFC3339.
func GenerateNowDateTime() string {
	return time.Now().Format(time.RFC3339Nano)
}

var (
	counter      int
	counterMutex sync.Mutex
)

// GenerateCounter returns a process-wide incrementing counter.
func GenerateCounter() int {
	counterMutex.Lock()
	defer counterMutex.Unlock()
	counter++
	return counter
}

// SeedRandom seeds the pseudo-random generator used by the helpers above,
// making generation reproducible for tests and repeatable scenarios.
func SeedRandom(seed int64) {
	rand.Seed(seed)
}

// Kind identifies one supported payload placeholder.
type Kind string

const (
	KindJSON      Kind = "json"
	KindCBOR      Kind = "cbor"
	KindSentiment Kind = "sentiment"
	KindSentence  Kind = "sentence"
	KindDateTime  Kind = "datetime"
	KindNowTime   Kind = "nowtime"
	KindCounter   Kind = "counter"
)

// ContentType returns the MIME type of the generated body.
func (k Kind) ContentType() string {
	switch k {
	case KindJSON:
		return "application/json"
	case KindCBOR:
		return "application/cbor"
	case KindSentiment, KindSentence, KindDateTime, KindNowTime, KindCounter:
		return "text/plain"
	}
	return "application/octet-stream"
}

// Generate produces one body for the placeholder kind.
func (k Kind) Generate() ([]byte, error) {
	switch k {
	case KindJSON:
		return GenerateRandomJSON()
	case KindCBOR:
		return GenerateRandomCBOR()
	case KindSentiment:
		return []byte(GenerateSentimentPhrase()), nil
	case KindSentence:
		return []byte(GenerateSentence()), nil
	case KindDateTime:
		return []byte(GenerateRandomDateTime()), nil
	case KindNowTime:
		return []byte(GenerateNowDateTime()), nil
	case KindCounter:
		return []byte(fmt.Sprintf("%d", GenerateCounter())), nil
	}
	return nil, fmt.Errorf("unsupported test payload kind: %s", k)
}

// KindFor returns the placeholder kind registered under name.
func KindFor(name string) (Kind, bool) {
	k, ok := placeholders[name]
	return k, ok
}

var placeholders = map[string]Kind{
	"json":      KindJSON,
	"cbor":      KindCBOR,
	"sentiment": KindSentiment,
	"sentence":  KindSentence,
	"datetime":  KindDateTime,
	"nowtime":   KindNowTime,
	"counter":   KindCounter,
}

// Interpolate replaces {{...}} placeholders in str with generated content.
func Interpolate(str string) ([]byte, error) {
	return InterpolateWithDelimiters(str, "{{", "}}")
}

// InterpolateWithDelimiters performs placeholder interpolation with custom
// delimiters. When the whole string is a single placeholder the generated
// bytes are returned as-is, so binary bodies like CBOR survive untouched.
func InterpolateWithDelimiters(str, openDelim, closeDelim string) ([]byte, error) {
	result := str
	for key, kind := range placeholders {
		ph := openDelim + key + closeDelim

		if str == ph {
			return kind.Generate()
		}

		if strings.Contains(result, ph) {
			val, err := kind.Generate()
			if err != nil {
				return nil, err
			}
			result = strings.ReplaceAll(result, ph, string(val))
		}
	}
	return []byte(result), nil
}
