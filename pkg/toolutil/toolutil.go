// Package toolutil collects the small helpers shared by the fieldprobe CLIs:
// the process logger, colored status printing, message body rendering and the
// cobra flag helpers that keep flag names uniform across tools.
package toolutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/TylerBrock/colorjson"
	"github.com/fatih/color"
	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"

	"github.com/fieldprobe/fieldprobe/pkg/testpayload"
)

// Content type constants used across the tools.
const (
	CTJSON = "application/json"
	CTCBOR = "application/cbor"
	CTText = "text/plain"
)

var (
	loggerOnce sync.Once
	logger     *slog.Logger
	logLevel   = new(slog.LevelVar)
)

// Logger returns the process-wide slog logger. Diagnostics go to stderr so
// operation output on stdout stays machine-readable.
func Logger() *slog.Logger {
	loggerOnce.Do(func() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	})
	return logger
}

// SetLogLevel adjusts the logger severity threshold. Accepts debug, info,
// warn and error; the empty string keeps the info default.
func SetLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info", "":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	return nil
}

var (
	successTag = color.New(color.FgGreen, color.Bold).SprintFunc()
	infoTag    = color.New(color.FgCyan).SprintFunc()
	warnTag    = color.New(color.FgYellow).SprintFunc()
	errorTag   = color.New(color.FgRed, color.Bold).SprintFunc()
	keyColor   = color.New(color.FgCyan).SprintFunc()
	titleColor = color.New(color.Bold).SprintFunc()
)

// PrintSuccess prints a green success line to stdout.
func PrintSuccess(format string, args ...any) {
	fmt.Println(successTag("OK"), fmt.Sprintf(format, args...))
}

// PrintInfo prints an informational line to stdout.
func PrintInfo(format string, args ...any) {
	fmt.Println(infoTag("INFO"), fmt.Sprintf(format, args...))
}

// PrintWarn prints a warning line to stderr.
func PrintWarn(format string, args ...any) {
	fmt.Fprintln(os.Stderr, warnTag("WARN"), fmt.Sprintf(format, args...))
}

// PrintError prints an error line to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorTag("ERROR"), fmt.Sprintf(format, args...))
}

// PrintKeyValue prints an indented key/value detail line.
func PrintKeyValue(key string, value any) {
	fmt.Printf("  %s: %v\n", keyColor(key), value)
}

// KV is one key/value item inside a message section.
type KV struct {
	Key   string
	Value any
}

// MessageSection groups related detail lines under a title.
type MessageSection struct {
	Title string
	Items []KV
}

// PrintColoredMessage renders a received message: a title line, the detail
// sections, then the body prettified according to its MIME type.
func PrintColoredMessage(title string, sections []MessageSection, body []byte, mime string) {
	fmt.Println(titleColor("--- " + title + " ---"))
	for _, section := range sections {
		fmt.Println(titleColor(section.Title))
		for _, item := range section.Items {
			PrintKeyValue(item.Key, item.Value)
		}
	}
	pretty := PrettyBodyByMIME(mime, body)
	if len(pretty) == 0 {
		pretty = body
	}
	if len(pretty) > 0 {
		fmt.Println(titleColor("Payload"))
		fmt.Println(string(pretty))
	}
}

// PrettyBodyByMIME returns a colorized rendering of the body for known MIME
// types. JSON is pretty-printed, CBOR is decoded and rendered as JSON, plain
// text passes through. Returns nil when the body cannot be rendered.
func PrettyBodyByMIME(mime string, body []byte) []byte {
	if len(body) == 0 {
		return nil
	}
	switch mime {
	case CTJSON:
		return prettyJSON(body)
	case CTCBOR:
		jsonBody, err := cborToJSON(body)
		if err != nil {
			return nil
		}
		return prettyJSON(jsonBody)
	default:
		return body
	}
}

func prettyJSON(body []byte) []byte {
	var obj any
	if err := json.Unmarshal(body, &obj); err != nil {
		// not valid JSON, show it as-is
		return body
	}
	f := colorjson.NewFormatter()
	f.Indent = 2
	out, err := f.Marshal(obj)
	if err != nil {
		return body
	}
	return out
}

var cborDecMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

func cborToJSON(body []byte) ([]byte, error) {
	var obj any
	if err := cborDecMode.Unmarshal(body, &obj); err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}

// GuessMIME makes a best-effort guess at the body content type: JSON by
// syntax, CBOR by the leading major type byte, plain text otherwise.
func GuessMIME(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return CTText
	}
	if (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid(trimmed) {
		return CTJSON
	}
	switch b := trimmed[0]; {
	case b >= 0x60 && b <= 0x7b: // text string
		return CTCBOR
	case b >= 0x80 && b <= 0x9f: // array
		return CTCBOR
	case b >= 0xa0 && b <= 0xbf: // map
		return CTCBOR
	case b >= 0xc0 && b <= 0xdb: // tagged
		return CTCBOR
	}
	return CTText
}

// BuildPayload interpolates testpayload placeholders in the raw string and
// returns the body together with its content type. The declared mime is kept
// unless the whole string is a single placeholder, whose generated type wins:
// a {{cbor}} body really is CBOR no matter what the flag says.
func BuildPayload(raw, mime string) ([]byte, string, error) {
	body, err := testpayload.Interpolate(raw)
	if err != nil {
		return nil, "", err
	}
	if inner, ok := strings.CutPrefix(raw, "{{"); ok {
		if name, ok := strings.CutSuffix(inner, "}}"); ok {
			if kind, ok := testpayload.KindFor(name); ok {
				mime = kind.ContentType()
			}
		}
	}
	return body, mime, nil
}

// AddServerFlag registers the --server flag naming the remote endpoint.
func AddServerFlag(cmd *cobra.Command, v *string, def, usage string) {
	cmd.Flags().StringVarP(v, "server", "s", def, usage)
}

// AddSubjectFlag registers the --subject flag.
func AddSubjectFlag(cmd *cobra.Command, v *string, usage string) {
	cmd.Flags().StringVar(v, "subject", "", usage)
}

// AddPayloadFlags registers the --message and --mime flags used by the
// publishing commands. The mime flag declares the payload content type; a
// whole-string placeholder overrides it with the generated type.
func AddPayloadFlags(cmd *cobra.Command, message *string, mime *string, mimeDef string) {
	cmd.Flags().StringVarP(message, "message", "m", "", "Message payload (supports {{...}} placeholders)")
	cmd.Flags().StringVar(mime, "mime", mimeDef, "Payload content type hint")
}

// AddWatchFlag registers the --watch flag shared by the streaming commands.
func AddWatchFlag(cmd *cobra.Command, v *bool, usage string) {
	cmd.Flags().BoolVarP(v, "watch", "w", false, usage)
}

// AddIntervalFlag registers the --interval flag for watch loops.
func AddIntervalFlag(cmd *cobra.Command, v *string, def string) {
	cmd.Flags().StringVarP(v, "interval", "i", def, "Delay between watch iterations (e.g. 1s, 500ms)")
}

// AddSeedFlag registers the --seed flag for reproducible payload generation.
func AddSeedFlag(cmd *cobra.Command, v *int64) {
	cmd.Flags().Int64Var(v, "seed", 0, "Seed for random payload generation (0 = non-deterministic)")
}
