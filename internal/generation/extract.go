package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ExtractionError means the model output contained no JSON object at all.
type ExtractionError struct {
	Raw string
}

func (e *ExtractionError) Error() string {
	return "no JSON object found in model output: " + e.Raw
}

// MalformedContentError means a JSON span was found but it does not parse or does not
// have the expected shape.
type MalformedContentError struct {
	Reason string
	Err    error
}

func (e *MalformedContentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model output: %s: %v", e.Reason, e.Err)
	}
	return "malformed model output: " + e.Reason
}

func (e *MalformedContentError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) error {
	return &MalformedContentError{Reason: fmt.Sprintf(format, args...)}
}

var maxRepsPattern = regexp.MustCompile(`"repeticiones"\s*:\s*"(?i:m[áa]ximo)"`)

// RepairPlaceholders rewrites `"repeticiones": "Máximo"` to the numeric sentinel
// before parsing.
func RepairPlaceholders(text string) string {
	return maxRepsPattern.ReplaceAllString(text, fmt.Sprintf(`"repeticiones": %d`, maxRepsValue))
}

// ExtractJSON returns the span from the first '{' to the last '}'. Unrelated braces
// inside string values are not handled; the parse and shape checks catch the fallout.
func ExtractJSON(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", &ExtractionError{Raw: text}
	}
	return text[start : end+1], nil
}

// decode runs the textual repair, extraction and strict parse shared by routines and
// challenges.
func decode(raw string, v any) error {
	span, err := ExtractJSON(RepairPlaceholders(raw))
	if err != nil {
		return &ExtractionError{Raw: raw}
	}
	if err := json.Unmarshal([]byte(span), v); err != nil {
		return &MalformedContentError{Reason: "invalid JSON", Err: err}
	}
	return nil
}
