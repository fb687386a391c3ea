// internal/intake/intake.go

// Package intake extracts a first name and fishing location from loosely
// structured user messages. Extraction is an ordered list of substring
// rules evaluated in fixed priority order, not NLP: if a trigger phrase is
// absent the field stays unset and intake fails.
package intake

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnparseable indicates a name or location could not be extracted.
var ErrUnparseable = errors.New("could not extract name and fishing location")

// CoachingDetail is the user-facing guidance returned on intake failure.
const CoachingDetail = `I couldn't catch your name and fishing spot. Try something like: "My name is John and I like to fish on Cape Cod"`

// Submission is a successfully parsed intake message.
type Submission struct {
	FirstName       string
	FishingLocation string
}

// Field names checked for pre-structured input, preferred over free-text
// extraction when present.
var (
	structuredNameFields     = []string{"first_name", "name"}
	structuredLocationFields = []string{"fishing_location", "location"}
)

// messageFields are the JSON keys scanned for a free-text message.
var messageFields = []string{"message", "text", "user_message", "query"}

// nameDelimiters end a captured name, checked in this order.
var nameDelimiters = []string{" and ", ", ", ". ", " i ", " like "}

// locationPrepositions introduce a location phrase, checked in this order.
var locationPrepositions = []string{" on ", " in ", " at "}

// Parse accepts a JSON or raw-text request body and produces a Submission.
// Structured name/location fields win over free-text extraction; anything
// still missing is pulled from the message with the substring rules below.
func Parse(body []byte) (Submission, error) {
	var sub Submission
	message := string(body)

	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err == nil {
		sub.FirstName = firstStringField(fields, structuredNameFields)
		sub.FishingLocation = firstStringField(fields, structuredLocationFields)
		message = firstStringField(fields, messageFields)
	}

	lower := strings.ToLower(message)
	if sub.FirstName == "" {
		sub.FirstName = extractName(lower)
	}
	if sub.FishingLocation == "" {
		sub.FishingLocation = extractLocation(lower)
	}

	sub.FirstName = cleanup(sub.FirstName)
	sub.FishingLocation = cleanup(sub.FishingLocation)

	if sub.FirstName == "" || sub.FishingLocation == "" {
		return Submission{}, ErrUnparseable
	}
	return sub, nil
}

// extractName captures the text after "name is", truncated at the first
// delimiter phrase found.
func extractName(lower string) string {
	idx := strings.Index(lower, "name is")
	if idx < 0 {
		return ""
	}
	rest := lower[idx+len("name is"):]

	for _, delim := range nameDelimiters {
		if cut := strings.Index(rest, delim); cut >= 0 {
			rest = rest[:cut]
			break
		}
	}

	return titleCase(strings.TrimSpace(rest))
}

// extractLocation captures the text after the highest-priority preposition,
// triggered only when the message mentions fishing. A comma splits the spot
// from an optional region qualifier.
func extractLocation(lower string) string {
	if !strings.Contains(lower, "fish") {
		return ""
	}

	var rest string
	for _, prep := range locationPrepositions {
		if idx := strings.Index(lower, prep); idx >= 0 {
			rest = lower[idx+len(prep):]
			break
		}
	}
	if rest == "" {
		return ""
	}

	segments := strings.SplitN(rest, ",", 2)
	location := titleCase(strings.TrimSpace(segments[0]))
	if len(segments) == 2 {
		if region := titleCase(strings.TrimSpace(segments[1])); region != "" {
			location += ", " + region
		}
	}
	return location
}

func firstStringField(fields map[string]interface{}, names []string) string {
	for _, name := range names {
		if value, ok := fields[name].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// cleanup strips trailing commas and periods left over from extraction.
func cleanup(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ",.")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
