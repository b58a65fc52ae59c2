package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fenceOpen  = regexp.MustCompile("^```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```$")
)

// visionPayload is the envelope every extraction prompt asks the model to
// produce. Sections are kept raw so they can be applied onto pre-defaulted
// schema structs, which makes explicit nulls and missing keys equivalent.
type visionPayload struct {
	Attorney    json.RawMessage    `json:"attorney"`
	Eligibility json.RawMessage    `json:"eligibility"`
	Passport    json.RawMessage    `json:"passport"`
	Confidence  map[string]float64 `json:"confidence"`
	Warnings    []string           `json:"warnings"`
}

// parsePayload decodes the model's response, stripping markdown fences the
// prompt forbids but models still occasionally emit.
func parsePayload(text string) (*visionPayload, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = fenceOpen.ReplaceAllString(cleaned, "")
	cleaned = fenceClose.ReplaceAllString(cleaned, "")

	var payload visionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}
	return &payload, nil
}

// applySection unmarshals a raw JSON section onto dst, which already holds
// defaults. Null values on optional fields clear them; null values on
// required fields leave the defaults in place.
func applySection(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode extracted section: %w", err)
	}
	return nil
}
