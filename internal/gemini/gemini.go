// Package gemini implements the deep-scan extractor over the Gemini API.
// It is the escalation path used when local comment parsing comes back
// with too little data.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/printforge/printcost/internal/gcode"
)

const model = "gemini-2.5-flash"

// responseSchema constrains the model to the exact extraction shape, with
// every field nullable so "not found" survives the round trip.
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"printTimeSeconds": {
			Type:        genai.TypeNumber,
			Description: "The total print time in seconds.",
			Nullable:    genai.Ptr(true),
		},
		"filamentWeightG": {
			Type:        genai.TypeNumber,
			Description: "The weight of the filament used in grams.",
			Nullable:    genai.Ptr(true),
		},
		"filamentLengthMm": {
			Type:        genai.TypeNumber,
			Description: "The length of the filament used in millimeters.",
			Nullable:    genai.Ptr(true),
		},
	},
}

// Scanner asks Gemini to read a G-code header and report print time,
// filament weight and filament length. Implements analysis.DeepScanner.
type Scanner struct {
	client *genai.Client
}

// New creates a scanner backed by the Gemini API.
func New(ctx context.Context, apiKey string) (*Scanner, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Scanner{client: client}, nil
}

// Extract sends the header to the model and decodes the structured
// response. The call is not retried; failures are reported to the caller
// as-is.
func (s *Scanner) Extract(ctx context.Context, header string) (gcode.Extraction, error) {
	resp, err := s.client.Models.GenerateContent(ctx, model, genai.Text(prompt(header)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
		// Low temperature: this is factual extraction, not generation.
		Temperature: genai.Ptr(float32(0.1)),
	})
	if err != nil {
		return gcode.Extraction{}, fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())

	var parsed struct {
		PrintTimeSeconds *float64 `json:"printTimeSeconds"`
		FilamentWeightG  *float64 `json:"filamentWeightG"`
		FilamentLengthMm *float64 `json:"filamentLengthMm"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return gcode.Extraction{}, fmt.Errorf("decode model response: %w", err)
	}

	var ex gcode.Extraction
	if parsed.PrintTimeSeconds != nil {
		secs := int(*parsed.PrintTimeSeconds)
		ex.PrintTimeSeconds = &secs
	}
	ex.FilamentWeightG = parsed.FilamentWeightG
	ex.FilamentLengthMm = parsed.FilamentLengthMm
	return ex, nil
}

func prompt(header string) string {
	return fmt.Sprintf(`Analyze the following 3D printer G-code file header. Your task is to extract very specific information from the comments.

G-code Header:
---
%s
---

Please extract the following values and provide them in a JSON object format:
1. printTimeSeconds: The total estimated print time converted to seconds. Look for comments like "print time", "estimated printing time", etc. Handle formats like "1d 12h 30m 5s".
2. filamentWeightG: The total filament weight used in grams (g). Look for comments like "filament weight", "filament used [g]", etc.
3. filamentLengthMm: The total filament length used in millimeters (mm). Look for "filament used" or "filament length". If it's in meters (m), convert it to millimeters.

If a value is not present in the G-code header, please return null for that field in the JSON object.`, header)
}
