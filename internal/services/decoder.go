package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/ats-checker/internal/models"
)

// DecodeAnalysisResult parses the model output into an AnalysisResult. All
// five fields must be present with the right JSON types; score must be a
// number in [0,100] and is rounded to the nearest integer.
func DecodeAnalysisResult(text string) (*models.AnalysisResult, error) {
	body := stripCodeFence(text)
	if body == "" {
		return nil, fmt.Errorf("empty response body")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("response is not a JSON object: null")
	}

	for _, name := range requiredResultFields {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("missing required field %q", name)
		}
	}

	score, err := decodeScore(fields["score"])
	if err != nil {
		return nil, err
	}

	result := &models.AnalysisResult{Score: score}

	if result.MatchedKeywords, err = decodeStringList("matchedKeywords", fields["matchedKeywords"]); err != nil {
		return nil, err
	}
	if result.MissingKeywords, err = decodeStringList("missingKeywords", fields["missingKeywords"]); err != nil {
		return nil, err
	}
	if result.Suggestions, err = decodeStringList("suggestions", fields["suggestions"]); err != nil {
		return nil, err
	}
	if result.Summary, err = decodeString("summary", fields["summary"]); err != nil {
		return nil, err
	}

	return result, nil
}

func decodeScore(raw json.RawMessage) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("field \"score\": %w", err)
	}

	num, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("field \"score\": expected number, got %s", jsonKind(v))
	}

	f, err := num.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("field \"score\": invalid number %q", num.String())
	}
	if f < 0 || f > 100 {
		return 0, fmt.Errorf("field \"score\": %v is outside 0-100", f)
	}

	return int(math.Round(f)), nil
}

func decodeStringList(name string, raw json.RawMessage) ([]string, error) {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, fmt.Errorf("field %q: expected array of strings", name)
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("field %q: element %d is %s, expected string", name, i, jsonKind(item))
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeString(name string, raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("field %q: %w", name, err)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %s", name, jsonKind(v))
	}
	return s, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// stripCodeFence removes a surrounding ```json fence if the model added one.
func stripCodeFence(text string) string {
	clean := strings.TrimSpace(text)
	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```json")
		clean = strings.TrimPrefix(clean, "```")
		clean = strings.TrimSuffix(clean, "```")
	}
	return strings.TrimSpace(clean)
}
