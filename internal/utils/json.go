package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// codeFencePattern matches markdown code fences that language models wrap JSON in
var codeFencePattern = regexp.MustCompile("```(?:json)?\\n?|\\n?```")

// LoadJSON reads a JSON file and unmarshals it into the target interface.
func LoadJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from %s: %w", path, err)
	}
	return nil
}

// StripCodeFence removes markdown code fences and surrounding whitespace
func StripCodeFence(text string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(text, ""))
}

// DecodeFencedJSON unmarshals JSON that may be wrapped in a markdown code fence
func DecodeFencedJSON(text string, target interface{}) error {
	cleaned := StripCodeFence(text)
	if cleaned == "" {
		return fmt.Errorf("empty JSON text")
	}
	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return fmt.Errorf("failed to unmarshal fenced JSON: %w", err)
	}
	return nil
}
