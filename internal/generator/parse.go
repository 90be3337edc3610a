package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"postpilot/internal/models"
)

// stripCodeFences removes optional markdown code-fence markers the model
// sometimes wraps its JSON in, despite being told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeCalendar parses the model's response text into a calendar.
func decodeCalendar(content string) (*models.GeneratedCalendar, error) {
	var cal models.GeneratedCalendar
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &cal); err != nil {
		return nil, fmt.Errorf("parse calendar JSON: %w", err)
	}
	return &cal, nil
}
