package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
		{"no closing fence", "```json\n{\"a\":1}", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.input))
		})
	}
}

func TestDecodeCalendar(t *testing.T) {
	content := "```json\n" + `{
		"planName": "Fitness Q1",
		"platform": "instagram",
		"posts": [
			{"day": 1, "format": "reel", "caption": "Kick off", "hashtags": ["#fit"], "time": "09:00"}
		]
	}` + "\n```"

	cal, err := decodeCalendar(content)
	require.NoError(t, err)
	assert.Equal(t, "Fitness Q1", cal.PlanName)
	assert.Equal(t, "instagram", cal.Platform)
	require.Len(t, cal.Posts, 1)
	assert.Equal(t, 1, cal.Posts[0].Day)
	assert.Equal(t, "reel", cal.Posts[0].Format)
}

func TestDecodeCalendar_InvalidJSON(t *testing.T) {
	_, err := decodeCalendar("Sure! Here is your calendar: {day: 1}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse calendar JSON")
}
