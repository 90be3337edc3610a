package generator

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a social media marketing strategist expert.
Your task is to generate a 30-day content calendar for the requested platform.
Return ONLY valid JSON, no other text or markdown.
The JSON must follow this exact structure:
{
  "planName": "string",
  "platform": "string",
  "posts": [
    {
      "day": number,
      "format": "string",
      "caption": "string",
      "hashtags": ["string"],
      "time": "HH:MM"
    }
  ]
}`

// platformFormats maps a lower-cased platform name to its content format
// vocabulary. Unknown platforms fall back to a single generic format.
var platformFormats = map[string]string{
	"instagram": "post, reel, story, carousel",
	"linkedin":  "post, article, poll",
	"x":         "tweet, thread, poll",
	"tiktok":    "video, duet, stitch",
}

func formatsForPlatform(platform string) string {
	if formats, ok := platformFormats[strings.ToLower(platform)]; ok {
		return formats
	}
	return "post"
}

func buildUserPrompt(in Input) string {
	return fmt.Sprintf(`Create a 30-day content calendar with these details:
- Niche: %s
- Platform: %s
- Goal: %s
- Tone: %s

Generate 30 posts with:
- Appropriate content formats (%s)
- Engaging captions optimized for %s
- Relevant hashtags for %s
- Optimal posting times for %s

Return only the JSON, nothing else.`,
		in.Niche, in.Platform, in.Goal, in.Tone,
		formatsForPlatform(in.Platform), in.Platform, in.Niche, in.Platform)
}
