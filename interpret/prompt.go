package interpret

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charleschoi123/bazi-destiny/bazi"
	"github.com/charleschoi123/bazi-destiny/models"
)

// SystemPrompt sets the voice of every interpretation.
const SystemPrompt = "You are a Bazi expert who explains Four Pillars for non-Chinese audiences in simple, friendly English. " +
	"Use short paragraphs with gentle, reflective tone from ancient Eastern philosophy. " +
	"Avoid fatalistic claims; emphasize personal agency and balance."

const instructions = "Write sections with these headings: Personality, Career, Relationships, Health, Wealth. " +
	"Explain dominant Five Elements and Ten Gods briefly (plain English definitions). " +
	"If luck cycles exist, summarize the next 3 decades. " +
	"Close with a short reflection: 'there is wonder in all things.'"

// maxPrevious bounds how much earlier output is sent back for continuation.
const maxPrevious = 6000

// BuildUserPrompt renders the user message for a chart. When previous is
// non-empty the model is asked to continue that text instead of starting
// over.
func BuildUserPrompt(chart *models.ChartResponse, name, previous string) (string, error) {
	if chart == nil {
		return "", fmt.Errorf("chart is required")
	}
	if e := chart.MainElement; e != "" {
		if _, ok := bazi.ParseElement(e); !ok {
			return "", fmt.Errorf("unknown main element %q", e)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(chart); err != nil {
		return "", fmt.Errorf("failed to encode chart: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Person's name: %s.\n", name)
	b.WriteString(instructions)
	b.WriteString("\n\nChart JSON:\n")
	b.Write(bytes.TrimRight(buf.Bytes(), "\n"))

	if prev := strings.TrimSpace(previous); prev != "" {
		b.WriteString("\n\nThe reader has already received the interpretation below. ")
		b.WriteString("Continue exactly where it stops, without repeating any of it or restarting a section.\n\n")
		b.WriteString("Interpretation so far:\n")
		b.WriteString(tail(prev, maxPrevious))
	}
	return b.String(), nil
}

// tail returns at most n bytes from the end of s, cut on a rune boundary.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[len(s)-n:]
	for len(s) > 0 && !utf8.RuneStart(s[0]) {
		s = s[1:]
	}
	return s
}
