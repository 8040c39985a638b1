// Package generator produces derivative content (title variations, video
// scripts) from search keywords. The default implementation is a
// deterministic template filler; an external generative-text service can
// satisfy the same interface without the rest of the system noticing.
package generator

import (
	"context"
	"fmt"
	"strings"
)

// TextGenerator is the capability interface for derivative-content
// generation. Implementations receive a keyword plus styling hints and
// return text; they must not be required for scoring correctness.
type TextGenerator interface {
	Titles(ctx context.Context, keyword, language, emotion string, count int) ([]string, error)
	Script(ctx context.Context, keyword, language, tone string, durationMinutes int) (string, error)
}

const (
	defaultTitleCount = 5
	maxTitleCount     = 10
)

// emotionHooks prefix a title with an attention hook per emotion tag.
var emotionHooks = map[string]string{
	"curiosity": "Nobody Talks About This:",
	"urgency":   "Before It's Too Late:",
	"shock":     "I Can't Believe This Worked:",
	"trust":     "Honest Review:",
}

// titleTemplates are filled with the keyword; %s is replaced verbatim.
var titleTemplates = []string{
	"%s: The Complete Beginner's Guide",
	"I Tried %s for 30 Days - Here's What Happened",
	"5 %s Mistakes Everyone Makes",
	"The Truth About %s in 2025",
	"%s Explained in 10 Minutes",
	"Why %s Is Blowing Up Right Now",
	"How I Mastered %s (Step by Step)",
	"%s vs The Alternatives: What Actually Works",
	"The %s Strategy Nobody Shares",
	"What They Don't Tell You About %s",
}

// scriptSections outline a video script; each is filled with the keyword.
var scriptSections = []string{
	"HOOK: Open with the single most surprising fact about %s. Promise the payoff up front.",
	"INTRO: Say who this is for and what they will be able to do with %s by the end.",
	"CONTEXT: Explain why %s matters right now and what changed recently.",
	"MAIN POINTS: Walk through the three core ideas of %s, one concrete example each.",
	"COMMON MISTAKES: Cover what beginners get wrong with %s and how to avoid it.",
	"CALL TO ACTION: Recap the payoff and tell viewers the next step to take with %s.",
}

// TemplateGenerator is the deterministic, network-free default. The same
// input always yields the same output, which keeps the helpers testable
// and usable offline.
type TemplateGenerator struct{}

// NewTemplateGenerator returns the default generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Titles returns count title variations for the keyword. An unknown
// emotion tag is ignored; count is clamped to [1, maxTitleCount].
func (g *TemplateGenerator) Titles(_ context.Context, keyword, _, emotion string, count int) ([]string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("keyword is required")
	}

	if count <= 0 {
		count = defaultTitleCount
	}
	if count > maxTitleCount {
		count = maxTitleCount
	}

	hook := emotionHooks[strings.ToLower(emotion)]

	titles := make([]string, 0, count)
	for i := 0; i < count; i++ {
		title := fmt.Sprintf(titleTemplates[i%len(titleTemplates)], titleCase(keyword))
		if hook != "" && i%2 == 0 {
			title = hook + " " + title
		}
		titles = append(titles, title)
	}
	return titles, nil
}

// Script returns a section-by-section outline for the keyword. Duration
// only scales the pacing note; the structure is fixed.
func (g *TemplateGenerator) Script(_ context.Context, keyword, _, tone string, durationMinutes int) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", fmt.Errorf("keyword is required")
	}
	if durationMinutes <= 0 {
		durationMinutes = 8
	}

	var b strings.Builder
	fmt.Fprintf(&b, "VIDEO SCRIPT: %s\n", titleCase(keyword))
	if tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", tone)
	}
	fmt.Fprintf(&b, "Target length: %d minutes (~%d words)\n\n", durationMinutes, durationMinutes*150)

	for i, section := range scriptSections {
		fmt.Fprintf(&b, "%d. %s\n", i+1, fmt.Sprintf(section, keyword))
	}
	return b.String(), nil
}

// titleCase capitalizes the first letter of each word without pulling in
// a locale-aware dependency; titles only need ASCII-ish treatment here.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
