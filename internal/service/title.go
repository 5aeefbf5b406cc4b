// internal/service/title.go
package service

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTitle is returned when nothing usable remains of the input.
const DefaultTitle = "New Conversation"

// maxTitleRunes bounds the derived title before the ellipsis is applied.
const maxTitleRunes = 40

// leadingFillers are low-information openers stripped from the front of a
// first message before it becomes a title. Order matters: stacked fillers
// ("can you help me ...") are peeled off one scan at a time.
var leadingFillers = []string{
	"help me",
	"can you",
	"could you",
	"please",
	"i need",
	"i want",
	"how do i",
	"how to",
	"what is",
	"what are",
	"why is",
	"explain",
	"tell me about",
}

// DeriveTitle turns a first user message into a provisional conversation
// title. It is pure and deterministic: the same input always produces the
// same title, which is why it doubles as the fallback when AI title
// generation fails. Output never exceeds 43 characters (40 plus "...").
func DeriveTitle(input string) string {
	s := strings.TrimSpace(input)

	// Peel leading fillers. Each phrase strips at most once; the scan
	// restarts after a strip so "can you help me X" reduces all the way
	// to X.
	stripped := make(map[string]bool, len(leadingFillers))
	for {
		matched := false
		for _, phrase := range leadingFillers {
			if stripped[phrase] {
				continue
			}
			rest, ok := cutPrefixFold(s, phrase)
			if !ok {
				continue
			}
			stripped[phrase] = true
			s = strings.TrimSpace(rest)
			matched = true
			break
		}
		if !matched {
			break
		}
	}

	s = strings.NewReplacer("?", "", "!", "", ".", "").Replace(s)
	s = strings.TrimSpace(s)

	if runes := []rune(s); len(runes) > maxTitleRunes {
		s = strings.TrimSpace(string(runes[:maxTitleRunes])) + "..."
	}

	s = cases.Title(language.English).String(s)

	if s == "" {
		return DefaultTitle
	}
	return s
}

// cutPrefixFold removes phrase from the front of s case-insensitively,
// requiring a word boundary so "i need" does not match "i needed".
func cutPrefixFold(s, phrase string) (string, bool) {
	if len(s) < len(phrase) || !strings.EqualFold(s[:len(phrase)], phrase) {
		return s, false
	}
	rest := s[len(phrase):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != ',' && rest[0] != ':' {
		return s, false
	}
	return strings.TrimLeft(rest, " \t,:"), true
}
