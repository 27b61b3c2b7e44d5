package matcher

import "strings"

// minPartLength is the shortest artist-name part matched on its own.
// Shorter parts (articles, initials) produce too much noise even for this
// deliberately recall-biased matcher.
const minPartLength = 4

// Matches reports whether the artist's name plausibly appears in text.
// Both inputs are case-folded; the full name is tried first as a substring,
// then any whitespace-delimited part of length >= 4. The heuristic accepts
// false positives (short surnames embedded in unrelated words) in exchange
// for recall; that tradeoff is intentional.
func Matches(artist, text string) bool {
	artist = strings.ToLower(strings.TrimSpace(artist))
	if artist == "" {
		return false
	}
	text = strings.ToLower(text)

	if strings.Contains(text, artist) {
		return true
	}

	for _, part := range strings.Fields(artist) {
		if len([]rune(part)) < minPartLength {
			continue
		}
		if strings.Contains(text, part) {
			return true
		}
	}

	return false
}
