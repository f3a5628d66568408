package alignment

import "strings"

// FindForbiddenWords returns the forbidden words present in text,
// case-insensitive, each reported once using its original spelling.
func FindForbiddenWords(text string, forbidden []string) []string {
	if len(forbidden) == 0 {
		return nil
	}

	normalizedText := strings.ToLower(text)

	var found []string
	seen := make(map[string]bool)

	for _, word := range forbidden {
		normalized := strings.ToLower(strings.TrimSpace(word))
		if normalized == "" {
			continue
		}
		if strings.Contains(normalizedText, normalized) && !seen[normalized] {
			found = append(found, word)
			seen[normalized] = true
		}
	}

	return found
}
