// Package clean filters and rewrites utterance transcripts before they
// enter an ASR training pipeline. Cleaning runs in two phases: per-word
// rules (translation tags, digit tokens, punctuation, English removal)
// and whole-utterance validation (empty text, English ratio, language
// identification). Utterances that fail validation are dropped, not
// flagged.
package clean

import (
	"strings"
	"unicode"

	"github.com/lexkraay/corpusprep"
)

// translationTags mark a transcript as a translation gloss rather than
// target-language speech; the whole utterance is discarded.
var translationTags = map[string]bool{
	"@eng@": true,
	"<ind:": true,
	"<eng:": true,
}

// Classifier identifies the language of a text, returning a language
// code and a confidence in [0,1]. Implementations are external; the
// cleaner only calls it when both RemoveEnglish and UseLangID are set.
type Classifier func(text string) (lang string, confidence float64)

// Config controls the cleaning rules.
type Config struct {
	RemoveEnglish bool
	UseLangID     bool

	// Punctuation holds every character stripped from words.
	Punctuation string
	// SpecialCases are words dropped without further processing,
	// e.g. a silence marker.
	SpecialCases map[string]bool

	// EnglishRatio rejects an utterance when the fraction of removed
	// English words exceeds it. LangIDConfidence rejects when the
	// classifier says "en" above it.
	EnglishRatio     float64
	LangIDConfidence float64
}

// DefaultConfig returns the cleaning rules used by the cleanjson tool:
// ASCII punctuation plus typographic quotes/dashes, the <silence>
// marker, 10% English ratio and 0.5 langid confidence.
func DefaultConfig() Config {
	return Config{
		Punctuation:      "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~…’“–”‘°",
		SpecialCases:     map[string]bool{"<silence>": true},
		EnglishRatio:     0.1,
		LangIDConfidence: 0.5,
	}
}

// Utterance cleans a single transcript and returns the kept words plus
// the number of words removed as English. A translation tag or a mixed
// alphanumeric token (digits in a non-numeric word, i.e. a code or
// transcription error) discards the whole utterance.
func Utterance(transcript string, cfg Config, english map[string]bool) ([]string, int) {
	words := strings.Fields(strings.ToLower(transcript))
	var kept []string
	englishCount := 0

	for _, word := range words {
		if cfg.SpecialCases[word] {
			continue
		}
		if translationTags[word] {
			return nil, 0
		}
		if containsDigit(word) && !isNumeric(word) {
			return nil, 0
		}
		if cfg.Punctuation != "" {
			word = stripRunes(word, cfg.Punctuation)
		}
		if cfg.RemoveEnglish && len(word) > 3 && english[word] {
			englishCount++
			continue
		}
		kept = append(kept, word)
	}
	return kept, englishCount
}

// Valid reports whether a cleaned utterance should be kept.
func Valid(words []string, englishCount int, cfg Config, classify Classifier) bool {
	text := strings.TrimSpace(strings.Join(words, " "))
	if text == "" {
		return false
	}
	if cfg.RemoveEnglish && len(words) > 0 &&
		float64(englishCount)/float64(len(words)) > cfg.EnglishRatio {
		return false
	}
	if cfg.RemoveEnglish && cfg.UseLangID && classify != nil {
		lang, confidence := classify(text)
		if lang == "en" && confidence > cfg.LangIDConfidence {
			return false
		}
	}
	return true
}

// Batch cleans a whole list of utterances, preserving order among the
// survivors. Each kept utterance's transcript is replaced by its
// rejoined cleaned text; all other fields pass through unchanged.
// The english set is only consulted when cfg.RemoveEnglish is set, and
// classify only when cfg.UseLangID is also set, so callers can skip
// loading either for runs that do not need them.
func Batch(utts []corpusprep.Utterance, cfg Config, english map[string]bool, classify Classifier) []corpusprep.Utterance {
	if !cfg.RemoveEnglish {
		english = nil
	}
	if !cfg.RemoveEnglish || !cfg.UseLangID {
		classify = nil
	}

	var cleaned []corpusprep.Utterance
	for _, u := range utts {
		words, englishCount := Utterance(u.Transcript, cfg, english)
		if !Valid(words, englishCount, cfg, classify) {
			continue
		}
		u.Transcript = strings.TrimSpace(strings.Join(words, " "))
		cleaned = append(cleaned, u)
	}
	return cleaned
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// isNumeric reports whether s consists entirely of digits and is
// non-empty, mirroring str.isdigit.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func stripRunes(s, cutset string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !strings.ContainsRune(cutset, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
