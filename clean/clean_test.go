package clean

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexkraay/corpusprep"
)

func TestUtteranceTranslationTag(t *testing.T) {
	cfg := DefaultConfig()
	words, n := Utterance("@eng@ hello", cfg, nil)
	assert.Nil(t, words)
	assert.Equal(t, 0, n)
}

func TestUtteranceDigitToken(t *testing.T) {
	cfg := DefaultConfig()

	// Mixed alphanumeric token discards the whole utterance.
	words, n := Utterance("I12 went home", cfg, nil)
	assert.Nil(t, words)
	assert.Equal(t, 0, n)

	// Purely numeric tokens are fine.
	words, _ = Utterance("counted 12 sheep", cfg, nil)
	assert.Equal(t, []string{"counted", "12", "sheep"}, words)
}

func TestUtterancePunctuationAndSpecialCases(t *testing.T) {
	cfg := DefaultConfig()
	words, n := Utterance("<silence> Ngajang, marri!", cfg, nil)
	assert.Equal(t, []string{"ngajang", "marri"}, words)
	assert.Equal(t, 0, n)
}

func TestUtteranceRemovesEnglish(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RemoveEnglish = true
	english := map[string]bool{"water": true, "the": true, "house": true}

	words, n := Utterance("ngaju water nganing house", cfg, english)
	assert.Equal(t, []string{"ngaju", "nganing"}, words)
	assert.Equal(t, 2, n)

	// Words of length <= 3 are never removed, even if English.
	words, n = Utterance("the ngaju", cfg, english)
	assert.Equal(t, []string{"the", "ngaju"}, words)
	assert.Equal(t, 0, n)
}

func TestValidEmpty(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, Valid(nil, 0, cfg, nil))
	assert.False(t, Valid([]string{""}, 0, cfg, nil))
}

func TestValidEnglishRatio(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RemoveEnglish = true

	five := []string{"a", "b", "c", "d", "e"}
	// 1 removed English word against 5 kept: ratio 0.2 > 0.1.
	assert.False(t, Valid(five, 1, cfg, nil))
	// No English removed: fine.
	assert.True(t, Valid(five, 0, cfg, nil))

	// Ratio only applies when English removal is on.
	cfg.RemoveEnglish = false
	assert.True(t, Valid(five, 1, cfg, nil))
}

func TestValidLangID(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RemoveEnglish = true
	cfg.UseLangID = true

	english := func(string) (string, float64) { return "en", 0.9 }
	french := func(string) (string, float64) { return "fr", 0.9 }
	unsure := func(string) (string, float64) { return "en", 0.3 }

	words := []string{"some", "words"}
	assert.False(t, Valid(words, 0, cfg, english))
	assert.True(t, Valid(words, 0, cfg, french))
	// Confidence at or below the threshold is not enough to reject.
	assert.True(t, Valid(words, 0, cfg, unsure))
}

func TestBatchOrderAndPassthrough(t *testing.T) {
	cfg := DefaultConfig()
	utts := []corpusprep.Utterance{
		{Transcript: "Ngajang marri", SpeakerID: "S1", AudioFileName: "a.wav",
			StartMS: corpusprep.Millis(0), StopMS: corpusprep.Millis(1200)},
		{Transcript: "@eng@ translation gloss"},
		{Transcript: "..."},
		{Transcript: "bardi jawa"},
	}

	cleaned := Batch(utts, cfg, nil, nil)
	require.Len(t, cleaned, 2)

	// Survivors keep their relative order and metadata.
	assert.Equal(t, "ngajang marri", cleaned[0].Transcript)
	assert.Equal(t, "S1", cleaned[0].SpeakerID)
	assert.Equal(t, "a.wav", cleaned[0].AudioFileName)
	require.NotNil(t, cleaned[0].StopMS)
	assert.Equal(t, 1200, *cleaned[0].StopMS)
	assert.Equal(t, "bardi jawa", cleaned[1].Transcript)

	// Input is left alone.
	assert.Equal(t, "Ngajang marri", utts[0].Transcript)
}

func TestBatchMostlyEnglishDropped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RemoveEnglish = true
	english := map[string]bool{"water": true, "house": true}

	utts := []corpusprep.Utterance{
		{Transcript: "ngaju water house"}, // 2 English removed vs 1 kept
		{Transcript: "ngaju nganing"},
	}
	cleaned := Batch(utts, cfg, english, nil)
	require.Len(t, cleaned, 1)
	assert.Equal(t, "ngaju nganing", cleaned[0].Transcript)
}

func TestBatchClassifierIgnoredWithoutRemoveEnglish(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseLangID = true // but RemoveEnglish is off

	called := false
	classify := func(string) (string, float64) {
		called = true
		return "en", 1.0
	}

	cleaned := Batch([]corpusprep.Utterance{{Transcript: "hello there"}}, cfg, nil, classify)
	assert.Len(t, cleaned, 1)
	assert.False(t, called)
}

func TestLoadWordSet(t *testing.T) {
	set, err := LoadWordSet(strings.NewReader("Water\nhouse\n\n  the \n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"water": true, "house": true, "the": true}, set)
}
