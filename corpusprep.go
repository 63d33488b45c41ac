// Package corpusprep holds the record types shared by the corpus
// preparation commands under cmd/.
//
// The commands are independent batch tools that move speech-corpus
// annotation data through an ASR training pipeline: ELAN tier extraction
// (elan2json), pronunciation-lexicon generation (prndict), transcript
// cleaning (cleanjson), audio resampling (resample) and annotation-format
// conversion (tg2elan). They communicate through JSON files of Utterance
// records and plain-text lexicon/wordlist files; nothing is shared at
// runtime.
package corpusprep

import (
	"encoding/json"
	"io"
	"os"
)

// Utterance is one transcribed speech segment. Transcript is always
// present; the remaining fields are optional metadata that must survive
// cleaning untouched, so they are pointers/omitempty and only appear in
// JSON when set.
type Utterance struct {
	SpeakerID     string `json:"speaker_id,omitempty"`
	AudioFileName string `json:"audio_file_name,omitempty"`
	Transcript    string `json:"transcript"`
	StartMS       *int   `json:"start_ms,omitempty"`
	StopMS        *int   `json:"stop_ms,omitempty"`
}

// Millis returns a pointer to v, for filling the optional time fields.
func Millis(v int) *int { return &v }

// ReadUtterances decodes a JSON array of utterances.
func ReadUtterances(r io.Reader) ([]Utterance, error) {
	var utts []Utterance
	dec := json.NewDecoder(r)
	if err := dec.Decode(&utts); err != nil {
		return nil, err
	}
	return utts, nil
}

// ReadUtterancesFile is a convenience wrapper that opens a file path.
func ReadUtterancesFile(path string) ([]Utterance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadUtterances(f)
}

// WriteUtterances encodes utterances as an indented JSON array.
func WriteUtterances(w io.Writer, utts []Utterance) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(utts)
}

// WriteUtterancesFile writes the JSON array to a file path.
func WriteUtterancesFile(path string, utts []Utterance) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteUtterances(f, utts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
