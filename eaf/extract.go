package eaf

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/lexkraay/corpusprep"
)

// ErrNoAudio reports that an .eaf file has no companion .wav next to
// it. It is fatal for that file only; batch callers skip the file and
// continue.
var ErrNoAudio = errors.New("companion wav file not found")

// ExtractFile reads one ELAN file and returns the utterances of the
// named tier, plus the tier actually used. When tierName is empty or
// not present in the file, the first tier is used instead; callers that
// care can compare the returned tier name and warn.
//
// The audio file referenced by every utterance is <basename>.wav in the
// same directory as the .eaf; if it does not exist the extraction fails
// with ErrNoAudio.
func ExtractFile(path, tierName string) ([]corpusprep.Utterance, string, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, "", err
	}

	names := doc.TierNames()
	if len(names) == 0 {
		return nil, "", errors.Errorf("%s: no tiers", path)
	}
	used := tierName
	if used == "" || doc.Tier(used) == nil {
		used = names[0]
	}

	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	wavName := base + ".wav"
	if _, err := os.Stat(filepath.Join(dir, wavName)); err != nil {
		return nil, used, errors.Wrapf(ErrNoAudio, "%s (expected %s in %s)", filepath.Base(path), wavName, dir)
	}

	speaker := doc.Tier(used).Participant
	segments := doc.Segments(used)

	utts := make([]corpusprep.Utterance, 0, len(segments))
	for _, seg := range segments {
		utts = append(utts, corpusprep.Utterance{
			SpeakerID:     speaker,
			AudioFileName: wavName,
			Transcript:    seg.Text,
			StartMS:       corpusprep.Millis(seg.Start),
			StopMS:        corpusprep.Millis(seg.End),
		})
	}
	return utts, used, nil
}
